package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/storage"
)

const (
	recordFile = "user.json"
	roleFile   = "role"
)

// Storage keeps session slots as directories of two files under a root.
// It backs the CLI, where the slot key is the profile name.
type Storage struct {
	root string
}

// New creates a file storage rooted at dir. The directory is created lazily.
func New(dir string) *Storage {
	return &Storage{root: dir}
}

// Ensure Storage implements the interface
var _ storage.SessionStore = (*Storage)(nil)

// ErrInvalidKey is returned for a key that is not a single, ordinary path element
var ErrInvalidKey = errors.New("invalid profile name")

// ValidateKey checks that key names a directory directly under the root
func ValidateKey(key model.SessionKey) error {
	name := string(key)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidKey, name)
	}
	return nil
}

func (s *Storage) slotDir(key model.SessionKey) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.root, string(key)), nil
}

func (s *Storage) Save(ctx context.Context, key model.SessionKey, user *model.User) error {
	record, role, err := storage.Encode(user)
	if err != nil {
		return err
	}

	dir, err := s.slotDir(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	// Stage both files before either becomes visible
	recordTmp, err := writeTemp(dir, recordFile, record)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	roleTmp, err := writeTemp(dir, roleFile, []byte(role))
	if err != nil {
		_ = os.Remove(recordTmp)
		return fmt.Errorf("save session: %w", err)
	}

	if err := os.Rename(recordTmp, filepath.Join(dir, recordFile)); err != nil {
		_ = os.Remove(recordTmp)
		_ = os.Remove(roleTmp)
		return fmt.Errorf("save session: %w", err)
	}
	if err := os.Rename(roleTmp, filepath.Join(dir, roleFile)); err != nil {
		_ = os.Remove(roleTmp)
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Storage) Load(ctx context.Context, key model.SessionKey) (*model.User, error) {
	dir, err := s.slotDir(key)
	if err != nil {
		return nil, err
	}

	record, err := readOptional(filepath.Join(dir, recordFile))
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	role, err := readOptional(filepath.Join(dir, roleFile))
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	return storage.Decode(record, string(role))
}

func (s *Storage) Clear(ctx context.Context, key model.SessionKey) error {
	dir, err := s.slotDir(key)
	if err != nil {
		return err
	}
	var errs []error
	for _, name := range []string{recordFile, roleFile} {
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func writeTemp(dir, name string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func readOptional(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}
