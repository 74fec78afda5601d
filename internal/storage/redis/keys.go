package redis

import (
	"fmt"

	"github.com/mcoot/sportfinder/internal/model"
)

const defaultKeyPrefix = "sportfinder"

// keys generates the Redis keys for one session slot
type keys struct {
	prefix string
}

func newKeys(prefix string) keys {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return keys{prefix: prefix}
}

// record returns the key holding the serialized Session Record
func (k keys) record(key model.SessionKey) string {
	return fmt.Sprintf("%s:session:%s:user", k.prefix, key)
}

// role returns the key holding the plain role marker
func (k keys) role(key model.SessionKey) string {
	return fmt.Sprintf("%s:session:%s:role", k.prefix, key)
}
