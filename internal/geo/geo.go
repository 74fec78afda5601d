package geo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Errors
var (
	ErrUnavailable       = errors.New("location unavailable")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

// Position is a coordinate pair with the reported accuracy in metres
type Position struct {
	Lat      float64
	Lng      float64
	Accuracy float64
}

// Locator obtains the current position of the user
type Locator interface {
	Locate(ctx context.Context) (Position, error)
}

// Unavailable is a Locator that never yields a position
type Unavailable struct{}

// Locate always fails with ErrUnavailable
func (Unavailable) Locate(context.Context) (Position, error) {
	return Position{}, ErrUnavailable
}

// Fixed is a Locator that always answers the same configured position
type Fixed struct {
	Position Position
}

// NewFixed creates a Fixed locator after validating the coordinate
func NewFixed(lat, lng float64) (*Fixed, error) {
	if err := validate(lat, lng); err != nil {
		return nil, err
	}
	return &Fixed{Position: Position{Lat: lat, Lng: lng}}, nil
}

// Locate returns the configured position
func (f *Fixed) Locate(ctx context.Context) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	return f.Position, nil
}

// ParseCoordinates parses manually entered latitude and longitude
func ParseCoordinates(lat, lng string) (float64, float64, error) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: latitude %q", ErrInvalidCoordinate, lat)
	}
	ln, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: longitude %q", ErrInvalidCoordinate, lng)
	}
	if err := validate(la, ln); err != nil {
		return 0, 0, err
	}
	return la, ln, nil
}

// FormatCoordinate renders a coordinate the way forms echo it back
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func validate(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return fmt.Errorf("%w: not a number", ErrInvalidCoordinate)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidCoordinate, lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidCoordinate, lng)
	}
	return nil
}
