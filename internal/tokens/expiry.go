package tokens

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidExpirySpec is returned for any lifetime spec outside the
// "<integer><m|h|d>" grammar. time.ParseDuration is deliberately not
// used here: it accepts seconds and compound forms, and rejects days.
var ErrInvalidExpirySpec = errors.New("invalid expiry spec, want <integer><m|h|d>")

var expirySpecRegex = regexp.MustCompile(`^(\d+)([mhd])$`)

// ParseExpiry converts a lifetime spec like "15m", "2h" or "7d" into a
// duration.
func ParseExpiry(spec string) (time.Duration, error) {
	m := expirySpecRegex.FindStringSubmatch(spec)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidExpirySpec, spec)
	}

	value, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidExpirySpec, spec)
	}

	switch m[2] {
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	default: // "d"
		return time.Duration(value) * 24 * time.Hour, nil
	}
}

// Expiry returns the absolute expiry timestamp for a lifetime spec,
// relative to now.
func Expiry(spec string) (time.Time, error) {
	d, err := ParseExpiry(spec)
	if err != nil {
		return time.Time{}, err
	}
	return time.Now().Add(d), nil
}
