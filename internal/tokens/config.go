package tokens

import (
	"errors"
	"fmt"
)

// Config is sourced from the environment; secrets never live in the
// config file.
type Config struct {
	// HMAC signing secrets. Access and refresh must differ so a leaked
	// access token can never be replayed as a refresh token.
	AccessSecret  string `env:"JWT_ACCESS_SECRET,required"`
	RefreshSecret string `env:"JWT_REFRESH_SECRET,required"`

	// Token lifetimes, expressed as "<integer><m|h|d>".
	AccessExpiry  string `env:"JWT_ACCESS_EXPIRY" envDefault:"15m"`
	RefreshExpiry string `env:"JWT_REFRESH_EXPIRY" envDefault:"7d"`
}

func (c *Config) Validate() error {
	if c.AccessSecret == "" {
		return errors.New("access secret is missing")
	}

	if c.RefreshSecret == "" {
		return errors.New("refresh secret is missing")
	}

	if c.AccessSecret == c.RefreshSecret {
		return errors.New("access and refresh secrets must be distinct")
	}

	if _, err := ParseExpiry(c.AccessExpiry); err != nil {
		return fmt.Errorf("access expiry: %w", err)
	}

	if _, err := ParseExpiry(c.RefreshExpiry); err != nil {
		return fmt.Errorf("refresh expiry: %w", err)
	}

	return nil
}
