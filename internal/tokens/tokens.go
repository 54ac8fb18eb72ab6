// Package tokens issues and verifies the signed access / refresh token
// pair. Access and refresh tokens carry the same claims but are signed
// with distinct secrets and lifetimes.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

var (
	ErrInvalidAccessToken  = errors.New("invalid or expired access token")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// Claims is the payload embedded in both token kinds. ExpiresAt is
// only populated on the verify path.
type Claims struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

type Issuer struct {
	accessKey  jwk.Key
	refreshKey jwk.Key

	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIssuer(cfg *Config) (*Issuer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	accessKey, err := jwk.Import([]byte(cfg.AccessSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to import access secret: %v", err)
	}

	refreshKey, err := jwk.Import([]byte(cfg.RefreshSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to import refresh secret: %v", err)
	}

	// Validate() already checked both specs parse.
	accessTTL, _ := ParseExpiry(cfg.AccessExpiry)
	refreshTTL, _ := ParseExpiry(cfg.RefreshExpiry)

	return &Issuer{
		accessKey:  accessKey,
		refreshKey: refreshKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// AccessTTL is the configured access token lifetime.
func (i *Issuer) AccessTTL() time.Duration {
	return i.accessTTL
}

func (i *Issuer) IssueAccess(claims Claims) (string, error) {
	return i.sign(claims, i.accessKey, time.Now().Add(i.accessTTL), "")
}

// IssueRefresh also returns the absolute expiry so the caller can
// persist it in the ledger. A jti makes every refresh token unique even
// when two are minted for the same user within the same second.
func (i *Issuer) IssueRefresh(claims Claims) (string, time.Time, error) {
	expiresAt := time.Now().Add(i.refreshTTL)
	signed, err := i.sign(claims, i.refreshKey, expiresAt, uuid.NewString())
	return signed, expiresAt, err
}

func (i *Issuer) VerifyAccess(token string) (*Claims, error) {
	claims, err := i.verify(token, i.accessKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAccessToken, err)
	}
	return claims, nil
}

func (i *Issuer) VerifyRefresh(token string) (*Claims, error) {
	claims, err := i.verify(token, i.refreshKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRefreshToken, err)
	}
	return claims, nil
}

func (i *Issuer) sign(claims Claims, key jwk.Key, expiresAt time.Time, jti string) (string, error) {
	builder := jwt.NewBuilder().
		Subject(claims.UserID).
		IssuedAt(time.Now()).
		Expiration(expiresAt).
		Claim("email", claims.Email)

	if jti != "" {
		builder = builder.JwtID(jti)
	}

	token, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token claims: %v", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), key))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %v", err)
	}

	return string(signed), nil
}

// verify checks the signature and expiry, then extracts the claims.
func (i *Issuer) verify(token string, key jwk.Key) (*Claims, error) {
	verified, err := jwt.Parse([]byte(token), jwt.WithKey(jwa.HS256(), key))
	if err != nil {
		return nil, err
	}

	sub, ok := verified.Subject()
	if !ok {
		return nil, errors.New("missing subject")
	}

	var email string
	if err := verified.Get("email", &email); err != nil {
		return nil, errors.New("missing email claim")
	}

	exp, ok := verified.Expiration()
	if !ok {
		return nil, errors.New("missing expiration")
	}

	return &Claims{UserID: sub, Email: email, ExpiresAt: exp}, nil
}
