package storage

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/rs/zerolog/log"

	"github.com/charleshuang3/taskvault/internal/tokens"
)

const (
	maxVerifiedTokens = 10000
)

// VerifiedTokenCache memoizes access token verification. Access tokens
// are stateless and never revoked, so caching a verified payload until
// the token's own expiry cannot change any auth decision; it only skips
// the repeated signature check on hot paths.
type VerifiedTokenCache struct {
	cache *ristretto.Cache[string, *tokens.Claims]
}

func NewVerifiedTokenCache() *VerifiedTokenCache {
	c, err := ristretto.NewCache(&ristretto.Config[string, *tokens.Claims]{
		NumCounters: maxVerifiedTokens,
		MaxCost:     maxVerifiedTokens,
		BufferItems: 64,
	})

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create verified token cache")
	}

	return &VerifiedTokenCache{
		cache: c,
	}
}

func (s *VerifiedTokenCache) Get(token string) (*tokens.Claims, bool) {
	return s.cache.Get(token)
}

func (s *VerifiedTokenCache) Set(token string, claims *tokens.Claims, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s.cache.SetWithTTL(token, claims, 1, ttl)
	s.cache.Wait()
}
