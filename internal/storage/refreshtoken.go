package storage

import (
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/charleshuang3/taskvault/internal/gormw"
	"github.com/charleshuang3/taskvault/internal/models"
)

var (
	logger = log.With().Str("component", "storage").Logger()

	// ErrRefreshTokenConsumed is returned by RotateRefreshToken when the
	// old token row is already gone: it was rotated by a concurrent
	// request, revoked by logout, or swept after expiry.
	ErrRefreshTokenConsumed = errors.New("refresh token already consumed")
)

func AddRefreshToken(db *gormw.DB, refreshToken *models.RefreshToken) error {
	return db.Create(refreshToken).Error
}

func GetRefreshTokenByToken(db *gormw.DB, token string) (*models.RefreshToken, error) {
	o := &models.RefreshToken{}
	err := db.Where("token = ?", token).First(&o).Error
	return o, err
}

// DeleteRefreshToken is idempotent: deleting an absent token is not an
// error, which keeps logout safe to repeat.
func DeleteRefreshToken(db *gormw.DB, token string) error {
	return db.Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

// PruneExpiredRefreshTokens removes a user's expired ledger rows only.
// Non-expired rows belong to other live sessions and stay untouched.
func PruneExpiredRefreshTokens(db *gormw.DB, userID string) error {
	return db.Where("user_id = ? AND expires_at < ?", userID, time.Now()).
		Delete(&models.RefreshToken{}).Error
}

// RotateRefreshToken atomically replaces a consumed refresh token with
// its successor. The delete and insert commit as one unit; if the old
// row is already gone the transaction aborts, so of two concurrent
// rotations with the same token at most one can succeed.
func RotateRefreshToken(db *gormw.DB, oldToken string, newToken *models.RefreshToken) error {
	return db.Tx(func(tx *gormw.DB) error {
		res := tx.Where("token = ?", oldToken).Delete(&models.RefreshToken{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRefreshTokenConsumed
		}
		return tx.Create(newToken).Error
	})
}

// Refresh tokens of abandoned sessions stay in the ledger forever if
// not register a cleaner.
func RegisterRefreshTokensCleaner(scheduler gocron.Scheduler, db *gormw.DB) {
	_, _ = scheduler.NewJob(
		gocron.CronJob(
			// 4am Daily
			"0 4 * * *",
			false,
		),
		gocron.NewTask(
			func() {
				logger.Info().Msg("Cleaning up expired refresh tokens")
				db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{})
			},
		),
	)
}
