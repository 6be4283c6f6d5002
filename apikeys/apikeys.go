// SPDX-License-Identifier: GPL-3.0-only

// Package apikeys owns the bearer-token lifecycle: minting keys at login,
// resolving presented tokens to their owning user, revoking keys at logout,
// and reaping expired rows.
//
// A token travels on the wire as "prefix.secret". Only the prefix and a
// one-way hash of the secret are ever stored; the plaintext secret exists
// solely in the login response.
package apikeys

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"todoapp-server/commons"
	"todoapp-server/crypto"
	"todoapp-server/models"

	"gorm.io/gorm"
)

// ErrInvalidToken covers every rejection reason: malformed token, unknown
// prefix, hash mismatch, and logical expiry. Callers must not be able to
// tell these apart.
var ErrInvalidToken = errors.New("invalid or expired API key")

const DefaultExpirationDays = 30

// Manager performs API key operations against one store connection. Each
// operation is a self-contained read-modify-write on a single row keyed by
// prefix; no multi-row transactions are needed.
type Manager struct {
	DB     *gorm.DB
	Window time.Duration
}

func NewManager(conn *gorm.DB) *Manager {
	days := commons.GetEnvInt("API_KEY_EXPIRATION_DAYS", DefaultExpirationDays)
	return &Manager{
		DB:     conn,
		Window: time.Duration(days) * 24 * time.Hour,
	}
}

// ParseToken splits a wire token into its prefix and secret halves. A
// missing separator, an empty half, or a stray separator inside the secret
// all fail here, before any storage access.
func ParseToken(token string) (string, string, error) {
	prefix, secret, found := strings.Cut(token, ".")
	if !found || prefix == "" || secret == "" || strings.Contains(secret, ".") {
		return "", "", ErrInvalidToken
	}
	return prefix, secret, nil
}

// Issue mints a new key for user, persists its hashed form, and returns the
// full wire token. The plaintext secret is not recoverable afterwards.
func (m *Manager) Issue(user *models.User, label string) (string, error) {
	generated, err := crypto.GenerateAPIKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}

	expiresAt := time.Now().Add(m.Window)
	key := models.APIKey{
		Prefix:       generated.Prefix,
		HashedSecret: generated.HashedSecret,
		Label:        label,
		ExpiresAt:    &expiresAt,
		UserID:       user.ID,
	}
	if err := m.DB.Create(&key).Error; err != nil {
		return "", fmt.Errorf("failed to store API key: %w", err)
	}
	return generated.Prefix + "." + generated.Secret, nil
}

// Resolve authenticates a wire token and returns the owning user. On
// success the key's expiry slides forward to now + window, so sessions end
// only through inactivity. Rejections come back as ErrInvalidToken; any
// other error is a storage failure.
//
// An expired row that the sweeper has not collected yet is still rejected
// here; correctness never depends on the sweeper having run.
func (m *Manager) Resolve(token string) (*models.User, error) {
	prefix, secret, err := ParseToken(token)
	if err != nil {
		return nil, err
	}

	key := models.APIKey{}
	if err := m.DB.Where("prefix = ?", prefix).First(&key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up API key: %w", err)
	}

	if !crypto.VerifySecret(secret, key.HashedSecret) {
		return nil, ErrInvalidToken
	}

	now := time.Now()
	if key.ExpiresAt != nil && key.ExpiresAt.Before(now) {
		return nil, ErrInvalidToken
	}

	expiresAt := now.Add(m.Window)
	if err := m.DB.Model(&key).Update("expires_at", expiresAt).Error; err != nil {
		return nil, fmt.Errorf("failed to extend API key expiry: %w", err)
	}

	user := models.User{}
	if err := m.DB.Where("id = ?", key.UserID).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to load API key owner: %w", err)
	}
	return &user, nil
}

// Revoke deletes the key a wire token points at. Revoking a token whose row
// is already gone is not an error.
func (m *Manager) Revoke(token string) error {
	prefix, _, err := ParseToken(token)
	if err != nil {
		return err
	}
	if err := m.DB.Where("prefix = ?", prefix).Delete(&models.APIKey{}).Error; err != nil {
		return fmt.Errorf("failed to delete API key: %w", err)
	}
	return nil
}

// Sweep deletes every key whose expiry is strictly in the past and reports
// how many rows went away.
func (m *Manager) Sweep() (int64, error) {
	result := m.DB.Where("expires_at < ?", time.Now()).Delete(&models.APIKey{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to sweep expired API keys: %w", result.Error)
	}
	return result.RowsAffected, nil
}
