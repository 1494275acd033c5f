package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// record is one persisted session.
type record struct {
	ID        string `gorm:"primaryKey;size:128"`
	Data      []byte
	ExpiresAt int64 `gorm:"index"` // unix seconds, 0 = no expiry
}

func (record) TableName() string {
	return "portal_sessions"
}

// GormStorage implements fiber.Storage on top of gorm so sessions survive restarts.
type GormStorage struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStorage migrates the sessions table and returns the storage.
func NewGormStorage(db *gorm.DB) (*GormStorage, error) {
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sessions table: %w", err)
	}
	return &GormStorage{db: db, now: time.Now}, nil
}

// Get returns nil without error for missing or expired keys.
func (s *GormStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	var rec record
	err := s.db.Where("id = ?", key).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if rec.ExpiresAt != 0 && rec.ExpiresAt <= s.now().Unix() {
		return nil, nil
	}
	return rec.Data, nil
}

// Set upserts a key. Empty keys or values are ignored.
func (s *GormStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	var expiresAt int64
	if exp > 0 {
		expiresAt = s.now().Add(exp).Unix()
	}
	rec := record{ID: key, Data: val, ExpiresAt: expiresAt}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

// Delete removes a key.
func (s *GormStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	return s.db.Where("id = ?", key).Delete(&record{}).Error
}

// Reset removes every session.
func (s *GormStorage) Reset() error {
	return s.db.Where("1 = 1").Delete(&record{}).Error
}

// Close is a no-op; the connection belongs to the caller.
func (s *GormStorage) Close() error {
	return nil
}

// DeleteExpired removes sessions whose expiry has passed.
func (s *GormStorage) DeleteExpired() (int64, error) {
	res := s.db.Where("expires_at <> 0 AND expires_at <= ?", s.now().Unix()).Delete(&record{})
	return res.RowsAffected, res.Error
}

// StartCleanup deletes expired sessions every interval until ctx is done.
func (s *GormStorage) StartCleanup(ctx context.Context, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.DeleteExpired()
				if err != nil {
					logger.Warn("Session cleanup failed", zap.Error(err))
					continue
				}
				if n > 0 {
					logger.Info("Expired sessions removed", zap.Int64("count", n))
				}
			}
		}
	}()
}
