package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"secaware_backend/internal/engine"
	"secaware_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const progressCacheTTL = 10 * time.Minute

type ProgressRepository struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewProgressRepository(db *gorm.DB, rdb *redis.Client) *ProgressRepository {
	return &ProgressRepository{DB: db, RDB: rdb}
}

func progressCacheKey(userID uint) string {
	return fmt.Sprintf("progress:%d", userID)
}

// readCache restores the Redis snapshot for a user. A missing key, a corrupt
// payload or a snapshot for a different user all report a miss.
func (r *ProgressRepository) readCache(ctx context.Context, userID uint) (*model.UserProgress, bool) {
	if r.RDB == nil {
		return nil, false
	}
	data, err := r.RDB.Get(ctx, progressCacheKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}
	var cached model.UserProgress
	if err := json.Unmarshal(data, &cached); err != nil || cached.UserID != userID {
		return nil, false
	}
	return &cached, true
}

func (r *ProgressRepository) writeCache(ctx context.Context, progress *model.UserProgress) {
	if r.RDB == nil {
		return
	}
	if data, err := json.Marshal(progress); err == nil {
		r.RDB.Set(ctx, progressCacheKey(progress.UserID), data, progressCacheTTL)
	}
}

// FindOrCreateByUser returns the user's durable progression row, creating a
// fresh level-1 record on first use. The Redis snapshot is consulted first.
func (r *ProgressRepository) FindOrCreateByUser(ctx context.Context, userID uint) (*model.UserProgress, error) {
	if cached, ok := r.readCache(ctx, userID); ok {
		return cached, nil
	}

	var progress model.UserProgress
	err := r.DB.Where("user_id = ?", userID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = model.UserProgress{
			UserID:         userID,
			Level:          1,
			XPToNextLevel:  engine.XPForLevel(1),
			ModuleProgress: map[string]model.ModuleProgress{},
		}
		if err := r.DB.Create(&progress).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Save persists to MySQL and refreshes the Redis snapshot. The DB write is
// the durability boundary; a cache failure is not an error.
func (r *ProgressRepository) Save(ctx context.Context, progress *model.UserProgress) error {
	if err := r.DB.Save(progress).Error; err != nil {
		return err
	}

	r.writeCache(ctx, progress)
	return nil
}

func (r *ProgressRepository) Invalidate(ctx context.Context, userID uint) {
	if r.RDB != nil {
		r.RDB.Del(ctx, progressCacheKey(userID))
	}
}
