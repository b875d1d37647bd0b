package repository

import (
	"context"
	"testing"

	"secaware_backend/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

// newCacheRepo wires the repository to an in-process Redis. DB stays nil so
// any fall-through to MySQL panics the test instead of passing silently.
func newCacheRepo(t *testing.T) *ProgressRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return &ProgressRepository{RDB: rdb}
}

func cachedProgress(userID uint) *model.UserProgress {
	return &model.UserProgress{
		UserID:         userID,
		Level:          3,
		XP:             40,
		XPToNextLevel:  300,
		TotalScore:     640,
		Streak:         5,
		LastActiveDate: "2026-08-30",
		ModuleProgress: map[string]model.ModuleProgress{
			"phishing-basics": {BestScore: 95, Status: model.StatusCompleted, Attempts: 2},
		},
	}
}

func TestFindOrCreateByUserServedFromSnapshot(t *testing.T) {
	repo := newCacheRepo(t)
	ctx := context.Background()
	repo.writeCache(ctx, cachedProgress(7))

	got, err := repo.FindOrCreateByUser(ctx, 7)
	if err != nil {
		t.Fatalf("FindOrCreateByUser: %v", err)
	}
	if got.UserID != 7 {
		t.Errorf("UserID = %d, want 7", got.UserID)
	}
	if got.Level != 3 || got.TotalScore != 640 {
		t.Errorf("snapshot fields lost: level=%d totalScore=%d", got.Level, got.TotalScore)
	}
	if mp, ok := got.ModuleProgress["phishing-basics"]; !ok || mp.BestScore != 95 {
		t.Errorf("ModuleProgress lost across snapshot: %+v", got.ModuleProgress)
	}
}

func TestReadCacheMissesForOtherUser(t *testing.T) {
	repo := newCacheRepo(t)
	ctx := context.Background()
	repo.writeCache(ctx, cachedProgress(7))

	if _, ok := repo.readCache(ctx, 8); ok {
		t.Fatal("snapshot for user 7 served to user 8")
	}
}

func TestReadCacheRejectsCorruptSnapshot(t *testing.T) {
	repo := newCacheRepo(t)
	ctx := context.Background()
	repo.RDB.Set(ctx, progressCacheKey(7), "{not json", 0)

	if _, ok := repo.readCache(ctx, 7); ok {
		t.Fatal("corrupt snapshot reported as a hit")
	}
}

func TestInvalidateDropsSnapshot(t *testing.T) {
	repo := newCacheRepo(t)
	ctx := context.Background()
	repo.writeCache(ctx, cachedProgress(7))
	repo.Invalidate(ctx, 7)

	if _, ok := repo.readCache(ctx, 7); ok {
		t.Fatal("snapshot survived Invalidate")
	}
}
