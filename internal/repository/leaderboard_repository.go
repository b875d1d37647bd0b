package repository

import (
	"context"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const leaderboardKey = "leaderboard:xp"

// LeaderboardRepository keeps lifetime XP in a Redis sorted set so ranking
// reads never scan the users table.
type LeaderboardRepository struct {
	RDB *redis.Client
}

func NewLeaderboardRepository(rdb *redis.Client) *LeaderboardRepository {
	return &LeaderboardRepository{RDB: rdb}
}

type LeaderboardScore struct {
	UserID uint
	XP     int
}

// SetScore writes the user's absolute lifetime XP. Called after every
// progression mutation, so the set is an index, not a source of truth.
func (r *LeaderboardRepository) SetScore(ctx context.Context, userID uint, totalXP int) error {
	return r.RDB.ZAdd(ctx, leaderboardKey, &redis.Z{
		Score:  float64(totalXP),
		Member: strconv.FormatUint(uint64(userID), 10),
	}).Err()
}

func (r *LeaderboardRepository) Remove(ctx context.Context, userID uint) error {
	return r.RDB.ZRem(ctx, leaderboardKey, strconv.FormatUint(uint64(userID), 10)).Err()
}

// Top returns the highest-XP users in rank order.
func (r *LeaderboardRepository) Top(ctx context.Context, limit int) ([]LeaderboardScore, error) {
	entries, err := r.RDB.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]LeaderboardScore, 0, len(entries))
	for _, entry := range entries {
		member, ok := entry.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			continue
		}
		scores = append(scores, LeaderboardScore{UserID: uint(id), XP: int(entry.Score)})
	}
	return scores, nil
}

// Rank returns the user's 1-based position, or 0 when absent.
func (r *LeaderboardRepository) Rank(ctx context.Context, userID uint) (int, error) {
	rank, err := r.RDB.ZRevRank(ctx, leaderboardKey, strconv.FormatUint(uint64(userID), 10)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int(rank) + 1, nil
}
