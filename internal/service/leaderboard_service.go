package service

import (
	"context"
	"secaware_backend/internal/repository"
)

type LeaderboardService struct {
	LeaderboardRepo *repository.LeaderboardRepository
	UserRepo        *repository.UserRepository
}

func NewLeaderboardService(leaderboardRepo *repository.LeaderboardRepository, userRepo *repository.UserRepository) *LeaderboardService {
	return &LeaderboardService{LeaderboardRepo: leaderboardRepo, UserRepo: userRepo}
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	User   string `json:"user"`
	XP     int    `json:"xp"`
	Avatar string `json:"avatar,omitempty"`
}

// GetLeaderboard reads the top of the sorted set and resolves display names
// in one batch query.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	scores, err := s.LeaderboardRepo.Top(ctx, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(scores))
	for i, sc := range scores {
		ids[i] = sc.UserID
	}

	users, err := s.UserRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	avatars := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
		avatars[u.ID] = u.Avatar
	}

	entries := make([]LeaderboardEntry, 0, len(scores))
	for i, sc := range scores {
		name, ok := names[sc.UserID]
		if !ok {
			// deleted account still present in the set
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Rank:   i + 1,
			User:   name,
			XP:     sc.XP,
			Avatar: avatars[sc.UserID],
		})
	}
	return entries, nil
}

// GetRank returns the caller's own position, 0 when unranked.
func (s *LeaderboardService) GetRank(ctx context.Context, userID uint) (int, error) {
	return s.LeaderboardRepo.Rank(ctx, userID)
}
