package service

import (
	"context"
	"secaware_backend/internal/engine"
	"secaware_backend/internal/model"
	"secaware_backend/internal/repository"
	"secaware_backend/pkg/logger"
	"secaware_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// ProgressionService owns UserProgress. It wraps the pure engine with
// persistence: every mutating call saves before returning, so a crash loses
// at most the operation in flight. The leaderboard sorted set is refreshed on
// the same path.
type ProgressionService struct {
	Engine          *engine.ProgressionEngine
	ProgressRepo    *repository.ProgressRepository
	LeaderboardRepo *repository.LeaderboardRepository
}

func NewProgressionService(progressRepo *repository.ProgressRepository, leaderboardRepo *repository.LeaderboardRepository) *ProgressionService {
	return &ProgressionService{
		Engine:          engine.NewProgressionEngine(),
		ProgressRepo:    progressRepo,
		LeaderboardRepo: leaderboardRepo,
	}
}

func (s *ProgressionService) GetProgress(ctx context.Context, userID uint) (*model.UserProgress, error) {
	return s.ProgressRepo.FindOrCreateByUser(ctx, userID)
}

// SessionResult is what the Session Engine hands over when an attempt ends.
type SessionResult struct {
	ModuleID       string
	Score          int
	Passed         bool
	XPEarned       int
	CorrectCount   int
	TotalScenarios int
}

// ApplySessionResult folds one finished attempt into the durable state:
// streak, XP/level, per-module record and badge rules, in one persisted step.
// Returns the updated progress and any newly earned badges.
func (s *ProgressionService) ApplySessionResult(ctx context.Context, userID uint, result SessionResult) (*model.UserProgress, []model.Badge, error) {
	progress, err := s.ProgressRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	s.Engine.UpdateStreak(progress)

	if err := s.Engine.AddXP(progress, result.XPEarned); err != nil {
		return nil, nil, err
	}

	// The streak and XP changes above are visible to the rule evaluation
	// UpdateModuleProgress triggers, so one pass covers the whole batch.
	earned, err := s.Engine.UpdateModuleProgress(progress, result.ModuleID, result.Score, result.Passed)
	if err != nil {
		return nil, nil, err
	}

	if err := s.ProgressRepo.Save(ctx, progress); err != nil {
		return nil, nil, err
	}

	s.syncLeaderboard(ctx, userID, progress.TotalScore)

	for range earned {
		monitoring.BadgesAwarded.Inc()
	}
	return progress, earned, nil
}

// AddXP credits XP outside a session (e.g. a daily bonus) and persists.
func (s *ProgressionService) AddXP(ctx context.Context, userID uint, amount int) (*model.UserProgress, error) {
	progress, err := s.ProgressRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.Engine.AddXP(progress, amount); err != nil {
		return nil, err
	}

	// Level badges can unlock on this path too.
	earned := s.Engine.EvaluateBadges(progress)
	for range earned {
		monitoring.BadgesAwarded.Inc()
	}

	if err := s.ProgressRepo.Save(ctx, progress); err != nil {
		return nil, err
	}

	s.syncLeaderboard(ctx, userID, progress.TotalScore)
	return progress, nil
}

// ResetProgress wipes the account back to level 1 and removes it from the
// leaderboard.
func (s *ProgressionService) ResetProgress(ctx context.Context, userID uint) (*model.UserProgress, error) {
	progress, err := s.ProgressRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.Engine.Reset(progress)

	if err := s.ProgressRepo.Save(ctx, progress); err != nil {
		return nil, err
	}

	if s.LeaderboardRepo != nil {
		if err := s.LeaderboardRepo.Remove(ctx, userID); err != nil {
			logger.WithUser(userID).Warn("failed to remove user from leaderboard", zap.Error(err))
		}
	}
	return progress, nil
}

func (s *ProgressionService) syncLeaderboard(ctx context.Context, userID uint, totalXP int) {
	if s.LeaderboardRepo == nil {
		return
	}
	if err := s.LeaderboardRepo.SetScore(ctx, userID, totalXP); err != nil {
		logger.WithUser(userID).Warn("failed to sync leaderboard", zap.Error(err))
	}
}
