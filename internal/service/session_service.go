package service

import (
	"context"
	"fmt"
	"secaware_backend/internal/config"
	"secaware_backend/internal/engine"
	"secaware_backend/internal/model"
	"secaware_backend/internal/repository"
	"secaware_backend/internal/util"
	"secaware_backend/pkg/logger"
	"secaware_backend/pkg/monitoring"
	"strconv"

	"go.uber.org/zap"
)

// Collaborator seams, satisfied by the concrete repository and service
// types. Tests substitute in-memory fakes.
type sessionStore interface {
	FindOrCreateByUser(userID uint) (*model.TrainingSession, error)
	Save(session *model.TrainingSession) error
}

type moduleCatalog interface {
	CheckStartable(ctx context.Context, userID uint, moduleID string) (*model.TrainingModule, error)
	Module(moduleID string) (*model.TrainingModule, error)
}

type scenarioGenerator interface {
	GenerateScenario(ctx context.Context, moduleType model.ModuleType, difficulty model.Difficulty, excludeIDs []string) *model.Scenario
}

type progressionApplier interface {
	ApplySessionResult(ctx context.Context, userID uint, result SessionResult) (*model.UserProgress, []model.Badge, error)
}

// SessionService drives one user's training attempt: it validates starts
// against the catalog, serializes scenario generation for the slot, scores
// answers against ground truth and hands the finished result to the
// Progression Engine.
type SessionService struct {
	Engine      *engine.SessionEngine
	SessionRepo sessionStore
	Catalog     moduleCatalog
	Scenarios   scenarioGenerator
	Progression progressionApplier
	Training    config.TrainingConfig
}

func NewSessionService(
	sessionRepo *repository.SessionRepository,
	catalog *CatalogService,
	scenarios *ScenarioService,
	progression *ProgressionService,
	training config.TrainingConfig,
) *SessionService {
	return &SessionService{
		Engine:      engine.NewSessionEngine(),
		SessionRepo: sessionRepo,
		Catalog:     catalog,
		Scenarios:   scenarios,
		Progression: progression,
		Training:    training,
	}
}

// Start begins a new attempt. An unknown or locked module fails before the
// slot is touched, so the previous session state survives a bad request.
func (s *SessionService) Start(ctx context.Context, userID uint, moduleID string) (*model.TrainingSession, error) {
	module, err := s.Catalog.CheckStartable(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}

	session, err := s.SessionRepo.FindOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}

	s.Engine.Start(session, module.ModuleID)
	if err := s.SessionRepo.Save(session); err != nil {
		return nil, err
	}

	monitoring.SessionsStarted.WithLabelValues(string(module.Type)).Inc()
	logger.WithUser(userID).Info("training session started",
		zap.String("moduleID", moduleID),
		zap.String("sessionID", session.SessionID))
	return session, nil
}

func (s *SessionService) Current(ctx context.Context, userID uint) (*model.TrainingSession, error) {
	return s.SessionRepo.FindOrCreateByUser(userID)
}

func (s *SessionService) AddMessage(ctx context.Context, userID uint, role model.MessageRole, content string, meta *model.MessageMetadata) (*model.ChatMessage, error) {
	session, err := s.SessionRepo.FindOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}

	msg, err := s.Engine.AddMessage(session, role, content, meta)
	if err != nil {
		return nil, err
	}

	if err := s.SessionRepo.Save(session); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *SessionService) UpdateScore(ctx context.Context, userID uint, delta int) (int, error) {
	session, err := s.SessionRepo.FindOrCreateByUser(userID)
	if err != nil {
		return 0, err
	}

	score, err := s.Engine.UpdateScore(session, delta)
	if err != nil {
		return 0, err
	}

	if err := s.SessionRepo.Save(session); err != nil {
		return 0, err
	}
	return score, nil
}

func (s *SessionService) NextScenario(ctx context.Context, userID uint) (*model.TrainingSession, error) {
	session, err := s.SessionRepo.FindOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}

	if err := s.Engine.NextScenario(session); err != nil {
		return nil, err
	}

	if err := s.SessionRepo.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// LoadScenario returns the current step's scenario, generating one if the
// step has none yet. A second request while one is outstanding is rejected,
// and a generation that finishes after the session changed is discarded.
func (s *SessionService) LoadScenario(ctx context.Context, userID uint, difficulty model.Difficulty) (*model.Scenario, error) {
	session, err := s.SessionRepo.FindOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive {
		return nil, engine.ErrInactiveSession
	}
	if session.Scenario != nil {
		return session.Scenario, nil
	}
	if session.ScenarioPending {
		return nil, util.ErrGenerationPending
	}

	module, err := s.Catalog.Module(session.ModuleID)
	if err != nil {
		return nil, err
	}
	if difficulty == "" {
		difficulty = module.Difficulty
	}

	// Claim the slot before the network call so a concurrent request sees
	// the guard.
	session.ScenarioPending = true
	if err := s.SessionRepo.Save(session); err != nil {
		return nil, err
	}
	startedID := session.SessionID

	scenario := s.Scenarios.GenerateScenario(ctx, module.Type, difficulty, session.SeenScenarioIDs)

	// Re-read the slot: the user may have reset or restarted while the
	// generator was running, in which case the result is stale and dropped.
	session, err = s.SessionRepo.FindOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	if session.SessionID != startedID || !session.IsActive {
		logger.WithUser(userID).Info("discarding scenario for stale session",
			zap.String("sessionID", startedID))
		return nil, engine.ErrInactiveSession
	}

	session.Scenario = scenario
	session.SeenScenarioIDs = append(session.SeenScenarioIDs, scenario.ID)
	session.ScenarioPending = false
	if err := s.SessionRepo.Save(session); err != nil {
		return nil, err
	}
	return scenario, nil
}

// AnswerResult is returned to the client after judging a scenario.
type AnswerResult struct {
	Correct     bool     `json:"correct"`
	GroundTruth bool     `json:"groundTruth"`
	ScoreDelta  int      `json:"scoreDelta"`
	Score       int      `json:"score"`
	RedFlags    []string `json:"redFlags,omitempty"`
	Explanation string   `json:"explanation"`
}

// SubmitAnswer compares the learner's boolean verdict against the current
// scenario's ground truth, applies the score delta and records the exchange
// in the transcript.
func (s *SessionService) SubmitAnswer(ctx context.Context, userID uint, verdict bool) (*AnswerResult, error) {
	session, err := s.SessionRepo.FindOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive {
		return nil, engine.ErrInactiveSession
	}
	if session.Scenario == nil {
		return nil, util.ErrNoActiveScenario
	}

	scenario := session.Scenario
	correct := verdict == scenario.GroundTruth()

	delta := s.Training.CorrectAnswerPoints
	if !correct {
		delta = -s.Training.WrongAnswerPenalty
	}

	if _, err := s.Engine.AddMessage(session, model.RoleUser, "Verdict: "+strconv.FormatBool(verdict), nil); err != nil {
		return nil, err
	}

	score, err := s.Engine.UpdateScore(session, delta)
	if err != nil {
		return nil, err
	}
	if correct {
		session.CorrectCount++
	}

	meta := &model.MessageMetadata{IsAttack: scenario.GroundTruth()}
	if flags := scenario.RedFlags(); !correct && len(flags) > 0 {
		meta.RedFlagTriggered = flags[0]
	}
	if _, err := s.Engine.AddMessage(session, model.RoleAssistant, scenario.Explanation(), meta); err != nil {
		return nil, err
	}

	// The scenario is consumed; NextScenario provisions the following one.
	session.Scenario = nil
	if err := s.SessionRepo.Save(session); err != nil {
		return nil, err
	}

	return &AnswerResult{
		Correct:     correct,
		GroundTruth: scenario.GroundTruth(),
		ScoreDelta:  delta,
		Score:       score,
		RedFlags:    scenario.RedFlags(),
		Explanation: scenario.Explanation(),
	}, nil
}

// EndOutcome bundles everything the results view needs.
type EndOutcome struct {
	Feedback  *model.SessionFeedback `json:"feedback"`
	Progress  *model.UserProgress    `json:"progress"`
	NewBadges []model.Badge          `json:"newBadges,omitempty"`
}

// End closes the attempt, builds the feedback summary and applies it to the
// durable progression state.
func (s *SessionService) End(ctx context.Context, userID uint) (*EndOutcome, error) {
	session, err := s.SessionRepo.FindOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive {
		return nil, engine.ErrInactiveSession
	}

	module, err := s.Catalog.Module(session.ModuleID)
	if err != nil {
		return nil, err
	}

	passed := session.Score >= module.RequiredScore
	xp := session.Score
	if passed {
		xp += s.Training.PassBonusXP
	}

	feedback := &model.SessionFeedback{
		Score:           session.Score,
		Passed:          passed,
		CorrectCount:    session.CorrectCount,
		TotalScenarios:  module.TotalScenarios,
		XPEarned:        xp,
		DurationSeconds: int(s.Engine.Now().Sub(session.StartTime).Seconds()),
	}
	if passed {
		feedback.Strengths = append(feedback.Strengths,
			fmt.Sprintf("Cleared %s at %d%%", module.Title, session.Score))
	} else {
		feedback.Weaknesses = append(feedback.Weaknesses,
			fmt.Sprintf("Needs %d%% on %s, scored %d%%", module.RequiredScore, module.Title, session.Score))
	}

	if err := s.Engine.End(session, feedback); err != nil {
		return nil, err
	}
	if err := s.SessionRepo.Save(session); err != nil {
		return nil, err
	}

	progress, newBadges, err := s.Progression.ApplySessionResult(ctx, userID, SessionResult{
		ModuleID:       session.ModuleID,
		Score:          session.Score,
		Passed:         passed,
		XPEarned:       xp,
		CorrectCount:   session.CorrectCount,
		TotalScenarios: module.TotalScenarios,
	})
	if err != nil {
		return nil, err
	}

	monitoring.SessionsCompleted.WithLabelValues(string(module.Type), strconv.FormatBool(passed)).Inc()
	logger.WithUser(userID).Info("training session completed",
		zap.String("moduleID", session.ModuleID),
		zap.Int("score", session.Score),
		zap.Bool("passed", passed),
		zap.Int("newBadges", len(newBadges)))

	return &EndOutcome{Feedback: feedback, Progress: progress, NewBadges: newBadges}, nil
}

// Reset empties the slot unconditionally.
func (s *SessionService) Reset(ctx context.Context, userID uint) error {
	session, err := s.SessionRepo.FindOrCreateByUser(userID)
	if err != nil {
		return err
	}

	s.Engine.Reset(session)
	return s.SessionRepo.Save(session)
}
