// Package engine holds the training-session and progression state machines.
// Both operate on plain model structs with an injected clock so they can be
// driven from tests without a database.
package engine

import (
	"secaware_backend/internal/model"
	"time"
)

const (
	minScore = 0
	maxScore = 100
)

// SessionEngine mutates one owned TrainingSession slot. All operations are
// invoked sequentially per user; the service layer serializes access.
type SessionEngine struct {
	Now func() time.Time
}

func NewSessionEngine() *SessionEngine {
	return &SessionEngine{Now: time.Now}
}

// Start claims the slot for a new attempt. The caller has already validated
// the module id; on success every session field is rewritten, so a failed
// validation upstream leaves the slot untouched.
func (e *SessionEngine) Start(s *model.TrainingSession, moduleID string) {
	s.SessionID = model.GenerateUUID()
	s.ModuleID = moduleID
	s.IsActive = true
	s.StartTime = e.Now()
	s.ScenarioIndex = 0
	s.Score = 0
	s.CorrectCount = 0
	s.Messages = nil
	s.Feedback = nil
	s.Scenario = nil
	s.SeenScenarioIDs = nil
	s.ScenarioPending = false
}

// AddMessage appends an immutable transcript entry. There is no upper bound
// on transcript length; display truncation is the client's concern.
func (e *SessionEngine) AddMessage(s *model.TrainingSession, role model.MessageRole, content string, meta *model.MessageMetadata) (model.ChatMessage, error) {
	if !s.IsActive {
		return model.ChatMessage{}, ErrInactiveSession
	}

	msg := model.ChatMessage{
		ID:        model.GenerateUUID(),
		Role:      role,
		Content:   content,
		Timestamp: e.Now(),
		Metadata:  meta,
	}
	s.Messages = append(s.Messages, msg)
	return msg, nil
}

// UpdateScore applies a delta and clamps silently to [0,100]. Negative deltas
// are the wrong-answer penalty path.
func (e *SessionEngine) UpdateScore(s *model.TrainingSession, delta int) (int, error) {
	if !s.IsActive {
		return 0, ErrInactiveSession
	}

	score := s.Score + delta
	if score < minScore {
		score = minScore
	}
	if score > maxScore {
		score = maxScore
	}
	s.Score = score
	return score, nil
}

// NextScenario advances the index and clears the transcript. The transcript
// is per scenario; the running score is not reset.
func (e *SessionEngine) NextScenario(s *model.TrainingSession) error {
	if !s.IsActive {
		return ErrInactiveSession
	}

	s.ScenarioIndex++
	s.Messages = nil
	s.Scenario = nil
	return nil
}

// End deactivates the slot and stores the feedback verbatim. Score and
// messages are left in place for the results view; Start or Reset reclaims
// the slot.
func (e *SessionEngine) End(s *model.TrainingSession, feedback *model.SessionFeedback) error {
	if !s.IsActive {
		return ErrInactiveSession
	}

	s.IsActive = false
	s.Feedback = feedback
	s.ScenarioPending = false
	return nil
}

// Reset returns every field to its empty state regardless of activity.
func (e *SessionEngine) Reset(s *model.TrainingSession) {
	s.SessionID = ""
	s.ModuleID = ""
	s.IsActive = false
	s.StartTime = time.Time{}
	s.ScenarioIndex = 0
	s.Score = 0
	s.CorrectCount = 0
	s.Messages = nil
	s.Feedback = nil
	s.Scenario = nil
	s.SeenScenarioIDs = nil
	s.ScenarioPending = false
}
