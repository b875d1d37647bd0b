package service

import (
	"context"
	"errors"
	"testing"

	"secaware_backend/internal/config"
	"secaware_backend/internal/engine"
	"secaware_backend/internal/model"
	"secaware_backend/internal/util"
)

type fakeSessionStore struct {
	session model.TrainingSession
	saves   int
}

func (f *fakeSessionStore) FindOrCreateByUser(userID uint) (*model.TrainingSession, error) {
	s := f.session
	return &s, nil
}

func (f *fakeSessionStore) Save(session *model.TrainingSession) error {
	f.session = *session
	f.saves++
	return nil
}

type fakeCatalog struct {
	modules map[string]*model.TrainingModule
	locked  map[string]bool
}

func (f *fakeCatalog) Module(moduleID string) (*model.TrainingModule, error) {
	m, ok := f.modules[moduleID]
	if !ok {
		return nil, util.ErrModuleNotFound
	}
	return m, nil
}

func (f *fakeCatalog) CheckStartable(ctx context.Context, userID uint, moduleID string) (*model.TrainingModule, error) {
	m, err := f.Module(moduleID)
	if err != nil {
		return nil, err
	}
	if f.locked[moduleID] {
		return nil, util.ErrModuleLocked
	}
	return m, nil
}

type fakeGenerator struct {
	scenario *model.Scenario
	// onGenerate runs while the "network call" is in flight, letting a test
	// change session state mid-generation.
	onGenerate func()
	calls      int
	lastSeen   []string
}

func (f *fakeGenerator) GenerateScenario(ctx context.Context, moduleType model.ModuleType, difficulty model.Difficulty, excludeIDs []string) *model.Scenario {
	f.calls++
	f.lastSeen = excludeIDs
	if f.onGenerate != nil {
		f.onGenerate()
	}
	return f.scenario
}

type fakeProgression struct {
	applied []SessionResult
}

func (f *fakeProgression) ApplySessionResult(ctx context.Context, userID uint, result SessionResult) (*model.UserProgress, []model.Badge, error) {
	f.applied = append(f.applied, result)
	return &model.UserProgress{UserID: userID, Level: 1}, nil, nil
}

func phishingFixture() *model.Scenario {
	return &model.Scenario{
		ID:   "scn-1",
		Type: model.Phishing,
		Phishing: &model.PhishingScenario{
			Channel:     "email",
			Sender:      "alerts@bank-secure-login.com",
			Body:        "Verify your account now.",
			IsPhishing:  true,
			RedFlags:    []string{"urgency"},
			Explanation: "Lookalike domain asking for credentials.",
		},
	}
}

func newTestSessionService(store *fakeSessionStore, catalog *fakeCatalog, gen *fakeGenerator, prog *fakeProgression) *SessionService {
	return &SessionService{
		Engine:      engine.NewSessionEngine(),
		SessionRepo: store,
		Catalog:     catalog,
		Scenarios:   gen,
		Progression: prog,
		Training:    config.TrainingConfig{CorrectAnswerPoints: 20, WrongAnswerPenalty: 10, PassBonusXP: 25},
	}
}

func defaultCatalog() *fakeCatalog {
	return &fakeCatalog{
		modules: map[string]*model.TrainingModule{
			"phishing-basics": {
				ModuleID:       "phishing-basics",
				Type:           model.Phishing,
				Title:          "Phishing Basics",
				Difficulty:     model.Beginner,
				TotalScenarios: 5,
				RequiredScore:  70,
			},
			"phishing-advanced": {
				ModuleID:      "phishing-advanced",
				Type:          model.Phishing,
				Difficulty:    model.Advanced,
				RequiredScore: 80,
			},
		},
		locked: map[string]bool{"phishing-advanced": true},
	}
}

func TestStartUnknownModuleLeavesSlotUntouched(t *testing.T) {
	store := &fakeSessionStore{}
	svc := newTestSessionService(store, defaultCatalog(), &fakeGenerator{}, &fakeProgression{})

	// Establish a running session first.
	if _, err := svc.Start(context.Background(), 1, "phishing-basics"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	before := store.session
	savesBefore := store.saves

	_, err := svc.Start(context.Background(), 1, "does-not-exist")
	if !errors.Is(err, util.ErrModuleNotFound) {
		t.Fatalf("err = %v, want ErrModuleNotFound", err)
	}

	if store.saves != savesBefore {
		t.Error("failed start persisted something")
	}
	if store.session.SessionID != before.SessionID || !store.session.IsActive {
		t.Error("failed start mutated the existing session")
	}
	if store.session.ModuleID != "phishing-basics" {
		t.Errorf("ModuleID = %s, want phishing-basics", store.session.ModuleID)
	}
}

func TestStartLockedModuleLeavesSlotUntouched(t *testing.T) {
	store := &fakeSessionStore{}
	svc := newTestSessionService(store, defaultCatalog(), &fakeGenerator{}, &fakeProgression{})

	if _, err := svc.Start(context.Background(), 1, "phishing-basics"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	before := store.session

	_, err := svc.Start(context.Background(), 1, "phishing-advanced")
	if !errors.Is(err, util.ErrModuleLocked) {
		t.Fatalf("err = %v, want ErrModuleLocked", err)
	}
	if store.session.SessionID != before.SessionID {
		t.Error("locked start replaced the session")
	}
}

func TestLoadScenarioMarksSeenAndReturnsSame(t *testing.T) {
	store := &fakeSessionStore{}
	gen := &fakeGenerator{scenario: phishingFixture()}
	svc := newTestSessionService(store, defaultCatalog(), gen, &fakeProgression{})

	if _, err := svc.Start(context.Background(), 1, "phishing-basics"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	first, err := svc.LoadScenario(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if first.ID != "scn-1" {
		t.Fatalf("ID = %s", first.ID)
	}
	if len(store.session.SeenScenarioIDs) != 1 || store.session.SeenScenarioIDs[0] != "scn-1" {
		t.Errorf("SeenScenarioIDs = %v", store.session.SeenScenarioIDs)
	}

	// A second load returns the stored scenario without another generation.
	second, err := svc.LoadScenario(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("LoadScenario again: %v", err)
	}
	if second.ID != first.ID {
		t.Error("second load produced a different scenario")
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
}

func TestLoadScenarioRejectsWhilePending(t *testing.T) {
	store := &fakeSessionStore{}
	gen := &fakeGenerator{scenario: phishingFixture()}
	svc := newTestSessionService(store, defaultCatalog(), gen, &fakeProgression{})

	if _, err := svc.Start(context.Background(), 1, "phishing-basics"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var pendingErr error
	gen.onGenerate = func() {
		// A request arriving while generation is in flight must be refused.
		_, pendingErr = svc.LoadScenario(context.Background(), 1, "")
	}

	if _, err := svc.LoadScenario(context.Background(), 1, ""); err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if !errors.Is(pendingErr, util.ErrGenerationPending) {
		t.Fatalf("concurrent load err = %v, want ErrGenerationPending", pendingErr)
	}
}

func TestLoadScenarioDiscardsStaleGeneration(t *testing.T) {
	store := &fakeSessionStore{}
	gen := &fakeGenerator{scenario: phishingFixture()}
	svc := newTestSessionService(store, defaultCatalog(), gen, &fakeProgression{})

	if _, err := svc.Start(context.Background(), 1, "phishing-basics"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	gen.onGenerate = func() {
		// The user restarts mid-generation; the in-flight result is stale.
		if _, err := svc.Start(context.Background(), 1, "phishing-basics"); err != nil {
			t.Fatalf("restart: %v", err)
		}
	}

	_, err := svc.LoadScenario(context.Background(), 1, "")
	if !errors.Is(err, engine.ErrInactiveSession) {
		t.Fatalf("err = %v, want ErrInactiveSession", err)
	}
	if store.session.Scenario != nil {
		t.Error("stale scenario was attached to the new session")
	}
}

func TestSubmitAnswerScoresAndConsumesScenario(t *testing.T) {
	store := &fakeSessionStore{}
	gen := &fakeGenerator{scenario: phishingFixture()}
	svc := newTestSessionService(store, defaultCatalog(), gen, &fakeProgression{})

	if _, err := svc.Start(context.Background(), 1, "phishing-basics"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.LoadScenario(context.Background(), 1, ""); err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}

	result, err := svc.SubmitAnswer(context.Background(), 1, true)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !result.Correct || result.ScoreDelta != 20 || result.Score != 20 {
		t.Errorf("result = %+v", result)
	}
	if store.session.CorrectCount != 1 {
		t.Errorf("CorrectCount = %d", store.session.CorrectCount)
	}
	if store.session.Scenario != nil {
		t.Error("scenario not consumed after answering")
	}
	// Transcript holds the verdict and the explanation.
	if len(store.session.Messages) != 2 {
		t.Fatalf("transcript has %d messages", len(store.session.Messages))
	}
	if store.session.Messages[1].Content != "Lookalike domain asking for credentials." {
		t.Errorf("explanation message = %q", store.session.Messages[1].Content)
	}

	// Answering again without a scenario loaded fails cleanly.
	if _, err := svc.SubmitAnswer(context.Background(), 1, true); !errors.Is(err, util.ErrNoActiveScenario) {
		t.Fatalf("second answer err = %v, want ErrNoActiveScenario", err)
	}
}

func TestSubmitAnswerWrongVerdictPenalizes(t *testing.T) {
	store := &fakeSessionStore{}
	gen := &fakeGenerator{scenario: phishingFixture()}
	svc := newTestSessionService(store, defaultCatalog(), gen, &fakeProgression{})

	if _, err := svc.Start(context.Background(), 1, "phishing-basics"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.LoadScenario(context.Background(), 1, ""); err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}

	result, err := svc.SubmitAnswer(context.Background(), 1, false)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if result.Correct {
		t.Error("wrong verdict reported correct")
	}
	if result.ScoreDelta != -10 {
		t.Errorf("ScoreDelta = %d, want -10", result.ScoreDelta)
	}
	// Already at zero, the penalty clamps instead of going negative.
	if result.Score != 0 {
		t.Errorf("Score = %d, want 0", result.Score)
	}
}

func TestEndAppliesResultToProgression(t *testing.T) {
	store := &fakeSessionStore{}
	gen := &fakeGenerator{scenario: phishingFixture()}
	prog := &fakeProgression{}
	svc := newTestSessionService(store, defaultCatalog(), gen, prog)

	if _, err := svc.Start(context.Background(), 1, "phishing-basics"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.UpdateScore(context.Background(), 1, 80); err != nil {
		t.Fatalf("UpdateScore: %v", err)
	}

	outcome, err := svc.End(context.Background(), 1)
	if err != nil {
		t.Fatalf("End: %v", err)
	}

	if !outcome.Feedback.Passed {
		t.Error("80 against a 70 requirement should pass")
	}
	if outcome.Feedback.XPEarned != 105 {
		t.Errorf("XPEarned = %d, want score 80 + bonus 25", outcome.Feedback.XPEarned)
	}
	if len(prog.applied) != 1 {
		t.Fatalf("progression applied %d times", len(prog.applied))
	}
	if prog.applied[0].ModuleID != "phishing-basics" || !prog.applied[0].Passed {
		t.Errorf("applied result = %+v", prog.applied[0])
	}
	if store.session.IsActive {
		t.Error("slot still active after End")
	}
	// Ending again must fail until the slot is restarted or reset.
	if _, err := svc.End(context.Background(), 1); !errors.Is(err, engine.ErrInactiveSession) {
		t.Fatalf("second End err = %v, want ErrInactiveSession", err)
	}
}
