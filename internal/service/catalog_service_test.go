package service

import (
	"context"
	"testing"

	"secaware_backend/internal/model"
	"secaware_backend/internal/util"
)

type fakeModuleStore struct {
	modules []model.TrainingModule
}

func (f *fakeModuleStore) FindAll() ([]model.TrainingModule, error) {
	return f.modules, nil
}

func (f *fakeModuleStore) FindByModuleID(moduleID string) (*model.TrainingModule, error) {
	for i := range f.modules {
		if f.modules[i].ModuleID == moduleID {
			return &f.modules[i], nil
		}
	}
	return nil, util.ErrModuleNotFound
}

type fakeProgressStore struct {
	progress *model.UserProgress
}

func (f *fakeProgressStore) FindOrCreateByUser(ctx context.Context, userID uint) (*model.UserProgress, error) {
	return f.progress, nil
}

type fakeActiveSession struct {
	session *model.TrainingSession
}

func (f *fakeActiveSession) FindActiveByUser(userID uint) (*model.TrainingSession, error) {
	return f.session, nil
}

func catalogFixture() *fakeModuleStore {
	return &fakeModuleStore{modules: []model.TrainingModule{
		{ModuleID: "phishing-basics", Type: model.Phishing, TotalScenarios: 5, RequiredScore: 70},
		{ModuleID: "phishing-advanced", Type: model.Phishing, TotalScenarios: 5, RequiredScore: 80, Prerequisites: []string{"phishing-basics"}},
	}}
}

func freshProgress() *model.UserProgress {
	return &model.UserProgress{UserID: 1, Level: 1, ModuleProgress: map[string]model.ModuleProgress{}}
}

func newTestCatalogService(modules *fakeModuleStore, progress *fakeProgressStore, active *fakeActiveSession) *CatalogService {
	return &CatalogService{ModuleRepo: modules, ProgressRepo: progress, SessionRepo: active}
}

func viewByID(t *testing.T, views []model.ModuleView, moduleID string) model.ModuleView {
	t.Helper()
	for _, v := range views {
		if v.ModuleID == moduleID {
			return v
		}
	}
	t.Fatalf("module %s missing from catalog view", moduleID)
	return model.ModuleView{}
}

func TestListForUserReportsActiveSessionInProgress(t *testing.T) {
	active := &fakeActiveSession{session: &model.TrainingSession{
		UserID:        1,
		SessionID:     "sess-1",
		ModuleID:      "phishing-basics",
		IsActive:      true,
		ScenarioIndex: 2,
	}}
	svc := newTestCatalogService(catalogFixture(), &fakeProgressStore{progress: freshProgress()}, active)

	views, err := svc.ListForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}

	basics := viewByID(t, views, "phishing-basics")
	if basics.Status != model.StatusInProgress {
		t.Fatalf("module with running attempt reported %q, want %q", basics.Status, model.StatusInProgress)
	}
	if basics.CompletedScenarios != 2 {
		t.Errorf("CompletedScenarios = %d, want 2", basics.CompletedScenarios)
	}

	advanced := viewByID(t, views, "phishing-advanced")
	if advanced.Status != model.StatusLocked {
		t.Errorf("unrelated module status = %q, want %q", advanced.Status, model.StatusLocked)
	}
}

func TestListForUserWithoutSessionDerivesFromProgress(t *testing.T) {
	progress := freshProgress()
	progress.ModuleProgress["phishing-basics"] = model.ModuleProgress{
		BestScore: 85, Status: model.StatusCompleted, Attempts: 2, LastAttemptDate: "2026-08-30",
	}
	svc := newTestCatalogService(catalogFixture(), &fakeProgressStore{progress: progress}, &fakeActiveSession{})

	views, err := svc.ListForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}

	basics := viewByID(t, views, "phishing-basics")
	if basics.Status != model.StatusCompleted {
		t.Errorf("status = %q, want %q", basics.Status, model.StatusCompleted)
	}
	if basics.BestScore == nil || *basics.BestScore != 85 {
		t.Errorf("BestScore = %v, want 85", basics.BestScore)
	}

	advanced := viewByID(t, views, "phishing-advanced")
	if advanced.Status != model.StatusAvailable {
		t.Errorf("unlocked module status = %q, want %q", advanced.Status, model.StatusAvailable)
	}
}

func TestOverlayKeepsCompletedDuringRetake(t *testing.T) {
	progress := freshProgress()
	progress.ModuleProgress["phishing-basics"] = model.ModuleProgress{
		BestScore: 90, Status: model.StatusCompleted, Attempts: 1, LastAttemptDate: "2026-08-29",
	}
	active := &fakeActiveSession{session: &model.TrainingSession{
		UserID: 1, ModuleID: "phishing-basics", IsActive: true,
	}}
	svc := newTestCatalogService(catalogFixture(), &fakeProgressStore{progress: progress}, active)

	view, err := svc.GetForUser(context.Background(), 1, "phishing-basics")
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if view.Status != model.StatusCompleted {
		t.Errorf("retake of completed module reported %q, want %q", view.Status, model.StatusCompleted)
	}
}

func TestGetForUserActiveSessionInProgress(t *testing.T) {
	active := &fakeActiveSession{session: &model.TrainingSession{
		UserID: 1, ModuleID: "phishing-basics", IsActive: true, ScenarioIndex: 1,
	}}
	svc := newTestCatalogService(catalogFixture(), &fakeProgressStore{progress: freshProgress()}, active)

	view, err := svc.GetForUser(context.Background(), 1, "phishing-basics")
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if view.Status != model.StatusInProgress {
		t.Errorf("status = %q, want %q", view.Status, model.StatusInProgress)
	}
}
