package service

import (
	"context"
	"errors"
	"secaware_backend/internal/model"
	"secaware_backend/internal/repository"
	"secaware_backend/internal/util"

	"gorm.io/gorm"
)

// Catalog collaborator seams, satisfied by the concrete repository types.
// Tests substitute in-memory fakes.
type moduleStore interface {
	FindAll() ([]model.TrainingModule, error)
	FindByModuleID(moduleID string) (*model.TrainingModule, error)
}

type progressStore interface {
	FindOrCreateByUser(ctx context.Context, userID uint) (*model.UserProgress, error)
}

type activeSessionFinder interface {
	FindActiveByUser(userID uint) (*model.TrainingSession, error)
}

// CatalogService reads the training catalog and overlays one user's progress
// to derive each module's status. The catalog rows themselves stay read-only.
type CatalogService struct {
	ModuleRepo   moduleStore
	ProgressRepo progressStore
	SessionRepo  activeSessionFinder
}

func NewCatalogService(moduleRepo *repository.ModuleRepository, progressRepo *repository.ProgressRepository, sessionRepo *repository.SessionRepository) *CatalogService {
	return &CatalogService{ModuleRepo: moduleRepo, ProgressRepo: progressRepo, SessionRepo: sessionRepo}
}

// ListForUser returns every catalog module with the user's derived status.
func (s *CatalogService) ListForUser(ctx context.Context, userID uint) ([]model.ModuleView, error) {
	modules, err := s.ModuleRepo.FindAll()
	if err != nil {
		return nil, err
	}

	progress, err := s.ProgressRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	active, err := s.SessionRepo.FindActiveByUser(userID)
	if err != nil {
		return nil, err
	}

	views := make([]model.ModuleView, len(modules))
	for i, m := range modules {
		views[i] = s.overlay(m, progress, active)
	}
	return views, nil
}

// GetForUser returns one module with the user's derived status.
func (s *CatalogService) GetForUser(ctx context.Context, userID uint, moduleID string) (*model.ModuleView, error) {
	module, err := s.ModuleRepo.FindByModuleID(moduleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModuleNotFound
	}
	if err != nil {
		return nil, err
	}

	progress, err := s.ProgressRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	active, err := s.SessionRepo.FindActiveByUser(userID)
	if err != nil {
		return nil, err
	}

	view := s.overlay(*module, progress, active)
	return &view, nil
}

// Module looks up a catalog entry by its stable id.
func (s *CatalogService) Module(moduleID string) (*model.TrainingModule, error) {
	module, err := s.ModuleRepo.FindByModuleID(moduleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModuleNotFound
	}
	return module, err
}

// CheckStartable validates that a module exists and is not locked for the
// user. Returns the module so the session layer does not look it up twice.
func (s *CatalogService) CheckStartable(ctx context.Context, userID uint, moduleID string) (*model.TrainingModule, error) {
	module, err := s.ModuleRepo.FindByModuleID(moduleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModuleNotFound
	}
	if err != nil {
		return nil, err
	}

	progress, err := s.ProgressRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.locked(*module, progress) {
		return nil, util.ErrModuleLocked
	}
	return module, nil
}

func (s *CatalogService) locked(m model.TrainingModule, p *model.UserProgress) bool {
	for _, prereq := range m.Prerequisites {
		mp, ok := p.ModuleProgress[prereq]
		if !ok || mp.Status != model.StatusCompleted {
			return true
		}
	}
	return false
}

func (s *CatalogService) overlay(m model.TrainingModule, p *model.UserProgress, active *model.TrainingSession) model.ModuleView {
	view := model.ModuleView{TrainingModule: m, Status: model.StatusAvailable}

	if s.locked(m, p) {
		view.Status = model.StatusLocked
	}

	if mp, ok := p.ModuleProgress[m.ModuleID]; ok {
		best := mp.BestScore
		view.BestScore = &best
		view.Attempts = mp.Attempts
		// An attempted module is never reported locked; the prerequisite
		// gate only applies before the first start.
		view.Status = mp.Status
		if mp.Status == model.StatusCompleted {
			view.CompletedScenarios = m.TotalScenarios
		}
	}

	// A running attempt shows the module as in-progress immediately, not
	// only after the attempt ends. Completed status is sticky.
	if active != nil && active.ModuleID == m.ModuleID && view.Status != model.StatusCompleted {
		view.Status = model.StatusInProgress
		view.CompletedScenarios = active.ScenarioIndex
	}
	return view
}
