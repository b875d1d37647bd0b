package service

import (
	"context"
	"encoding/json"
	"secaware_backend/internal/model"
	"secaware_backend/pkg/logger"
	"secaware_backend/pkg/monitoring"
	"strings"

	"go.uber.org/zap"
)

// ScenarioService produces training scenarios. Generation is delegated to the
// AI API; any failure - transport, status, or a payload that does not parse -
// is logged and replaced by a static fallback so a session never crashes on
// the generator.
type ScenarioService struct {
	AI *AIService
}

func NewScenarioService(ai *AIService) *ScenarioService {
	return &ScenarioService{AI: ai}
}

// GenerateScenario returns a scenario of the requested type. The returned
// scenario always satisfies Valid(); callers cannot tell an AI-produced
// scenario from a fallback one.
func (s *ScenarioService) GenerateScenario(ctx context.Context, moduleType model.ModuleType, difficulty model.Difficulty, excludeIDs []string) *model.Scenario {
	messages := BuildScenarioPrompt(moduleType, difficulty, excludeIDs)

	raw, err := s.AI.Chat(ctx, messages)
	if err != nil {
		logger.Log.Warn("scenario generation failed, serving fallback",
			zap.String("moduleType", string(moduleType)),
			zap.Error(err))
		monitoring.ScenariosGenerated.WithLabelValues(string(moduleType), "fallback").Inc()
		return FallbackScenario(moduleType, difficulty)
	}

	scenario, err := parseScenario(raw, moduleType, difficulty)
	if err != nil {
		logger.Log.Warn("scenario payload did not parse, serving fallback",
			zap.String("moduleType", string(moduleType)),
			zap.Error(err))
		monitoring.ScenariosGenerated.WithLabelValues(string(moduleType), "fallback").Inc()
		return FallbackScenario(moduleType, difficulty)
	}

	monitoring.ScenariosGenerated.WithLabelValues(string(moduleType), "ai").Inc()
	return scenario
}

// parseScenario decodes the model's JSON into the variant for moduleType.
// Models sometimes wrap JSON in code fences despite instructions; those are
// stripped before decoding.
func parseScenario(raw string, moduleType model.ModuleType, difficulty model.Difficulty) (*model.Scenario, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	scenario := &model.Scenario{
		ID:         model.GenerateUUID(),
		Type:       moduleType,
		Difficulty: difficulty,
	}

	var err error
	switch moduleType {
	case model.Phishing:
		var v model.PhishingScenario
		err = json.Unmarshal([]byte(cleaned), &v)
		scenario.Phishing = &v
	case model.SocialEngineering:
		var v model.SocialEngineeringScenario
		err = json.Unmarshal([]byte(cleaned), &v)
		scenario.SocialEngineering = &v
	case model.IncidentResponse:
		var v model.IncidentResponseScenario
		err = json.Unmarshal([]byte(cleaned), &v)
		scenario.IncidentResponse = &v
	case model.PasswordSecurity:
		var v model.PasswordSecurityScenario
		err = json.Unmarshal([]byte(cleaned), &v)
		scenario.PasswordSecurity = &v
	}
	if err != nil {
		return nil, err
	}
	if !scenario.Valid() {
		return nil, errEmptyScenario
	}
	return scenario, nil
}
