package service

import (
	"fmt"
	"secaware_backend/internal/model"
	"strings"
)

// CoachMode selects the system prompt for the conversational coach. It is a
// closed set: ParseCoachMode maps anything unknown to ModeCoaching, so a new
// client mode string degrades to general coaching instead of failing.
type CoachMode int

const (
	ModeCoaching CoachMode = iota
	ModePhishing
	ModeSocialEngineering
	ModeIncidentResponse
)

func ParseCoachMode(s string) CoachMode {
	switch s {
	case "phishing":
		return ModePhishing
	case "socialEngineering":
		return ModeSocialEngineering
	case "incidentResponse":
		return ModeIncidentResponse
	default:
		return ModeCoaching
	}
}

func (m CoachMode) String() string {
	switch m {
	case ModePhishing:
		return "phishing"
	case ModeSocialEngineering:
		return "socialEngineering"
	case ModeIncidentResponse:
		return "incidentResponse"
	default:
		return "coaching"
	}
}

const coachingSystemPrompt = `You are a friendly cybersecurity-awareness coach.
Answer the learner's questions about staying safe online in plain language.
Keep answers short and practical. Refuse requests for help committing fraud,
writing malware, or bypassing security controls, and steer the conversation
back to defensive awareness topics.`

const phishingSystemPrompt = `You are a cybersecurity trainer running a phishing-recognition drill.
Stay in the role of a coach reviewing suspicious messages with the learner.
Point out concrete red flags (sender domain, urgency, mismatched links,
attachments, requests for credentials) and praise correct observations.
Never produce a real working phishing kit or real malicious links.`

const socialEngineeringSystemPrompt = `You are a cybersecurity trainer running a social-engineering awareness drill.
Discuss pretexting, impersonation, tailgating and phone scams from the
defender's point of view. Help the learner rehearse polite refusal and
verification scripts. Do not coach the learner on manipulating real people.`

const incidentResponseSystemPrompt = `You are a cybersecurity trainer coaching incident first response.
Walk the learner through triage: preserve evidence, contain, escalate to the
security team, communicate. Ask what they would do next and correct missteps
with the reasoning behind the right order of operations.`

func (m CoachMode) SystemPrompt() string {
	switch m {
	case ModePhishing:
		return phishingSystemPrompt
	case ModeSocialEngineering:
		return socialEngineeringSystemPrompt
	case ModeIncidentResponse:
		return incidentResponseSystemPrompt
	default:
		return coachingSystemPrompt
	}
}

const scenarioJSONGuideline = `You must output ONLY a single JSON object, no markdown fences, no commentary.
Use strict JSON: double-quoted keys and strings, no trailing commas.`

// BuildScenarioPrompt produces the generation request for one scenario of the
// given type and difficulty. previousIDs are titles/ids the learner has seen
// this session, to be avoided.
func BuildScenarioPrompt(moduleType model.ModuleType, difficulty model.Difficulty, previousIDs []string) []AIChatMessage {
	var schema string
	switch moduleType {
	case model.Phishing:
		schema = `{"channel": "email"|"sms"|"url", "sender": string, "subject": string, "body": string, "url": string, "isPhishing": boolean, "redFlags": [string], "explanation": string}
Roughly half of the scenarios you produce should be legitimate messages (isPhishing=false) so the learner cannot guess.`
	case model.SocialEngineering:
		schema = `{"persona": string, "objective": string, "opening": string, "isAttack": boolean, "redFlags": [string], "explanation": string}
The opening is the first thing the caller/visitor says. Mix genuine requests (isAttack=false) with manipulation attempts.`
	case model.IncidentResponse:
		schema = `{"incident": string, "timeline": [string], "proposedAction": string, "isCorrectAction": boolean, "explanation": string}
The proposedAction is a response step the learner must judge. Mix correct and incorrect actions.`
	case model.PasswordSecurity:
		schema = `{"prompt": string, "sample": string, "isSecure": boolean, "redFlags": [string], "explanation": string}
The sample is a password practice or credential-handling habit the learner must judge.`
	}

	system := fmt.Sprintf(`You generate one cybersecurity-awareness training scenario at a time.
Audience difficulty: %s. Scenario type: %s.
Output a JSON object with exactly these fields:
%s
The explanation teaches why the verdict is what it is, citing the red flags.
%s`, difficulty, moduleType, schema, scenarioJSONGuideline)

	user := "Generate the next scenario."
	if len(previousIDs) > 0 {
		user = fmt.Sprintf("Generate the next scenario. Avoid repeating these already used ones: %s.", strings.Join(previousIDs, ", "))
	}

	return []AIChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}
