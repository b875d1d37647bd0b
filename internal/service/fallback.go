package service

import (
	"errors"
	"secaware_backend/internal/model"
)

var errEmptyScenario = errors.New("scenario payload missing required fields")

// FallbackScenario returns a canned scenario of the requested type, used
// whenever generation fails. Ids are fresh per call so the session's
// duplicate tracking still works.
func FallbackScenario(moduleType model.ModuleType, difficulty model.Difficulty) *model.Scenario {
	scenario := &model.Scenario{
		ID:         model.GenerateUUID(),
		Type:       moduleType,
		Difficulty: difficulty,
	}

	switch moduleType {
	case model.SocialEngineering:
		scenario.SocialEngineering = &model.SocialEngineeringScenario{
			Persona:   "Caller claiming to be from IT support",
			Objective: "Obtain your login credentials",
			Opening:   "Hi, this is Alex from IT. We detected a sync problem with your account and I need your password to fix it before you lose access.",
			IsAttack:  true,
			RedFlags: []string{
				"unsolicited call",
				"asks for a password",
				"manufactured urgency",
			},
			Explanation: "No legitimate IT team asks for your password. Urgency plus a credential request is the classic vishing pattern; hang up and call IT through the published number.",
		}
	case model.IncidentResponse:
		scenario.IncidentResponse = &model.IncidentResponseScenario{
			Incident: "You notice your laptop's fan spinning and a window flashing a ransom note demanding payment.",
			Timeline: []string{
				"09:02 ransom note appears",
				"09:03 files on the desktop show a new extension",
			},
			ProposedAction:  "Pay the ransom quickly so work can resume before anyone notices.",
			IsCorrectAction: false,
			Explanation:     "Never pay or hide an incident. Disconnect from the network, leave the machine powered on for forensics and report to the security team immediately.",
		}
	case model.PasswordSecurity:
		scenario.PasswordSecurity = &model.PasswordSecurityScenario{
			Prompt:   "A colleague suggests this approach for passwords.",
			Sample:   "Use 'Summer2026!' everywhere - it has uppercase, a number and a symbol, so it's strong.",
			IsSecure: false,
			RedFlags: []string{
				"password reuse across accounts",
				"predictable season-plus-year pattern",
			},
			Explanation: "Complexity rules do not save a guessable, reused password. Season+year patterns are in every cracking wordlist; use a unique passphrase per account with a password manager.",
		}
	default:
		scenario.Type = model.Phishing
		scenario.Phishing = &model.PhishingScenario{
			Channel: model.ChannelEmail,
			Sender:  "security-alert@paypa1-support.com",
			Subject: "Urgent: Your account will be suspended",
			Body: "Dear Customer,\n\nWe detected unusual activity on your account. " +
				"You must verify your identity within 24 hours or your account will be permanently suspended. " +
				"Click here to verify: http://paypa1-support.com/verify\n\nPayPal Security Team",
			URL:        "http://paypa1-support.com/verify",
			IsPhishing: true,
			RedFlags: []string{
				"lookalike domain (paypa1 with the digit 1)",
				"generic greeting",
				"urgency and threat of suspension",
				"link to a non-official domain",
			},
			Explanation: "The sender domain spoofs PayPal with a digit substitution, the greeting is generic and the deadline pressures you into clicking. Real providers never threaten suspension over email links.",
		}
	}

	return scenario
}
