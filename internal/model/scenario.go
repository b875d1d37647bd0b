package model

// Scenario is one generated training exercise. Exactly one of the variant
// fields is set, selected by Type; GroundTruth reads the variant's verdict so
// scoring never has to switch on the payload shape.
// swagger:model Scenario
type Scenario struct {
	ID                string                     `json:"id"`
	Type              ModuleType                 `json:"type"`
	Difficulty        Difficulty                 `json:"difficulty"`
	Phishing          *PhishingScenario          `json:"phishing,omitempty"`
	SocialEngineering *SocialEngineeringScenario `json:"socialEngineering,omitempty"`
	IncidentResponse  *IncidentResponseScenario  `json:"incidentResponse,omitempty"`
	PasswordSecurity  *PasswordSecurityScenario  `json:"passwordSecurity,omitempty"`
}

type PhishingChannel string

const (
	ChannelEmail PhishingChannel = "email"
	ChannelSMS   PhishingChannel = "sms"
	ChannelURL   PhishingChannel = "url"
)

type PhishingScenario struct {
	Channel     PhishingChannel `json:"channel"`
	Sender      string          `json:"sender,omitempty"`
	Subject     string          `json:"subject,omitempty"`
	Body        string          `json:"body"`
	URL         string          `json:"url,omitempty"`
	IsPhishing  bool            `json:"isPhishing"`
	RedFlags    []string        `json:"redFlags"`
	Explanation string          `json:"explanation"`
}

type SocialEngineeringScenario struct {
	Persona     string   `json:"persona"`
	Objective   string   `json:"objective"`
	Opening     string   `json:"opening"`
	IsAttack    bool     `json:"isAttack"`
	RedFlags    []string `json:"redFlags"`
	Explanation string   `json:"explanation"`
}

type IncidentResponseScenario struct {
	Incident        string   `json:"incident"`
	Timeline        []string `json:"timeline"`
	ProposedAction  string   `json:"proposedAction"`
	IsCorrectAction bool     `json:"isCorrectAction"`
	Explanation     string   `json:"explanation"`
}

type PasswordSecurityScenario struct {
	Prompt      string   `json:"prompt"`
	Sample      string   `json:"sample"`
	IsSecure    bool     `json:"isSecure"`
	RedFlags    []string `json:"redFlags"`
	Explanation string   `json:"explanation"`
}

// GroundTruth reports whether the scenario depicts a threat (or, for
// incident-response and password-security, whether the shown choice is the
// wrong one). A learner answers "is this a threat?" with a boolean; correct
// means their verdict equals this value.
func (s *Scenario) GroundTruth() bool {
	switch s.Type {
	case Phishing:
		return s.Phishing != nil && s.Phishing.IsPhishing
	case SocialEngineering:
		return s.SocialEngineering != nil && s.SocialEngineering.IsAttack
	case IncidentResponse:
		return s.IncidentResponse != nil && !s.IncidentResponse.IsCorrectAction
	case PasswordSecurity:
		return s.PasswordSecurity != nil && !s.PasswordSecurity.IsSecure
	}
	return false
}

// Explanation returns the variant's teaching note.
func (s *Scenario) Explanation() string {
	switch s.Type {
	case Phishing:
		if s.Phishing != nil {
			return s.Phishing.Explanation
		}
	case SocialEngineering:
		if s.SocialEngineering != nil {
			return s.SocialEngineering.Explanation
		}
	case IncidentResponse:
		if s.IncidentResponse != nil {
			return s.IncidentResponse.Explanation
		}
	case PasswordSecurity:
		if s.PasswordSecurity != nil {
			return s.PasswordSecurity.Explanation
		}
	}
	return ""
}

// RedFlags returns the variant's red-flag labels, nil when the variant has none.
func (s *Scenario) RedFlags() []string {
	switch s.Type {
	case Phishing:
		if s.Phishing != nil {
			return s.Phishing.RedFlags
		}
	case SocialEngineering:
		if s.SocialEngineering != nil {
			return s.SocialEngineering.RedFlags
		}
	case PasswordSecurity:
		if s.PasswordSecurity != nil {
			return s.PasswordSecurity.RedFlags
		}
	}
	return nil
}

// Valid reports whether the variant matching Type is populated.
func (s *Scenario) Valid() bool {
	switch s.Type {
	case Phishing:
		return s.Phishing != nil && s.Phishing.Body != ""
	case SocialEngineering:
		return s.SocialEngineering != nil && s.SocialEngineering.Opening != ""
	case IncidentResponse:
		return s.IncidentResponse != nil && s.IncidentResponse.Incident != ""
	case PasswordSecurity:
		return s.PasswordSecurity != nil && s.PasswordSecurity.Sample != ""
	}
	return false
}
