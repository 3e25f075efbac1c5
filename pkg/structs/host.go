package structs

// Host is the typed view of a READY assessment document.
//
// Only the fields we report on are decoded; the raw document is kept
// alongside wherever the unmodified result is needed.
type Host struct {
	Host            string      `json:"host"`
	Port            int         `json:"port"`
	Protocol        string      `json:"protocol"`
	IsPublic        bool        `json:"isPublic"`
	Status          Status      `json:"status"`
	StatusMessage   string      `json:"statusMessage,omitempty"`
	StartTime       int64       `json:"startTime"`
	TestTime        int64       `json:"testTime"`
	EngineVersion   string      `json:"engineVersion"`
	CriteriaVersion string      `json:"criteriaVersion"`
	Endpoints       []*Endpoint `json:"endpoints"`
}

// Endpoint is one resolved address of a Host.
type Endpoint struct {
	IPAddress         string `json:"ipAddress"`
	ServerName        string `json:"serverName,omitempty"`
	StatusMessage     string `json:"statusMessage"`
	Grade             string `json:"grade,omitempty"`
	GradeTrustIgnored string `json:"gradeTrustIgnored,omitempty"`
	HasWarnings       bool   `json:"hasWarnings"`
	IsExceptional     bool   `json:"isExceptional"`
	Progress          int    `json:"progress"`
	Duration          int64  `json:"duration"`
	Delegation        int    `json:"delegation"`
}

// IsReady is true when the service finished assessing this endpoint.
func (e *Endpoint) IsReady() bool {
	return e.StatusMessage == "Ready"
}
