// Package diagnostics defines the structured events streamed to operators.
package diagnostics

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Codes used by the sign.
const (
	CodeHello      = "HUB.HELLO"
	CodePhaseStart = "PHASE.START"
	CodeFrameWrite = "FRAME.WRITE"
	CodeShowEnd    = "SHOW.END"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}
