package models

// OutcomeStatus tags a GenerationOutcome as success or failure
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeFailed  OutcomeStatus = "failed"
)

// WriteResult records the outcome of one per-locale override write
type WriteResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// GenerationOutcome is the per-product result of one orchestration pass.
// A failed outcome carries a stable error code; a successful one carries
// the per-locale write results, which may themselves include failures.
type GenerationOutcome struct {
	Status    OutcomeStatus          `json:"status"`
	ErrorCode string                 `json:"error_code,omitempty"`
	Writes    map[string]WriteResult `json:"writes,omitempty"`
}

// FailedOutcome builds a failure outcome with the given error code
func FailedOutcome(code string) GenerationOutcome {
	return GenerationOutcome{Status: OutcomeFailed, ErrorCode: code}
}
