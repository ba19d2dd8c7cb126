package schema

import "time"

// ExecutionRequest carries a code/language pair submitted for simulated
// execution. Requests are not persisted.
type ExecutionRequest struct {
	Code     string     `json:"code"`
	Language LanguageID `json:"language"`
}

// ExecutionResult reports the outcome of one simulated execution.
type ExecutionResult struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
	Error   string `json:"error,omitempty"`
	// Canceled marks results produced by context cancellation rather
	// than by the language handler or fault injection.
	Canceled bool `json:"canceled,omitempty"`
	// ExecutionTime is the wall-clock delta measured across the
	// simulated latency suspension.
	ExecutionTime time.Duration `json:"-"`
}

// ExecutionTimeMillis reports the execution time in milliseconds for
// transports.
func (r ExecutionResult) ExecutionTimeMillis() int64 {
	return r.ExecutionTime.Milliseconds()
}
