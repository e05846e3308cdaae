package script

// TraceEvent records one executed step and its outcome.
type TraceEvent struct {
	// Seq numbers the step within the run, starting at 1.
	Seq int64 `json:"seq"`

	// Op is the operation name.
	Op string `json:"op"`

	// Type is the collection the step targeted, if any.
	Type string `json:"type,omitempty"`

	// ID is the record identifier the step resolved to, when it
	// resolved one.
	ID int64 `json:"id,omitempty"`

	// Result is the operation's result value: a record, a record
	// list, the seeded collection names, or the reset outcome.
	Result any `json:"result,omitempty"`

	// Count is the number of records a select returned.
	Count int `json:"count,omitempty"`

	// Missing marks a select that found nothing.
	Missing bool `json:"missing,omitempty"`

	// Error is the store error code when the operation failed.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a script run.
type Result struct {
	// Script is the script name.
	Script string `json:"script"`

	// Token is the run token identifying this execution.
	Token string `json:"token,omitempty"`

	// Pass indicates overall success.
	// True if every expectation matched.
	Pass bool `json:"pass"`

	// Steps contains one trace event per executed step, in order.
	Steps []TraceEvent `json:"steps"`

	// Errors contains expectation failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for script execution.
func NewResult(name, token string) *Result {
	return &Result{
		Script: name,
		Token:  token,
		Pass:   true,
		Steps:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}
