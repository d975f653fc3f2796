package harness

import "github.com/roach88/datetimeng/internal/codec"

// TraceEvent records the outcome of one step.
type TraceEvent struct {
	Step   int    `json:"step"`
	Op     string `json:"op"`
	As     string `json:"as,omitempty"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"` // error kind
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace has one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// toCanonical converts the trace to values codec.Marshal accepts.
func (r *Result) toCanonical(name string) map[string]any {
	trace := make([]any, len(r.Trace))
	for i, ev := range r.Trace {
		m := map[string]any{
			"step": ev.Step,
			"op":   ev.Op,
		}
		if ev.As != "" {
			m["as"] = ev.As
		}
		if ev.Result != "" {
			m["result"] = ev.Result
		}
		if ev.Error != "" {
			m["error"] = ev.Error
		}
		trace[i] = m
	}
	return map[string]any{
		"scenario": name,
		"trace":    trace,
	}
}

// TraceJSON renders the trace as canonical JSON, the form golden files hold.
func (r *Result) TraceJSON(name string) ([]byte, error) {
	return codec.Marshal(r.toCanonical(name))
}
