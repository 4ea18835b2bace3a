package dialog

import "fmt"

// StepError is a failure caught at a step boundary. The orchestrator maps
// it to the generic step-error reply and parks the session at idle; it is
// never surfaced to the turn-processing caller.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
