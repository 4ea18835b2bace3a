package domain

import (
	"errors"
	"time"
)

// Step is a named position in the fixed interview script.
type Step string

const (
	StepStart      Step = "start"
	StepAwaitLogin Step = "await_login"
	StepAwaitHR1   Step = "await_hr1"
	StepAwaitHR2   Step = "await_hr2"
	StepAwaitT1    Step = "await_t1"
	StepAwaitT2    Step = "await_t2"
	StepIdle       Step = "idle"
)

// scriptOrder is the fixed forward order of the interview script.
var scriptOrder = []Step{
	StepStart,
	StepAwaitLogin,
	StepAwaitHR1,
	StepAwaitHR2,
	StepAwaitT1,
	StepAwaitT2,
	StepIdle,
}

// Index returns the step's position in the script order, or -1 if unknown.
func (s Step) Index() int {
	for i, step := range scriptOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is a known script step.
func (s Step) Valid() bool { return s.Index() >= 0 }

// Next returns the step that follows s in the script. Idle is terminal and
// returns itself.
func (s Step) Next() Step {
	i := s.Index()
	if i < 0 || i == len(scriptOrder)-1 {
		return StepIdle
	}
	return scriptOrder[i+1]
}

// Category is the content track assigned to a participant after identity
// resolution. The empty value means the participant has not logged in yet.
type Category string

const (
	CategoryUnresolved Category = ""
	CategoryAWS        Category = "aws"
	CategoryAzure      Category = "azure"
	CategoryGeneral    Category = "general"
)

// Resolved reports whether a category has been assigned.
func (c Category) Resolved() bool { return c != CategoryUnresolved }

var (
	// ErrCategoryResolved is returned when assigning a category to a session
	// that already has one.
	ErrCategoryResolved = errors.New("session category already resolved")

	// ErrStepSkipped is returned when a step advancement would skip over a
	// script position.
	ErrStepSkipped = errors.New("step advancement must not skip script positions")
)

// Session is the persisted state of one conversation's progress through the
// interview script. It is mutated at most once per turn and never deleted;
// a completed interview parks permanently at the idle step.
type Session struct {
	ConversationID string    `json:"conversationId"`
	Step           Step      `json:"step"`
	UserID         string    `json:"userId,omitempty"`
	Token          string    `json:"token,omitempty"`
	Category       Category  `json:"category,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewSession returns a fresh session at the start of the script with an
// unresolved category.
func NewSession(conversationID string) *Session {
	now := time.Now()
	return &Session{
		ConversationID: conversationID,
		Step:           StepStart,
		Category:       CategoryUnresolved,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// AssignCategory sets the session's category. The category is write-once:
// once resolved it is never overwritten.
func (s *Session) AssignCategory(c Category) error {
	if s.Category.Resolved() {
		return ErrCategoryResolved
	}
	s.Category = c
	return nil
}

// Advance moves the session to the immediate next script step. Skipping a
// position is an error; use Reset or ForceIdle for the failure paths.
func (s *Session) Advance(next Step) error {
	if next != s.Step.Next() {
		return ErrStepSkipped
	}
	s.Step = next
	return nil
}

// Reset returns the session to the start of the script. Identity and
// category are untouched; only the position changes.
func (s *Session) Reset() {
	s.Step = StepStart
}

// ForceIdle parks the session at the terminal step.
func (s *Session) ForceIdle() {
	s.Step = StepIdle
}
