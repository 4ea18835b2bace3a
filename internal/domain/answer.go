package domain

import "time"

// StepLabel names the script step an answer was recorded for.
type StepLabel string

const (
	LabelHR1 StepLabel = "HR1"
	LabelHR2 StepLabel = "HR2"
	LabelT1  StepLabel = "T1"
	LabelT2  StepLabel = "T2"
)

// Verdict is the outcome of scoring one answer.
type Verdict string

const (
	VerdictPass Verdict = "pass"
	VerdictFail Verdict = "fail"
)

// Answer is one recorded response. Answers are append-only: created exactly
// once per step transition that consumes an answer, never mutated or deleted.
type Answer struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	StepLabel  StepLabel `json:"stepLabel"`
	RawText    string    `json:"rawText"`
	Evaluation Verdict   `json:"evaluation"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Credentials is the login payload extracted from a structured turn.
type Credentials struct {
	Identifier string `json:"mobile"`
	Token      string `json:"token"`
}
