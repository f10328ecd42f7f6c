package app

import "fmt"

type OutcomeKind int

const (
	Completed OutcomeKind = iota
	ValidationRejected
)

func (k OutcomeKind) String() string {
	switch k {
	case Completed:
		return "completed"
	case ValidationRejected:
		return "validation_rejected"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is how a session ended when it did not fail unexpectedly.
type Outcome struct {
	Kind   OutcomeKind
	Reason string
}

func Done() Outcome {
	return Outcome{Kind: Completed}
}

func Rejected(reason string) Outcome {
	return Outcome{Kind: ValidationRejected, Reason: reason}
}

func (o Outcome) IsRejected() bool {
	return o.Kind == ValidationRejected
}

func (o Outcome) String() string {
	if o.Reason == "" {
		return o.Kind.String()
	}
	return fmt.Sprintf("%s: %s", o.Kind, o.Reason)
}
