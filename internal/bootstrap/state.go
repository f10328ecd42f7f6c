package bootstrap

import "fmt"

type State int

const (
	NotStarted State = iota
	LoggingInitialized
	DirectoryResolved
	Running
	Completed
	ValidationFailed
	Finalized
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case LoggingInitialized:
		return "logging_initialized"
	case DirectoryResolved:
		return "directory_resolved"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case ValidationFailed:
		return "validation_failed"
	case Finalized:
		return "finalized"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}
