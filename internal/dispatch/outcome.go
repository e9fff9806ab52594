package dispatch

// OutcomeKind discriminates the events emitted by an in-flight dispatch.
type OutcomeKind int

const (
	// KindProgress is a non-terminal download-progress tick.
	KindProgress OutcomeKind = iota + 1
	// KindSuccess carries the response body text and ends the stream.
	KindSuccess
	// KindCancelled means the call was aborted before completion and ends
	// the stream.
	KindCancelled
)

func (k OutcomeKind) String() string {
	switch k {
	case KindProgress:
		return "progress"
	case KindSuccess:
		return "success"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Outcome is one event from an in-flight dispatch. Zero or more Progress
// outcomes may arrive, followed by exactly one terminal Success or Cancelled
// outcome, after which the stream is closed.
type Outcome struct {
	Kind    OutcomeKind
	Body    string  // Success only
	Percent float64 // Progress only, 0-100, 0 when length is unknown
}
