package rescale

import (
	"fmt"
	"time"
)

// EventKind identifies the point in a resize call an Event reports.
type EventKind uint8

const (
	// EventStart is sent once, after validation and before any pixel work.
	EventStart EventKind = iota

	// EventSample describes where one of the first destination pixels reads
	// from. At most two are sent per call.
	EventSample

	// EventProgress is sent after each band of destination rows completes.
	EventProgress

	// EventDone is sent once the result, post-processing included, is ready.
	EventDone
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventSample:
		return "sample"
	case EventProgress:
		return "progress"
	case EventDone:
		return "done"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is a notification sent to an Observer during a resize call.
type Event struct {
	Kind      EventKind
	Algorithm Algorithm

	SrcWidth, SrcHeight int
	DstWidth, DstHeight int

	// X, Y is the destination pixel and SrcX, SrcY the source coordinate it
	// is centered on. Set for EventSample.
	X, Y       int
	SrcX, SrcY float64

	// RowsDone counts destination rows finished so far. Set for
	// EventProgress and EventDone.
	RowsDone int

	// Elapsed is the wall time since EventStart. Set for EventDone.
	Elapsed time.Duration
}

// String formats the event as a single human-readable line.
func (e Event) String() string {
	switch e.Kind {
	case EventStart:
		return fmt.Sprintf("%s: %dx%d -> %dx%d", e.Algorithm, e.SrcWidth, e.SrcHeight, e.DstWidth, e.DstHeight)
	case EventSample:
		return fmt.Sprintf("Dst(%d,%d) blends pixels around (%.2f,%.2f)", e.X, e.Y, e.SrcX, e.SrcY)
	case EventProgress:
		return fmt.Sprintf("%d/%d rows", e.RowsDone, e.DstHeight)
	case EventDone:
		return fmt.Sprintf("%s: %dx%d in %v", e.Algorithm, e.DstWidth, e.DstHeight, e.Elapsed)
	default:
		return e.Kind.String()
	}
}

// Observer receives progress events from resize calls. Calls for a single
// resize never overlap, but an Observer shared between concurrent resize
// calls must be safe for concurrent use.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }
