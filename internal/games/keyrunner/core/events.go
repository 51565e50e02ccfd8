package core

// EventKind identifies something that happened during a session operation.
type EventKind int

const (
	EventKeyCollected EventKind = iota
	EventBottomRowCleared
	EventLevelExit
	EventLevelStarted
	EventPursuerMoved
	EventRunnerCaught
	EventRestarted
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventKeyCollected:
		return "KeyCollected"
	case EventBottomRowCleared:
		return "BottomRowCleared"
	case EventLevelExit:
		return "LevelExit"
	case EventLevelStarted:
		return "LevelStarted"
	case EventPursuerMoved:
		return "PursuerMoved"
	case EventRunnerCaught:
		return "RunnerCaught"
	case EventRestarted:
		return "Restarted"
	default:
		return "Unknown"
	}
}

// Event is emitted by Move, Tick and Restart. Pos is the cell the event refers
// to: the key cell, the exit cell, the pursuer's new cell or the runner's start.
type Event struct {
	Kind EventKind
	Pos  Pos
}

// MoveResult is returned by a runner move.
// Moved is false for every no-op, including blocked moves and level exits.
type MoveResult struct {
	Moved  bool
	From   Pos
	To     Pos
	Events []Event
}

// Has reports whether the result carries an event of kind k.
func (r MoveResult) Has(k EventKind) bool {
	return hasEvent(r.Events, k)
}

// TickResult is returned by a pursuit tick.
type TickResult struct {
	Moved  bool
	From   Pos
	To     Pos
	Events []Event
}

// Has reports whether the result carries an event of kind k.
func (r TickResult) Has(k EventKind) bool {
	return hasEvent(r.Events, k)
}

func hasEvent(events []Event, k EventKind) bool {
	for _, e := range events {
		if e.Kind == k {
			return true
		}
	}
	return false
}
