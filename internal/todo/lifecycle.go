package todo

// Lifecycle tracks hydration of the lists from storage.
type Lifecycle int

const (
	// Uninitialized means no load has been started.
	Uninitialized Lifecycle = iota
	// Loading means a load is in flight.
	Loading
	// Ready means both lists have been loaded (or failed to load and are empty).
	Ready
)

// String returns the lifecycle name.
func (l Lifecycle) String() string {
	switch l {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}
