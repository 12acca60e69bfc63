package status

// State is the loading indicator state.
type State string

const (
	// StateIdle means no request is in flight.
	StateIdle State = "idle"
	// StateLoading means at least one request is in flight.
	StateLoading State = "loading"
)

// Activity counts in-flight requests. Begin is called before a request is
// issued and End when its completion message is handled, so overlapping
// requests keep the indicator on until the last one finishes.
// Only the UI loop touches it.
type Activity struct {
	inFlight int
}

// Begin records a request start.
func (a *Activity) Begin() {
	a.inFlight++
}

// End records a request finish. Extra calls are ignored.
func (a *Activity) End() {
	if a.inFlight > 0 {
		a.inFlight--
	}
}

// InFlight returns the number of unfinished requests.
func (a *Activity) InFlight() int {
	return a.inFlight
}

// State returns the loading indicator state.
func (a *Activity) State() State {
	if a.inFlight > 0 {
		return StateLoading
	}
	return StateIdle
}
