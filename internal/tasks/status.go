package tasks

import "sync"

// Op identifies an asynchronous operation tracked by the session.
type Op int

const (
	OpExchange Op = iota
	OpProfile
	OpPlaylists
	OpAnalyze
)

func (o Op) String() string {
	switch o {
	case OpExchange:
		return "exchange_code"
	case OpProfile:
		return "fetch_profile"
	case OpPlaylists:
		return "fetch_playlists"
	case OpAnalyze:
		return "analyze"
	default:
		return ""
	}
}

// State is the aggregate UI state of the session.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	default:
		return ""
	}
}

// Status is a snapshot of the derived session status.
//
// Errors carries one user-visible message per failed operation; failures
// from independent operations never suppress each other. Info carries an
// informational notice (e.g. an empty playlist library) that is not an
// error.
type Status struct {
	State  State
	Errors []string
	Info   string
}

// statusTracker derives the session status from the set of operations in
// flight, rather than from flags toggled by call sites. Any operation in
// flight means loading; an operation's error is cleared when it is
// re-attempted. Every begin is paired with a deferred finish, so no path
// can leave the session loading forever.
type statusTracker struct {
	mu       sync.Mutex
	inflight map[Op]struct{}
	errs     map[Op]string
	info     string
}

func newStatusTracker() *statusTracker {
	return &statusTracker{
		inflight: make(map[Op]struct{}),
		errs:     make(map[Op]string),
	}
}

// begin marks op as in flight and clears its previous error.
func (t *statusTracker) begin(op Op) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inflight[op] = struct{}{}
	delete(t.errs, op)
}

// finish marks op as settled.
func (t *statusTracker) finish(op Op) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inflight, op)
}

// fail records a user-visible error message for op.
func (t *statusTracker) fail(op Op, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errs[op] = msg
}

// setInfo records an informational notice shown alongside normal content.
func (t *statusTracker) setInfo(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.info = msg
}

// Status returns the derived status snapshot.
func (t *statusTracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	status := Status{State: StateIdle, Info: t.info}

	for _, op := range []Op{OpExchange, OpProfile, OpPlaylists, OpAnalyze} {
		if msg, ok := t.errs[op]; ok {
			status.Errors = append(status.Errors, msg)
		}
	}

	if len(t.inflight) > 0 {
		status.State = StateLoading
	} else if len(status.Errors) > 0 {
		status.State = StateError
	}

	return status
}
