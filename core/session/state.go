package session

import "errors"

var (
	// ErrNotAuthenticated is returned when a transition requires an authorized session.
	ErrNotAuthenticated = errors.New("session is not authenticated")
	// ErrEmptyPath is returned when activating a session without a file.
	ErrEmptyPath = errors.New("active file path is empty")
)

// State is the position of a session in the upload workflow.
type State int

const (
	// Unauthenticated sessions have not presented the shared token.
	Unauthenticated State = iota
	// Authenticated sessions may upload but have no active spreadsheet.
	Authenticated
	// ActiveFile sessions have uploaded a spreadsheet and generated reports.
	ActiveFile
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case ActiveFile:
		return "active_file"
	default:
		return "unauthenticated"
	}
}

// Snapshot is the decoded state of one session.
type Snapshot struct {
	State State
	// FilePath is the upload-relative name of the active spreadsheet.
	FilePath string
}

// IsAuthenticated reports whether the session passed the gate.
func (s Snapshot) IsAuthenticated() bool {
	return s.State != Unauthenticated
}

// Authorize moves any session to Authenticated, dropping the active file.
func (s Snapshot) Authorize() Snapshot {
	return Snapshot{State: Authenticated}
}

// Activate records path as the active file.
func (s Snapshot) Activate(path string) (Snapshot, error) {
	if !s.IsAuthenticated() {
		return s, ErrNotAuthenticated
	}
	if path == "" {
		return s, ErrEmptyPath
	}
	return Snapshot{State: ActiveFile, FilePath: path}, nil
}

// Reset returns the unauthenticated snapshot.
func (s Snapshot) Reset() Snapshot {
	return Snapshot{}
}
