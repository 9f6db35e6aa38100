package repodoc

// ProgressKind identifies the kind of a ProgressEvent.
type ProgressKind int

const (
	// ProgressPercent reports overall completion in Percent (0-100).
	ProgressPercent ProgressKind = iota
	// ProgressCurrentFile names the file or step currently being processed.
	ProgressCurrentFile
	// ProgressFileComplete reports a file that was retrieved successfully.
	ProgressFileComplete
	// ProgressFileError reports a file that was skipped, with Reason.
	ProgressFileError
)

// String returns a short name for the kind.
func (k ProgressKind) String() string {
	switch k {
	case ProgressPercent:
		return "progress"
	case ProgressCurrentFile:
		return "current"
	case ProgressFileComplete:
		return "complete"
	case ProgressFileError:
		return "error"
	default:
		return "unknown"
	}
}

// ProgressEvent is a single notification emitted by a Provider while it
// retrieves files. For a given Path, a ProgressCurrentFile event always
// precedes the matching ProgressFileComplete or ProgressFileError.
type ProgressEvent struct {
	Kind    ProgressKind
	Percent float64
	Name    string
	Path    string
	Reason  string
}

// ProgressFunc receives progress events. The Provider call is the only
// writer for its lifetime.
type ProgressFunc func(ProgressEvent)

// Percent reports overall completion. Safe to call on a nil ProgressFunc.
func (fn ProgressFunc) Percent(p float64) {
	if fn != nil {
		fn(ProgressEvent{Kind: ProgressPercent, Percent: p})
	}
}

// CurrentFile reports the file being processed.
func (fn ProgressFunc) CurrentFile(name, path string) {
	if fn != nil {
		fn(ProgressEvent{Kind: ProgressCurrentFile, Name: name, Path: path})
	}
}

// FileComplete reports a successfully retrieved file.
func (fn ProgressFunc) FileComplete(name, path string) {
	if fn != nil {
		fn(ProgressEvent{Kind: ProgressFileComplete, Name: name, Path: path})
	}
}

// FileError reports a skipped file.
func (fn ProgressFunc) FileError(name, path, reason string) {
	if fn != nil {
		fn(ProgressEvent{Kind: ProgressFileError, Name: name, Path: path, Reason: reason})
	}
}
