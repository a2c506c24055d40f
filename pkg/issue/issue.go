// Package issue defines the finding records produced by validation
// checkers and the per-scan result that aggregates them.
package issue

import "fmt"

// Severity classifies how serious a finding is. The set is closed;
// constructing an Issue with any other value fails.
type Severity string

const (
	SeverityError   Severity = "ERROR"   // blocks export
	SeverityWarning Severity = "WARNING" // likely to misbehave downstream
	SeverityInfo    Severity = "INFO"    // advisory
)

// Valid reports whether s is a member of the closed severity set.
func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// rank orders severities for primary-finding selection. Lower is more
// severe.
func (s Severity) rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// InvalidSeverityError reports an attempt to construct an Issue with a
// severity outside the closed set.
type InvalidSeverityError struct {
	Severity Severity
}

func (e *InvalidSeverityError) Error() string {
	return fmt.Sprintf("invalid severity %q, must be one of ERROR, WARNING, INFO", string(e.Severity))
}

// Stable issue identifiers. UI and tooling key on these; never renumber.
const (
	IDNoMaterials    = "E001"
	IDMissingUV      = "E002"
	IDUnappliedScale = "W001"
	IDUnappliedRot   = "W002"
	IDNegativeScale  = "W003"
	IDFlippedFaces   = "W004"
	IDNgons          = "W005"
	IDLooseGeometry  = "W006"
	IDEmptySlots     = "W007"
	IDNamingIssues   = "I002"
	IDSmallFaces     = "I003"
)

// MeshType records which orientation test produced a face selection.
type MeshType string

const (
	MeshClosed MeshType = "closed"
	MeshOpen   MeshType = "open"
)

// SelectData is the discriminated payload attached to selectable
// issues. Implementations are restricted to this package.
type SelectData interface {
	selectData()
}

// FaceSelection points at a set of faces in the snapshot the issue was
// detected on. Focus is the single face a consumer should frame first;
// it is always a member of Indices, and Indices lists it first.
// Priority orders findings on the same object: lower wins, closed-mesh
// findings (1) always outrank open-mesh findings (2).
type FaceSelection struct {
	Indices  []int
	Focus    int
	MeshType MeshType
	Priority int
}

func (FaceSelection) selectData() {}

// LooseSelection points at loose vertices and edges.
type LooseSelection struct {
	Verts []int
	Edges []int
}

func (LooseSelection) selectData() {}

// Issue is one detected problem on one object. Issues are immutable
// after construction and owned by the Result that contains them.
type Issue struct {
	ID       string
	Severity Severity
	Category string
	Object   string
	Message  string
	Hint     string
	Select   SelectData // nil when the finding is not selectable
}

// CanSelect reports whether the issue carries selection data.
func (i Issue) CanSelect() bool {
	return i.Select != nil
}

// New validates and returns the given issue. The severity must be a
// member of the closed set; anything else fails with
// *InvalidSeverityError.
func New(i Issue) (Issue, error) {
	if !i.Severity.Valid() {
		return Issue{}, &InvalidSeverityError{Severity: i.Severity}
	}
	return i, nil
}

// priority returns the selection priority for ordering, treating
// non-face selections as lowest.
func (i Issue) priority() int {
	if fs, ok := i.Select.(FaceSelection); ok {
		return fs.Priority
	}
	return int(^uint(0) >> 1)
}
