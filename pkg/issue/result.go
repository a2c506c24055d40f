package issue

import (
	"fmt"
	"time"
)

// Result holds the findings of one validation run. The engine creates
// exactly one Result per scan; counts are derived on read and never
// stored.
type Result struct {
	Timestamp time.Time
	Objects   []string // scanned object names, in scan order
	Issues    []Issue
}

// NewResult creates an empty result stamped with the current time.
func NewResult(objects []string, issues []Issue) *Result {
	return &Result{
		Timestamp: time.Now(),
		Objects:   objects,
		Issues:    issues,
	}
}

// countBySeverity counts issues with the given severity.
func (r *Result) countBySeverity(s Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == s {
			n++
		}
	}
	return n
}

// ErrorCount returns the number of ERROR findings.
func (r *Result) ErrorCount() int { return r.countBySeverity(SeverityError) }

// WarningCount returns the number of WARNING findings.
func (r *Result) WarningCount() int { return r.countBySeverity(SeverityWarning) }

// InfoCount returns the number of INFO findings.
func (r *Result) InfoCount() int { return r.countBySeverity(SeverityInfo) }

// TotalCount returns the number of findings of any severity.
func (r *Result) TotalCount() int { return len(r.Issues) }

// HasErrors reports whether any ERROR finding is present.
func (r *Result) HasErrors() bool { return r.ErrorCount() > 0 }

// FilterBySeverity returns the findings with the given severity, in
// scan order.
func (r *Result) FilterBySeverity(s Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}

// FilterByObject returns the findings for the named object, in scan
// order.
func (r *Result) FilterByObject(name string) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Object == name {
			out = append(out, i)
		}
	}
	return out
}

// GroupByCategory returns the findings grouped by display category.
func (r *Result) GroupByCategory() map[string][]Issue {
	grouped := make(map[string][]Issue)
	for _, i := range r.Issues {
		grouped[i.Category] = append(grouped[i.Category], i)
	}
	return grouped
}

// GroupBySeverity returns the findings grouped by severity. All three
// keys are always present so consumers can render empty sections.
func (r *Result) GroupBySeverity() map[Severity][]Issue {
	return map[Severity][]Issue{
		SeverityError:   r.FilterBySeverity(SeverityError),
		SeverityWarning: r.FilterBySeverity(SeverityWarning),
		SeverityInfo:    r.FilterBySeverity(SeverityInfo),
	}
}

// Find returns the first finding matching (object, id).
func (r *Result) Find(object, id string) (Issue, bool) {
	for _, i := range r.Issues {
		if i.Object == object && i.ID == id {
			return i, true
		}
	}
	return Issue{}, false
}

// FindByCategory returns the first finding matching (object, category).
// Fallback lookup for callers that only know the display label.
func (r *Result) FindByCategory(object, category string) (Issue, bool) {
	for _, i := range r.Issues {
		if i.Object == object && i.Category == category {
			return i, true
		}
	}
	return Issue{}, false
}

// Selection resolves (object, id) to the finding's selection payload.
// It rejects, rather than panics on, an unknown object, an unknown
// issue, or an issue with nothing to select; the stored result is
// never affected by a failed lookup.
func (r *Result) Selection(object, id string) (SelectData, error) {
	scanned := false
	for _, name := range r.Objects {
		if name == object {
			scanned = true
			break
		}
	}
	if !scanned {
		return nil, fmt.Errorf("object %q was not scanned", object)
	}
	i, ok := r.Find(object, id)
	if !ok {
		return nil, fmt.Errorf("no %s finding on object %q", id, object)
	}
	if !i.CanSelect() {
		return nil, fmt.Errorf("finding %s on object %q has nothing to select", id, object)
	}
	return i.Select, nil
}

// Primary returns the object's most important selectable finding,
// ordered by (selection priority, severity). Closed-mesh orientation
// findings therefore outrank open-mesh ones on the same object.
func (r *Result) Primary(object string) (Issue, bool) {
	var best Issue
	found := false
	for _, i := range r.Issues {
		if i.Object != object || !i.CanSelect() {
			continue
		}
		if !found {
			best = i
			found = true
			continue
		}
		if i.priority() < best.priority() ||
			(i.priority() == best.priority() && i.Severity.rank() < best.Severity.rank()) {
			best = i
		}
	}
	return best, found
}
