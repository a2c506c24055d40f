// Package checker implements the validation checks run against each
// mesh object before export. Every checker inspects one object at a
// time and reports findings; it never mutates the scene.
package checker

import (
	"meshlint/pkg/issue"
	"meshlint/pkg/scene"
)

// Checker is one validation rule set. Check returns the findings for
// a single object; an empty slice and a nil error both mean the object
// passed. Errors are contained by the engine per (checker, object)
// pair and must not abort a scan.
type Checker interface {
	Name() string
	Check(obj *scene.Object) ([]issue.Issue, error)
}

// All returns every built-in checker wired with the given thresholds,
// in the order they should run.
func All(cfg Config) []Checker {
	return []Checker{
		NewMaterial(),
		NewUV(),
		NewTransform(cfg.Transform),
		NewOrientation(cfg.Orientation),
		NewGeometry(cfg.Geometry),
		NewNaming(),
	}
}

// Config bundles the tunable thresholds for the built-in checkers.
type Config struct {
	Orientation OrientationConfig `yaml:"orientation"`
	Transform   TransformConfig   `yaml:"transform"`
	Geometry    GeometryConfig    `yaml:"geometry"`
}

// DefaultConfig returns the documented default thresholds.
func DefaultConfig() Config {
	return Config{
		Orientation: DefaultOrientationConfig(),
		Transform:   DefaultTransformConfig(),
		Geometry:    DefaultGeometryConfig(),
	}
}
