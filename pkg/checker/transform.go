package checker

import (
	"fmt"
	"math"
	"strings"

	"meshlint/pkg/issue"
	"meshlint/pkg/scene"
)

// TransformConfig tunes the unapplied-transform tolerances.
type TransformConfig struct {
	ScaleTolerance    float64 `yaml:"scale_tolerance"`
	RotationTolerance float64 `yaml:"rotation_tolerance"`
}

// DefaultTransformConfig returns the documented tolerances.
func DefaultTransformConfig() TransformConfig {
	return TransformConfig{
		ScaleTolerance:    1e-4,
		RotationTolerance: 1e-4,
	}
}

// Transform flags object-level scale and rotation that should have
// been applied to the geometry before export: non-unit scale,
// non-zero rotation, and negative scale axes.
type Transform struct {
	cfg TransformConfig
}

// NewTransform creates the transform checker.
func NewTransform(cfg TransformConfig) *Transform {
	if cfg.ScaleTolerance <= 0 {
		cfg.ScaleTolerance = DefaultTransformConfig().ScaleTolerance
	}
	if cfg.RotationTolerance <= 0 {
		cfg.RotationTolerance = DefaultTransformConfig().RotationTolerance
	}
	return &Transform{cfg: cfg}
}

func (c *Transform) Name() string { return "transform" }

func (c *Transform) Check(obj *scene.Object) ([]issue.Issue, error) {
	var issues []issue.Issue

	scale := obj.Scale
	rot := obj.Rotation

	if !c.isUnitScale(scale.X, scale.Y, scale.Z) {
		found, err := issue.New(issue.Issue{
			ID:       issue.IDUnappliedScale,
			Severity: issue.SeverityWarning,
			Category: "Unapplied Scale",
			Object:   obj.Name,
			Message:  fmt.Sprintf("(%.2f, %.2f, %.2f)", scale.X, scale.Y, scale.Z),
			Hint:     "Apply scale before export",
		})
		if err != nil {
			return nil, err
		}
		issues = append(issues, found)
	}

	if !c.isZeroRotation(rot.X, rot.Y, rot.Z) {
		found, err := issue.New(issue.Issue{
			ID:       issue.IDUnappliedRot,
			Severity: issue.SeverityWarning,
			Category: "Unapplied Rotation",
			Object:   obj.Name,
			Message:  fmt.Sprintf("(%.2f, %.2f, %.2f)", rot.X, rot.Y, rot.Z),
			Hint:     "Apply rotation before export",
		})
		if err != nil {
			return nil, err
		}
		issues = append(issues, found)
	}

	if axes := negativeAxes(scale.X, scale.Y, scale.Z); len(axes) > 0 {
		found, err := issue.New(issue.Issue{
			ID:       issue.IDNegativeScale,
			Severity: issue.SeverityWarning,
			Category: "Negative Scale",
			Object:   obj.Name,
			Message:  fmt.Sprintf("Negative on %s", strings.Join(axes, ", ")),
			Hint:     "Apply scale or flip normals",
		})
		if err != nil {
			return nil, err
		}
		issues = append(issues, found)
	}

	return issues, nil
}

func (c *Transform) isUnitScale(x, y, z float64) bool {
	return math.Abs(x-1) < c.cfg.ScaleTolerance &&
		math.Abs(y-1) < c.cfg.ScaleTolerance &&
		math.Abs(z-1) < c.cfg.ScaleTolerance
}

func (c *Transform) isZeroRotation(x, y, z float64) bool {
	return math.Abs(x) < c.cfg.RotationTolerance &&
		math.Abs(y) < c.cfg.RotationTolerance &&
		math.Abs(z) < c.cfg.RotationTolerance
}

func negativeAxes(x, y, z float64) []string {
	var axes []string
	if x < 0 {
		axes = append(axes, "X")
	}
	if y < 0 {
		axes = append(axes, "Y")
	}
	if z < 0 {
		axes = append(axes, "Z")
	}
	return axes
}
