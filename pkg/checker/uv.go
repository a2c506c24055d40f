package checker

import (
	"meshlint/pkg/issue"
	"meshlint/pkg/scene"
)

// UV flags meshes with no UV layer at all. Downstream texture baking
// cannot recover from this.
type UV struct{}

// NewUV creates the UV-presence checker.
func NewUV() *UV { return &UV{} }

func (c *UV) Name() string { return "uv" }

func (c *UV) Check(obj *scene.Object) ([]issue.Issue, error) {
	if len(obj.UVLayers) > 0 {
		return nil, nil
	}
	found, err := issue.New(issue.Issue{
		ID:       issue.IDMissingUV,
		Severity: issue.SeverityError,
		Category: "Missing UV",
		Object:   obj.Name,
		Message:  "No UV map found",
		Hint:     "Unwrap the mesh before export",
	})
	if err != nil {
		return nil, err
	}
	return []issue.Issue{found}, nil
}
