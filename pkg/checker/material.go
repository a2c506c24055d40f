package checker

import (
	"fmt"
	"strings"

	"meshlint/pkg/issue"
	"meshlint/pkg/scene"
)

// Material flags objects that will export without usable materials:
// no slots at all, or slots left empty.
type Material struct{}

// NewMaterial creates the material-slot checker.
func NewMaterial() *Material { return &Material{} }

func (c *Material) Name() string { return "material" }

func (c *Material) Check(obj *scene.Object) ([]issue.Issue, error) {
	if len(obj.MaterialSlots) == 0 {
		found, err := issue.New(issue.Issue{
			ID:       issue.IDNoMaterials,
			Severity: issue.SeverityError,
			Category: "No Materials",
			Object:   obj.Name,
			Message:  "No material slots",
			Hint:     "Assign at least one material before export",
		})
		if err != nil {
			return nil, err
		}
		// No slots means the empty-slot check has nothing to inspect.
		return []issue.Issue{found}, nil
	}

	var empty []string
	for i, name := range obj.MaterialSlots {
		if name == "" {
			empty = append(empty, fmt.Sprintf("%d", i))
		}
	}
	if len(empty) == 0 {
		return nil, nil
	}

	found, err := issue.New(issue.Issue{
		ID:       issue.IDEmptySlots,
		Severity: issue.SeverityWarning,
		Category: "Empty Material Slots",
		Object:   obj.Name,
		Message:  fmt.Sprintf("Slot(s) %s empty", strings.Join(empty, ", ")),
		Hint:     "Assign a material or remove the slot",
	})
	if err != nil {
		return nil, err
	}
	return []issue.Issue{found}, nil
}
