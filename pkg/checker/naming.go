package checker

import (
	"regexp"
	"strings"

	"meshlint/pkg/issue"
	"meshlint/pkg/scene"
)

var (
	defaultNamePattern  = regexp.MustCompile(`^(Cube|Sphere|Cylinder|Plane|Cone|Torus|Suzanne|Circle|Grid|Monkey)\.\d+$`)
	cjkPattern          = regexp.MustCompile(`[\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FFF}]`)
	specialCharsPattern = regexp.MustCompile(`[/\\:*?"<>|]`)
)

// Naming flags object names that break downstream pipelines: spaces,
// CJK characters, filesystem-hostile characters, stock primitive names
// like Cube.001, and names starting with a digit.
type Naming struct{}

// NewNaming creates the naming-convention checker.
func NewNaming() *Naming { return &Naming{} }

func (c *Naming) Name() string { return "naming" }

func (c *Naming) Check(obj *scene.Object) ([]issue.Issue, error) {
	name := obj.Name
	var problems []string

	if strings.Contains(name, " ") {
		problems = append(problems, "Contains spaces")
	}
	if cjkPattern.MatchString(name) {
		problems = append(problems, "Contains Japanese characters")
	}
	if specialCharsPattern.MatchString(name) {
		problems = append(problems, "Contains special characters")
	}
	if defaultNamePattern.MatchString(name) {
		problems = append(problems, "Default name")
	}
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		problems = append(problems, "Starts with number")
	}

	if len(problems) == 0 {
		return nil, nil
	}
	found, err := issue.New(issue.Issue{
		ID:       issue.IDNamingIssues,
		Severity: issue.SeverityInfo,
		Category: "Naming Issues",
		Object:   name,
		Message:  strings.Join(problems, ", "),
		Hint:     "Rename the object before export",
	})
	if err != nil {
		return nil, err
	}
	return []issue.Issue{found}, nil
}
