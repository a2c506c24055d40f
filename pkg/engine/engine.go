// Package engine orchestrates validation: it runs every registered
// checker over every mesh object and collects the findings into a
// single Result.
package engine

import (
	"fmt"

	"go.uber.org/zap"

	"meshlint/pkg/checker"
	"meshlint/pkg/issue"
	"meshlint/pkg/scene"
)

// Engine runs checkers over scene objects. A failing checker never
// takes the run down with it: each (checker, object) pair is isolated,
// and a panic or error there is logged and contributes zero findings.
type Engine struct {
	checkers []checker.Checker
	log      *zap.Logger
}

// New creates an engine over the given checkers. A nil logger disables
// logging.
func New(checkers []checker.Checker, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{checkers: checkers, log: log}
}

// Validate checks every mesh object and returns one Result covering
// the whole run. Non-mesh objects are skipped.
func (e *Engine) Validate(objects []*scene.Object) *issue.Result {
	meshes := scene.MeshObjects(objects)

	names := make([]string, len(meshes))
	var issues []issue.Issue
	for i, obj := range meshes {
		names[i] = obj.Name
		for _, c := range e.checkers {
			found, err := e.runOne(c, obj)
			if err != nil {
				e.log.Error("checker failed",
					zap.String("checker", c.Name()),
					zap.String("object", obj.Name),
					zap.Error(err))
				continue
			}
			issues = append(issues, found...)
		}
	}

	return issue.NewResult(names, issues)
}

// ValidateSingle checks one object.
func (e *Engine) ValidateSingle(obj *scene.Object) *issue.Result {
	return e.Validate([]*scene.Object{obj})
}

// runOne isolates a single checker invocation, converting panics into
// errors.
func (e *Engine) runOne(c checker.Checker, obj *scene.Object) (found []issue.Issue, err error) {
	defer func() {
		if r := recover(); r != nil {
			found = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.Check(obj)
}
