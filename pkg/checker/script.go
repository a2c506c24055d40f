package checker

import (
	"fmt"
	"strings"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"meshlint/pkg/issue"
	"meshlint/pkg/scene"
)

// ScriptTimeout is the hard limit for evaluating one rule script
// against one object.
const ScriptTimeout = 5 * time.Second

// Script runs a user-supplied zygomys lisp rule against each object.
// Each Check evaluates the source in a fresh sandboxed environment so
// scripts cannot touch the filesystem or leak state between objects.
//
// Scripts read object facts through builtins (object_name, face_count,
// vert_count, edge_count, material_slots, uv_layers) and report
// problems with (finding "X001" "WARNING" "Category" "message") plus
// an optional hint argument.
type Script struct {
	name   string
	source string
}

// NewScript creates a script checker from lisp source. name labels the
// rule in logs and checker output.
func NewScript(name, source string) *Script {
	return &Script{name: name, source: source}
}

func (c *Script) Name() string { return "script:" + c.name }

func (c *Script) Check(obj *scene.Object) ([]issue.Issue, error) {
	if strings.TrimSpace(c.source) == "" {
		return nil, nil
	}

	type evalOut struct {
		issues []issue.Issue
		err    error
	}
	ch := make(chan evalOut, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalOut{err: fmt.Errorf("rule %s: panic during evaluation: %v", c.name, r)}
			}
		}()
		found, err := c.eval(obj)
		ch <- evalOut{issues: found, err: err}
	}()

	timer := time.NewTimer(ScriptTimeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		return out.issues, out.err
	case <-timer.C:
		return nil, fmt.Errorf("rule %s: evaluation timed out after %s", c.name, ScriptTimeout)
	}
}

func (c *Script) eval(obj *scene.Object) ([]issue.Issue, error) {
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	var found []issue.Issue
	registerObjectBuiltins(env, obj)
	env.AddFunction("finding", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 4 {
			return zygo.SexpNull, fmt.Errorf("finding requires id, severity, category and message")
		}
		fields := make([]string, 0, 5)
		for _, a := range args {
			s, ok := a.(*zygo.SexpStr)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("finding: expected string, got %T", a)
			}
			fields = append(fields, s.S)
		}
		fi := issue.Issue{
			ID:       fields[0],
			Severity: issue.Severity(fields[1]),
			Category: fields[2],
			Object:   obj.Name,
			Message:  fields[3],
		}
		if len(fields) > 4 {
			fi.Hint = fields[4]
		}
		validated, err := issue.New(fi)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("finding: %w", err)
		}
		found = append(found, validated)
		return zygo.SexpNull, nil
	})

	if err := env.LoadString(c.source); err != nil {
		return nil, fmt.Errorf("rule %s: %w", c.name, err)
	}
	if _, err := env.Run(); err != nil {
		return nil, fmt.Errorf("rule %s: %w", c.name, err)
	}
	return found, nil
}

// registerObjectBuiltins installs read-only accessors for the object
// under inspection.
func registerObjectBuiltins(env *zygo.Zlisp, obj *scene.Object) {
	counts := map[string]func() int{
		"face_count": func() int {
			if obj.Mesh == nil {
				return 0
			}
			return obj.Mesh.FaceCount()
		},
		"vert_count": func() int {
			if obj.Mesh == nil {
				return 0
			}
			return obj.Mesh.VertexCount()
		},
		"edge_count": func() int {
			if obj.Mesh == nil {
				return 0
			}
			return obj.Mesh.EdgeCount()
		},
	}
	for fname, count := range counts {
		count := count
		env.AddFunction(fname, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			return &zygo.SexpInt{Val: int64(count())}, nil
		})
	}

	lists := map[string][]string{
		"material_slots": obj.MaterialSlots,
		"uv_layers":      obj.UVLayers,
	}
	for fname, vals := range lists {
		vals := vals
		env.AddFunction(fname, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			arr := make([]zygo.Sexp, len(vals))
			for i, v := range vals {
				arr[i] = &zygo.SexpStr{S: v}
			}
			return env.NewSexpArray(arr), nil
		})
	}

	env.AddFunction("object_name", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpStr{S: obj.Name}, nil
	})
}
