package checker

import (
	"fmt"
	"sort"

	"meshlint/pkg/issue"
	"meshlint/pkg/mesh"
	"meshlint/pkg/scene"
)

// OrientationConfig tunes the open-mesh winding-consistency test. The
// thresholds are product tuning, not derived constants; the defaults
// are the documented behavior and tests assert these exact boundaries.
type OrientationConfig struct {
	// SameWindingRatio is the minimum share of a face's shared edges
	// that must disagree with their neighbor before a well-connected
	// face (degree >= 2) is flagged.
	SameWindingRatio float64 `yaml:"same_winding_ratio"`
}

// DefaultOrientationConfig returns the documented thresholds.
func DefaultOrientationConfig() OrientationConfig {
	return OrientationConfig{SameWindingRatio: 0.5}
}

// Orientation detects flipped and inconsistently wound faces. A
// topologically closed mesh has a well-defined outside, so its faces
// are tested absolutely against the centroid-to-face direction. An
// open mesh has no outside; its faces are tested relative to their
// neighbors' winding across shared edges.
type Orientation struct {
	cfg OrientationConfig
}

// NewOrientation creates the face-orientation checker.
func NewOrientation(cfg OrientationConfig) *Orientation {
	if cfg.SameWindingRatio <= 0 {
		cfg = DefaultOrientationConfig()
	}
	return &Orientation{cfg: cfg}
}

func (c *Orientation) Name() string { return "orientation" }

// Check classifies the mesh as closed or open and runs the matching
// detector. A mesh with zero faces produces no findings. The
// classification is recomputed from the snapshot on every call.
func (c *Orientation) Check(obj *scene.Object) ([]issue.Issue, error) {
	snap := obj.Mesh
	if snap == nil || snap.IsEmpty() {
		return nil, nil
	}

	if isClosed(snap) {
		flipped, focus := detectFlippedClosed(snap)
		if len(flipped) == 0 {
			return nil, nil
		}
		found, err := issue.New(issue.Issue{
			ID:       issue.IDFlippedFaces,
			Severity: issue.SeverityWarning,
			Category: "Face Orientation",
			Object:   obj.Name,
			Message:  fmt.Sprintf("%d flipped faces (closed mesh)", len(flipped)),
			Hint:     "Flip the flagged faces so their normals point outward",
			Select: issue.FaceSelection{
				Indices:  flipped,
				Focus:    focus,
				MeshType: issue.MeshClosed,
				Priority: 1,
			},
		})
		if err != nil {
			return nil, err
		}
		return []issue.Issue{found}, nil
	}

	inconsistent, focus := detectInconsistentOpen(snap, c.cfg)
	if len(inconsistent) == 0 {
		return nil, nil
	}
	// Severity stays WARNING for open meshes too; fixed product
	// decision, intentional parity with the closed-mesh finding.
	found, err := issue.New(issue.Issue{
		ID:       issue.IDFlippedFaces,
		Severity: issue.SeverityWarning,
		Category: "Face Orientation",
		Object:   obj.Name,
		Message:  fmt.Sprintf("%d inconsistent faces (open mesh)", len(inconsistent)),
		Hint:     "Recalculate normals so neighboring faces wind consistently",
		Select: issue.FaceSelection{
			Indices:  inconsistent,
			Focus:    focus,
			MeshType: issue.MeshOpen,
			Priority: 2,
		},
	})
	if err != nil {
		return nil, err
	}
	return []issue.Issue{found}, nil
}

// isClosed reports whether every edge bounds exactly two faces. An
// edge with 0, 1, or more than 2 incident faces makes the mesh open;
// non-manifold edges are deliberately folded into "open" rather than
// treated as a separate finding.
func isClosed(s *mesh.Snapshot) bool {
	if s.FaceCount() == 0 {
		return false
	}
	for _, e := range s.Edges {
		if len(e.Faces) != 2 {
			return false
		}
	}
	return true
}

// detectFlippedClosed runs the absolute centroid-ray test. A face is
// flipped when its world-space normal points back toward the mesh
// centroid. The focus face is the most strongly inward-pointing one;
// it is listed first, with the rest in discovery order.
func detectFlippedClosed(s *mesh.Snapshot) ([]int, int) {
	centroid := s.Centroid()

	var flipped []int
	focus := -1
	worst := 1.0

	for fi := range s.Faces {
		direction := s.WorldCenter(fi).Sub(centroid)
		if direction.Length() == 0 {
			// Face center coincides with the mesh centroid; no verdict.
			continue
		}
		direction = direction.Normalize()

		d := s.WorldNormal(fi).Dot(direction)
		if d < 0 {
			flipped = append(flipped, fi)
			if d < worst {
				worst = d
				focus = fi
			}
		}
	}

	if focus == -1 && len(flipped) > 0 {
		focus = flipped[0]
	}
	if focus >= 0 {
		ordered := make([]int, 0, len(flipped))
		ordered = append(ordered, focus)
		for _, fi := range flipped {
			if fi != focus {
				ordered = append(ordered, fi)
			}
		}
		flipped = ordered
	}

	return flipped, focus
}

// detectInconsistentOpen runs the relative winding test. Two faces
// sharing an edge are consistently oriented when they traverse that
// edge in opposite directions; traversing it the same way raises both
// faces' same-winding score. Faces are flagged on a two-tier
// threshold: majority disagreement for faces with two or more shared
// edges, or a single disagreeing edge when that edge is the face's
// only connection. The tiers catch a lone mismatched neighbor without
// letting one noisy adjacency flag a well-connected face.
func detectInconsistentOpen(s *mesh.Snapshot, cfg OrientationConfig) ([]int, int) {
	if s.FaceCount() == 0 {
		return nil, -1
	}

	score := make([]int, s.FaceCount())
	degree := make([]int, s.FaceCount())

	for _, e := range s.Edges {
		if len(e.Faces) != 2 {
			// Boundary and non-manifold edges carry no winding signal.
			continue
		}
		f1, f2 := e.Faces[0], e.Faces[1]
		w1 := s.Winding(f1, e.A, e.B)
		w2 := s.Winding(f2, e.A, e.B)
		if w1 == 0 || w2 == 0 {
			continue
		}

		degree[f1]++
		degree[f2]++

		if w1 == w2 {
			score[f1]++
			score[f2]++
		}
	}

	var inconsistent []int
	for fi := range score {
		deg := degree[fi]
		if deg == 0 {
			// Isolated or boundary-only face; not evaluated.
			continue
		}
		ratio := float64(score[fi]) / float64(deg)
		if (deg >= 2 && ratio >= cfg.SameWindingRatio && score[fi] >= 1) ||
			(deg == 1 && score[fi] == 1) {
			inconsistent = append(inconsistent, fi)
		}
	}

	focus := -1
	if len(inconsistent) > 0 {
		sort.Slice(inconsistent, func(i, j int) bool {
			a, b := inconsistent[i], inconsistent[j]
			if score[a] != score[b] {
				return score[a] > score[b]
			}
			return a < b
		})
		focus = inconsistent[0]
	}

	return inconsistent, focus
}
