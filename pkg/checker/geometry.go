package checker

import (
	"fmt"
	"strings"

	"meshlint/pkg/issue"
	"meshlint/pkg/mesh"
	"meshlint/pkg/scene"
)

// GeometryConfig tunes the geometry checker.
type GeometryConfig struct {
	// MaxFaceVerts is the largest face that is not reported as an
	// n-gon. 4 keeps quads and flags everything larger.
	MaxFaceVerts int `yaml:"max_face_verts"`
	// SmallFaceArea is the area below which a face is reported as
	// degenerate-small.
	SmallFaceArea float64 `yaml:"small_face_area"`
}

// DefaultGeometryConfig returns the documented thresholds.
func DefaultGeometryConfig() GeometryConfig {
	return GeometryConfig{
		MaxFaceVerts:  4,
		SmallFaceArea: 1e-4,
	}
}

// Geometry flags n-gons, loose geometry, and tiny faces.
type Geometry struct {
	cfg GeometryConfig
}

// NewGeometry creates the geometry checker.
func NewGeometry(cfg GeometryConfig) *Geometry {
	if cfg.MaxFaceVerts <= 0 {
		cfg.MaxFaceVerts = DefaultGeometryConfig().MaxFaceVerts
	}
	if cfg.SmallFaceArea <= 0 {
		cfg.SmallFaceArea = DefaultGeometryConfig().SmallFaceArea
	}
	return &Geometry{cfg: cfg}
}

func (c *Geometry) Name() string { return "geometry" }

func (c *Geometry) Check(obj *scene.Object) ([]issue.Issue, error) {
	snap := obj.Mesh
	if snap == nil || snap.IsEmpty() {
		return nil, nil
	}

	var issues []issue.Issue

	var ngons []int
	for fi, f := range snap.Faces {
		if len(f.Verts) > c.cfg.MaxFaceVerts {
			ngons = append(ngons, fi)
		}
	}
	if len(ngons) > 0 {
		found, err := issue.New(issue.Issue{
			ID:       issue.IDNgons,
			Severity: issue.SeverityWarning,
			Category: "N-gons",
			Object:   obj.Name,
			Message:  fmt.Sprintf("%d faces", len(ngons)),
			Hint:     "Triangulate or quadrangulate the flagged faces",
			Select:   issue.FaceSelection{Indices: ngons, Focus: ngons[0]},
		})
		if err != nil {
			return nil, err
		}
		issues = append(issues, found)
	}

	looseVerts, looseEdges := findLoose(snap)
	if len(looseVerts) > 0 || len(looseEdges) > 0 {
		var parts []string
		if len(looseVerts) > 0 {
			parts = append(parts, fmt.Sprintf("%d verts", len(looseVerts)))
		}
		if len(looseEdges) > 0 {
			parts = append(parts, fmt.Sprintf("%d edges", len(looseEdges)))
		}
		found, err := issue.New(issue.Issue{
			ID:       issue.IDLooseGeometry,
			Severity: issue.SeverityWarning,
			Category: "Loose Geometry",
			Object:   obj.Name,
			Message:  strings.Join(parts, ", "),
			Hint:     "Delete loose vertices and edges",
			Select:   issue.LooseSelection{Verts: looseVerts, Edges: looseEdges},
		})
		if err != nil {
			return nil, err
		}
		issues = append(issues, found)
	}

	var small []int
	for fi, f := range snap.Faces {
		if f.Area < c.cfg.SmallFaceArea {
			small = append(small, fi)
		}
	}
	if len(small) > 0 {
		found, err := issue.New(issue.Issue{
			ID:       issue.IDSmallFaces,
			Severity: issue.SeverityInfo,
			Category: "Small Faces",
			Object:   obj.Name,
			Message:  fmt.Sprintf("%d faces", len(small)),
			Hint:     "Merge near-coincident vertices",
			Select:   issue.FaceSelection{Indices: small, Focus: small[0]},
		})
		if err != nil {
			return nil, err
		}
		issues = append(issues, found)
	}

	return issues, nil
}

// findLoose returns vertices that are an endpoint of no edge and
// edges bounded by no face (wire edges).
func findLoose(snap *mesh.Snapshot) (verts []int, edges []int) {
	used := make([]bool, snap.VertexCount())
	for ei, e := range snap.Edges {
		used[e.A] = true
		used[e.B] = true
		if len(e.Faces) == 0 {
			edges = append(edges, ei)
		}
	}
	for vi, ok := range used {
		if !ok {
			verts = append(verts, vi)
		}
	}
	return verts, edges
}
