package builder

import (
	"fmt"
	"strings"

	"github.com/agenthands/egograph/internal/core/model"
	"github.com/agenthands/egograph/internal/errs"
)

const (
	DefaultPersonMarker      = "osoba"
	DefaultInstitutionMarker = "podmiot"
)

// Builder maps the registry graph layer onto model.Graph.
type Builder struct {
	PersonMarker      string
	InstitutionMarker string
}

func New(personMarker, institutionMarker string) *Builder {
	if personMarker == "" {
		personMarker = DefaultPersonMarker
	}
	if institutionMarker == "" {
		institutionMarker = DefaultInstitutionMarker
	}
	return &Builder{
		PersonMarker:      personMarker,
		InstitutionMarker: institutionMarker,
	}
}

// Build classifies every node of the detail's graph layer and adds one edge
// per relationship. Nodes carrying neither marker are skipped; relationships
// are kept even when an endpoint was skipped.
func (b *Builder) Build(detail *model.Detail, subjectID string) (*model.Graph, error) {
	const op = "builder.Build"

	if detail == nil || detail.Layers == nil || detail.Layers.Graph == nil {
		return nil, errs.Build(op, &errs.SchemaError{Schema: "detail", Field: "layers.graph"})
	}

	g := model.NewGraph()
	g.Meta["subject"] = subjectID

	for _, node := range detail.Layers.Graph.Nodes {
		id := string(node.ID)

		switch {
		case strings.Contains(id, b.PersonMarker):
			label, err := personLabel(node)
			if err != nil {
				return nil, errs.Build(op, err)
			}
			kind := model.KindPerson
			if b.isSubject(id, subjectID) {
				kind = model.KindEgo
			}
			g.AddNode(model.GraphNode{ID: id, Kind: kind, Label: label, Attributes: node.Data})

		case strings.Contains(id, b.InstitutionMarker):
			name, ok := node.Field("nazwa")
			if !ok {
				return nil, errs.Build(op, &errs.SchemaError{Schema: "detail", Field: fmt.Sprintf("nodes[%s].data.nazwa", id)})
			}
			g.AddNode(model.GraphNode{ID: id, Kind: model.KindInstitution, Label: name, Attributes: node.Data})
		}
	}

	for _, rel := range detail.Layers.Graph.Relationships {
		g.AddEdge(string(rel.Start), string(rel.End), rel.Type)
	}

	return g, nil
}

// isSubject accepts the bare registry id as well as the marker-prefixed form
// the graph layer uses ("osoba:1", "osoba1", "osoba_1").
func (b *Builder) isSubject(nodeID, subjectID string) bool {
	if subjectID == "" {
		return false
	}
	if nodeID == subjectID {
		return true
	}
	rest, ok := strings.CutPrefix(nodeID, b.PersonMarker)
	if !ok {
		return false
	}
	if len(rest) > 0 && strings.ContainsRune(":_-/", rune(rest[0])) {
		rest = rest[1:]
	}
	return rest == subjectID
}

func personLabel(node model.DetailNode) (string, error) {
	given, ok := node.Field("imiona")
	if !ok {
		return "", &errs.SchemaError{Schema: "detail", Field: fmt.Sprintf("nodes[%s].data.imiona", node.ID)}
	}
	family, ok := node.Field("nazwisko")
	if !ok {
		return "", &errs.SchemaError{Schema: "detail", Field: fmt.Sprintf("nodes[%s].data.nazwisko", node.ID)}
	}
	return given + " " + family, nil
}
