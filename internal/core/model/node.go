package model

import "fmt"

type NodeKind int

const (
	KindEgo NodeKind = iota
	KindPerson
	KindInstitution
)

// Group returns the group name the visualization page colours nodes by.
func (k NodeKind) Group() string {
	switch k {
	case KindEgo:
		return "ego"
	case KindPerson:
		return "osoba"
	case KindInstitution:
		return "podmiot"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k NodeKind) String() string {
	switch k {
	case KindEgo:
		return "ego-person"
	case KindPerson:
		return "other-person"
	case KindInstitution:
		return "institution"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// KindFromGroup is the inverse of Group.
func KindFromGroup(group string) (NodeKind, bool) {
	switch group {
	case "ego":
		return KindEgo, true
	case "osoba":
		return KindPerson, true
	case "podmiot":
		return KindInstitution, true
	}
	return 0, false
}

// GraphNode is the in-memory node. Its wire form is produced by
// Graph.NodeLink, not by marshalling this struct.
type GraphNode struct {
	ID         string
	Kind       NodeKind
	Label      string
	Attributes map[string]interface{}
	// Extra holds enrichment values (community index etc.) that are written
	// next to id/name/group in the node-link output.
	Extra map[string]interface{}
}

// Candidate is one search hit offered to the operator.
type Candidate struct {
	No          int    `json:"no"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
}
