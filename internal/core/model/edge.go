package model

// GraphEdge is undirected; Source/Target only record the order the registry
// listed the endpoints in.
type GraphEdge struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Relation string `json:"relation"`
}
