package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Wire schemas of the KRS (mojepanstwo) API. Fields tagged required are the
// ones the pipeline reads; anything else in the payload is passed through as
// node attributes.

// RegistryID accepts both JSON strings and numbers, the API uses both.
type RegistryID string

func (id *RegistryID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RegistryID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("registry id must be a string or number, got %s", data)
	}
	*id = RegistryID(n.String())
	return nil
}

type SearchResponse struct {
	Dataobject []SearchObject `json:"Dataobject" validate:"required,dive"`
}

type SearchObject struct {
	ID   RegistryID  `json:"id" validate:"required"`
	Data *PersonData `json:"data" validate:"required"`
}

// PersonData names are pointers so that an empty name is accepted while a
// missing key is still a schema error.
type PersonData struct {
	GivenNames  *string `json:"krs_osoby.imiona" validate:"required"`
	FamilyName  *string `json:"krs_osoby.nazwisko" validate:"required"`
	DateOfBirth string  `json:"krs_osoby.data_urodzenia"`
}

func (p *PersonData) FullName() string {
	return strings.TrimSpace(deref(p.GivenNames) + " " + deref(p.FamilyName))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Candidates numbers the hits from 1 in response order.
func (r *SearchResponse) Candidates() []Candidate {
	out := make([]Candidate, 0, len(r.Dataobject))
	for i, obj := range r.Dataobject {
		out = append(out, Candidate{
			No:          i + 1,
			ID:          string(obj.ID),
			Name:        obj.Data.FullName(),
			DateOfBirth: obj.Data.DateOfBirth,
		})
	}
	return out
}

type Detail struct {
	ID     RegistryID `json:"id"`
	Layers *Layers    `json:"layers" validate:"required"`
}

type Layers struct {
	Graph *GraphLayer `json:"graph" validate:"required"`
}

type GraphLayer struct {
	Nodes         []DetailNode   `json:"nodes" validate:"required,dive"`
	Relationships []Relationship `json:"relationships" validate:"required,dive"`
}

// DetailNode data is only checked by the builder, and only for nodes it
// keeps; unmarked nodes may carry no data at all.
type DetailNode struct {
	ID   RegistryID             `json:"id" validate:"required"`
	Data map[string]interface{} `json:"data"`
}

// Field returns the string value of key in the node data.
func (n DetailNode) Field(key string) (string, bool) {
	v, ok := n.Data[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	default:
		return fmt.Sprint(t), true
	}
}

type Relationship struct {
	Start RegistryID `json:"start" validate:"required"`
	End   RegistryID `json:"end" validate:"required"`
	Type  string     `json:"type"`
}
