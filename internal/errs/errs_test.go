package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("boom"), 1},
		{"config", Config("config.Load", errors.New("bad")), 2},
		{"search", Search("registry.Search", errors.New("dns")), 3},
		{"selection", Selection("console.Select", &InvalidSelectionError{Index: 9, Count: 2}), 4},
		{"fetch", Fetch("registry.Fetch", errors.New("503")), 5},
		{"build", Build("builder.Build", errors.New("bad node")), 6},
		{"export", Export("driver.ExportGraph", errors.New("bolt")), 7},
		{"server", Server("server.Run", errors.New("bind")), 8},
		{"wrapped", fmt.Errorf("run: %w", Fetch("registry.Fetch", errors.New("x"))), 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExitCode(tc.err))
		})
	}
}

func TestErrorIsMatchesKind(t *testing.T) {
	err := Fetch("registry.Fetch", errors.New("timeout"))

	assert.True(t, errors.Is(err, &Error{Kind: KindFetch}))
	assert.True(t, errors.Is(err, &Error{Kind: KindFetch, Op: "registry.Fetch"}))
	assert.False(t, errors.Is(err, &Error{Kind: KindSearch}))
	assert.False(t, errors.Is(err, &Error{Kind: KindFetch, Op: "registry.Search"}))
}

func TestErrorUnwrapsToCause(t *testing.T) {
	cause := &SchemaError{Schema: "detail", Field: "layers.graph"}
	err := Fetch("registry.Fetch", fmt.Errorf("failed to decode detail: %w", cause))

	var schemaErr *SchemaError
	assert.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "layers.graph", schemaErr.Field)
	assert.Contains(t, err.Error(), "fetch error")
	assert.Contains(t, err.Error(), "missing field layers.graph")
}

func TestInvalidSelectionMessages(t *testing.T) {
	assert.Equal(t, "invalid selection 5: expected a number between 1 and 3",
		(&InvalidSelectionError{Index: 5, Count: 3}).Error())
	assert.Equal(t, "invalid selection 1: no candidates to choose from",
		(&InvalidSelectionError{Index: 1}).Error())
	assert.Equal(t, `invalid selection "abc": expected a number between 1 and 3`,
		(&InvalidSelectionError{Input: "abc", Count: 3}).Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("x")))
	assert.Equal(t, KindServer, KindOf(Server("server.Run", nil)))
}
