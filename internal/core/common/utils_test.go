package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Summary string `json:"summary"`
}

func TestParseJSON(t *testing.T) {
	cases := map[string]string{
		"bare":    `{"summary": "ok"}`,
		"fenced":  "```json\n{\"summary\": \"ok\"}\n```",
		"chatter": "Sure! Here it is: {\"summary\": \"ok\"} Let me know.",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseJSON[payload](in)
			require.NoError(t, err)
			assert.Equal(t, "ok", got.Summary)
		})
	}
}

func TestParseJSONErrors(t *testing.T) {
	_, err := ParseJSON[payload]("no json here")
	assert.ErrorContains(t, err, "missing '{'")

	_, err = ParseJSON[payload]("} {")
	assert.ErrorContains(t, err, "missing '}'")

	_, err = ParseJSON[payload](`{"summary": 5}`)
	assert.ErrorContains(t, err, "failed to unmarshal JSON")
}
