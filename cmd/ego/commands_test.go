package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/egograph/internal/console"
	"github.com/agenthands/egograph/internal/core/model"
	"github.com/agenthands/egograph/internal/errs"
)

func TestChooseCandidate(t *testing.T) {
	candidates := []model.Candidate{{No: 1, ID: "101"}, {No: 2, ID: "202"}}

	var out bytes.Buffer
	id, err := chooseCandidate(true, 2, console.NewPrompter(strings.NewReader(""), &out), candidates)
	require.NoError(t, err)
	assert.Equal(t, "202", id)
	assert.Empty(t, out.String())

	id, err = chooseCandidate(false, 0, console.NewPrompter(strings.NewReader("1\n"), &out), candidates)
	require.NoError(t, err)
	assert.Equal(t, "101", id)
	assert.Equal(t, console.IndexPrompt, out.String())
}

func TestChooseCandidateExplicitZero(t *testing.T) {
	candidates := []model.Candidate{{No: 1, ID: "101"}}

	var out bytes.Buffer
	_, err := chooseCandidate(true, 0, console.NewPrompter(strings.NewReader("1\n"), &out), candidates)

	var sel *errs.InvalidSelectionError
	require.True(t, errors.As(err, &sel))
	assert.Equal(t, 0, sel.Index)
	assert.Equal(t, 4, errs.ExitCode(err))
	assert.Empty(t, out.String())
}

func TestSelectFlagChanged(t *testing.T) {
	defer func() { selection = 0 }()
	flag := rootCmd.Flags().Lookup("select")
	require.NotNil(t, flag)
	defer func() { flag.Changed = false }()

	require.NoError(t, rootCmd.Flags().Set("select", "0"))
	assert.True(t, rootCmd.Flags().Changed("select"))
	assert.Equal(t, 0, selection)
}
