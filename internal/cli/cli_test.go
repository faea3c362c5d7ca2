package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGenerate(t *testing.T) {
	var out bytes.Buffer
	config, shouldExit, err := Parse([]string{
		"generate",
		"-blueprint", "bp",
		"-templates", "tpl",
		"-out", "dest",
		"-answers", "answers.yml",
		"-set", "database=sqlite",
		"-set", "use_channels=true",
	}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "bp", config.BlueprintPath)
	assert.Equal(t, "tpl", config.TemplateRoot)
	assert.Equal(t, "dest", config.OutputPath)
	assert.Equal(t, "answers.yml", config.AnswersPath)
	assert.Equal(t, []string{"database=sqlite", "use_channels=true"}, config.SetPairs)
	assert.Equal(t, 8, config.Workers)
}

func TestParseNoArgsShowsUsage(t *testing.T) {
	var out bytes.Buffer
	_, shouldExit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"deploy"}, &out)
	require.Error(t, err)

	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParseMissingRequiredFlags(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"generate", "-blueprint", "bp"}, &out)
	require.Error(t, err)

	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParseRejectsBadLogSettings(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{
		"generate", "-blueprint", "b", "-templates", "t", "-out", "o",
		"-log-format", "xml",
	}, &out)
	require.Error(t, err)

	_, _, err = Parse([]string{
		"generate", "-blueprint", "b", "-templates", "t", "-out", "o",
		"-log-level", "loud",
	}, &out)
	require.Error(t, err)
}

func TestExitCodeForKind(t *testing.T) {
	assert.Equal(t, 3, ExitCodeForKind("validation_error"))
	assert.Equal(t, 4, ExitCodeForKind("consistency_error"))
	assert.Equal(t, 5, ExitCodeForKind("render_error"))
	assert.Equal(t, 6, ExitCodeForKind("io_error"))
	assert.Equal(t, 1, ExitCodeForKind("something_else"))
}
