// Package logging_test tests verbosity mapping and the zerolog diagnostic sink.
// Related: internal/logging/logging.go, internal/diag/diag.go
// Tags: logging, zerolog, diagnostics, verbosity

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/changelog/internal/diag"
)

func TestLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		verbosity int
		want      zerolog.Level
	}{
		"no flag":    {verbosity: 0, want: zerolog.FatalLevel},
		"negative":   {verbosity: -1, want: zerolog.FatalLevel},
		"-v":         {verbosity: 1, want: zerolog.ErrorLevel},
		"-vv":        {verbosity: 2, want: zerolog.WarnLevel},
		"-vvv":       {verbosity: 3, want: zerolog.InfoLevel},
		"-vvvv":      {verbosity: 4, want: zerolog.DebugLevel},
		"-vvvvv":     {verbosity: 5, want: zerolog.TraceLevel},
		"beyond max": {verbosity: 9, want: zerolog.TraceLevel},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Level(tt.verbosity))
		})
	}
}

func TestSink_Fields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sink := Sink(zerolog.New(&buf))

	sink.Emit(diag.Event{
		Level:      diag.LevelWarn,
		Reason:     diag.ReasonUnknownKind,
		Message:    "kind is not configured",
		Repository: "api",
		Hash:       "abc1234",
		Kind:       "chore",
	})

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "warn", got["level"])
	assert.Equal(t, "unknown-kind", got["reason"])
	assert.Equal(t, "kind is not configured", got["message"])
	assert.Equal(t, "api", got["repository"])
	assert.Equal(t, "abc1234", got["hash"])
	assert.Equal(t, "chore", got["kind"])
	assert.NotContains(t, got, "scope", "empty fields are omitted")
	assert.NotContains(t, got, "tag")
}

func TestSink_LevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sink := Sink(zerolog.New(&buf).Level(Level(2)))

	sink.Emit(diag.Event{Level: diag.LevelInfo, Reason: diag.ReasonMergeCommit, Message: "skip merge commit"})
	assert.Empty(t, buf.String())

	sink.Emit(diag.Event{Level: diag.LevelError, Reason: diag.ReasonUnparseable, Message: "could not parse"})
	assert.Contains(t, buf.String(), "could not parse")
}

func TestNew_Console(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, 3, true)

	logger.Debug().Msg("hidden")
	logger.Info().Str("repository", "api").Msg("walking history")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "walking history")
	assert.Contains(t, out, "repository=api")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestGitDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	hook := GitDebug(zerolog.New(&buf).Level(zerolog.DebugLevel))
	hook("[git] %d commits", 3)

	assert.Contains(t, buf.String(), "[git] 3 commits")
}
