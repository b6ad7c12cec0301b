package pagewire

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmercer/pagewire/pkg/pagewire/config"
	"github.com/dmercer/pagewire/pkg/pagewire/sched"
)

func TestNearestIDSuggestion(t *testing.T) {
	doc := parseDoc(t, fullPage)
	s := New(doc, sched.NewManual())

	assert.Equal(t, "services", s.nearestID("servces"))
	assert.Equal(t, "contact", s.nearestID("contcat"))
	assert.Equal(t, "", s.nearestID("completely-unrelated"), "too far for a hint")
}

func TestSelectorMissLogsSuggestion(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	doc := parseDoc(t, fullPage)
	s := New(doc, sched.NewManual(), WithLogger(logger))
	_, err := s.Init(config.New(map[string]any{
		"contactFormSelector": "#contcat-form",
	}))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "#contcat-form")
	assert.Contains(t, out, "did_you_mean")
	assert.Contains(t, out, "#contact-form")
}

func TestSelectorMissSilentWithoutLogger(t *testing.T) {
	doc := parseDoc(t, fullPage)
	s := New(doc, sched.NewManual())
	// No logger configured; the miss path must not blow up.
	s.logSelectorMiss("nav", "#whatever")
}
