package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafe_SwallowsPanics(t *testing.T) {
	panicking := SinkFunc(func(string) { panic("sink exploded") })

	require.NotPanics(t, func() {
		Safe(panicking).Log("hello")
	})
}

func TestSafe_NilIsDiscard(t *testing.T) {
	require.NotPanics(t, func() {
		Safe(nil).Log("dropped")
	})
}

func TestSafe_DoesNotDoubleWrap(t *testing.T) {
	rec := &Recorder{}
	once := Safe(rec)
	assert.Equal(t, once, Safe(once))

	once.Log("a")
	assert.Equal(t, []string{"a"}, rec.Messages())
}

func TestSlogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	NewSlogSink(logger, "plugin", "ancre-navigation").Log("INFO")

	assert.Contains(t, buf.String(), "msg=INFO")
	assert.Contains(t, buf.String(), "plugin=ancre-navigation")
}

func TestRecorder_MessagesIsCopy(t *testing.T) {
	rec := &Recorder{}
	rec.Log("one")
	msgs := rec.Messages()
	msgs[0] = "changed"

	assert.Equal(t, []string{"one"}, rec.Messages())
}
