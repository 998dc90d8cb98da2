package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)

	logger := New("test")
	SetLevel(Warning)
	logger.Infof("hidden %d", 1)
	logger.Warningf("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden 1")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "[test]")

	SetLevel(Debug)
	logger.Debugf("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestOrDefault(t *testing.T) {
	custom := New("custom")
	assert.Equal(t, custom, OrDefault(custom, "other"))
	assert.NotNil(t, OrDefault(nil, "fallback"))
}
