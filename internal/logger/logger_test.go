package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetVerbose(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(true)
	assert.True(t, Verbose())

	SetVerbose(false)
	assert.False(t, Verbose())
}

func TestDebug_SuppressedWhenNotVerbose(t *testing.T) {
	defer SetVerbose(false)

	buf := new(bytes.Buffer)
	oldWriter := log.Writer()
	log.SetOutput(buf)
	defer log.SetOutput(oldWriter)

	SetVerbose(false)
	Debug("hidden %s", "message")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debug("visible %s", "message")
	assert.Contains(t, buf.String(), "DEBUG visible message")
}

func TestWarn_AlwaysLogged(t *testing.T) {
	buf := new(bytes.Buffer)
	oldWriter := log.Writer()
	log.SetOutput(buf)
	defer log.SetOutput(oldWriter)

	Warn("careful: %d", 42)
	assert.Contains(t, buf.String(), "WARN careful: 42")
}
