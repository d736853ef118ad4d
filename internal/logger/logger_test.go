package logger

import (
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, ParseLevel("debug"), zerolog.DebugLevel)
	assert.Equal(t, ParseLevel(" WARN "), zerolog.WarnLevel)
	assert.Equal(t, ParseLevel("error"), zerolog.ErrorLevel)
	assert.Equal(t, ParseLevel(""), zerolog.InfoLevel)
	assert.Equal(t, ParseLevel("verbose"), zerolog.InfoLevel)
}
