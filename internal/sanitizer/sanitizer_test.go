package sanitizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	s := New(64)

	tests := []struct {
		name  string
		input string
		want  string
		err   error
	}{
		{name: "plain", input: "/*\nBEHAVIOUR: X\n*/", want: "/*\nBEHAVIOUR: X\n*/"},
		{name: "keeps tabs and CRLF", input: "a\tb\r\nc", want: "a\tb\r\nc"},
		{name: "strips escape and NUL", input: "a\x1b[31mb\x00c", want: "a[31mbc"},
		{name: "too large", input: strings.Repeat("x", 65), err: ErrScriptTooLarge},
		{name: "invalid utf8", input: "a\xffb", err: ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Sanitize(tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaxScriptSize(t *testing.T) {
	t.Setenv(EnvMaxScriptSize, "")
	assert.Equal(t, DefaultMaxScriptSize, MaxScriptSize())

	t.Setenv(EnvMaxScriptSize, "128")
	assert.Equal(t, 128, MaxScriptSize())
	assert.Equal(t, 128, New(0).MaxBytes)
	assert.Equal(t, 10, New(10).MaxBytes)

	t.Setenv(EnvMaxScriptSize, "nope")
	assert.Equal(t, DefaultMaxScriptSize, MaxScriptSize())
}
