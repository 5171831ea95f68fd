package utils

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown_PlainWhenNoTheme(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, RenderMarkdown(&out, "# Title\n\nbody", ""))
	assert.Equal(t, "# Title\n\nbody\n", out.String())
}

func TestRenderMarkdown_HighlightedEndsWithNewline(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, RenderMarkdown(&out, "# Title", "dracula"))
	assert.NotEmpty(t, out.String())
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestConfirmPrompt(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"whatever\n", false},
	}

	for _, tt := range tests {
		reader := bufio.NewReader(strings.NewReader(tt.input))
		got, err := ConfirmPrompt("continue?", reader)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestLoadIgnoreRules(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "ignore_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	assert.Nil(t, LoadIgnoreRules(tempDir))

	require.NoError(t, os.WriteFile(filepath.Join(tempDir, IgnoreFileName), []byte("*.log\n"), 0644))

	rules := LoadIgnoreRules(tempDir)
	require.NotNil(t, rules)

	match := rules.Relative("debug.log", false)
	require.NotNil(t, match)
	assert.True(t, match.Ignore())

	assert.Nil(t, rules.Relative("app.py", false))
}
