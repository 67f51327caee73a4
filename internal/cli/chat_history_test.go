package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadInputHistory_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "chat_history")
	assert.Nil(t, loadInputHistory(path))
	assert.Nil(t, loadInputHistory(""))
}

func TestLoadInputHistory_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat_history")
	require.NoError(t, os.WriteFile(path, []byte("remind me at 9pm\n\n  good morning  \n"), 0o600))

	assert.Equal(t, []string{"remind me at 9pm", "good morning"}, loadInputHistory(path))
}

func TestLoadInputHistory_KeepsMostRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat_history")
	var b strings.Builder
	for i := 0; i < 600; i++ {
		b.WriteString("line\n")
	}
	b.WriteString("last\n")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))

	lines := loadInputHistory(path)
	assert.Len(t, lines, maxHistoryLines)
	assert.Equal(t, "last", lines[len(lines)-1])
}

func TestAppendInputHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "chat_history")

	appendInputHistory(path, "first")
	appendInputHistory(path, "   ")
	appendInputHistory(path, " second ")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}
