package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicat/aicat-tui/config"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestRunRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.jsonl")
	data := `{"role":"user","content":"hi there"}
{"role":"assistant","content":"hello back"}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	var out bytes.Buffer
	require.NoError(t, runRender(&out, []string{"--width", "60", path}, config.Default()))
	assert.Contains(t, out.String(), "hi there")
	assert.Contains(t, out.String(), "hello back")
	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 60, "line too wide: %q", line)
	}
}

func TestRunRenderMissingFile(t *testing.T) {
	var out bytes.Buffer
	err := runRender(&out, []string{filepath.Join(t.TempDir(), "nope.json")}, config.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open transcript")
}

func TestRunPreview(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runPreview(&out, config.Default()))
	s := out.String()
	assert.Contains(t, s, "you are beautiful")
	assert.Contains(t, s, "RequestTime out")
	assert.Contains(t, s, "print")
}

func TestProfileDirPath(t *testing.T) {
	assert.Equal(t, ".aicat", filepath.Base(profileDirPath("")))
	p := profileDirPath("work")
	assert.Equal(t, "work", filepath.Base(p))
	assert.Equal(t, "profiles", filepath.Base(filepath.Dir(p)))
}
