package voice

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakePlayerOnPath(t *testing.T, name string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script players are not supported on windows")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	t.Setenv("PATH", dir)
	return bin
}

func TestDetectPlayer(t *testing.T) {
	bin := fakePlayerOnPath(t, "mpg123")

	p := DetectPlayer()
	require.NotNil(t, p)
	cp, ok := p.(*CommandPlayer)
	require.True(t, ok)
	assert.Equal(t, bin, cp.bin)
	assert.Equal(t, []string{"-q"}, cp.args)
}

func TestDetectPlayerNone(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	assert.Nil(t, DetectPlayer())
}

func TestCommandPlayerPlays(t *testing.T) {
	bin := fakePlayerOnPath(t, "afplay")
	media := filepath.Join(t.TempDir(), "a.mp3")
	require.NoError(t, os.WriteFile(media, []byte("ID3"), 0o600))

	p := NewCommandPlayer(bin)
	require.NoError(t, p.Load(media))
	require.NoError(t, p.Play())
	assert.Eventually(t, func() bool { return !p.Busy() }, 2*time.Second, 10*time.Millisecond)
}

func TestCommandPlayerErrors(t *testing.T) {
	p := NewCommandPlayer("/nonexistent/player")
	assert.ErrorIs(t, p.Play(), ErrNoMedia)
	assert.Error(t, p.Load(filepath.Join(t.TempDir(), "missing.mp3")))

	media := filepath.Join(t.TempDir(), "a.mp3")
	require.NoError(t, os.WriteFile(media, []byte("ID3"), 0o600))
	require.NoError(t, p.Load(media))
	assert.Error(t, p.Play())
	assert.False(t, p.Busy())
}

func TestOpenCommand(t *testing.T) {
	assert.Equal(t, []string{"cmd", "/c", "start", "", "f.mp3"}, openCommand("windows", "f.mp3").Args)
	assert.Equal(t, []string{"open", "f.mp3"}, openCommand("darwin", "f.mp3").Args)
	assert.Equal(t, []string{"xdg-open", "f.mp3"}, openCommand("linux", "f.mp3").Args)
}
