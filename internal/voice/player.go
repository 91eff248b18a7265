package voice

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// Player is a local audio playback capability.
type Player interface {
	Load(path string) error
	Play() error
	Busy() bool
}

// ErrNoMedia is returned by Play when nothing has been loaded.
var ErrNoMedia = errors.New("no media loaded")

type playerCommand struct {
	name string
	args []string
}

// candidates are probed in order; the first one on PATH wins.
var candidates = []playerCommand{
	{name: "afplay"},
	{name: "ffplay", args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	{name: "mpg123", args: []string{"-q"}},
	{name: "paplay"},
	{name: "mpv", args: []string{"--no-video", "--really-quiet"}},
}

// CommandPlayer plays files through a command line audio player.
type CommandPlayer struct {
	bin  string
	args []string

	mu      sync.Mutex
	path    string
	running bool
}

// NewCommandPlayer wraps a specific player binary.
func NewCommandPlayer(bin string, args ...string) *CommandPlayer {
	return &CommandPlayer{bin: bin, args: args}
}

// DetectPlayer returns the first player found on PATH, or nil.
func DetectPlayer() Player {
	for _, c := range candidates {
		bin, err := exec.LookPath(c.name)
		if err != nil {
			continue
		}
		return NewCommandPlayer(bin, c.args...)
	}
	return nil
}

// Load selects the file for the next Play.
func (p *CommandPlayer) Load(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	p.mu.Lock()
	p.path = path
	p.mu.Unlock()
	return nil
}

// Play starts playback of the loaded file and returns immediately.
func (p *CommandPlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.path == "" {
		return ErrNoMedia
	}
	if p.running {
		return errors.New("player busy")
	}

	args := append(append([]string{}, p.args...), p.path)
	cmd := exec.Command(p.bin, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", p.bin, err)
	}
	p.running = true
	go func() {
		_ = cmd.Wait()
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()
	return nil
}

// Busy reports whether playback is still running.
func (p *CommandPlayer) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
