package voice

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener hands a file to the operating system's default handler.
type Opener interface {
	Open(path string) error
}

// SystemOpener launches the platform open command without waiting for it.
type SystemOpener struct{}

func openCommand(goos, path string) *exec.Cmd {
	switch goos {
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path)
	case "darwin":
		return exec.Command("open", path)
	default:
		return exec.Command("xdg-open", path)
	}
}

// Open implements Opener.
func (SystemOpener) Open(path string) error {
	cmd := openCommand(runtime.GOOS, path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
