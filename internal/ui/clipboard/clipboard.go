// Package clipboard copies text to the system clipboard, picking OSC 52
// escape sequences or native tools based on the session environment.
package clipboard

import (
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Clipboard is the copy surface the board depends on. Tests substitute a
// recording fake.
type Clipboard interface {
	Copy(text string) error
}

// System implements Clipboard against the real environment. Remote and
// GNU screen sessions go through OSC 52 so the copy lands on the machine
// the terminal runs on; everything else uses the platform tool.
type System struct{}

// Copy writes text to the clipboard.
// Priority:
// 1. Local tmux session → native tools (pbcopy/wl-copy/xclip)
// 2. Remote SSH session → OSC 52 escape sequences
// 3. GNU screen → OSC 52 escape sequences
func (System) Copy(text string) error {
	if isLocalTmux() {
		return copyNative(text)
	}

	if isRemoteSession() || isGNUScreen() {
		return copyOSC52(text)
	}

	return copyNative(text)
}

// isLocalTmux returns true if running in tmux without SSH.
func isLocalTmux() bool {
	return os.Getenv("TMUX") != "" && !isRemoteSession()
}

// isRemoteSession returns true if running over SSH.
func isRemoteSession() bool {
	return os.Getenv("SSH_TTY") != "" ||
		os.Getenv("SSH_CLIENT") != "" ||
		os.Getenv("SSH_CONNECTION") != ""
}

// isGNUScreen returns true if running in GNU screen.
func isGNUScreen() bool {
	return os.Getenv("STY") != ""
}

// copyOSC52 copies text using OSC 52 escape sequences.
// When inside tmux, it wraps the sequence in a DCS passthrough.
func copyOSC52(text string) (err error) {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))

	var seq string
	if os.Getenv("TMUX") != "" {
		// tmux passthrough: wrap OSC 52 in DCS sequence
		// \x1bP starts DCS, tmux; identifies passthrough
		// Inner \x1b is doubled to \x1b\x1b
		// \x1b\\ ends DCS
		seq = fmt.Sprintf("\x1bPtmux;\x1b\x1b]52;c;%s\x07\x1b\\", encoded)
	} else {
		seq = fmt.Sprintf("\x1b]52;c;%s\x07", encoded)
	}

	// Write to /dev/tty to bypass stdout redirection and work
	// correctly under Bubble Tea's alt-screen mode
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open /dev/tty: %w", err)
	}
	defer func() {
		if closeErr := tty.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = tty.WriteString(seq)
	return err
}

// copyNative pipes text into the platform clipboard tool.
func copyNative(text string) error {
	cmd := nativeCommand()

	pipe, err := cmd.StdinPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	if _, err := pipe.Write([]byte(text)); err != nil {
		return err
	}

	if err := pipe.Close(); err != nil {
		return err
	}

	return cmd.Wait()
}

// nativeCommand picks the clipboard tool for the platform. Wayland
// sessions prefer wl-copy when it is installed.
func nativeCommand() *exec.Cmd {
	if runtime.GOOS == "darwin" {
		return exec.Command("pbcopy")
	}

	if os.Getenv("WAYLAND_DISPLAY") != "" {
		if _, err := exec.LookPath("wl-copy"); err == nil {
			return exec.Command("wl-copy")
		}
	}

	return exec.Command("xclip", "-selection", "clipboard")
}
