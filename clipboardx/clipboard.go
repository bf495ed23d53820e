// Package clipboardx provides the system clipboard handle threaded through
// the editor as an explicit singleton (per the design note on global
// clipboard/logger state), rather than package-level functions backed by a
// hidden global.
package clipboardx

import (
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
)

// historyLimit bounds the in-process fallback ring so a session that never
// has OS clipboard access (no X11/Wayland/OSC52 target available) still
// keeps more than the single last value — cut/copy sequences without an
// intervening paste are common enough to be worth a short history.
const historyLimit = 20

// Clipboard is the process-wide handle to the system clipboard, acquired
// once at startup and passed into the editor's constructor. Write attempts
// the OS clipboard, clipboard-managing CLI tools, and an OSC 52 terminal
// escape in turn; Read tries the OS clipboard and then the CLI tools,
// falling back to the in-process history when neither returns text (e.g. a
// bare SSH session with no clipboard utility installed).
type Clipboard struct {
	mu      sync.Mutex
	history []string
}

// Open acquires the clipboard handle. There is no OS resource held open
// between calls — every Write/Read shells out or calls cgo bindings fresh
// — but Open/Close gives the editor one lifecycle-managed value to thread
// through its constructor instead of reaching for package-level state.
func Open() *Clipboard {
	return &Clipboard{}
}

// Close releases the handle. Kept symmetric with Open so call sites and
// teardown ordering read the same way as the logger's Open/Close, even
// though there is nothing to flush today.
func (c *Clipboard) Close() {}

// Write pushes text to every clipboard mechanism available in this
// environment and records it in the fallback history regardless of
// whether any of them succeeded.
func (c *Clipboard) Write(text string) bool {
	c.mu.Lock()
	c.pushHistory(text)
	c.mu.Unlock()

	ok := false
	if err := clipboard.WriteAll(text); err == nil {
		ok = true
	}
	if writeWithCommands(text) {
		ok = true
	}
	if writeOSC52(text) {
		ok = true
	}
	return ok
}

// Read returns the OS clipboard contents, falling back to the CLI tools
// and then to the most recent value this process itself wrote (covering
// headless environments with no clipboard integration at all).
func (c *Clipboard) Read() string {
	if text, err := clipboard.ReadAll(); err == nil && text != "" {
		return text
	}
	if text, ok := readWithCommands(); ok && text != "" {
		return text
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.history) == 0 {
		return ""
	}
	return c.history[len(c.history)-1]
}

// History returns the in-process fallback ring, most recent last. Used by
// the command palette's "Paste Previous" action; entries older than
// historyLimit are dropped.
func (c *Clipboard) History() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.history))
	copy(out, c.history)
	return out
}

func (c *Clipboard) pushHistory(text string) {
	if text == "" {
		return
	}
	if n := len(c.history); n > 0 && c.history[n-1] == text {
		return
	}
	c.history = append(c.history, text)
	if len(c.history) > historyLimit {
		c.history = c.history[len(c.history)-historyLimit:]
	}
}

func writeWithCommands(text string) bool {
	commands := []struct {
		name string
		args []string
	}{
		{name: "wl-copy", args: []string{}},
		{name: "xclip", args: []string{"-selection", "clipboard"}},
		{name: "xsel", args: []string{"--clipboard", "--input"}},
		{name: "pbcopy", args: []string{}},
		{name: "clip.exe", args: []string{}},
	}

	ok := false
	for _, cmdCfg := range commands {
		if _, err := exec.LookPath(cmdCfg.name); err != nil {
			continue
		}
		cmd := exec.Command(cmdCfg.name, cmdCfg.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			ok = true
		}
	}
	return ok
}

func readWithCommands() (string, bool) {
	commands := []struct {
		name string
		args []string
	}{
		{name: "wl-paste", args: []string{"--no-newline"}},
		{name: "xclip", args: []string{"-o", "-selection", "clipboard"}},
		{name: "xsel", args: []string{"--clipboard", "--output"}},
		{name: "pbpaste", args: []string{}},
		{name: "powershell.exe", args: []string{"-NoProfile", "-Command", "Get-Clipboard"}},
	}

	for _, cmdCfg := range commands {
		if _, err := exec.LookPath(cmdCfg.name); err != nil {
			continue
		}
		out, err := exec.Command(cmdCfg.name, cmdCfg.args...).Output()
		if err == nil && len(out) > 0 {
			return string(out), true
		}
	}
	return "", false
}

func writeOSC52(text string) bool {
	if text == "" {
		return false
	}
	if fi, err := os.Stdout.Stat(); err != nil || (fi.Mode()&os.ModeCharDevice) == 0 {
		return false
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(os.Stdout, "\x1b]52;c;%s\x07", encoded)
	return err == nil
}
