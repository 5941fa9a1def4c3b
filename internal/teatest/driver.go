// Package teatest provides a synchronous test driver for bubbletea models.
//
// It replaces tea.Program in tests by calling Update() directly and
// synchronously draining returned Cmds, so a model can be exercised
// deterministically without goroutines or a terminal. Cmds that block on
// timer channels (periodic refresh ticks, spinner frames, cursor blinks)
// are executed with a short timeout and skipped when they do not return
// promptly.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDrainDepth bounds command draining so a model that keeps emitting
// commands cannot hang a test.
const maxDrainDepth = 100

// cmdTimeout separates instant Cmds (message factories, in-memory work)
// from timer-backed ones: a refresh tick waits minutes, a spinner frame
// ~100ms, so 10ms is a safe cutoff.
const cmdTimeout = 10 * time.Millisecond

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set when tea.QuitMsg is seen during drain. The real
	// bubbletea runtime intercepts that message before the model sees
	// it, so the driver detects it explicitly.
	Quitting bool
}

// New creates a Driver and processes the model's Init() command.
func New(t *testing.T, model tea.Model) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	d.drainCmd(model.Init(), 0)
	return d
}

// Resize sends a WindowSizeMsg.
func (d *Driver) Resize(w, h int) {
	d.T.Helper()
	d.Send(tea.WindowSizeMsg{Width: w, Height: h})
}

// Send dispatches a message through Update and drains all resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(cmd, 0)
}

// Press sends a named key: single runes ("q", "e") go through as rune
// keys, everything else maps to the matching special key.
func (d *Driver) Press(key string) {
	d.T.Helper()
	switch key {
	case "tab":
		d.Send(tea.KeyMsg{Type: tea.KeyTab})
	case "shift+tab":
		d.Send(tea.KeyMsg{Type: tea.KeyShiftTab})
	case "enter":
		d.Send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		d.Send(tea.KeyMsg{Type: tea.KeyEsc})
	case "ctrl+c":
		d.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	case "up":
		d.Send(tea.KeyMsg{Type: tea.KeyUp})
	case "down":
		d.Send(tea.KeyMsg{Type: tea.KeyDown})
	case "left":
		d.Send(tea.KeyMsg{Type: tea.KeyLeft})
	case "right":
		d.Send(tea.KeyMsg{Type: tea.KeyRight})
	default:
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	}
}

// Type sends a string character by character as individual key events.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Press(string(r))
	}
}

// View returns the full rendered output of the model.
func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drainCmd(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDrainDepth {
		d.T.Logf("teatest.Driver: drain depth limit (%d) reached", maxDrainDepth)
		return
	}

	msg := execCmdWithTimeout(cmd)
	if msg == nil || isBlinkMsg(msg) {
		return
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, subCmd := range batch {
			if subCmd != nil {
				d.drainCmd(subCmd, depth+1)
			}
		}
		return
	}

	if _, isQuit := msg.(tea.QuitMsg); isQuit {
		d.Quitting = true
		updated, _ := d.Model.Update(msg)
		d.Model = updated
		return
	}

	updated, nextCmd := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(nextCmd, depth+1)
}

// execCmdWithTimeout runs a tea.Cmd in a goroutine, returning nil when it
// does not complete within cmdTimeout.
func execCmdWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlinkMsg detects cursor blink messages from the bubbles/cursor
// package. They are unexported types that chain into blocking timer Cmds
// when processed.
func isBlinkMsg(msg tea.Msg) bool {
	t := fmt.Sprintf("%T", msg)
	return strings.Contains(t, "Blink") || strings.Contains(t, "blink")
}
