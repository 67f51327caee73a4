// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver calls Update directly and runs every returned Cmd to completion,
// feeding the resulting messages back in, so a test sees the model after
// all follow-up work (assistant replies, session saves) has settled.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one Send may run.
const MaxDrainDepth = 100

// cmdTimeout separates real work from cursor blink timers. Blink Cmds sleep
// for about half a second; anything slower than this is treated as one and
// dropped.
const cmdTimeout = 50 * time.Millisecond

// Driver is a synchronous harness around a tea.Model.
type Driver struct {
	t     *testing.T
	model tea.Model

	// Quitting is set once a tea.QuitMsg has been produced.
	Quitting bool
}

// New wraps model. Init is not run; call DrainInit when the test needs it.
func New(t *testing.T, model tea.Model) *Driver {
	t.Helper()
	return &Driver{t: t, model: model}
}

// Model returns the current model.
func (d *Driver) Model() tea.Model {
	return d.model
}

// DrainInit runs the model's Init command.
func (d *Driver) DrainInit() {
	d.t.Helper()
	d.drain(d.model.Init(), 0)
}

// Send dispatches msg and drains everything it triggers. Messages sent after
// the model quit are ignored.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.model, cmd = d.model.Update(msg)
	d.drain(cmd, 0)
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.t.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Submit types s and presses Enter.
func (d *Driver) Submit(s string) {
	d.t.Helper()
	d.Type(s)
	d.Press(tea.KeyEnter)
}

// Press sends a special key such as tea.KeyEnter or tea.KeyUp.
func (d *Driver) Press(k tea.KeyType) {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

// View renders the current model.
func (d *Driver) View() string {
	return d.model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.t.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg, ok := run(cmd)
	if !ok || msg == nil {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.model, _ = d.model.Update(msg)
	default:
		var next tea.Cmd
		d.model, next = d.model.Update(msg)
		d.drain(next, depth+1)
	}
}

// run executes cmd, giving up after cmdTimeout.
func run(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}
