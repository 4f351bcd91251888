package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusLevel classifies a transient status message.
type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusOK
	statusWarn
	statusError
)

// status is the toast line under the form.
type status struct {
	text  string
	level statusLevel
}

// clearStatusMsg expires a status message. The sequence number guards
// against a stale timer clearing a newer message.
type clearStatusMsg struct {
	seq int
}

const statusTimeout = 4 * time.Second

func expireStatus(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
