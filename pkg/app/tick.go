package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/daybook/pkg/collectors"
	"gitlab.com/tinyland/lab/daybook/pkg/install"
)

// TickCmd returns a bubbletea Cmd that sends a TickEvent after the given
// duration.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickEvent{Time: t}
	})
}

// ListenUpdates waits for the next collector sample and delivers it as a
// DataUpdateEvent. The model re-issues it after every delivery.
func ListenUpdates(ch <-chan collectors.Update) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return updatesClosedMsg{}
		}
		return DataUpdateEvent{
			Source:    u.Source,
			Data:      u.Data,
			Err:       u.Error,
			Timestamp: u.Timestamp,
		}
	}
}

// ListenCompletions waits for the next install completion.
func ListenCompletions(ch <-chan install.CompletedMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// DetectOfferCmd runs the install capability detection off the update loop.
func DetectOfferCmd(detect func() (install.Capability, bool)) tea.Cmd {
	if detect == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := detect()
		if !ok {
			return nil
		}
		return install.OfferedMsg{Capability: c}
	}
}
