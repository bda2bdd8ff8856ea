package app

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/soriane/plume/internal/autosave"
	"github.com/soriane/plume/internal/watch"
)

// autosaveTickMsg fires when a debounce window expires. The note id pins
// the window to the note that opened it, so a stale timer from a note the
// user already left cannot flush the wrong buffer.
type autosaveTickMsg struct {
	noteID int64
}

// dbChangedMsg reports an external write to the database file.
type dbChangedMsg struct{}

// urlOpenedMsg reports the outcome of launching the browser.
type urlOpenedMsg struct {
	err error
}

// armAutosave starts the debounce window for the given note.
func armAutosave(noteID int64) tea.Cmd {
	return tea.Tick(autosave.Window, func(time.Time) tea.Msg {
		return autosaveTickMsg{noteID: noteID}
	})
}

// listenWatch blocks on the watcher's event channel and re-arms after every
// message. A closed channel ends the loop.
func listenWatch(w *watch.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.Events(); !ok {
			return nil
		}
		return dbChangedMsg{}
	}
}

// openURL launches the platform browser.
func openURL(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			cmd = exec.Command("xdg-open", url)
		}
		if err := cmd.Start(); err != nil {
			return urlOpenedMsg{err: fmt.Errorf("open %s: %w", url, err)}
		}
		return urlOpenedMsg{}
	}
}
