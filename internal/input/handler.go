package input

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RandyMcMillan/oxker/internal/app"
	"github.com/RandyMcMillan/oxker/internal/apperror"
	"github.com/RandyMcMillan/oxker/internal/docker"
	"github.com/RandyMcMillan/oxker/internal/gui"
)

// pageStep is how many single steps one PgUp/PgDn performs.
const pageStep = 7

// infoBoxDelay is how long the mouse-capture banner stays on screen.
const infoBoxDelay = 4 * time.Second

// TerminalController applies terminal side effects on behalf of the
// coordinator. The terminal device itself stays owned by the render loop.
type TerminalController interface {
	SetMouseCapture(enabled bool) error
}

// Handler drains the inbound input channel and applies each event against
// the two state stores and the outbound command channel. Run it on its own
// goroutine; it exits when the channel closes or the running flag clears.
type Handler struct {
	appData      *app.AppData
	gui          *gui.GuiState
	dockerCh     chan<- docker.Command
	rec          <-chan Message
	running      *atomic.Bool
	terminal     TerminalController
	mouseCapture bool
	infoTimer    *time.Timer
	infoDelay    time.Duration
}

// NewHandler wires a coordinator. Mouse capture starts enabled to match the
// render loop's startup state.
func NewHandler(
	appData *app.AppData,
	gui *gui.GuiState,
	dockerCh chan<- docker.Command,
	rec <-chan Message,
	running *atomic.Bool,
	terminal TerminalController,
) *Handler {
	return &Handler{
		appData:      appData,
		gui:          gui,
		dockerCh:     dockerCh,
		rec:          rec,
		running:      running,
		terminal:     terminal,
		mouseCapture: true,
		infoDelay:    infoBoxDelay,
	}
}

// SetMouseCaptureEnabled aligns the coordinator's view of mouse capture with
// the terminal's startup state. Call before Run.
func (h *Handler) SetMouseCaptureEnabled(enabled bool) {
	h.mouseCapture = enabled
}

// Run is the message loop. The running flag is observed after every message
// so a quit issued anywhere ends the loop promptly.
func (h *Handler) Run() {
	for msg := range h.rec {
		switch m := msg.(type) {
		case ButtonPress:
			h.buttonPress(m.Key)
		case MousePress:
			showError := h.appData.GetError() != nil
			showInfo := h.gui.StatusContains(gui.StatusHelp)
			if !showError && !showInfo {
				h.mousePress(m.Mouse)
			}
		}
		if !h.running.Load() {
			return
		}
	}
}

// buttonPress routes one key through the modal dispatch: error mode, then
// help mode, then the full action set.
func (h *Handler) buttonPress(key tea.KeyMsg) {
	showError := h.appData.GetError() != nil
	showInfo := h.gui.StatusContains(gui.StatusHelp)

	switch {
	case showError:
		switch key.String() {
		case "q":
			h.quit()
		case "c":
			h.appData.RemoveError()
		}

	case showInfo:
		switch key.String() {
		case "q":
			h.quit()
		case "h":
			h.gui.StatusDel(gui.StatusHelp)
		case "m":
			h.toggleMouseCapture()
		}

	default:
		h.normalPress(key)
	}
}

func (h *Handler) normalPress(key tea.KeyMsg) {
	// The filter and delete-confirm overlays narrow the action set before
	// the full keymap applies.
	if h.gui.StatusContains(gui.StatusFilter) {
		h.filterPress(key)
		return
	}
	if target, ok := h.gui.DeleteTarget(); ok {
		h.deleteConfirmPress(key, target)
		return
	}

	switch key.String() {
	case "0":
		h.appData.ResetSorted()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n := int(key.String()[0] - '1')
		if n < len(app.Headers) {
			h.sort(app.Headers[n])
		}
	case "q", "ctrl+c":
		h.quit()
	case "h":
		h.gui.StatusAdd(gui.StatusHelp)
	case "m":
		h.toggleMouseCapture()
	case "e":
		if state, ok := h.appData.SelectedContainerState(); ok && state.Running() {
			if id, ok := h.appData.SelectedContainerID(); ok {
				h.gui.SetExecTarget(id)
			}
		}
	case "/":
		h.gui.StatusAdd(gui.StatusFilter)
	case "d":
		if id, ok := h.appData.SelectedContainerID(); ok {
			h.gui.SetDeleteTarget(id)
		}
	case "tab":
		h.gui.NextPanel()
	case "shift+tab":
		h.gui.PreviousPanel()
	case "home":
		h.start()
	case "end":
		h.end()
	case "up", "k":
		h.previous()
	case "pgup":
		for i := 0; i < pageStep; i++ {
			h.previous()
		}
	case "down", "j":
		h.next()
	case "pgdown":
		for i := 0; i < pageStep; i++ {
			h.next()
		}
	case "enter":
		h.dispatchCommand()
	}
}

// filterPress edits the filter term while the filter overlay is up.
func (h *Handler) filterPress(key tea.KeyMsg) {
	switch key.Type {
	case tea.KeyEsc:
		h.appData.SetFilter("")
		h.gui.StatusDel(gui.StatusFilter)
	case tea.KeyEnter:
		h.gui.StatusDel(gui.StatusFilter)
	case tea.KeyBackspace:
		h.appData.FilterPop()
	case tea.KeySpace:
		h.appData.FilterPush(' ')
	case tea.KeyRunes:
		for _, r := range key.Runes {
			h.appData.FilterPush(r)
		}
	}
}

// deleteConfirmPress handles the y/n prompt for a pending container delete.
func (h *Handler) deleteConfirmPress(key tea.KeyMsg, target app.ContainerID) {
	switch key.String() {
	case "y":
		h.sendCommand(app.ControlDelete, target)
		h.gui.SetDeleteTarget("")
	case "n", "esc":
		h.gui.SetDeleteTarget("")
	}
}

// mousePress handles wheel navigation and left-click hit testing against the
// cached header and panel regions.
func (h *Handler) mousePress(m tea.MouseMsg) {
	switch m.Button {
	case tea.MouseButtonWheelUp:
		h.previous()
	case tea.MouseButtonWheelDown:
		h.next()
	case tea.MouseButtonLeft:
		if m.Action != tea.MouseActionPress {
			return
		}
		if header, ok := h.gui.HeaderAt(m.X, m.Y); ok {
			h.sort(header)
		}
		h.gui.SelectPanelAt(m.X, m.Y)
	}
}

// sort toggles the column sort: a header already sorted descending flips to
// ascending, every other prior state lands on descending.
func (h *Handler) sort(header app.Header) {
	next := app.SortSpec{Header: header, Order: app.OrderDescending}
	if current, ok := h.appData.GetSorted(); ok {
		if current.Header == header && current.Order == app.OrderDescending {
			next.Order = app.OrderAscending
		}
	}
	h.appData.SetSorted(next)
}

// toggleMouseCapture flips the local capture flag and applies the terminal
// side effect. Exactly one banner-clear timer may be outstanding: the old
// handle is stopped before the new banner is set, and the clear carries the
// new banner's token, so two rapid toggles clear the banner relative to the
// second toggle, never the first — even when the first timer has already
// fired and Stop is too late.
func (h *Handler) toggleMouseCapture() {
	enable := !h.mouseCapture

	if h.infoTimer != nil {
		h.infoTimer.Stop()
	}

	if err := h.terminal.SetMouseCapture(enable); err != nil {
		h.appData.SetError(apperror.NewMsg(apperror.KindMouseCapture, err.Error()))
	} else {
		text := "✖ mouse capture disabled"
		if enable {
			text = "✓ mouse capture enabled"
		}
		seq := h.gui.SetInfoBox(text)
		h.infoTimer = time.AfterFunc(h.infoDelay, func() {
			h.gui.ExpireInfoBox(seq)
		})
	}
	h.mouseCapture = enable
}

// dispatchCommand emits the highlighted command for the selected container.
// Only meaningful while the Commands panel is selected; requires both a
// highlighted command and a selected container id.
func (h *Handler) dispatchCommand() {
	if h.gui.SelectedPanel() != gui.PanelCommands {
		return
	}
	control, ok := h.appData.GetSelectedCommand()
	if !ok {
		return
	}
	id, ok := h.appData.SelectedContainerID()
	if !ok {
		return
	}
	h.sendCommand(control, id)
}

// sendCommand is best-effort: a full buffer drops the command rather than
// blocking the input loop. The channel is owned by main and never closed
// while the coordinator runs.
func (h *Handler) sendCommand(control app.DockerControl, id app.ContainerID) {
	select {
	case h.dockerCh <- docker.Command{Control: control, ID: id}:
	default:
	}
}

func (h *Handler) quit() {
	h.running.Store(false)
}

// next advances the list belonging to the selected panel by one step.
func (h *Handler) next() {
	switch h.gui.SelectedPanel() {
	case gui.PanelContainers:
		h.appData.NextContainer()
	case gui.PanelLogs:
		h.appData.LogNext()
	case gui.PanelCommands:
		h.appData.CommandNext()
	}
}

func (h *Handler) previous() {
	switch h.gui.SelectedPanel() {
	case gui.PanelContainers:
		h.appData.PreviousContainer()
	case gui.PanelLogs:
		h.appData.LogPrevious()
	case gui.PanelCommands:
		h.appData.CommandPrevious()
	}
}

func (h *Handler) start() {
	switch h.gui.SelectedPanel() {
	case gui.PanelContainers:
		h.appData.ContainerStart()
	case gui.PanelLogs:
		h.appData.LogStart()
	case gui.PanelCommands:
		h.appData.CommandStart()
	}
}

func (h *Handler) end() {
	switch h.gui.SelectedPanel() {
	case gui.PanelContainers:
		h.appData.ContainerEnd()
	case gui.PanelLogs:
		h.appData.LogEnd()
	case gui.PanelCommands:
		h.appData.CommandEnd()
	}
}
