// Package ui holds the render and lifecycle loop: a bubbletea model that
// snapshots the two state stores on a fixed frame cadence, draws the
// dashboard, forwards raw input to the coordinator, and drives the exec
// hand-off and the fatal connection countdown.
package ui

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RandyMcMillan/oxker/internal/app"
	"github.com/RandyMcMillan/oxker/internal/apperror"
	cexec "github.com/RandyMcMillan/oxker/internal/exec"
	"github.com/RandyMcMillan/oxker/internal/gui"
	"github.com/RandyMcMillan/oxker/internal/input"
)

// framePollRate is the frame cadence; every tick takes a fresh snapshot of
// both stores.
const framePollRate = 100 * time.Millisecond

// errCountdownSeconds is how long the fatal daemon-connection screen stays up
// before the dashboard exits on its own.
const errCountdownSeconds = 5

type (
	frameTickMsg    time.Time
	errTickMsg      struct{}
	mouseCaptureMsg struct{ enable bool }
	execFinishedMsg struct{ err error }
)

func frameTickCmd() tea.Cmd {
	return tea.Tick(framePollRate, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

func errTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return errTickMsg{}
	})
}

// Model is the render loop. It owns the terminal; every other component
// reaches the screen only through the state stores it snapshots.
type Model struct {
	appData  *app.AppData
	guiState *gui.GuiState
	inputCh  chan<- input.Message
	running  *atomic.Bool

	frame  FrameData
	width  int
	height int

	// countdown state for the fatal daemon-connection screen
	connectErr bool
	errSeconds int
}

// NewModel builds the render loop around the shared stores. The input channel
// is written with non-blocking sends; a stalled coordinator drops events
// rather than freezing the frame cadence.
func NewModel(
	appData *app.AppData,
	guiState *gui.GuiState,
	inputCh chan<- input.Message,
	running *atomic.Bool,
) Model {
	return Model{
		appData:  appData,
		guiState: guiState,
		inputCh:  inputCh,
		running:  running,
		frame:    NewFrameData(appData, guiState),
	}
}

func (m Model) Init() tea.Cmd {
	return frameTickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Hit-test regions are stale until the next draw.
		m.guiState.ClearRects()
		return m, nil

	case tea.KeyMsg:
		m.forward(input.ButtonPress{Key: msg})
		return m, nil

	case tea.MouseMsg:
		// Motion and release events never reach the coordinator; only
		// wheel steps and left presses carry meaning.
		switch {
		case msg.Button == tea.MouseButtonWheelUp, msg.Button == tea.MouseButtonWheelDown:
			m.forward(input.MousePress{Mouse: msg})
		case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			m.forward(input.MousePress{Mouse: msg})
		}
		return m, nil

	case frameTickMsg:
		return m.frameTick()

	case errTickMsg:
		m.errSeconds--
		if m.errSeconds <= 0 || !m.running.Load() {
			m.running.Store(false)
			return m, tea.Quit
		}
		return m, errTickCmd()

	case mouseCaptureMsg:
		if msg.enable {
			return m, tea.EnableMouseCellMotion
		}
		return m, tea.DisableMouse

	case execFinishedMsg:
		m.guiState.SetExecTarget("")
		if msg.err != nil {
			m.appData.SetError(apperror.New(apperror.KindExec, msg.err))
		}
		return m, frameTickCmd()
	}
	return m, nil
}

// frameTick advances one frame: honor the running flag, refresh the
// snapshot, and branch into the connection countdown or the exec hand-off
// when either is pending.
func (m Model) frameTick() (tea.Model, tea.Cmd) {
	if !m.running.Load() {
		return m, tea.Quit
	}

	m.frame = NewFrameData(m.appData, m.guiState)

	if !m.connectErr && m.frame.Gui.Has(gui.StatusDockerConnect) {
		m.connectErr = true
		m.errSeconds = errCountdownSeconds
		return m, errTickCmd()
	}

	if id := m.frame.Gui.ExecTarget; id != "" {
		// The program releases the terminal for the session's lifetime and
		// restores it afterwards; frame ticks resume on execFinishedMsg.
		session := cexec.NewSession(id)
		return m, tea.ExecProcess(session.Command(), func(err error) tea.Msg {
			return execFinishedMsg{err: err}
		})
	}

	return m, frameTickCmd()
}

// forward is a best-effort send into the coordinator's channel.
func (m Model) forward(msg input.Message) {
	select {
	case m.inputCh <- msg:
	default:
	}
}

func (m Model) View() string {
	if m.connectErr {
		return drawConnectError(m.frame.App.Err, m.width, m.height, m.errSeconds)
	}
	fd := m.frame
	if fd.App.Err != nil {
		return drawError(fd.App.Err, m.width, m.height)
	}
	if fd.Gui.Has(gui.StatusHelp) {
		return drawHelp(m.width, m.height)
	}
	if fd.Gui.DeleteTarget != "" {
		return drawDeleteConfirm(fd.DeleteName, m.width, m.height)
	}
	return draw(fd, m.width, m.height, m.guiState)
}

// ProgramController relays coordinator-requested terminal changes into the
// running program's message loop. The program is attached after construction
// because the coordinator needs the controller before the program exists.
type ProgramController struct {
	mu sync.Mutex
	p  *tea.Program
}

func NewProgramController() *ProgramController {
	return &ProgramController{}
}

// SetProgram attaches the running program.
func (c *ProgramController) SetProgram(p *tea.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.p = p
}

// SetMouseCapture asks the render loop to enable or disable mouse capture.
func (c *ProgramController) SetMouseCapture(enabled bool) error {
	c.mu.Lock()
	p := c.p
	c.mu.Unlock()
	if p == nil {
		return errors.New("terminal not ready")
	}
	p.Send(mouseCaptureMsg{enable: enabled})
	return nil
}

var _ input.TerminalController = (*ProgramController)(nil)
