package ui

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RandyMcMillan/oxker/internal/app"
	"github.com/RandyMcMillan/oxker/internal/apperror"
	"github.com/RandyMcMillan/oxker/internal/gui"
	"github.com/RandyMcMillan/oxker/internal/input"
)

func newTestModel(t *testing.T) (Model, *app.AppData, *gui.GuiState, chan input.Message, *atomic.Bool) {
	t.Helper()
	appData, guiState := seedStores(t)
	inputCh := make(chan input.Message, 4)
	var running atomic.Bool
	running.Store(true)

	m := NewModel(appData, guiState, inputCh, &running)
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return sized.(Model), appData, guiState, inputCh, &running
}

// tick runs one frame tick and returns the updated model.
func tick(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(frameTickMsg(time.Now()))
	return next.(Model), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestWindowSizeClearsHitRegions(t *testing.T) {
	m, _, guiState, _, _ := newTestModel(t)
	guiState.SetHeaderRect(app.HeaderName, gui.Rect{X: 0, Y: 0, W: 10, H: 1})

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if _, ok := guiState.HeaderAt(0, 0); ok {
		t.Fatal("hit regions survived a resize")
	}
}

func TestKeysForwardedToCoordinator(t *testing.T) {
	m, _, _, inputCh, _ := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	select {
	case msg := <-inputCh:
		bp, ok := msg.(input.ButtonPress)
		if !ok || bp.Key.String() != "q" {
			t.Fatalf("forwarded %#v", msg)
		}
	default:
		t.Fatal("key not forwarded")
	}
}

func TestMouseEventFiltering(t *testing.T) {
	m, _, _, inputCh, _ := newTestModel(t)

	// Motion never reaches the coordinator.
	m.Update(tea.MouseMsg{Button: tea.MouseButtonNone, Action: tea.MouseActionMotion})
	// Left release neither.
	m.Update(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	select {
	case msg := <-inputCh:
		t.Fatalf("filtered event forwarded: %#v", msg)
	default:
	}

	m.Update(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress, X: 3, Y: 0})
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if len(inputCh) != 2 {
		t.Fatalf("forwarded %d events, want 2", len(inputCh))
	}
}

func TestFrameTickQuitsWhenStopped(t *testing.T) {
	m, _, _, _, running := newTestModel(t)
	running.Store(false)

	_, cmd := tick(t, m)
	if !isQuit(cmd) {
		t.Fatal("frame tick did not quit on a cleared running flag")
	}
}

func TestFrameTickRefreshesSnapshot(t *testing.T) {
	m, appData, _, _, _ := newTestModel(t)
	appData.SetFilter("nginx")

	m, cmd := tick(t, m)
	if cmd == nil {
		t.Fatal("frame tick did not schedule the next tick")
	}
	if len(m.frame.App.Rows) != 1 {
		t.Fatalf("snapshot rows = %d, want 1", len(m.frame.App.Rows))
	}
	if !strings.Contains(m.View(), "web") {
		t.Fatal("view missing container data")
	}
}

func TestFrameTickEntersConnectCountdown(t *testing.T) {
	m, appData, guiState, _, running := newTestModel(t)
	appData.SetError(apperror.NewMsg(apperror.KindDockerConnect, "cannot connect to the docker daemon"))
	guiState.StatusAdd(gui.StatusDockerConnect)

	m, cmd := tick(t, m)
	if !m.connectErr || m.errSeconds != errCountdownSeconds {
		t.Fatalf("countdown not armed: connectErr=%v seconds=%d", m.connectErr, m.errSeconds)
	}
	if cmd == nil {
		t.Fatal("no countdown tick scheduled")
	}
	if !strings.Contains(m.View(), "closing in 5 second(s)") {
		t.Fatalf("countdown view = %q", m.View())
	}

	// Count all the way down: the last tick quits and clears the flag.
	var c tea.Cmd
	for i := 0; i < errCountdownSeconds; i++ {
		next, cc := m.Update(errTickMsg{})
		m, c = next.(Model), cc
	}
	if !isQuit(c) {
		t.Fatal("countdown did not quit at zero")
	}
	if running.Load() {
		t.Fatal("running flag still set after the countdown")
	}
}

func TestExecHandoffScheduled(t *testing.T) {
	m, _, guiState, _, _ := newTestModel(t)
	guiState.SetExecTarget("aaa111")

	m, cmd := tick(t, m)
	if cmd == nil {
		t.Fatal("no exec command scheduled")
	}
	if m.frame.Gui.ExecTarget != "aaa111" {
		t.Fatal("snapshot missing the exec target")
	}
}

func TestExecFinishedClearsTargetAndRecordsError(t *testing.T) {
	m, appData, guiState, _, _ := newTestModel(t)
	guiState.SetExecTarget("aaa111")

	next, cmd := m.Update(execFinishedMsg{err: errors.New("exec failed")})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("frame ticks not resumed after the hand-off")
	}
	if _, ok := guiState.ExecTarget(); ok {
		t.Fatal("exec target not cleared")
	}
	appErr := appData.GetError()
	if appErr == nil || appErr.Kind != apperror.KindExec {
		t.Fatalf("recorded error = %+v", appErr)
	}
}

func TestExecFinishedCleanExit(t *testing.T) {
	m, appData, guiState, _, _ := newTestModel(t)
	guiState.SetExecTarget("aaa111")

	m.Update(execFinishedMsg{})
	if _, ok := guiState.ExecTarget(); ok {
		t.Fatal("exec target not cleared")
	}
	if appData.GetError() != nil {
		t.Fatal("error recorded for a clean session exit")
	}
}

func TestViewErrorOverlay(t *testing.T) {
	m, appData, _, _, _ := newTestModel(t)
	appData.SetError(apperror.New(apperror.KindDockerCommand, errors.New("pause failed")))

	m, _ = tick(t, m)
	view := m.View()
	if !strings.Contains(view, "pause failed") || !strings.Contains(view, "( c ) clear") {
		t.Fatalf("error overlay = %q", view)
	}
}

func TestViewHelpOverlay(t *testing.T) {
	m, _, guiState, _, _ := newTestModel(t)
	guiState.StatusAdd(gui.StatusHelp)

	m, _ = tick(t, m)
	if !strings.Contains(m.View(), "toggle help") {
		t.Fatal("help overlay missing")
	}
}

func TestViewDeleteConfirmOverlay(t *testing.T) {
	m, _, guiState, _, _ := newTestModel(t)
	guiState.SetDeleteTarget("aaa111")

	m, _ = tick(t, m)
	view := m.View()
	if !strings.Contains(view, "Delete container") || !strings.Contains(view, "web") {
		t.Fatalf("delete overlay = %q", view)
	}
}

func TestProgramControllerWithoutProgram(t *testing.T) {
	c := NewProgramController()
	if err := c.SetMouseCapture(true); err == nil {
		t.Fatal("expected an error before the program is attached")
	}
}
