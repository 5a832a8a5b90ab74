package docker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/RandyMcMillan/oxker/internal/app"
	"github.com/RandyMcMillan/oxker/internal/apperror"
	"github.com/RandyMcMillan/oxker/internal/gui"
)

func newTestDriver(t *testing.T) (*Driver, *MockClient, *app.AppData, *gui.GuiState) {
	t.Helper()
	mock := NewMockClient()
	appData := app.NewAppData()
	guiState := gui.NewGuiState()
	var running atomic.Bool
	running.Store(true)
	d := NewDriver(mock, appData, guiState, make(chan Command), &running, 0)
	return d, mock, appData, guiState
}

func TestDriverInitPingFailure(t *testing.T) {
	d, mock, appData, guiState := newTestDriver(t)
	mock.PingErr = errors.New("cannot connect to the docker daemon")

	if err := d.Init(context.Background()); err == nil {
		t.Fatal("Init succeeded with a failing ping")
	}
	appErr := appData.GetError()
	if appErr == nil || appErr.Kind != apperror.KindDockerConnect {
		t.Fatalf("recorded error = %+v", appErr)
	}
	if !guiState.StatusContains(gui.StatusDockerConnect) {
		t.Fatal("DockerConnect status not raised")
	}
}

func TestDriverInitSuccess(t *testing.T) {
	d, _, appData, guiState := newTestDriver(t)
	if err := d.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if appData.GetError() != nil || guiState.StatusContains(gui.StatusDockerConnect) {
		t.Fatal("error state set on a healthy ping")
	}
}

func TestDriverRefresh(t *testing.T) {
	d, mock, appData, _ := newTestDriver(t)
	mock.AddContainer(
		Summary{ID: "aaa111", Name: "web", Image: "nginx:latest", Status: "Up 2 hours", State: "running"},
		Stats{CPUPercent: 12.5, MemUsage: 1024, MemLimit: 4096, Rx: 10, Tx: 20},
	)
	mock.AddContainer(
		Summary{ID: "bbb222", Name: "worker", Image: "redis:7", Status: "Exited (0)", State: "exited"},
		Stats{},
	)
	mock.LogsFn = func(containerID, since string) ([]string, error) {
		return []string{"hello"}, nil
	}

	d.refresh(context.Background())

	snap := appData.Snapshot()
	if len(snap.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(snap.Rows))
	}
	if snap.Rows[0].CPUPercent != 12.5 || snap.Rows[0].MemLimit != 4096 {
		t.Errorf("running container stats not recorded: %+v", snap.Rows[0])
	}
	if snap.Rows[1].CPUPercent != 0 {
		t.Errorf("stats sampled for an exited container: %+v", snap.Rows[1])
	}
	if len(snap.LogLines) != 1 || snap.LogLines[0] != "hello" {
		t.Errorf("selected container logs = %v", snap.LogLines)
	}
}

func TestDriverRefreshLogsIncremental(t *testing.T) {
	d, mock, _, _ := newTestDriver(t)
	mock.AddContainer(Summary{ID: "aaa111", Name: "web", State: "running"}, Stats{})

	var sinces []string
	mock.LogsFn = func(containerID, since string) ([]string, error) {
		sinces = append(sinces, since)
		return []string{"x"}, nil
	}

	ctx := context.Background()
	d.refresh(ctx)
	d.refresh(ctx)

	if len(sinces) != 2 {
		t.Fatalf("log fetches = %d", len(sinces))
	}
	if sinces[0] != "" {
		t.Errorf("first fetch should be unbounded, got %q", sinces[0])
	}
	if sinces[1] == "" {
		t.Error("second fetch should start at the previous fetch instant")
	}
}

func TestDriverRefreshListFailure(t *testing.T) {
	d, mock, appData, _ := newTestDriver(t)
	mock.ListErr = errors.New("connection reset")

	d.refresh(context.Background())
	appErr := appData.GetError()
	if appErr == nil || appErr.Kind != apperror.KindDockerConnect {
		t.Fatalf("recorded error = %+v", appErr)
	}
}

func TestDriverExecute(t *testing.T) {
	d, mock, appData, _ := newTestDriver(t)
	mock.AddContainer(Summary{ID: "aaa111", Name: "web", State: "running"}, Stats{})

	d.execute(context.Background(), Command{Control: app.ControlStop, ID: "aaa111"})

	calls := mock.Calls()
	if len(calls) == 0 || calls[0] != "stop aaa111" {
		t.Fatalf("calls = %v", calls)
	}
	// execute refreshes immediately, so the new state is already visible.
	state, ok := appData.SelectedContainerState()
	if !ok || state != app.StateExited {
		t.Fatalf("state after stop = %v ok=%v", state, ok)
	}
}

func TestDriverExecuteFailure(t *testing.T) {
	d, mock, appData, _ := newTestDriver(t)
	mock.AddContainer(Summary{ID: "aaa111", Name: "web", State: "running"}, Stats{})
	mock.ActErr = errors.New("permission denied")

	d.execute(context.Background(), Command{Control: app.ControlDelete, ID: "aaa111"})

	appErr := appData.GetError()
	if appErr == nil || appErr.Kind != apperror.KindDockerCommand {
		t.Fatalf("recorded error = %+v", appErr)
	}
}

func TestDriverRunStopsOnRunningFlag(t *testing.T) {
	d, _, _, _ := newTestDriver(t)
	d.running.Store(false)

	done := make(chan struct{})
	go func() {
		d.Run(context.Background())
		close(done)
	}()
	<-done
}
