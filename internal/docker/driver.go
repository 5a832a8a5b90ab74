package docker

import (
	"context"
	"log"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/RandyMcMillan/oxker/internal/app"
	"github.com/RandyMcMillan/oxker/internal/apperror"
	"github.com/RandyMcMillan/oxker/internal/gui"
)

// DefaultPollRate is how often the driver refreshes container data.
const DefaultPollRate = time.Second

// Driver polls the container engine and executes lifecycle commands. It is
// the only component that talks to the engine; results flow into the
// application state store, never directly to the UI.
type Driver struct {
	api      ContainerAPI
	appData  *app.AppData
	guiState *gui.GuiState
	commands <-chan Command
	running  *atomic.Bool
	pollRate time.Duration
	// unix second of the last log fetch per container, to fetch increments
	lastLogFetch map[app.ContainerID]int64
}

// NewDriver wires a driver. A zero pollRate falls back to DefaultPollRate.
func NewDriver(
	api ContainerAPI,
	appData *app.AppData,
	guiState *gui.GuiState,
	commands <-chan Command,
	running *atomic.Bool,
	pollRate time.Duration,
) *Driver {
	if pollRate <= 0 {
		pollRate = DefaultPollRate
	}
	return &Driver{
		api:          api,
		appData:      appData,
		guiState:     guiState,
		commands:     commands,
		running:      running,
		pollRate:     pollRate,
		lastLogFetch: make(map[app.ContainerID]int64),
	}
}

// Init pings the daemon once. On failure it records the connection error and
// raises the DockerConnect status, which sends the render loop into its
// countdown error screen.
func (d *Driver) Init(ctx context.Context) error {
	if err := d.api.Ping(ctx); err != nil {
		d.appData.SetError(apperror.New(apperror.KindDockerConnect, err))
		d.guiState.StatusAdd(gui.StatusDockerConnect)
		return err
	}
	return nil
}

// Run alternates between refreshing container data on the poll tick and
// executing lifecycle commands from the coordinator. The running flag is
// observed every iteration.
func (d *Driver) Run(ctx context.Context) {
	ticker := time.NewTicker(d.pollRate)
	defer ticker.Stop()

	d.refresh(ctx)
	for d.running.Load() {
		select {
		case cmd := <-d.commands:
			d.execute(ctx, cmd)
		case <-ticker.C:
			d.refresh(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// refresh performs one poll cycle: list containers, sample stats for running
// ones, and pull fresh logs for the selected container.
func (d *Driver) refresh(ctx context.Context) {
	d.guiState.StatusAdd(gui.StatusLoading)
	defer d.guiState.StatusDel(gui.StatusLoading)

	summaries, err := d.api.ListContainers(ctx)
	if err != nil {
		log.Printf("container list failed: %v", err)
		d.appData.SetError(apperror.New(apperror.KindDockerConnect, err))
		return
	}

	updates := make([]app.ContainerUpdate, 0, len(summaries))
	for _, s := range summaries {
		updates = append(updates, app.ContainerUpdate{
			ID:     app.ContainerID(s.ID),
			Name:   s.Name,
			Image:  s.Image,
			Status: s.Status,
			State:  app.ParseState(s.State),
		})
	}
	d.appData.UpdateContainers(updates)

	for _, s := range summaries {
		if app.ParseState(s.State) != app.StateRunning {
			continue
		}
		stats, err := d.api.ContainerStats(ctx, s.ID)
		if err != nil {
			// Container may have stopped between list and sample.
			log.Printf("stats for %.12s failed: %v", s.ID, err)
			continue
		}
		d.appData.UpdateStats(
			app.ContainerID(s.ID),
			stats.CPUPercent, stats.MemUsage, stats.MemLimit, stats.Rx, stats.Tx,
		)
	}

	d.refreshLogs(ctx)
}

// refreshLogs tails the selected container's logs incrementally.
func (d *Driver) refreshLogs(ctx context.Context) {
	id, ok := d.appData.SelectedContainerID()
	if !ok {
		return
	}

	since := ""
	if last, ok := d.lastLogFetch[id]; ok {
		since = strconv.FormatInt(last, 10)
	}
	now := time.Now().Unix()

	lines, err := d.api.ContainerLogs(ctx, string(id), since)
	if err != nil {
		log.Printf("logs for %.12s failed: %v", id, err)
		return
	}
	d.lastLogFetch[id] = now
	d.appData.AppendLogs(id, lines)
}

// execute maps one coordinator command onto the engine API. Failures are
// recorded as application errors; they never stop the driver.
func (d *Driver) execute(ctx context.Context, cmd Command) {
	var err error
	switch cmd.Control {
	case app.ControlPause:
		err = d.api.PauseContainer(ctx, string(cmd.ID))
	case app.ControlUnpause:
		err = d.api.UnpauseContainer(ctx, string(cmd.ID))
	case app.ControlStart:
		err = d.api.StartContainer(ctx, string(cmd.ID))
	case app.ControlStop:
		err = d.api.StopContainer(ctx, string(cmd.ID))
	case app.ControlRestart:
		err = d.api.RestartContainer(ctx, string(cmd.ID))
	case app.ControlDelete:
		err = d.api.RemoveContainer(ctx, string(cmd.ID))
	}
	if err != nil {
		log.Printf("%s %.12s failed: %v", cmd.Control, cmd.ID, err)
		d.appData.SetError(apperror.New(apperror.KindDockerCommand, err))
		return
	}
	// Reflect the outcome without waiting a full poll interval.
	d.refresh(ctx)
}
