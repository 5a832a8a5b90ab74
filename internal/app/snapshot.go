package app

import "github.com/RandyMcMillan/oxker/internal/apperror"

// Row is one rendered line of the containers table.
type Row struct {
	ID         ContainerID
	Name       string
	Image      string
	Status     string
	State      State
	CPUPercent float64
	MemUsage   uint64
	MemLimit   uint64
	Rx         uint64
	Tx         uint64
}

// Snapshot is the application half of a frame description: everything the
// drawing layer needs from AppData, copied out under a single lock
// acquisition and consumed lock-free.
type Snapshot struct {
	Rows              []Row
	SelectedContainer int // index into Rows, -1 when there are none
	SelectedID        ContainerID
	SelectedName      string
	Sorted            *SortSpec
	Filter            string
	Err               *apperror.AppError
	LogLines          []string
	LogCursor         int
	Commands          []DockerControl
	CommandCursor     int
	CPUHistory        []float64
	MemHistory        []float64
}

// Snapshot copies the visible state out of the store. The lock is held only
// for the copy; no rendering or I/O happens here.
func (a *AppData) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := Snapshot{
		SelectedContainer: -1,
		Filter:            a.filter,
		Err:               a.err,
	}
	if a.sorted != nil {
		spec := *a.sorted
		snap.Sorted = &spec
	}

	snap.Rows = make([]Row, 0, a.view.len())
	for _, item := range a.view.items {
		snap.Rows = append(snap.Rows, Row{
			ID:         item.ID,
			Name:       item.Name,
			Image:      item.Image,
			Status:     item.Status,
			State:      item.State,
			CPUPercent: item.CPUPercent,
			MemUsage:   item.MemUsage,
			MemLimit:   item.MemLimit,
			Rx:         item.Rx,
			Tx:         item.Tx,
		})
	}

	if selected, ok := a.view.selected(); ok {
		snap.SelectedContainer = a.view.cursor
		snap.SelectedID = selected.ID
		snap.SelectedName = selected.Name
		snap.LogLines = append([]string(nil), selected.logs.items...)
		snap.LogCursor = selected.logs.cursor
		snap.Commands = append([]DockerControl(nil), selected.commands.items...)
		snap.CommandCursor = selected.commands.cursor
		snap.CPUHistory = append([]float64(nil), selected.cpuHistory...)
		snap.MemHistory = append([]float64(nil), selected.memHistory...)
	}
	return snap
}
