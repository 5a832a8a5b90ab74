package ui

import (
	"fmt"

	"github.com/RandyMcMillan/oxker/internal/app"
	"github.com/RandyMcMillan/oxker/internal/gui"
)

// FrameData is a point-in-time description of everything one frame needs,
// assembled from both state stores. Each store is snapshotted under its own
// lock; the two halves are not atomic with respect to each other, which is
// acceptable drift for a 100ms frame cadence.
type FrameData struct {
	App app.Snapshot
	Gui gui.GuiSnapshot
	// DeleteName is the resolved name of Gui.DeleteTarget, when one is set.
	DeleteName string
}

// NewFrameData snapshots both stores. A delete-confirmation target whose
// container has vanished since the prompt opened is cleared here rather than
// rendered with an unresolvable name.
func NewFrameData(appData *app.AppData, guiState *gui.GuiState) FrameData {
	fd := FrameData{
		App: appData.Snapshot(),
		Gui: guiState.Snapshot(),
	}
	if fd.Gui.DeleteTarget != "" {
		name, ok := appData.ContainerNameByID(fd.Gui.DeleteTarget)
		if !ok {
			guiState.SetDeleteTarget("")
			fd.Gui.DeleteTarget = ""
		}
		fd.DeleteName = name
	}
	return fd
}

// ContainerTitle is the containers panel title, e.g. " Containers 3 ".
func (fd FrameData) ContainerTitle() string {
	return fmt.Sprintf(" Containers %d ", len(fd.App.Rows))
}

// LogTitle is the logs panel title for the selected container.
func (fd FrameData) LogTitle() string {
	if fd.App.SelectedName == "" {
		return " Logs "
	}
	return fmt.Sprintf(" Logs - %s - %d lines ", fd.App.SelectedName, len(fd.App.LogLines))
}
