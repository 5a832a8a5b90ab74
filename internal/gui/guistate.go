package gui

import (
	"sync"
	"time"

	"github.com/RandyMcMillan/oxker/internal/app"
)

// SelectablePanel identifies which panel currently receives navigation.
type SelectablePanel int

const (
	PanelContainers SelectablePanel = iota
	PanelLogs
	PanelCommands
)

const panelCount = 3

func (p SelectablePanel) String() string {
	switch p {
	case PanelContainers:
		return "Containers"
	case PanelLogs:
		return "Logs"
	case PanelCommands:
		return "Commands"
	}
	return ""
}

// Next cycles forward through the panels.
func (p SelectablePanel) Next() SelectablePanel {
	return (p + 1) % panelCount
}

// Previous cycles backward through the panels.
func (p SelectablePanel) Previous() SelectablePanel {
	return (p + panelCount - 1) % panelCount
}

// Status is an overlay / mode flag. Several can be set at once; Help and the
// application error gate input routing (see the input coordinator).
type Status int

const (
	StatusHelp Status = iota
	StatusFilter
	StatusDeleteConfirm
	StatusExec
	StatusLoading
	StatusDockerConnect
)

// Rect is a screen region used for mouse hit testing.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) falls inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// GuiState is the mutex-guarded interface state store: selected panel,
// overlay statuses, the info banner, delete/exec targets, and the cached
// hit-test region maps for mouse interaction.
type GuiState struct {
	mu            sync.Mutex
	selectedPanel SelectablePanel
	statuses      map[Status]struct{}
	infoText      string
	infoAt        time.Time
	infoSeq       uint64
	deleteTarget  app.ContainerID
	execTarget    app.ContainerID
	headerRects   map[app.Header]Rect
	panelRects    map[SelectablePanel]Rect
}

// NewGuiState returns a store with the Containers panel selected.
func NewGuiState() *GuiState {
	return &GuiState{
		statuses:    make(map[Status]struct{}),
		headerRects: make(map[app.Header]Rect),
		panelRects:  make(map[SelectablePanel]Rect),
	}
}

// SelectedPanel returns the panel navigation currently routes to.
func (g *GuiState) SelectedPanel() SelectablePanel {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selectedPanel
}

// SetSelectedPanel selects a panel directly.
func (g *GuiState) SetSelectedPanel(p SelectablePanel) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.selectedPanel = p
}

// NextPanel cycles the selection forward.
func (g *GuiState) NextPanel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.selectedPanel = g.selectedPanel.Next()
}

// PreviousPanel cycles the selection backward.
func (g *GuiState) PreviousPanel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.selectedPanel = g.selectedPanel.Previous()
}

// StatusAdd sets an overlay flag.
func (g *GuiState) StatusAdd(s Status) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statuses[s] = struct{}{}
}

// StatusDel clears an overlay flag.
func (g *GuiState) StatusDel(s Status) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.statuses, s)
}

// StatusContains reports whether an overlay flag is set.
func (g *GuiState) StatusContains(s Status) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.statuses[s]
	return ok
}

// SetInfoBox publishes an info banner with the current instant. The returned
// token identifies this banner; a deferred clear should go through
// ExpireInfoBox with it, so a callback from a superseded banner's timer that
// already fired cannot clear the current one.
func (g *GuiState) SetInfoBox(text string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.infoText = text
	g.infoAt = time.Now()
	g.infoSeq++
	return g.infoSeq
}

// ResetInfoBox clears the info banner unconditionally.
func (g *GuiState) ResetInfoBox() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.infoText = ""
	g.infoAt = time.Time{}
}

// ExpireInfoBox clears the banner only if it is still the one identified by
// the token.
func (g *GuiState) ExpireInfoBox(seq uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.infoSeq != seq {
		return
	}
	g.infoText = ""
	g.infoAt = time.Time{}
}

// InfoBox returns the banner text and its creation instant.
func (g *GuiState) InfoBox() (string, time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.infoText, g.infoAt, g.infoText != ""
}

// SetDeleteTarget stores the container awaiting delete confirmation. An
// empty id clears the target.
func (g *GuiState) SetDeleteTarget(id app.ContainerID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleteTarget = id
	if id == "" {
		delete(g.statuses, StatusDeleteConfirm)
	} else {
		g.statuses[StatusDeleteConfirm] = struct{}{}
	}
}

// DeleteTarget returns the pending delete-confirmation container, if any.
func (g *GuiState) DeleteTarget() (app.ContainerID, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.deleteTarget, g.deleteTarget != ""
}

// SetExecTarget stores the container the exec hand-off should attach to and
// raises the Exec status. An empty id clears both.
func (g *GuiState) SetExecTarget(id app.ContainerID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.execTarget = id
	if id == "" {
		delete(g.statuses, StatusExec)
	} else {
		g.statuses[StatusExec] = struct{}{}
	}
}

// ExecTarget returns the pending exec hand-off container, if any.
func (g *GuiState) ExecTarget() (app.ContainerID, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.execTarget, g.execTarget != ""
}

// SetHeaderRect caches the hit region of a table header. Called by the
// drawing layer each frame.
func (g *GuiState) SetHeaderRect(h app.Header, r Rect) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.headerRects[h] = r
}

// SetPanelRect caches the hit region of a panel.
func (g *GuiState) SetPanelRect(p SelectablePanel, r Rect) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.panelRects[p] = r
}

// ClearRects drops every cached hit region. Called on terminal resize; the
// next draw repopulates the maps.
func (g *GuiState) ClearRects() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.headerRects = make(map[app.Header]Rect)
	g.panelRects = make(map[SelectablePanel]Rect)
}

// HeaderAt returns the table header under the given cell, if any.
func (g *GuiState) HeaderAt(x, y int) (app.Header, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for h, r := range g.headerRects {
		if r.Contains(x, y) {
			return h, true
		}
	}
	return 0, false
}

// SelectPanelAt selects the panel under the given cell, if any.
func (g *GuiState) SelectPanelAt(x, y int) (SelectablePanel, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for p, r := range g.panelRects {
		if r.Contains(x, y) {
			g.selectedPanel = p
			return p, true
		}
	}
	return 0, false
}

// GuiSnapshot is the interface-state half of a frame description.
type GuiSnapshot struct {
	SelectedPanel SelectablePanel
	Statuses      map[Status]struct{}
	InfoText      string
	InfoAt        time.Time
	DeleteTarget  app.ContainerID
	ExecTarget    app.ContainerID
}

// Has reports whether a status flag was set when the snapshot was taken.
func (s GuiSnapshot) Has(status Status) bool {
	_, ok := s.Statuses[status]
	return ok
}

// Snapshot copies the interface state under a single lock acquisition.
func (g *GuiState) Snapshot() GuiSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	statuses := make(map[Status]struct{}, len(g.statuses))
	for s := range g.statuses {
		statuses[s] = struct{}{}
	}
	return GuiSnapshot{
		SelectedPanel: g.selectedPanel,
		Statuses:      statuses,
		InfoText:      g.infoText,
		InfoAt:        g.infoAt,
		DeleteTarget:  g.deleteTarget,
		ExecTarget:    g.execTarget,
	}
}
