// Package app holds the shared application state store: the container list
// with its sort/filter settings, per-container logs and command menus, and
// the last recorded error. Every accessor is lock-scoped; the mutex is never
// exposed to callers.
package app

import (
	"sort"
	"strings"
	"sync"

	"github.com/RandyMcMillan/oxker/internal/apperror"
)

// AppData is the mutex-guarded application state store. Construct once with
// NewAppData and share by pointer between the input coordinator, the render
// loop, and the docker driver.
type AppData struct {
	mu     sync.Mutex
	items  []*Item
	view   statefulList[*Item]
	sorted *SortSpec
	filter string
	err    *apperror.AppError
}

// NewAppData returns an empty store.
func NewAppData() *AppData {
	return &AppData{}
}

// ContainerUpdate is one container row as reported by the docker driver.
type ContainerUpdate struct {
	ID     ContainerID
	Name   string
	Image  string
	Status string
	State  State
}

// UpdateContainers merges a fresh container listing into the store. Existing
// items keep their stats history, logs, and command cursor; containers no
// longer present are dropped; the selection follows the previously selected
// id where possible.
func (a *AppData) UpdateContainers(updates []ContainerUpdate) {
	a.mu.Lock()
	defer a.mu.Unlock()

	byID := make(map[ContainerID]*Item, len(a.items))
	for _, item := range a.items {
		byID[item.ID] = item
	}

	merged := make([]*Item, 0, len(updates))
	for _, u := range updates {
		if item, ok := byID[u.ID]; ok {
			item.Name = u.Name
			item.Image = u.Image
			item.Status = u.Status
			item.setState(u.State)
			merged = append(merged, item)
		} else {
			merged = append(merged, newItem(u.ID, u.Name, u.Image, u.Status, u.State))
		}
	}
	a.items = merged
	a.rebuildView()
}

// UpdateStats records one stats sample for the given container.
func (a *AppData) UpdateStats(id ContainerID, cpu float64, mem, memLimit, rx, tx uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if item := a.byID(id); item != nil {
		item.recordStats(cpu, mem, memLimit, rx, tx)
	}
}

// AppendLogs adds lines to a container's log buffer. When the cursor was at
// the end it stays pinned to the end, so a tailing view keeps tailing.
func (a *AppData) AppendLogs(id ContainerID, lines []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	item := a.byID(id)
	if item == nil || len(lines) == 0 {
		return
	}
	tailing := item.logs.len() == 0 || item.logs.cursor == item.logs.len()-1
	for _, line := range lines {
		item.logs.push(line)
	}
	if tailing {
		item.logs.end()
	}
}

// LogLen returns the number of buffered log lines for the container.
func (a *AppData) LogLen(id ContainerID) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if item := a.byID(id); item != nil {
		return item.logs.len()
	}
	return 0
}

// GetSorted returns the current sort specification, if any.
func (a *AppData) GetSorted() (SortSpec, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sorted == nil {
		return SortSpec{}, false
	}
	return *a.sorted, true
}

// SetSorted installs a sort specification and re-sorts the view.
func (a *AppData) SetSorted(spec SortSpec) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sorted = &spec
	a.rebuildView()
}

// ResetSorted clears the sort, restoring insertion order.
func (a *AppData) ResetSorted() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sorted = nil
	a.rebuildView()
}

// GetFilter returns the current filter term.
func (a *AppData) GetFilter() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filter
}

// SetFilter replaces the filter term.
func (a *AppData) SetFilter(term string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filter = term
	a.rebuildView()
}

// FilterPush appends one rune to the filter term.
func (a *AppData) FilterPush(r rune) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filter += string(r)
	a.rebuildView()
}

// FilterPop removes the last rune of the filter term.
func (a *AppData) FilterPop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.filter == "" {
		return
	}
	runes := []rune(a.filter)
	a.filter = string(runes[:len(runes)-1])
	a.rebuildView()
}

// GetError returns the last recorded error, or nil.
func (a *AppData) GetError() *apperror.AppError {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// SetError records an error for the error overlay.
func (a *AppData) SetError(err *apperror.AppError) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.err = err
}

// RemoveError clears the recorded error.
func (a *AppData) RemoveError() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.err = nil
}

// SelectedContainerID returns the id of the highlighted container.
func (a *AppData) SelectedContainerID() (ContainerID, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	item, ok := a.view.selected()
	if !ok {
		return "", false
	}
	return item.ID, true
}

// SelectedContainerState returns the state of the highlighted container.
func (a *AppData) SelectedContainerState() (State, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	item, ok := a.view.selected()
	if !ok {
		return StateUnknown, false
	}
	return item.State, true
}

// GetSelectedCommand returns the highlighted entry of the selected
// container's command menu.
func (a *AppData) GetSelectedCommand() (DockerControl, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	item, ok := a.view.selected()
	if !ok {
		return 0, false
	}
	return item.commands.selected()
}

// ContainerNameByID resolves an id to a display name. Used by the drawing
// layer to invalidate a stale delete-confirm target.
func (a *AppData) ContainerNameByID(id ContainerID) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if item := a.byID(id); item != nil {
		return item.Name, true
	}
	return "", false
}

// ContainerLen returns the number of visible (filtered) containers.
func (a *AppData) ContainerLen() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view.len()
}

// Container list navigation.

func (a *AppData) NextContainer() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view.next()
}

func (a *AppData) PreviousContainer() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view.previous()
}

func (a *AppData) ContainerStart() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view.start()
}

func (a *AppData) ContainerEnd() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view.end()
}

// Log navigation, scoped to the selected container.

func (a *AppData) LogNext() { a.withSelected(func(i *Item) { i.logs.next() }) }

func (a *AppData) LogPrevious() { a.withSelected(func(i *Item) { i.logs.previous() }) }

func (a *AppData) LogStart() { a.withSelected(func(i *Item) { i.logs.start() }) }

func (a *AppData) LogEnd() { a.withSelected(func(i *Item) { i.logs.end() }) }

// Command menu navigation, scoped to the selected container.

func (a *AppData) CommandNext() { a.withSelected(func(i *Item) { i.commands.next() }) }

func (a *AppData) CommandPrevious() { a.withSelected(func(i *Item) { i.commands.previous() }) }

func (a *AppData) CommandStart() { a.withSelected(func(i *Item) { i.commands.start() }) }

func (a *AppData) CommandEnd() { a.withSelected(func(i *Item) { i.commands.end() }) }

func (a *AppData) withSelected(fn func(*Item)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if item, ok := a.view.selected(); ok {
		fn(item)
	}
}

// byID finds an item in the full (unfiltered) list. Callers hold the lock.
func (a *AppData) byID(id ContainerID) *Item {
	for _, item := range a.items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// rebuildView recomputes the filtered, sorted view while keeping the
// selection on the same container id. Callers hold the lock.
func (a *AppData) rebuildView() {
	var selectedID ContainerID
	if item, ok := a.view.selected(); ok {
		selectedID = item.ID
	}

	visible := make([]*Item, 0, len(a.items))
	term := strings.ToLower(a.filter)
	for _, item := range a.items {
		if term == "" ||
			strings.Contains(strings.ToLower(item.Name), term) ||
			strings.Contains(strings.ToLower(item.Image), term) ||
			strings.Contains(strings.ToLower(item.Status), term) {
			visible = append(visible, item)
		}
	}

	if a.sorted != nil {
		spec := *a.sorted
		sort.SliceStable(visible, func(x, y int) bool {
			less := itemLess(visible[x], visible[y], spec.Header)
			if spec.Order == OrderDescending {
				return !less
			}
			return less
		})
	}

	a.view.replace(visible)
	if selectedID != "" {
		for idx, item := range visible {
			if item.ID == selectedID {
				a.view.cursor = idx
				break
			}
		}
	}
}

// itemLess orders two items by a single header, ascending.
func itemLess(x, y *Item, h Header) bool {
	switch h {
	case HeaderState:
		return x.State.order() < y.State.order()
	case HeaderStatus:
		return x.Status < y.Status
	case HeaderCpu:
		return x.CPUPercent < y.CPUPercent
	case HeaderMemory:
		return x.MemUsage < y.MemUsage
	case HeaderId:
		return x.ID < y.ID
	case HeaderName:
		return x.Name < y.Name
	case HeaderImage:
		return x.Image < y.Image
	case HeaderRx:
		return x.Rx < y.Rx
	case HeaderTx:
		return x.Tx < y.Tx
	}
	return false
}
