package app

// ContainerID is the opaque identifier Docker assigns to a container.
type ContainerID string

// Short returns the first 8 characters of the id, as shown in the table.
func (id ContainerID) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

// State is the lifecycle state of a container.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateRestarting
	StateExited
	StateDead
	StateRemoving
	StateUnknown
)

// ParseState maps a Docker state string onto a State.
func ParseState(s string) State {
	switch s {
	case "running":
		return StateRunning
	case "paused":
		return StatePaused
	case "restarting":
		return StateRestarting
	case "exited":
		return StateExited
	case "dead":
		return StateDead
	case "removing":
		return StateRemoving
	}
	return StateUnknown
}

func (s State) String() string {
	switch s {
	case StateRunning:
		return "✓ running"
	case StatePaused:
		return "॥ paused"
	case StateRestarting:
		return "↻ restarting"
	case StateExited:
		return "✖ exited"
	case StateDead:
		return "✖ dead"
	case StateRemoving:
		return "removing"
	}
	return "? unknown"
}

// order gives a stable ranking for sorting by state.
func (s State) order() int { return int(s) }

// Running reports whether the container can be exec'd into.
func (s State) Running() bool { return s == StateRunning }

// Header identifies a sortable column of the containers table.
type Header int

const (
	HeaderState Header = iota
	HeaderStatus
	HeaderCpu
	HeaderMemory
	HeaderId
	HeaderName
	HeaderImage
	HeaderRx
	HeaderTx
)

// Headers lists every column in display order. The position of a header in
// this slice is also its numeric sort shortcut minus one.
var Headers = []Header{
	HeaderState, HeaderStatus, HeaderCpu, HeaderMemory,
	HeaderId, HeaderName, HeaderImage, HeaderRx, HeaderTx,
}

func (h Header) String() string {
	switch h {
	case HeaderState:
		return "state"
	case HeaderStatus:
		return "status"
	case HeaderCpu:
		return "cpu"
	case HeaderMemory:
		return "memory/limit"
	case HeaderId:
		return "id"
	case HeaderName:
		return "name"
	case HeaderImage:
		return "image"
	case HeaderRx:
		return "↓ rx"
	case HeaderTx:
		return "↑ tx"
	}
	return ""
}

// SortedOrder is the direction of a column sort.
type SortedOrder int

const (
	OrderAscending SortedOrder = iota
	OrderDescending
)

func (o SortedOrder) String() string {
	if o == OrderAscending {
		return "▲"
	}
	return "▼"
}

// SortSpec pairs a header with a direction.
type SortSpec struct {
	Header Header
	Order  SortedOrder
}

// DockerControl is a lifecycle command that can be issued against the
// selected container.
type DockerControl int

const (
	ControlPause DockerControl = iota
	ControlUnpause
	ControlStart
	ControlStop
	ControlRestart
	ControlDelete
)

func (c DockerControl) String() string {
	switch c {
	case ControlPause:
		return "pause"
	case ControlUnpause:
		return "unpause"
	case ControlStart:
		return "start"
	case ControlStop:
		return "stop"
	case ControlRestart:
		return "restart"
	case ControlDelete:
		return "delete"
	}
	return ""
}

// ControlsForState returns the commands that make sense for a container in
// the given state, in menu order.
func ControlsForState(s State) []DockerControl {
	switch s {
	case StateRunning:
		return []DockerControl{ControlPause, ControlRestart, ControlStop, ControlDelete}
	case StatePaused:
		return []DockerControl{ControlUnpause, ControlStop, ControlDelete}
	case StateRestarting:
		return []DockerControl{ControlStop, ControlDelete}
	default:
		return []DockerControl{ControlStart, ControlRestart, ControlDelete}
	}
}

// historyLimit caps the per-container cpu/memory chart history.
const historyLimit = 120

// Item is one container and everything the dashboard tracks about it.
type Item struct {
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

	cpuHistory []float64
	memHistory []float64
	logs       statefulList[string]
	commands   statefulList[DockerControl]
}

func newItem(id ContainerID, name, image, status string, state State) *Item {
	i := &Item{ID: id, Name: name, Image: image, Status: status, State: state}
	i.commands.replace(ControlsForState(state))
	return i
}

// recordStats appends one stats sample and trims history to the cap.
func (i *Item) recordStats(cpu float64, mem, memLimit, rx, tx uint64) {
	i.CPUPercent = cpu
	i.MemUsage = mem
	i.MemLimit = memLimit
	i.Rx = rx
	i.Tx = tx
	i.cpuHistory = append(i.cpuHistory, cpu)
	if len(i.cpuHistory) > historyLimit {
		i.cpuHistory = i.cpuHistory[len(i.cpuHistory)-historyLimit:]
	}
	i.memHistory = append(i.memHistory, float64(mem))
	if len(i.memHistory) > historyLimit {
		i.memHistory = i.memHistory[len(i.memHistory)-historyLimit:]
	}
}

// setState updates the state and rebuilds the command menu when it changed,
// keeping the cursor clamped.
func (i *Item) setState(s State) {
	if i.State == s {
		return
	}
	i.State = s
	i.commands.replace(ControlsForState(s))
}
