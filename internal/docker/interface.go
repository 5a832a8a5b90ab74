// Package docker talks to the container engine: it polls the runtime for
// container listings, stats, and logs, publishes them into the application
// state store, and executes lifecycle commands from the input coordinator.
package docker

import "context"

// Summary is one container as reported by a listing.
type Summary struct {
	ID     string
	Name   string
	Image  string
	Status string
	State  string
}

// Stats is a single resource usage sample for a running container.
type Stats struct {
	CPUPercent float64
	MemUsage   uint64
	MemLimit   uint64
	Rx         uint64
	Tx         uint64
}

// ContainerAPI is the surface of the Docker SDK the driver consumes.
// Narrow on purpose so tests can substitute a mock.
type ContainerAPI interface {
	Ping(ctx context.Context) error
	Close() error

	ListContainers(ctx context.Context) ([]Summary, error)
	ContainerStats(ctx context.Context, containerID string) (*Stats, error)
	ContainerLogs(ctx context.Context, containerID, since string) ([]string, error)

	PauseContainer(ctx context.Context, containerID string) error
	UnpauseContainer(ctx context.Context, containerID string) error
	StartContainer(ctx context.Context, containerID string) error
	StopContainer(ctx context.Context, containerID string) error
	RestartContainer(ctx context.Context, containerID string) error
	RemoveContainer(ctx context.Context, containerID string) error
}

// Verify Client implements ContainerAPI at compile time
var _ ContainerAPI = (*Client)(nil)
