package docker

import (
	"context"
	"fmt"
	"sync"
)

// MockClient is a mock implementation of ContainerAPI for testing.
type MockClient struct {
	mu         sync.Mutex
	containers map[string]*mockContainer
	order      []string
	calls      []string

	// Configurable behaviors
	PingErr  error
	ListErr  error
	StatsErr error
	LogsFn   func(containerID, since string) ([]string, error)
	ActErr   error
}

type mockContainer struct {
	Summary
	Stats Stats
}

// NewMockClient creates a new mock container API for testing.
func NewMockClient() *MockClient {
	return &MockClient{containers: make(map[string]*mockContainer)}
}

// AddContainer seeds a container with optional stats.
func (m *MockClient) AddContainer(summary Summary, stats Stats) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.containers[summary.ID] = &mockContainer{Summary: summary, Stats: stats}
	m.order = append(m.order, summary.ID)
}

// Calls returns every API call made so far, formatted "op id".
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockClient) record(op, id string) {
	m.calls = append(m.calls, fmt.Sprintf("%s %s", op, id))
}

func (m *MockClient) Ping(ctx context.Context) error { return m.PingErr }

func (m *MockClient) Close() error { return nil }

func (m *MockClient) ListContainers(ctx context.Context) ([]Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	summaries := make([]Summary, 0, len(m.order))
	for _, id := range m.order {
		summaries = append(summaries, m.containers[id].Summary)
	}
	return summaries, nil
}

func (m *MockClient) ContainerStats(ctx context.Context, containerID string) (*Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StatsErr != nil {
		return nil, m.StatsErr
	}
	if c, ok := m.containers[containerID]; ok {
		stats := c.Stats
		return &stats, nil
	}
	return nil, fmt.Errorf("no such container: %s", containerID)
}

func (m *MockClient) ContainerLogs(ctx context.Context, containerID, since string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LogsFn != nil {
		return m.LogsFn(containerID, since)
	}
	return nil, nil
}

func (m *MockClient) setState(containerID, state string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ActErr != nil {
		return m.ActErr
	}
	if c, ok := m.containers[containerID]; ok {
		c.State = state
		return nil
	}
	return fmt.Errorf("no such container: %s", containerID)
}

func (m *MockClient) PauseContainer(ctx context.Context, containerID string) error {
	m.mu.Lock()
	m.record("pause", containerID)
	m.mu.Unlock()
	return m.setState(containerID, "paused")
}

func (m *MockClient) UnpauseContainer(ctx context.Context, containerID string) error {
	m.mu.Lock()
	m.record("unpause", containerID)
	m.mu.Unlock()
	return m.setState(containerID, "running")
}

func (m *MockClient) StartContainer(ctx context.Context, containerID string) error {
	m.mu.Lock()
	m.record("start", containerID)
	m.mu.Unlock()
	return m.setState(containerID, "running")
}

func (m *MockClient) StopContainer(ctx context.Context, containerID string) error {
	m.mu.Lock()
	m.record("stop", containerID)
	m.mu.Unlock()
	return m.setState(containerID, "exited")
}

func (m *MockClient) RestartContainer(ctx context.Context, containerID string) error {
	m.mu.Lock()
	m.record("restart", containerID)
	m.mu.Unlock()
	return m.setState(containerID, "running")
}

func (m *MockClient) RemoveContainer(ctx context.Context, containerID string) error {
	m.mu.Lock()
	m.record("remove", containerID)
	if m.ActErr != nil {
		m.mu.Unlock()
		return m.ActErr
	}
	delete(m.containers, containerID)
	for i, id := range m.order {
		if id == containerID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.mu.Unlock()
	return nil
}

// Verify MockClient implements ContainerAPI at compile time
var _ ContainerAPI = (*MockClient)(nil)
