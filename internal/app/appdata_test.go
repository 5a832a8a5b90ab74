package app

import (
	"testing"
)

func seed(t *testing.T) *AppData {
	t.Helper()
	a := NewAppData()
	a.UpdateContainers([]ContainerUpdate{
		{ID: "aaa111", Name: "web", Image: "nginx:latest", Status: "Up 2 hours", State: StateRunning},
		{ID: "bbb222", Name: "db", Image: "postgres:16", Status: "Up 3 hours", State: StateRunning},
		{ID: "ccc333", Name: "worker", Image: "redis:7", Status: "Exited (0)", State: StateExited},
	})
	return a
}

func names(a *AppData) []string {
	snap := a.Snapshot()
	out := make([]string, len(snap.Rows))
	for i, r := range snap.Rows {
		out[i] = r.Name
	}
	return out
}

func TestUpdateContainersKeepsHistoryAndCursor(t *testing.T) {
	a := seed(t)
	a.UpdateStats("aaa111", 12.5, 1024, 2048, 10, 20)
	a.NextContainer() // select db

	// Next poll: same containers, new status text.
	a.UpdateContainers([]ContainerUpdate{
		{ID: "aaa111", Name: "web", Image: "nginx:latest", Status: "Up 2 hours", State: StateRunning},
		{ID: "bbb222", Name: "db", Image: "postgres:16", Status: "Up 4 hours", State: StateRunning},
		{ID: "ccc333", Name: "worker", Image: "redis:7", Status: "Exited (0)", State: StateExited},
	})

	id, ok := a.SelectedContainerID()
	if !ok || id != "bbb222" {
		t.Fatalf("selection did not follow id, got %q ok=%v", id, ok)
	}

	snap := a.Snapshot()
	if snap.Rows[0].CPUPercent != 12.5 {
		t.Errorf("stats lost on merge: cpu = %v", snap.Rows[0].CPUPercent)
	}
	if snap.Rows[1].Status != "Up 4 hours" {
		t.Errorf("status not refreshed: %q", snap.Rows[1].Status)
	}
}

func TestUpdateContainersDropsRemoved(t *testing.T) {
	a := seed(t)
	a.UpdateContainers([]ContainerUpdate{
		{ID: "bbb222", Name: "db", Image: "postgres:16", Status: "Up 3 hours", State: StateRunning},
	})
	if got := a.ContainerLen(); got != 1 {
		t.Fatalf("ContainerLen = %d, want 1", got)
	}
	if _, ok := a.ContainerNameByID("aaa111"); ok {
		t.Error("removed container still resolvable")
	}
}

func TestStateChangeRebuildsCommandMenu(t *testing.T) {
	a := seed(t)
	cmd, ok := a.GetSelectedCommand()
	if !ok || cmd != ControlPause {
		t.Fatalf("running menu should start at pause, got %v ok=%v", cmd, ok)
	}

	a.UpdateContainers([]ContainerUpdate{
		{ID: "aaa111", Name: "web", Image: "nginx:latest", Status: "Paused", State: StatePaused},
	})
	cmd, ok = a.GetSelectedCommand()
	if !ok || cmd != ControlUnpause {
		t.Fatalf("paused menu should start at unpause, got %v ok=%v", cmd, ok)
	}
}

func TestSortByName(t *testing.T) {
	a := seed(t)
	a.SetSorted(SortSpec{Header: HeaderName, Order: OrderAscending})
	got := names(a)
	want := []string{"db", "web", "worker"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ascending order = %v, want %v", got, want)
		}
	}

	a.SetSorted(SortSpec{Header: HeaderName, Order: OrderDescending})
	got = names(a)
	if got[0] != "worker" || got[2] != "db" {
		t.Fatalf("descending order = %v", got)
	}
}

func TestResetSortedRestoresInsertionOrder(t *testing.T) {
	a := seed(t)
	a.SetSorted(SortSpec{Header: HeaderName, Order: OrderAscending})
	a.ResetSorted()
	got := names(a)
	want := []string{"web", "db", "worker"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order after reset = %v, want %v", got, want)
		}
	}
	if _, ok := a.GetSorted(); ok {
		t.Error("sort spec should be cleared")
	}
}

func TestSortKeepsSelectionOnSameContainer(t *testing.T) {
	a := seed(t)
	a.ContainerEnd() // select worker
	a.SetSorted(SortSpec{Header: HeaderName, Order: OrderAscending})
	id, _ := a.SelectedContainerID()
	if id != "ccc333" {
		t.Fatalf("selection moved to %q after sort", id)
	}
}

func TestFilterMatchesNameImageStatus(t *testing.T) {
	a := seed(t)

	a.SetFilter("POSTGRES")
	if got := names(a); len(got) != 1 || got[0] != "db" {
		t.Fatalf("image filter = %v", got)
	}

	a.SetFilter("exited")
	if got := names(a); len(got) != 1 || got[0] != "worker" {
		t.Fatalf("status filter = %v", got)
	}

	a.SetFilter("")
	if got := a.ContainerLen(); got != 3 {
		t.Fatalf("cleared filter shows %d rows", got)
	}
}

func TestFilterPushPop(t *testing.T) {
	a := seed(t)
	a.FilterPush('w')
	a.FilterPush('e')
	a.FilterPush('b')
	if got := names(a); len(got) != 1 || got[0] != "web" {
		t.Fatalf("filter 'web' = %v", got)
	}
	a.FilterPop()
	a.FilterPop()
	a.FilterPop()
	if a.GetFilter() != "" {
		t.Fatalf("filter not empty after pops: %q", a.GetFilter())
	}
	a.FilterPop() // no-op on empty
}

func TestContainerNavigationClamps(t *testing.T) {
	a := seed(t)
	a.PreviousContainer()
	if id, _ := a.SelectedContainerID(); id != "aaa111" {
		t.Fatalf("previous at start moved cursor to %q", id)
	}
	a.ContainerEnd()
	a.NextContainer()
	if id, _ := a.SelectedContainerID(); id != "ccc333" {
		t.Fatalf("next at end moved cursor to %q", id)
	}
	a.ContainerStart()
	if id, _ := a.SelectedContainerID(); id != "aaa111" {
		t.Fatalf("start moved cursor to %q", id)
	}
}

func TestAppendLogsPinsTail(t *testing.T) {
	a := seed(t)
	a.AppendLogs("aaa111", []string{"one", "two", "three"})

	snap := a.Snapshot()
	if snap.LogCursor != 2 {
		t.Fatalf("cursor = %d, want tail", snap.LogCursor)
	}

	// Scroll up, then append: the cursor must stay put.
	a.LogPrevious()
	a.AppendLogs("aaa111", []string{"four"})
	snap = a.Snapshot()
	if snap.LogCursor != 1 {
		t.Fatalf("cursor moved to %d while scrolled up", snap.LogCursor)
	}

	// Back to the tail: appends keep tailing.
	a.LogEnd()
	a.AppendLogs("aaa111", []string{"five"})
	snap = a.Snapshot()
	if snap.LogCursor != len(snap.LogLines)-1 {
		t.Fatalf("cursor = %d, lines = %d", snap.LogCursor, len(snap.LogLines))
	}
}

func TestSnapshotEmptyStore(t *testing.T) {
	a := NewAppData()
	snap := a.Snapshot()
	if snap.SelectedContainer != -1 {
		t.Errorf("SelectedContainer = %d, want -1", snap.SelectedContainer)
	}
	if len(snap.Rows) != 0 {
		t.Errorf("Rows = %v, want empty", snap.Rows)
	}
}

func TestStatsHistoryCapped(t *testing.T) {
	a := seed(t)
	for i := 0; i < historyLimit+10; i++ {
		a.UpdateStats("aaa111", float64(i), 1, 2, 0, 0)
	}
	snap := a.Snapshot()
	if len(snap.CPUHistory) != historyLimit {
		t.Fatalf("history length = %d, want %d", len(snap.CPUHistory), historyLimit)
	}
	if last := snap.CPUHistory[historyLimit-1]; last != float64(historyLimit+9) {
		t.Fatalf("history tail = %v", last)
	}
}
