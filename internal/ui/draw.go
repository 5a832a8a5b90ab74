package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/RandyMcMillan/oxker/internal/app"
	"github.com/RandyMcMillan/oxker/internal/apperror"
	"github.com/RandyMcMillan/oxker/internal/gui"
)

// columnWidths is the fixed cell width per containers-table column, heading
// included. Cell text is truncated to fit.
var columnWidths = map[app.Header]int{
	app.HeaderState:  13,
	app.HeaderStatus: 18,
	app.HeaderCpu:    8,
	app.HeaderMemory: 20,
	app.HeaderId:     10,
	app.HeaderName:   22,
	app.HeaderImage:  22,
	app.HeaderRx:     9,
	app.HeaderTx:     9,
}

const (
	headingHeight = 1
	chartsHeight  = 5
	commandsWidth = 14
	minWidth      = 40
	minHeight     = 12
)

// draw renders one full frame and, as a side effect, refreshes the mouse
// hit-test regions in the interface state store.
func draw(fd FrameData, width, height int, guiState *gui.GuiState) string {
	if width < minWidth || height < minHeight {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			dimStyle.Render("terminal too small"))
	}

	filterHeight := 0
	if fd.Gui.Has(gui.StatusFilter) || fd.App.Filter != "" {
		filterHeight = 1
	}
	remaining := height - headingHeight - chartsHeight - filterHeight
	containersHeight := remaining / 2
	if containersHeight < 4 {
		containersHeight = 4
	}
	logsHeight := remaining - containersHeight

	var b strings.Builder
	b.WriteString(drawHeading(fd, width, guiState))
	b.WriteString("\n")

	containersWidth := width - commandsWidth
	guiState.SetPanelRect(gui.PanelContainers, gui.Rect{X: 0, Y: headingHeight, W: containersWidth, H: containersHeight})
	guiState.SetPanelRect(gui.PanelCommands, gui.Rect{X: containersWidth, Y: headingHeight, W: commandsWidth, H: containersHeight})
	guiState.SetPanelRect(gui.PanelLogs, gui.Rect{X: 0, Y: headingHeight + containersHeight, W: width, H: logsHeight})

	containers := drawContainers(fd, containersWidth, containersHeight)
	commands := drawCommands(fd, commandsWidth, containersHeight)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, containers, commands))
	b.WriteString("\n")

	b.WriteString(drawLogs(fd, width, logsHeight))
	b.WriteString("\n")

	b.WriteString(drawCharts(fd, width))

	if filterHeight > 0 {
		b.WriteString("\n")
		b.WriteString(drawFilterBar(fd, width))
	}
	return b.String()
}

// drawHeading renders the clickable column headers plus the right-hand strip
// holding the loading icon, the info banner, or the help hint.
func drawHeading(fd FrameData, width int, guiState *gui.GuiState) string {
	var cells []string
	x := 0
	for _, h := range app.Headers {
		w := columnWidths[h]
		text := " " + h.String()
		style := headerStyle
		if fd.App.Sorted != nil && fd.App.Sorted.Header == h {
			text += " " + fd.App.Sorted.Order.String()
			style = headerSortedStyle
		}
		guiState.SetHeaderRect(h, gui.Rect{X: x, Y: 0, W: w, H: 1})
		cells = append(cells, style.Width(w).Render(truncate(text, w)))
		x += w
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)

	right := dimStyle.Render("( h ) show help ")
	if fd.Gui.InfoText != "" {
		right = infoBoxStyle.Render(fd.Gui.InfoText)
	} else if fd.Gui.Has(gui.StatusLoading) {
		right = "⏳ "
	}
	gap := width - lipgloss.Width(row) - lipgloss.Width(right)
	if gap < 0 {
		// Styled text needs ANSI-aware truncation.
		return ansi.Truncate(row, width, "")
	}
	return row + strings.Repeat(" ", gap) + right
}

// drawContainers renders the containers table, windowed around the cursor.
func drawContainers(fd FrameData, width, height int) string {
	style := panelStyle
	if fd.Gui.SelectedPanel == gui.PanelContainers {
		style = panelSelectedStyle
	}
	innerW, innerH := width-2, height-2

	if len(fd.App.Rows) == 0 {
		empty := dimStyle.Render("no containers")
		return style.Width(innerW).Height(innerH).Render(empty)
	}

	start := windowStart(fd.App.SelectedContainer, len(fd.App.Rows), innerH)
	lines := make([]string, 0, innerH)
	for i := start; i < len(fd.App.Rows) && len(lines) < innerH; i++ {
		row := fd.App.Rows[i]
		line := formatRow(row, innerW)
		if i == fd.App.SelectedContainer {
			line = rowSelectedStyle.Width(innerW).Render(line)
		} else {
			line = stateColor(row.State.Running()).Render(line)
		}
		lines = append(lines, line)
	}
	return style.Width(innerW).Height(innerH).Render(strings.Join(lines, "\n"))
}

// formatRow lays one container out with the same cell widths as the heading.
func formatRow(row app.Row, width int) string {
	cells := []struct {
		header app.Header
		text   string
	}{
		{app.HeaderState, row.State.String()},
		{app.HeaderStatus, row.Status},
		{app.HeaderCpu, fmt.Sprintf("%5.2f%%", row.CPUPercent)},
		{app.HeaderMemory, formatBytes(row.MemUsage) + " / " + formatBytes(row.MemLimit)},
		{app.HeaderId, row.ID.Short()},
		{app.HeaderName, row.Name},
		{app.HeaderImage, row.Image},
		{app.HeaderRx, formatBytes(row.Rx)},
		{app.HeaderTx, formatBytes(row.Tx)},
	}
	var b strings.Builder
	for _, c := range cells {
		w := columnWidths[c.header]
		b.WriteString(pad(" "+c.text, w))
	}
	return truncate(b.String(), width)
}

// drawCommands renders the lifecycle menu for the selected container.
func drawCommands(fd FrameData, width, height int) string {
	style := panelStyle
	if fd.Gui.SelectedPanel == gui.PanelCommands {
		style = panelSelectedStyle
	}
	innerW, innerH := width-2, height-2

	lines := make([]string, 0, len(fd.App.Commands))
	for i, c := range fd.App.Commands {
		line := pad(" "+c.String(), innerW)
		if i == fd.App.CommandCursor && fd.Gui.SelectedPanel == gui.PanelCommands {
			line = rowSelectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return style.Width(innerW).Height(innerH).Render(strings.Join(lines, "\n"))
}

// drawLogs renders the selected container's log tail through a viewport kept
// scrolled to the cursor.
func drawLogs(fd FrameData, width, height int) string {
	style := panelStyle
	if fd.Gui.SelectedPanel == gui.PanelLogs {
		style = panelSelectedStyle
	}
	innerW, innerH := width-2, height-2

	lines := make([]string, len(fd.App.LogLines))
	for i, l := range fd.App.LogLines {
		line := truncate(l, innerW)
		if i == fd.App.LogCursor && fd.Gui.SelectedPanel == gui.PanelLogs {
			line = rowSelectedStyle.Width(innerW).Render(line)
		}
		lines[i] = line
	}

	vp := viewport.New(innerW, innerH-1)
	vp.SetContent(strings.Join(lines, "\n"))
	vp.SetYOffset(windowStart(fd.App.LogCursor, len(lines), innerH-1))

	title := headerStyle.Render(truncate(fd.LogTitle(), innerW))
	return style.Width(innerW).Height(innerH).Render(title + "\n" + vp.View())
}

// drawCharts renders the cpu and memory sparklines for the selected container.
func drawCharts(fd FrameData, width int) string {
	half := width / 2
	innerW, innerH := half-2, chartsHeight-2

	cpuTitle := " cpu 0.00% "
	memTitle := " memory "
	if n := len(fd.App.CPUHistory); n > 0 {
		cpuTitle = fmt.Sprintf(" cpu %.2f%% ", fd.App.CPUHistory[n-1])
	}
	if n := len(fd.App.MemHistory); n > 0 {
		memTitle = fmt.Sprintf(" memory %s ", formatBytes(uint64(fd.App.MemHistory[n-1])))
	}

	cpu := panelStyle.Width(innerW).Height(innerH).Render(
		headerStyle.Render(truncate(cpuTitle, innerW)) + "\n" +
			chartStyle.Render(sparkline(fd.App.CPUHistory, innerW, innerH-1)))
	mem := panelStyle.Width(innerW).Height(innerH).Render(
		headerStyle.Render(truncate(memTitle, innerW)) + "\n" +
			chartStyle.Render(sparkline(fd.App.MemHistory, innerW, innerH-1)))
	return lipgloss.JoinHorizontal(lipgloss.Top, cpu, mem)
}

// drawFilterBar renders the live filter line.
func drawFilterBar(fd FrameData, width int) string {
	term := fd.App.Filter
	cursor := ""
	if fd.Gui.Has(gui.StatusFilter) {
		cursor = "█"
	}
	line := headerStyle.Render(" / ") + term + cursor
	hint := dimStyle.Render("( esc ) clear  ( enter ) close ")
	gap := width - lipgloss.Width(line) - lipgloss.Width(hint)
	if gap < 0 {
		gap = 0
	}
	return truncate(line+strings.Repeat(" ", gap)+hint, width)
}

// drawHelp renders the full-screen key reference.
func drawHelp(width, height int) string {
	help := strings.Join([]string{
		"( tab / shift+tab )  change panel",
		"( ↑ k / ↓ j )        move cursor",
		"( PgUp / PgDn )      move cursor 7 lines",
		"( Home / End )       jump to start / end",
		"( enter )            run highlighted command",
		"( 1 - 9 )            sort by column",
		"( 0 )                clear sort",
		"( e )                exec into container",
		"( d )                delete container",
		"( / )                filter containers",
		"( m )                toggle mouse capture",
		"( h )                toggle help",
		"( q )                quit",
	}, "\n")
	box := dialogStyle.Render(headerStyle.Render("Help") + "\n\n" + help)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// drawError renders the clearable error dialog.
func drawError(err *apperror.AppError, width, height int) string {
	body := errorTextStyle.Render(err.Error()) + "\n\n" +
		dimStyle.Render("( c ) clear    ( q ) quit")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		errorDialogStyle.Render(body))
}

// drawDeleteConfirm renders the y/n prompt for a pending delete.
func drawDeleteConfirm(name string, width, height int) string {
	body := fmt.Sprintf("Delete container %s?", headerStyle.Render(name)) + "\n\n" +
		dimStyle.Render("( y ) yes    ( n ) no")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		dialogStyle.Render(body))
}

// drawConnectError renders the fatal daemon-connection screen with the
// shutdown countdown.
func drawConnectError(err *apperror.AppError, width, height, seconds int) string {
	msg := "Unable to access the docker daemon"
	if err != nil {
		msg = err.Error()
	}
	body := errorTextStyle.Render(msg) + "\n\n" +
		dimStyle.Render(fmt.Sprintf("closing in %d second(s)", seconds))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		errorDialogStyle.Render(body))
}

// windowStart picks the first visible index so the cursor stays in view.
func windowStart(cursor, total, visible int) int {
	if total <= visible || visible <= 0 {
		return 0
	}
	start := cursor - visible/2
	if start < 0 {
		start = 0
	}
	if start > total-visible {
		start = total - visible
	}
	return start
}

// sparkline renders values as block-glyph columns scaled to the series max.
func sparkline(values []float64, width, height int) string {
	blocks := []rune("▁▂▃▄▅▆▇█")
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	var b strings.Builder
	for _, v := range values {
		idx := 0
		if max > 0 {
			idx = int(v / max * float64(len(blocks)-1))
		}
		b.WriteRune(blocks[idx])
	}
	return b.String()
}

// pad truncates or right-pads text to exactly width cells.
func pad(text string, width int) string {
	text = truncate(text, width)
	return text + strings.Repeat(" ", width-runewidth.StringWidth(text))
}

func truncate(text string, width int) string {
	return runewidth.Truncate(text, width, "…")
}

// formatBytes renders a byte count in binary units, e.g. "1.46 MB".
func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
