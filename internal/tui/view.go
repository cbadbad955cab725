package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"horizonx-top/internal/domain"
	"horizonx-top/internal/pkg"
)

var (
	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("57"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

	greenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	yellowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	redStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	blueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	magentaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	cyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	plainStyle   = lipgloss.NewStyle()
)

func (m *tuiModel) initNetworkTable() {
	columns := []table.Column{
		{Title: "Iface", Width: 12},
		{Title: "RX/s", Width: 11},
		{Title: "TX/s", Width: 11},
		{Title: "RX total", Width: 10},
		{Title: "TX total", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(m.opts.NetworkLimit+2),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Foreground(lipgloss.Color("6")).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	m.network = t
}

func (m *tuiModel) updateNetworkRows() {
	ifaces := m.view.Network.Interfaces
	if len(ifaces) > m.opts.NetworkLimit {
		ifaces = ifaces[:m.opts.NetworkLimit]
	}

	rows := make([]table.Row, 0, len(ifaces))
	for _, iface := range ifaces {
		rows = append(rows, table.Row{
			iface.Name,
			pkg.FormatRate(iface.RxBytesPerSec),
			pkg.FormatRate(iface.TxBytesPerSec),
			pkg.FormatBytes(iface.RxTotalBytes),
			pkg.FormatBytes(iface.TxTotalBytes),
		})
	}
	m.network.SetRows(rows)
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(m.systemPanel() + "\n")
	b.WriteString(m.processPanel() + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.memoryPanel(), m.networkPanel()) + "\n")
	b.WriteString(m.commandPanel() + "\n")

	return b.String()
}

func (m tuiModel) systemPanel() string {
	sys := m.view.System

	cpuLine := fmt.Sprintf("Total CPU Usage: %.2f%%", sys.TotalCPUPercent)
	cpuStyle := yellowStyle
	if m.view.Paused {
		cpuLine += " [PAUSED]"
		cpuStyle = redStyle.Bold(true)
	}

	lines := []string{
		titleStyle.Render("System"),
		greenStyle.Render("CPU Model: " + sys.CPUModel),
		cpuStyle.Render(cpuLine),
		cyanStyle.Render(fmt.Sprintf("Sort: %s | 'c'=CPU 'm'=Memory 'p'=PID | Space/s=Pause | ':'=Cmd | 'q'=Quit", m.sortBy)),
		blueStyle.Render(fmt.Sprintf("RAM: %s / %s (%.2f%%)",
			pkg.FormatBytes(sys.UsedMemoryBytes),
			pkg.FormatBytes(sys.TotalMemoryBytes),
			pkg.Percent(sys.UsedMemoryBytes, sys.TotalMemoryBytes))),
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

// sortProcesses orders a private copy of the process list. CPU and memory
// sort descending, PID ascending.
func sortProcesses(procs []domain.ProcessRecord, by sortBy) []domain.ProcessRecord {
	out := slices.Clone(procs)

	switch by {
	case sortMemory:
		slices.SortStableFunc(out, func(a, b domain.ProcessRecord) int {
			return cmpDesc(a.MemoryBytes, b.MemoryBytes)
		})
	case sortPID:
		slices.SortStableFunc(out, func(a, b domain.ProcessRecord) int {
			return int(a.PID) - int(b.PID)
		})
	default:
		slices.SortStableFunc(out, func(a, b domain.ProcessRecord) int {
			return cmpDesc(a.CPUPercent, b.CPUPercent)
		})
	}

	return out
}

func cmpDesc[T uint64 | float64](a, b T) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

// rowStyle colors hot processes: CPU first, then memory share.
func rowStyle(cpuPercent, memPercent float64) lipgloss.Style {
	switch {
	case cpuPercent > 80:
		return redStyle
	case cpuPercent > 50:
		return yellowStyle
	case memPercent > 20:
		return magentaStyle
	default:
		return plainStyle
	}
}

const processRowFormat = "%-24s %8s %9s %-22s %-12s %10s"

func (m tuiModel) processPanel() string {
	total := m.view.System.TotalMemoryBytes
	procs := sortProcesses(m.view.System.Processes, m.sortBy)
	if len(procs) > m.opts.ProcessLimit {
		procs = procs[:m.opts.ProcessLimit]
	}

	lines := make([]string, 0, len(procs)+2)
	lines = append(lines, titleStyle.Render("Top Processes"))
	lines = append(lines, headerStyle.Render(fmt.Sprintf(processRowFormat, "Name", "PID", "CPU %", "Memory", "Status", "Runtime")))

	for _, p := range procs {
		memPct := pkg.Percent(p.MemoryBytes, total)
		line := fmt.Sprintf(processRowFormat,
			truncate(p.Name, 24),
			fmt.Sprint(p.PID),
			fmt.Sprintf("%.2f%%", p.CPUPercent),
			fmt.Sprintf("%s (%.1f%%)", pkg.FormatBytes(p.MemoryBytes), memPct),
			truncate(p.Status, 12),
			fmt.Sprint(p.RunTimeSeconds),
		)
		lines = append(lines, rowStyle(p.CPUPercent, memPct).Render(line))
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (m tuiModel) memoryPanel() string {
	sys := m.view.System
	memPct := pkg.Percent(sys.UsedMemoryBytes, sys.TotalMemoryBytes)

	ramStyle := greenStyle
	switch {
	case memPct > 90:
		ramStyle = redStyle.Bold(true)
	case memPct > 75:
		ramStyle = yellowStyle
	}

	lines := []string{
		titleStyle.Render("Memory"),
		ramStyle.Render(fmt.Sprintf("RAM: %s / %s (%.1f%%)",
			pkg.FormatBytes(sys.UsedMemoryBytes), pkg.FormatBytes(sys.TotalMemoryBytes), memPct)),
		cyanStyle.Render("Available: " + pkg.FormatBytes(sys.AvailableMemoryBytes)),
		"",
	}

	if sys.TotalSwapBytes > 0 {
		swapPct := pkg.Percent(sys.UsedSwapBytes, sys.TotalSwapBytes)
		swapStyle := cyanStyle
		switch {
		case swapPct > 75:
			swapStyle = redStyle.Bold(true)
		case swapPct > 50:
			swapStyle = yellowStyle
		}
		lines = append(lines, swapStyle.Render(fmt.Sprintf("Swap: %s / %s (%.1f%%)",
			pkg.FormatBytes(sys.UsedSwapBytes), pkg.FormatBytes(sys.TotalSwapBytes), swapPct)))
	} else {
		lines = append(lines, dimStyle.Render("Swap: Not configured"))
	}

	lines = append(lines, "", magentaStyle.Render(fmt.Sprintf("Disk I/O: ↓%s ↑%s",
		pkg.FormatRate(sys.DiskReadBytesPerSec), pkg.FormatRate(sys.DiskWriteBytesPerSec))))

	return panelStyle.Width(44).Render(strings.Join(lines, "\n"))
}

func (m tuiModel) networkPanel() string {
	return panelStyle.Render(titleStyle.Render("Network") + "\n" + m.network.View())
}

func (m tuiModel) commandPanel() string {
	var prompt string
	if m.commandMode {
		prompt = greenStyle.Render(m.input.View())
	} else {
		prompt = dimStyle.Render("> (Press ':' to enter command mode, 'p <PID>' for process details)")
	}

	lines := []string{titleStyle.Render("Command Line"), prompt}

	out := m.output
	if len(out) > outputLines {
		out = out[len(out)-outputLines:]
	}
	for _, line := range out {
		lines = append(lines, yellowStyle.Render(line))
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}
