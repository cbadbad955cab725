// Package command turns a line typed in command mode into output lines.
package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"horizonx-top/internal/domain"
	"horizonx-top/internal/pkg"
	"horizonx-top/internal/query"
)

type Querier interface {
	QueryProcess(ctx context.Context, pid int32) (domain.ProcessDetail, error)
	Kill(ctx context.Context, pid int32) error
}

type Executor struct {
	query Querier
}

func NewExecutor(q Querier) *Executor {
	return &Executor{query: q}
}

var helpLines = []string{
	"Available commands:",
	"  p <PID> - Show detailed process information",
	"  k <PID> - Send SIGTERM to a process",
	"  help or ? - Show this help message",
	"  Press ESC to exit command mode",
}

// Run executes one command line. Empty input produces no output.
func (e *Executor) Run(ctx context.Context, input string) []string {
	cmd := strings.TrimSpace(input)

	switch {
	case cmd == "":
		return nil
	case cmd == "help" || cmd == "?":
		return append([]string(nil), helpLines...)
	case hasVerb(cmd, "p"):
		return e.process(ctx, cmd[2:])
	case hasVerb(cmd, "k"):
		return e.kill(ctx, cmd[2:])
	default:
		return []string{fmt.Sprintf("Unknown command: '%s'. Type 'help' for available commands.", cmd)}
	}
}

func hasVerb(cmd, verb string) bool {
	return len(cmd) > 2 && strings.EqualFold(cmd[:1], verb) && cmd[1] == ' '
}

func (e *Executor) process(ctx context.Context, arg string) []string {
	pid, err := query.ParsePID(arg)
	if err != nil {
		return []string{"Invalid PID format. Usage: p <PID>"}
	}

	d, err := e.query.QueryProcess(ctx, pid)
	if errors.Is(err, domain.ErrProcessNotFound) {
		return []string{fmt.Sprintf("Process with PID %d not found", pid)}
	}
	if err != nil {
		return []string{fmt.Sprintf("Query for PID %d failed: %v", pid, err)}
	}

	return DetailLines(d)
}

func (e *Executor) kill(ctx context.Context, arg string) []string {
	pid, err := query.ParsePID(arg)
	if err != nil {
		return []string{"Invalid PID format. Usage: k <PID>"}
	}

	if err := e.query.Kill(ctx, pid); err != nil {
		return []string{fmt.Sprintf("Failed to signal PID %d", pid)}
	}
	return []string{fmt.Sprintf("Sent SIGTERM to PID %d", pid)}
}

func DetailLines(d domain.ProcessDetail) []string {
	lines := []string{
		fmt.Sprintf("Process Details for PID %d:", d.PID),
		fmt.Sprintf("  Name: %s", d.Name),
		fmt.Sprintf("  Status: %s", d.Status),
		fmt.Sprintf("  CPU Usage: %.2f%%", d.CPUPercent),
		fmt.Sprintf("  Memory: %s", pkg.FormatBytes(d.MemoryBytes)),
		fmt.Sprintf("  Virtual Memory: %s", pkg.FormatBytes(d.VirtualMemoryBytes)),
		fmt.Sprintf("  Runtime: %d seconds", d.RunTimeSeconds),
		fmt.Sprintf("  Disk Read: %s", pkg.FormatBytes(d.DiskReadBytes)),
		fmt.Sprintf("  Disk Write: %s", pkg.FormatBytes(d.DiskWriteBytes)),
	}

	if d.Cwd != "" {
		lines = append(lines, fmt.Sprintf("  CWD: %s", d.Cwd))
	}
	if d.Exe != "" {
		lines = append(lines, fmt.Sprintf("  Executable: %s", d.Exe))
	}

	return lines
}
