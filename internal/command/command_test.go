package command

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"horizonx-top/internal/domain"
)

type fakeQuerier struct {
	details map[int32]domain.ProcessDetail
	killErr error
	killed  []int32
}

func (f *fakeQuerier) QueryProcess(_ context.Context, pid int32) (domain.ProcessDetail, error) {
	d, ok := f.details[pid]
	if !ok {
		return domain.ProcessDetail{}, fmt.Errorf("pid %d: %w", pid, domain.ErrProcessNotFound)
	}
	return d, nil
}

func (f *fakeQuerier) Kill(_ context.Context, pid int32) error {
	f.killed = append(f.killed, pid)
	return f.killErr
}

func TestRun(t *testing.T) {
	q := &fakeQuerier{details: map[int32]domain.ProcessDetail{
		42: {PID: 42, Name: "nginx", Status: "Sleep", CPUPercent: 1.234, MemoryBytes: 1536, RunTimeSeconds: 90, Exe: "/usr/sbin/nginx"},
	}}
	e := NewExecutor(q)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "   ", nil},
		{"not found", "p 7", []string{"Process with PID 7 not found"}},
		{"bad pid", "p abc", []string{"Invalid PID format. Usage: p <PID>"}},
		{"unknown", "frobnicate", []string{"Unknown command: 'frobnicate'. Type 'help' for available commands."}},
		{"bare verb", "p", []string{"Unknown command: 'p'. Type 'help' for available commands."}},
		{"kill", "k 42", []string{"Sent SIGTERM to PID 42"}},
		{"kill bad pid", "k x", []string{"Invalid PID format. Usage: k <PID>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Run(context.Background(), tt.input)
			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") {
				t.Errorf("Run(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRunProcessDetail(t *testing.T) {
	q := &fakeQuerier{details: map[int32]domain.ProcessDetail{
		42: {PID: 42, Name: "nginx", Status: "Sleep", CPUPercent: 1.234, MemoryBytes: 1536, RunTimeSeconds: 90, Exe: "/usr/sbin/nginx"},
	}}

	got := NewExecutor(q).Run(context.Background(), "P 42")
	out := strings.Join(got, "\n")

	for _, want := range []string{
		"Process Details for PID 42:",
		"  Name: nginx",
		"  CPU Usage: 1.23%",
		"  Memory: 1.5 KB",
		"  Runtime: 90 seconds",
		"  Executable: /usr/sbin/nginx",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "CWD:") {
		t.Errorf("output has CWD line for empty cwd:\n%s", out)
	}
}

func TestRunKillFailure(t *testing.T) {
	q := &fakeQuerier{killErr: domain.ErrKillFailed}

	got := NewExecutor(q).Run(context.Background(), "k 9")
	if len(got) != 1 || got[0] != "Failed to signal PID 9" {
		t.Errorf("Run = %q", got)
	}
}

func TestRunHelp(t *testing.T) {
	e := NewExecutor(&fakeQuerier{})
	for _, in := range []string{"help", "?"} {
		got := e.Run(context.Background(), in)
		if len(got) == 0 || got[0] != "Available commands:" {
			t.Errorf("Run(%q) = %q", in, got)
		}
	}
}
