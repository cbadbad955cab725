// Package probe reads live OS counters through gopsutil. Each probe value is
// owned by a single goroutine; callers that need concurrent access create
// separate probes.
package probe

import (
	"context"
	"fmt"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"horizonx-top/internal/domain"
)

type System struct {
	cpus      []domain.CPUInfo
	lastTimes *cpu.TimesStat
	globalCPU float64
	memory    domain.MemoryStats

	handles map[int32]*process.Process
	procs   []domain.ProcessRaw
	index   map[int32]int
}

var _ domain.SystemProbe = (*System)(nil)

func NewSystem() *System {
	return &System{
		handles: make(map[int32]*process.Process),
		index:   make(map[int32]int),
	}
}

// Refresh re-reads CPU, memory and the full process table. Processes that
// vanish while being read are left out.
func (s *System) Refresh(ctx context.Context) error {
	if s.cpus == nil {
		if infos, err := cpu.InfoWithContext(ctx); err == nil {
			s.cpus = make([]domain.CPUInfo, 0, len(infos))
			for _, info := range infos {
				s.cpus = append(s.cpus, domain.CPUInfo{Brand: strings.TrimSpace(info.ModelName)})
			}
		}
	}

	if times, err := cpu.TimesWithContext(ctx, false); err == nil && len(times) > 0 {
		curr := times[0]
		if s.lastTimes != nil {
			s.globalCPU = cpuUsage(*s.lastTimes, curr)
		}
		s.lastTimes = &curr
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		s.memory.TotalBytes = vm.Total
		s.memory.UsedBytes = vm.Used
		s.memory.AvailableBytes = vm.Available
	}

	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil {
		s.memory.SwapTotalBytes = sw.Total
		s.memory.SwapUsedBytes = sw.Used
	}

	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	now := time.Now()
	handles := make(map[int32]*process.Process, len(pids))
	procs := make([]domain.ProcessRaw, 0, len(pids))
	index := make(map[int32]int, len(pids))

	for _, pid := range pids {
		// keep the previous handle so per-process cpu percent has a baseline
		p, ok := s.handles[pid]
		if !ok {
			p, err = process.NewProcessWithContext(ctx, pid)
			if err != nil {
				continue
			}
		}

		raw, err := readProcess(ctx, p, now)
		if err != nil {
			continue
		}

		handles[pid] = p
		index[pid] = len(procs)
		procs = append(procs, raw)
	}

	s.handles = handles
	s.procs = procs
	s.index = index

	return nil
}

func (s *System) CPUs() []domain.CPUInfo {
	return s.cpus
}

func (s *System) GlobalCPUUsage() float64 {
	return s.globalCPU
}

func (s *System) Memory() domain.MemoryStats {
	return s.memory
}

func (s *System) Processes() []domain.ProcessRaw {
	return s.procs
}

// Process looks a pid up in the last refresh and resolves its working
// directory and executable path on demand.
func (s *System) Process(ctx context.Context, pid int32) (domain.ProcessRaw, bool) {
	i, ok := s.index[pid]
	if !ok {
		return domain.ProcessRaw{}, false
	}

	raw := s.procs[i]
	if p := s.handles[pid]; p != nil {
		if cwd, err := p.CwdWithContext(ctx); err == nil {
			raw.Cwd = cwd
		}
		if exe, err := p.ExeWithContext(ctx); err == nil {
			raw.Exe = exe
		}
	}

	return raw, true
}

func (s *System) Kill(ctx context.Context, pid int32, sig syscall.Signal) bool {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return false
	}
	return p.SendSignalWithContext(ctx, sig) == nil
}

func readProcess(ctx context.Context, p *process.Process, now time.Time) (domain.ProcessRaw, error) {
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return domain.ProcessRaw{}, err
	}

	raw := domain.ProcessRaw{
		PID:    p.Pid,
		Name:   name,
		Status: "Unknown",
	}

	if pct, err := p.PercentWithContext(ctx, 0); err == nil && pct > 0 {
		raw.CPUPercent = pct
	}

	if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
		raw.MemoryBytes = mi.RSS
		raw.VirtualMemoryBytes = mi.VMS
	}

	if st, err := p.StatusWithContext(ctx); err == nil && len(st) > 0 {
		raw.Status = statusLabel(st[0])
	}

	if created, err := p.CreateTimeWithContext(ctx); err == nil {
		if secs := now.UnixMilli() - created; secs > 0 {
			raw.RunTimeSeconds = uint64(secs / 1000)
		}
	}

	// io counters need privileges for other users' processes
	if io, err := p.IOCountersWithContext(ctx); err == nil && io != nil {
		raw.DiskReadBytes = io.ReadBytes
		raw.DiskWriteBytes = io.WriteBytes
	}

	return raw, nil
}

func statusLabel(s string) string {
	switch strings.ToLower(s) {
	case "":
		return "Unknown"
	case "running":
		return "Run"
	case "sleep":
		return "Sleep"
	case "stop":
		return "Stop"
	case "zombie":
		return "Zombie"
	case "idle":
		return "Idle"
	case "wait":
		return "Wait"
	case "lock":
		return "LockBlocked"
	default:
		return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	}
}

func cpuUsage(prev, curr cpu.TimesStat) float64 {
	prevIdle := prev.Idle + prev.Iowait
	currIdle := curr.Idle + curr.Iowait

	deltaTotal := sumCPU(curr) - sumCPU(prev)
	deltaIdle := currIdle - prevIdle

	if deltaTotal <= 0 {
		return 0
	}

	usage := (deltaTotal - deltaIdle) / deltaTotal * 100
	switch {
	case usage < 0:
		return 0
	case usage > 100:
		return 100
	}
	return usage
}

func sumCPU(t cpu.TimesStat) float64 {
	return t.User + t.Nice + t.System + t.Idle +
		t.Iowait + t.Irq + t.Softirq + t.Steal
}
