package domain

import (
	"context"
	"errors"
	"syscall"
	"time"
)

var (
	ErrProcessNotFound = errors.New("process not found")
	ErrInvalidPID      = errors.New("invalid pid")
	ErrKillFailed      = errors.New("signal delivery failed")
)

// ProcessRecord is one row of a SystemSnapshot. It carries no identity across
// cycles beyond PID, which the OS may recycle.
type ProcessRecord struct {
	Name           string  `json:"name"`
	PID            int32   `json:"pid"`
	CPUPercent     float64 `json:"cpu_usage_percent"`
	MemoryBytes    uint64  `json:"memory_bytes"`
	Status         string  `json:"status"`
	RunTimeSeconds uint64  `json:"run_time_seconds"`
}

// SystemSnapshot keeps processes in probe order; sorting is left to readers.
type SystemSnapshot struct {
	Processes            []ProcessRecord `json:"processes"`
	CPUModel             string          `json:"cpu_model"`
	TotalCPUPercent      float64         `json:"total_cpu_usage_percent"`
	TotalMemoryBytes     uint64          `json:"total_memory_bytes"`
	UsedMemoryBytes      uint64          `json:"used_memory_bytes"`
	AvailableMemoryBytes uint64          `json:"available_memory_bytes"`
	TotalSwapBytes       uint64          `json:"total_swap_bytes"`
	UsedSwapBytes        uint64          `json:"used_swap_bytes"`
	DiskReadBytesPerSec  float64         `json:"disk_read_bytes_per_sec"`
	DiskWriteBytesPerSec float64         `json:"disk_write_bytes_per_sec"`
	CapturedAt           time.Time       `json:"captured_at"`
}

type NetworkInterfaceRecord struct {
	Name          string  `json:"name"`
	RxTotalBytes  uint64  `json:"rx_total_bytes"`
	TxTotalBytes  uint64  `json:"tx_total_bytes"`
	RxBytesPerSec float64 `json:"rx_rate_bytes_per_sec"`
	TxBytesPerSec float64 `json:"tx_rate_bytes_per_sec"`
}

// NetworkSnapshot is ordered by interface name, descending.
type NetworkSnapshot struct {
	Interfaces []NetworkInterfaceRecord `json:"interfaces"`
	CapturedAt time.Time                `json:"captured_at"`
}

// View is a consistent copy of the shared telemetry state.
type View struct {
	System  SystemSnapshot  `json:"system"`
	Network NetworkSnapshot `json:"network"`
	Paused  bool            `json:"paused"`
}

// ProcessDetail is the answer to an on-demand query. Cwd and Exe are empty
// when the probe cannot resolve them.
type ProcessDetail struct {
	PID                int32   `json:"pid"`
	Name               string  `json:"name"`
	Status             string  `json:"status"`
	CPUPercent         float64 `json:"cpu_usage_percent"`
	MemoryBytes        uint64  `json:"memory_bytes"`
	VirtualMemoryBytes uint64  `json:"virtual_memory_bytes"`
	RunTimeSeconds     uint64  `json:"run_time_seconds"`
	DiskReadBytes      uint64  `json:"disk_read_bytes"`
	DiskWriteBytes     uint64  `json:"disk_write_bytes"`
	Cwd                string  `json:"cwd,omitempty"`
	Exe                string  `json:"exe,omitempty"`
}

// ProcessRaw is what a SystemProbe reports for one process after a refresh.
type ProcessRaw struct {
	PID                int32
	Name               string
	CPUPercent         float64
	MemoryBytes        uint64
	VirtualMemoryBytes uint64
	Status             string
	RunTimeSeconds     uint64
	DiskReadBytes      uint64
	DiskWriteBytes     uint64
	Cwd                string
	Exe                string
}

type CPUInfo struct {
	Brand string
}

type MemoryStats struct {
	TotalBytes     uint64
	UsedBytes      uint64
	AvailableBytes uint64
	SwapTotalBytes uint64
	SwapUsedBytes  uint64
}

type InterfaceRaw struct {
	Name    string
	RxTotal uint64
	TxTotal uint64
}

// SystemProbe reads processes, CPUs and memory. Accessors report the state
// captured by the most recent Refresh.
type SystemProbe interface {
	Refresh(ctx context.Context) error
	CPUs() []CPUInfo
	GlobalCPUUsage() float64
	Memory() MemoryStats
	Processes() []ProcessRaw
	Process(ctx context.Context, pid int32) (ProcessRaw, bool)
	Kill(ctx context.Context, pid int32, sig syscall.Signal) bool
}

type NetworkProbe interface {
	Refresh(ctx context.Context) error
	Networks() []InterfaceRaw
}
