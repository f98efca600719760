package app

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/yangrq1018/holdem-bot/telegram"
	tgbotapi "github.com/yangrq1018/telegram-bot-api/v5"
)

const bytesPerMB uint64 = 1024 * 1024

var startedAt = time.Now()

// HostCommand reports the resources used by the bot and its host
func HostCommand(admins []int64) telegram.Command {
	return SimpleCommand{
		name:        "host",
		description: "resource usage of the dealer bot",
		auth:        telegram.SimpleAuth{WhiteList: admins, AdminOnly: true},
		handle: func(b *telegram.Bot, u tgbotapi.Update) error {
			var sb strings.Builder
			snapshotHost(time.Second).Write(&sb)
			b.ReplyTo(*u.Message, sb.String())
			return nil
		},
	}
}

type hostStats struct {
	cores     int
	cpuUsage  float64
	memTotal  uint64
	memUsed   uint64
	botRSS    uint64
	botCPU    float64
	routines  int
	botUptime time.Duration
	bootTime  time.Time
	platform  string
	version   string
}

func (h hostStats) Write(w io.Writer) {
	fmt.Fprintf(w, "---Bot---\n")
	fmt.Fprintf(w, "up %s, %d goroutines\n", h.botUptime.Round(time.Second), h.routines)
	fmt.Fprintf(w, "RSS: %d MB, CPU: %.2f%%\n", h.botRSS/bytesPerMB, h.botCPU)
	fmt.Fprintf(w, "---Host---\n")
	fmt.Fprintf(w, "CPU: %d cores at %.2f%%\n", h.cores, h.cpuUsage)
	fmt.Fprintf(w, "Memory: %d of %d MB used\n", h.memUsed/bytesPerMB, h.memTotal/bytesPerMB)
	if !h.bootTime.IsZero() {
		fmt.Fprintf(w, "booted %s\n", h.bootTime.Format("2006-01-02 15:04:05"))
	}
	if h.platform != "" {
		fmt.Fprintf(w, "%s %s\n", h.platform, h.version)
	}
}

// snapshotHost samples CPU usage over interval. Failed samples leave
// their field zero.
func snapshotHost(interval time.Duration) hostStats {
	hs := hostStats{
		routines:  runtime.NumGoroutine(),
		botUptime: time.Since(startedAt),
	}
	hs.cores, _ = cpu.Counts(true)
	if usage, err := cpu.Percent(interval, false); err == nil && len(usage) > 0 {
		hs.cpuUsage = usage[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		hs.memTotal, hs.memUsed = vm.Total, vm.Used
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := p.MemoryInfo(); err == nil {
			hs.botRSS = info.RSS
		}
		hs.botCPU, _ = p.CPUPercent()
	}
	if bt, err := host.BootTime(); err == nil {
		hs.bootTime = time.Unix(int64(bt), 0)
	}
	hs.platform, _, hs.version, _ = host.PlatformInformation()
	return hs
}
