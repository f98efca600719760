package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHostStatsWrite(t *testing.T) {
	var sb strings.Builder
	hostStats{
		cores:     4,
		cpuUsage:  12.5,
		memTotal:  8192 * bytesPerMB,
		memUsed:   1024 * bytesPerMB,
		botRSS:    35 * bytesPerMB,
		botCPU:    0.5,
		routines:  12,
		botUptime: 90 * time.Minute,
	}.Write(&sb)
	out := sb.String()
	assert.Contains(t, out, "up 1h30m0s, 12 goroutines")
	assert.Contains(t, out, "RSS: 35 MB, CPU: 0.50%")
	assert.Contains(t, out, "CPU: 4 cores at 12.50%")
	assert.Contains(t, out, "Memory: 1024 of 8192 MB used")
	assert.NotContains(t, out, "booted")
}

func TestSnapshotHost(t *testing.T) {
	hs := snapshotHost(10 * time.Millisecond)
	assert.Positive(t, hs.routines)
	assert.True(t, hs.botUptime > 0)
}
