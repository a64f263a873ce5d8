//go:build linux

package spawner

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/containerd/cgroups/v3/cgroup2"
)

// cgroupManager enforces PlatformOptions.ResourceLimits.MemoryLimitBytes
// via a dedicated cgroup2 controller, adapted from the teacher's
// cgroup-based memory limiting to key off a per-Configuration limit
// instead of a global tester setting.
type cgroupManager struct {
	manager        *cgroup2.Manager
	cgroupPath     string
	initialOOMKill uint64
}

func newCgroupManager(memoryLimitBytes int64, pid int) (*cgroupManager, error) {
	cgroupPath := fmt.Sprintf("/go-subprocess-%d-%d", pid, time.Now().UnixNano())

	resources := &cgroup2.Resources{
		Memory: &cgroup2.Memory{
			Max: &memoryLimitBytes,
		},
	}

	manager, err := cgroup2.NewManager("/sys/fs/cgroup", cgroupPath, resources)
	if err != nil {
		return nil, fmt.Errorf("creating cgroup: %w", err)
	}

	if err := manager.AddProc(uint64(pid)); err != nil {
		manager.Delete()
		return nil, fmt.Errorf("adding process to cgroup: %w", err)
	}

	return &cgroupManager{
		manager:        manager,
		cgroupPath:     cgroupPath,
		initialOOMKill: readOOMKillCount(cgroupPath),
	}, nil
}

func (c *cgroupManager) wasOOMKilled() bool {
	if c.manager == nil {
		return false
	}
	return readOOMKillCount(c.cgroupPath) > c.initialOOMKill
}

func (c *cgroupManager) cleanup() {
	if c.manager != nil {
		c.manager.Delete()
		c.manager = nil
	}
}

func readOOMKillCount(cgroupPath string) uint64 {
	eventsPath := filepath.Join("/sys/fs/cgroup", cgroupPath, "memory.events")
	data, err := os.ReadFile(eventsPath)
	if err != nil {
		return 0
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "oom_kill ") {
			parts := strings.Fields(line)
			if len(parts) >= 2 {
				count, _ := strconv.ParseUint(parts[1], 10, 64)
				return count
			}
		}
	}
	return 0
}
