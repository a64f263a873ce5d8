//go:build !linux

package spawner

// cgroupManager is a no-op off Linux: cgroup2 memory limiting has no
// portable equivalent, so ResourceLimits.MemoryLimitBytes is silently
// unenforced elsewhere (documented in SPEC_FULL.md's DOMAIN STACK table).
type cgroupManager struct{}

func newCgroupManager(memoryLimitBytes int64, pid int) (*cgroupManager, error) {
	return &cgroupManager{}, nil
}

func (c *cgroupManager) wasOOMKilled() bool { return false }

func (c *cgroupManager) cleanup() {}
