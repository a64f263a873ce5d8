package monitor

import (
	"context"

	"github.com/codecrafters-io/go-subprocess/procerr"
	"github.com/codecrafters-io/go-subprocess/spawner"
)

// Wait blocks until handle's child has been reaped and returns its
// TerminationStatus, or ctx's cancellation/deadline, whichever comes
// first — ctx does not kill the child, it only stops this call from
// blocking (spec §4.6: "the Monitor does not itself terminate anything").
func Wait(ctx context.Context, handle *spawner.Handle) (TerminationStatus, error) {
	select {
	case <-handle.Done():
	case <-ctx.Done():
		return TerminationStatus{}, ctx.Err()
	}

	state, err := handle.Result()
	if err != nil {
		return TerminationStatus{}, procerr.New(procerr.IoError, "reaping child process", err)
	}

	status := classify(state)

	if handle.WasOOMKilled() {
		return status, procerr.New(procerr.ResourceExhausted, "child exceeded its configured memory limit", nil)
	}
	if cgroupErr := handle.CgroupError(); cgroupErr != nil {
		return status, cgroupErr
	}

	return status, nil
}
