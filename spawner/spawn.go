package spawner

import (
	"errors"
	"os/exec"

	"github.com/codecrafters-io/go-subprocess/internal/applog"
	"github.com/codecrafters-io/go-subprocess/iofd"
	"github.com/codecrafters-io/go-subprocess/procerr"
)

// Spawn implements the Spawner component (spec §4.5): resolve the
// executable, materialize argv/envp, prepare platform spawn attributes,
// run the pre-spawn hook, and start the child with stdin/stdout/stderr
// bound to the three given fds. The caller (the Execution Orchestrator)
// is responsible for closing the child-side ends of any pipes immediately
// after Spawn returns, successfully or not — Spawn itself never closes
// the handles it was given.
func Spawn(cfg Configuration, stdin, stdout, stderr *iofd.Handle) (*Handle, error) {
	pathVar := searchPathVariable()
	envp, searchPath := cfg.Environment.resolve(pathVar)

	resolvedPath, err := cfg.Executable.resolve(searchPath)
	if err != nil {
		return nil, err
	}

	argv0 := resolvedPath
	if cfg.Arguments.Argv0Override != nil {
		argv0 = *cfg.Arguments.Argv0Override
	}

	cmd := &exec.Cmd{
		Path: resolvedPath,
		Args: append([]string{argv0}, cfg.Arguments.Args...),
		Env:  envp,
		Dir:  cfg.WorkingDirectory,
	}
	cmd.Stdin = stdin.File()
	cmd.Stdout = stdout.File()
	cmd.Stderr = stderr.File()
	cmd.SysProcAttr = buildSysProcAttr(cfg.PlatformOptions)

	if hook := cfg.PlatformOptions.PreSpawnHook; hook != nil {
		if err := hook(&PlatformAttributes{SysProcAttr: cmd.SysProcAttr}); err != nil {
			return nil, procerr.New(procerr.HookFailed, "pre-spawn hook rejected the spawn", err)
		}
	}

	if cfg.PlatformOptions.CloseUnknownFds {
		keep := map[uintptr]bool{
			stdin.Fd():  true,
			stdout.Fd(): true,
			stderr.Fd(): true,
		}
		if err := closeUnknownFDs(keep); err != nil {
			return nil, procerr.New(procerr.SpawnFailed, "closing unknown file descriptors", err)
		}
	}

	applog.Global().Debugf("spawning %s %v", resolvedPath, cfg.Arguments.Args)

	if err := cmd.Start(); err != nil {
		return nil, classifyStartError(err)
	}

	applog.Global().Debugf("spawned pid %d", cmd.Process.Pid)

	handle := newHandle(cmd)

	if limit := cfg.PlatformOptions.ResourceLimits.MemoryLimitBytes; limit > 0 {
		cgroup, err := newCgroupManager(limit, cmd.Process.Pid)
		if err != nil {
			// The child is already running at this point; a failure to
			// install the memory limit is reported but does not retract
			// the spawn (there is no clean way to "unspawn").
			handle.cgroupErr = procerr.New(procerr.ResourceExhausted, "installing memory limit", err)
		} else {
			handle.cgroup = cgroup
		}
	}

	return handle, nil
}

func classifyStartError(err error) error {
	switch {
	case errors.Is(err, exec.ErrNotFound):
		return procerr.New(procerr.ExecutableNotFound, "executable not found", err)
	default:
		return procerr.New(procerr.SpawnFailed, "starting child process", err)
	}
}
