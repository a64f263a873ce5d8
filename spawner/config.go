// Package spawner implements the Spawner component: executable
// resolution, argv/env materialization, and the platform spawn call
// itself. It also hosts the Configuration data model (spec §3), since the
// spawner is the component that actually consumes every field of it; the
// root package re-exports these types under their spec names so callers
// never need to import this package directly.
package spawner

import (
	"os"
	"path/filepath"
	"runtime"

	"go.chromium.org/luci/common/system/environ"

	"github.com/codecrafters-io/go-subprocess/procerr"
)

// Executable is the tagged `{ByName(string), ByPath(path)}` value from
// spec §3.
type Executable struct {
	name     string
	path     string
	byName   bool
}

// ByName resolves against the configured environment's search path at
// spawn time.
func ByName(name string) Executable {
	return Executable{name: name, byName: true}
}

// ByPath is used directly, without search-path resolution.
func ByPath(path string) Executable {
	return Executable{path: path}
}

// resolve implements spec §4.5 step 1: ByPath is used directly; ByName
// scans the directories in searchPath (already derived from the
// configured Environment, not necessarily the live process environment —
// see spec §6's "Environment interaction").
func (e Executable) resolve(searchPath string) (string, error) {
	if !e.byName {
		return e.path, nil
	}

	for _, dir := range filepath.SplitList(searchPath) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, e.name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode().Perm()&0111 == 0 {
			continue
		}
		return candidate, nil
	}

	return "", procerr.New(procerr.ExecutableNotFound, e.name, nil)
}

// displayName returns the name of a ByName executable or the path of a
// ByPath one.
func (e Executable) displayName() string {
	if e.byName {
		return e.name
	}
	return e.path
}

// Arguments is the ordered argv sequence (spec §3). Argv0Override replaces
// the launcher-synthesized argv[0] on platforms that accept a separate
// argv[0] slot; platforms that serialize a single command line (Windows)
// ignore it, per spec.
type Arguments struct {
	Args          []string
	Argv0Override *string
}

// NewArguments is a convenience constructor for the common case of no
// argv[0] override.
func NewArguments(args ...string) Arguments {
	return Arguments{Args: args}
}

// envMode distinguishes Environment's two tagged variants.
type envMode int

const (
	envInheritWith envMode = iota
	envReplace
)

// Environment is the tagged `{InheritWith(overlay), Replace(map)}` value
// from spec §3, built on go.chromium.org/luci/common/system/environ — the
// same package the teacher's Executable.Env field uses — so that
// InheritWith's "upsert over the parent's environment" semantics are
// exactly environ.Env's own upsert behavior rather than a hand-rolled map
// merge.
type Environment struct {
	mode    envMode
	overlay map[string]string
}

// InheritWith overlays the given key/value pairs onto the parent process's
// environment. Duplicate keys in overlay resolve to the last-assigned
// value, matching Go map semantics and the spec's rule verbatim.
func InheritWith(overlay map[string]string) Environment {
	return Environment{mode: envInheritWith, overlay: overlay}
}

// Inherit is InheritWith(nil): the child's environment is the parent's,
// unmodified.
func Inherit() Environment {
	return Environment{mode: envInheritWith}
}

// Replace discards the parent's environment entirely and uses env as-is.
func Replace(env map[string]string) Environment {
	return Environment{mode: envReplace, overlay: env}
}

// resolve returns the final envp for the child, and the search-path value
// that ByName resolution must use — which per spec §6 always comes from
// this configured environment, never the live process environment, so
// that Replace(map) without a PATH-like entry disables ByName resolution.
func (e Environment) resolve(pathVar string) (envp []string, searchPath string) {
	switch e.mode {
	case envReplace:
		env := environ.New(nil)
		for k, v := range e.overlay {
			env.Set(k, v)
		}
		searchPath, _ = env.Get(pathVar)
		return env.Sorted(), searchPath
	default: // envInheritWith
		env := environ.New(os.Environ())
		for k, v := range e.overlay {
			env.Set(k, v)
		}
		searchPath, _ = env.Get(pathVar)
		return env.Sorted(), searchPath
	}
}

// searchPathVariable is "Path" on Windows (case-insensitive) and "PATH"
// everywhere else.
func searchPathVariable() string {
	if runtime.GOOS == "windows" {
		return "Path"
	}
	return "PATH"
}
