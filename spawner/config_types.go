package spawner

// Configuration is the immutable (Executable, Arguments, Environment,
// WorkingDirectory, PlatformOptions) tuple from spec §3. It is a plain
// value type — copying it is cheap and copies never alias mutable state —
// which satisfies "cheaply cloneable" more directly than the teacher's
// mutable *Executable-with-a-Clone()-method design (see DESIGN.md).
type Configuration struct {
	Executable       Executable
	Arguments        Arguments
	Environment      Environment
	WorkingDirectory string
	PlatformOptions  PlatformOptions
}
