package packaging

// Remounter abstracts the operation that makes the target filesystem
// writable. Remount is idempotent: remounting an already-writable
// filesystem returns nil.
type Remounter interface {
	// Remount makes the filesystem region holding the driver artifacts
	// read-write.
	Remount() error
}

// ProcessScanner abstracts process-table access for testability.
type ProcessScanner interface {
	// Find returns the PIDs of all processes whose command line matches
	// the given regular expression. Zero matches is not an error.
	Find(pattern string) ([]int32, error)

	// Terminate sends SIGTERM to the process with the given PID.
	Terminate(pid int32) error
}

// RootChecker abstracts privilege checking for testability.
type RootChecker interface {
	// IsRoot returns true if the current process has root privileges.
	IsRoot() bool
}
