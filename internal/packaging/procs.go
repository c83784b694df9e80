package packaging

import (
	"fmt"
	"regexp"

	"github.com/shirou/gopsutil/v3/process"
)

// gopsutilScanner implements ProcessScanner on the live process table.
type gopsutilScanner struct{}

// NewProcessScanner returns a ProcessScanner backed by the OS process table.
func NewProcessScanner() ProcessScanner {
	return &gopsutilScanner{}
}

func (s *gopsutilScanner) Find(pattern string) ([]int32, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("packaging: process pattern %q: %w", pattern, err)
	}

	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("packaging: list processes: %w", err)
	}

	var pids []int32
	for _, p := range procs {
		// Processes can exit between enumeration and inspection;
		// skip anything whose cmdline is no longer readable.
		cmdline, err := p.Cmdline()
		if err != nil || cmdline == "" {
			continue
		}
		if re.MatchString(cmdline) {
			pids = append(pids, p.Pid)
		}
	}
	return pids, nil
}

func (s *gopsutilScanner) Terminate(pid int32) error {
	p, err := process.NewProcess(pid)
	if err != nil {
		return fmt.Errorf("packaging: process %d: %w", pid, err)
	}
	if err := p.Terminate(); err != nil {
		return fmt.Errorf("packaging: terminate process %d: %w", pid, err)
	}
	return nil
}
