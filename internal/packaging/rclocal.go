package packaging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/venus-drivers/sbadm/internal/fsutil"
)

// pruneLines removes every line of path containing the literal substring
// match, preserving the order and content of all other lines. The file is
// rewritten atomically; when no line matches, the file is left untouched
// so its bytes (including trailing-newline style) are unchanged. A missing
// file is a no-op.
//
// It returns the number of lines removed.
func pruneLines(path, match string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("packaging: read %s: %w", path, err)
	}

	content := string(data)
	trailingNewline := strings.HasSuffix(content, "\n")
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	kept := lines[:0]
	removed := 0
	for _, line := range lines {
		if strings.Contains(line, match) {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	if removed == 0 {
		return 0, nil
	}

	out := strings.Join(kept, "\n")
	if trailingNewline && len(kept) > 0 {
		out += "\n"
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("packaging: stat %s: %w", path, err)
	}
	if err := fsutil.WriteFileAtomic(filepath.Dir(path), filepath.Base(path), []byte(out), info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("packaging: rewrite %s: %w", path, err)
	}
	return removed, nil
}

// countLines returns how many lines of path contain the literal substring
// match. A missing file counts as zero.
func countLines(path, match string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("packaging: read %s: %w", path, err)
	}
	n := 0
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		if strings.Contains(line, match) {
			n++
		}
	}
	return n, nil
}
