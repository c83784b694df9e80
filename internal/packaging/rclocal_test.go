package packaging

import (
	"os"
	"path/filepath"
	"testing"
)

const reinstallLine = "sh /data/etc/dbus-serialbattery/reinstalllocal.sh"

func writeTestFile(t *testing.T, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rc.local")
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestPruneLines_RemovesMatchingLine(t *testing.T) {
	path := writeTestFile(t, "echo hi\n"+reinstallLine+"\necho bye\n", 0o755)

	removed, err := pruneLines(path, reinstallLine)
	if err != nil {
		t.Fatalf("pruneLines() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if got, want := string(data), "echo hi\necho bye\n"; got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestPruneLines_RemovesAllMatchingLines(t *testing.T) {
	path := writeTestFile(t, reinstallLine+"\necho keep\n"+reinstallLine+"\n", 0o755)

	removed, err := pruneLines(path, reinstallLine)
	if err != nil {
		t.Fatalf("pruneLines() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	data, _ := os.ReadFile(path)
	if got, want := string(data), "echo keep\n"; got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestPruneLines_MatchesSubstring(t *testing.T) {
	// The real rc.local line may carry a leading marker or trailing args;
	// matching is on substring, not the whole line.
	path := writeTestFile(t, "nohup "+reinstallLine+" > /dev/null &\n", 0o755)

	removed, err := pruneLines(path, reinstallLine)
	if err != nil {
		t.Fatalf("pruneLines() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
}

func TestPruneLines_NoMatchLeavesFileUntouched(t *testing.T) {
	content := "#!/bin/sh\necho hi"
	path := writeTestFile(t, content, 0o755)

	before, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}

	removed, err := pruneLines(path, reinstallLine)
	if err != nil {
		t.Fatalf("pruneLines() error = %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}

	data, _ := os.ReadFile(path)
	if string(data) != content {
		t.Errorf("content = %q, want byte-identical %q", string(data), content)
	}
	after, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("file was rewritten despite no matching line")
	}
}

func TestPruneLines_PreservesFileMode(t *testing.T) {
	path := writeTestFile(t, reinstallLine+"\necho hi\n", 0o700)

	if _, err := pruneLines(path, reinstallLine); err != nil {
		t.Fatalf("pruneLines() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if got := info.Mode().Perm(); got != 0o700 {
		t.Errorf("mode = %v, want 0700", got)
	}
}

func TestPruneLines_MissingFileIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rc.local")

	removed, err := pruneLines(path, reinstallLine)
	if err != nil {
		t.Fatalf("pruneLines() error = %v, want nil for missing file", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}

func TestPruneLines_OnlyMatchingLines(t *testing.T) {
	path := writeTestFile(t, reinstallLine+"\n", 0o755)

	if _, err := pruneLines(path, reinstallLine); err != nil {
		t.Fatalf("pruneLines() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if len(data) != 0 {
		t.Errorf("content = %q, want empty file", string(data))
	}
}

func TestCountLines(t *testing.T) {
	path := writeTestFile(t, "echo hi\n"+reinstallLine+"\n"+reinstallLine+"\n", 0o755)

	n, err := countLines(path, reinstallLine)
	if err != nil {
		t.Fatalf("countLines() error = %v", err)
	}
	if n != 2 {
		t.Errorf("countLines() = %d, want 2", n)
	}
}

func TestCountLines_MissingFile(t *testing.T) {
	n, err := countLines(filepath.Join(t.TempDir(), "rc.local"), reinstallLine)
	if err != nil {
		t.Fatalf("countLines() error = %v", err)
	}
	if n != 0 {
		t.Errorf("countLines() = %d, want 0", n)
	}
}
