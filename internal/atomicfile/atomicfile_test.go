package atomicfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile_CreatesDirsAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "data.json")

	if err := WriteFile(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := WriteFile(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("contents = %q, want %q", got, "second")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("dir has %d entries, want only the target", len(entries))
	}
}

func TestStage_LeavesTargetUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tmp, err := Stage(path, []byte("new"), 0o644)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if filepath.Dir(tmp) != dir {
		t.Fatalf("temp file %q not in target dir %q", tmp, dir)
	}
	if !IsTemp(path, tmp) {
		t.Fatalf("IsTemp(%q) = false, want true", tmp)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "old" {
		t.Fatalf("target = %q before commit, want old", got)
	}

	if err := Commit(tmp, path); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	got, _ = os.ReadFile(path)
	if string(got) != "new" {
		t.Fatalf("target = %q after commit, want new", got)
	}
	if _, err := os.Stat(tmp); !os.IsNotExist(err) {
		t.Fatalf("temp file still present after commit: %v", err)
	}
}

func TestCommit_FailureRemovesTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")

	tmp, err := Stage(path, []byte("new"), 0o644)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	// Renaming a file onto an existing directory fails on every platform.
	target := filepath.Join(dir, "occupied")
	if err := os.MkdirAll(filepath.Join(target, "child"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := Commit(tmp, target); err == nil {
		t.Fatal("Commit onto a directory succeeded, want error")
	}
	if _, err := os.Stat(tmp); !os.IsNotExist(err) {
		t.Fatalf("temp file should be removed after failed commit")
	}
}

func TestIsTemp(t *testing.T) {
	cases := []struct {
		target string
		name   string
		want   bool
	}{
		{"/data/items.json", ".items.json-123456.tmp", true},
		{"/data/items.json", "/data/.items.json-abc.tmp", true},
		{"/data/items.json", "items.json", false},
		{"/data/items.json", "items.json.tmp", false},
		{"/data/items.json", ".items.json-.tmp", false},
		{"/data/items.json", ".other.json-1.tmp", false},
		{"/data/data[1].json", ".data[1].json-42.tmp", true},
		{"/data/data[1].json", ".data1.json-42.tmp", false},
		{"/data/*.json", ".items.json-42.tmp", false},
		{"/data/*.json", ".*.json-42.tmp", true},
	}
	for _, tc := range cases {
		if got := IsTemp(tc.target, tc.name); got != tc.want {
			t.Errorf("IsTemp(%q, %q) = %v, want %v", tc.target, tc.name, got, tc.want)
		}
	}
}

func TestStagedNameMatchesGlobTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data[1].json")
	tmp, err := Stage(path, []byte("{}"), 0o644)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	defer os.Remove(tmp)
	if !IsTemp(path, tmp) {
		t.Fatalf("IsTemp(%q, %q) = false, want true", path, tmp)
	}
}
