package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		content string // empty means no file
		want    Prefs
		wantErr bool
	}{
		{name: "missing file", want: Prefs{Theme: defaultTheme}},
		{name: "theme and filter", content: "theme = \"Noite\"\nfilter = \" Sem pagamento \"\n", want: Prefs{Theme: "Noite", Filter: "Sem pagamento"}},
		{name: "blank theme", content: "theme = \"  \"\n", want: Prefs{Theme: defaultTheme}},
		{name: "malformed", content: "not valid toml {{{\n", want: Prefs{Theme: defaultTheme}, wantErr: true},
		{name: "partly valid", content: "theme = \"Noite\"\nfilter = [\n", want: Prefs{Theme: defaultTheme}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.toml")
			if tt.content != "" {
				if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
					t.Fatalf("WriteFile: %v", err)
				}
			}
			got, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("Load = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadDefaultPathUsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "churrasco")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte("theme = \"Carvão\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Theme != "Carvão" {
		t.Fatalf("Theme = %q, want Carvão", got.Theme)
	}
}

func TestSaveIsAtomicAndOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	for _, p := range []Prefs{
		{Theme: "Brasa", Filter: "Com pagamento"},
		{Theme: "Noite"},
	} {
		if err := Save(path, p); err != nil {
			t.Fatalf("Save(%+v): %v", p, err)
		}
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != (Prefs{Theme: "Noite"}) {
		t.Fatalf("Load = %+v, want Noite with no filter", got)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("directory has %d entries, want only prefs.toml", len(entries))
	}
}
