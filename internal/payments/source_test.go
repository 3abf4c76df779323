package payments

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func newRosterDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE pagamentos (
			colaborador_id INTEGER PRIMARY KEY,
			nome_colaborador TEXT NOT NULL,
			agosto_pago INTEGER,
			setembro_pago INTEGER
		)`,
		`INSERT INTO pagamentos VALUES (2, 'Bruno', 0, NULL)`,
		`INSERT INTO pagamentos VALUES (1, 'Ana', 1, 1)`,
		`INSERT INTO pagamentos VALUES (3, 'Carla', 1, 0)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return path
}

func TestSQLiteSource_FetchRoster(t *testing.T) {
	path := newRosterDB(t)
	src, err := OpenSQLite(path, "pagamentos", []string{"agosto_pago", "setembro_pago"})
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer src.Close()

	rows, err := src.FetchRoster(context.Background())
	if err != nil {
		t.Fatalf("FetchRoster: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("FetchRoster = %d rows, want 3", len(rows))
	}

	want := []struct {
		id   string
		name string
		paid []bool
	}{
		{"1", "Ana", []bool{true, true}},
		{"2", "Bruno", []bool{false, false}},
		{"3", "Carla", []bool{true, false}},
	}
	for i, w := range want {
		r := rows[i]
		if r.CollaboratorID != w.id || r.Name != w.name {
			t.Fatalf("row %d = %s/%s, want %s/%s", i, r.CollaboratorID, r.Name, w.id, w.name)
		}
		for m := range w.paid {
			if r.Paid[m] != w.paid[m] {
				t.Fatalf("row %d month %d paid = %v, want %v", i, m, r.Paid[m], w.paid[m])
			}
		}
	}
}

func TestSQLiteSource_IsReadOnly(t *testing.T) {
	path := newRosterDB(t)
	src, err := OpenSQLite(path, "pagamentos", []string{"agosto_pago"})
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer src.Close()

	if _, err := src.db.Exec(`UPDATE pagamentos SET agosto_pago = 1`); err == nil {
		t.Fatal("write through read-only source succeeded")
	}
}

func TestSQLiteSource_MissingDatabaseFailsOnFetch(t *testing.T) {
	src, err := OpenSQLite(filepath.Join(t.TempDir(), "absent.db"), "pagamentos", nil)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer src.Close()

	if _, err := src.FetchRoster(context.Background()); err == nil {
		t.Fatal("FetchRoster on a missing database succeeded")
	}
}

func TestOpenSQLite_RejectsBadIdentifiers(t *testing.T) {
	cases := []struct {
		table  string
		months []string
	}{
		{"pagamentos; DROP TABLE x", nil},
		{"pagamentos", []string{"agosto_pago", "1bad"}},
		{"", nil},
	}
	for _, tc := range cases {
		if _, err := OpenSQLite("roster.db", tc.table, tc.months); err == nil {
			t.Errorf("OpenSQLite(%q, %v) succeeded, want error", tc.table, tc.months)
		}
	}
}

func TestOpenSQLite_DefaultsMonths(t *testing.T) {
	src, err := OpenSQLite("roster.db", "pagamentos", nil)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer src.Close()
	if got := src.Months(); len(got) != len(DefaultMonths) || got[0] != "agosto_pago" {
		t.Fatalf("Months = %v, want defaults", got)
	}
}
