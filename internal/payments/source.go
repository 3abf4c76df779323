package payments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

// Roster table columns that identify a collaborator.
const (
	ColumnID   = "colaborador_id"
	ColumnName = "nome_colaborador"
)

// DefaultMonths are the tracked month columns when none are configured.
var DefaultMonths = []string{"agosto_pago", "setembro_pago", "outubro_pago", "novembro_pago", "dezembro_pago"}

// Source provides the payment roster. Implementations never write.
type Source interface {
	FetchRoster(ctx context.Context) ([]Row, error)
	Months() []string
	Close() error
}

// Ensure SQLiteSource implements Source at compile time.
var _ Source = (*SQLiteSource)(nil)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name can be used as a table or column name.
func ValidIdentifier(name string) bool {
	return identifier.MatchString(name)
}

// SQLiteSource reads the roster from a SQLite table opened read-only.
type SQLiteSource struct {
	db     *sql.DB
	months []string
	query  string
}

// OpenSQLite prepares a read-only source over table in the database at path.
// The database is opened lazily; a missing file surfaces on the first fetch.
func OpenSQLite(path, table string, months []string) (*SQLiteSource, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("database path is empty")
	}
	if len(months) == 0 {
		months = DefaultMonths
	}
	for _, name := range append([]string{table}, months...) {
		if !ValidIdentifier(name) {
			return nil, fmt.Errorf("invalid identifier %q", name)
		}
	}

	dsn := "file:" + filepath.ToSlash(path) + "?mode=ro&_pragma=query_only(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	columns := append([]string{ColumnID, ColumnName}, months...)
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", strings.Join(columns, ", "), table, ColumnName)

	return &SQLiteSource{
		db:     db,
		months: append([]string(nil), months...),
		query:  query,
	}, nil
}

// Months returns the tracked month columns in display order.
func (s *SQLiteSource) Months() []string {
	return append([]string(nil), s.months...)
}

// Close releases the database handle.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// FetchRoster returns every collaborator ordered by name.
func (s *SQLiteSource) FetchRoster(ctx context.Context) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			id   sql.NullString
			name sql.NullString
			paid = make([]sql.NullInt64, len(s.months))
		)
		dest := make([]any, 0, len(s.months)+2)
		dest = append(dest, &id, &name)
		for i := range paid {
			dest = append(dest, &paid[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}

		row := Row{CollaboratorID: id.String, Name: name.String, Paid: make([]bool, len(paid))}
		for i, p := range paid {
			row.Paid[i] = p.Valid && p.Int64 != 0
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster: %w", err)
	}
	return out, nil
}
