package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"quiz-spark/internal/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const versionTable = "schema_migrations"

// Migrator applies the embedded migrations to an Oracle schema. Versions are
// tracked in schema_migrations, one row per applied migration.
type Migrator struct {
	db  *sqlx.DB
	src source.Driver
}

// NewMigrator reads migrations from the embedded files.
func NewMigrator(db *sqlx.DB) (*Migrator, error) {
	return NewMigratorFromFS(db, migrationFiles, "migrations")
}

// NewMigratorFromFS reads migrations from dir inside fsys.
func NewMigratorFromFS(db *sqlx.DB, fsys fs.FS, dir string) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open migration source: %w", err)
	}
	return &Migrator{db: db, src: src}, nil
}

func (m *Migrator) Close() error {
	return m.src.Close()
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	var count int
	err := m.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM user_tables WHERE table_name = :1`, strings.ToUpper(versionTable))
	if err != nil {
		return fmt.Errorf("could not check %s: %w", versionTable, err)
	}
	if count > 0 {
		return nil
	}
	_, err = m.db.ExecContext(ctx, `CREATE TABLE `+versionTable+` (
    version NUMBER(19) NOT NULL,
    applied_at TIMESTAMP DEFAULT SYSTIMESTAMP NOT NULL,
    CONSTRAINT pk_schema_migrations PRIMARY KEY (version)
)`)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", versionTable, err)
	}
	return nil
}

// Applied returns the set of applied versions.
func (m *Migrator) Applied(ctx context.Context) (map[uint]bool, error) {
	var versions []int64
	if err := m.db.SelectContext(ctx, &versions, `SELECT version FROM `+versionTable); err != nil {
		return nil, fmt.Errorf("could not read %s: %w", versionTable, err)
	}
	applied := make(map[uint]bool, len(versions))
	for _, v := range versions {
		applied[uint(v)] = true
	}
	return applied, nil
}

// Up applies every pending migration in version order and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, err
	}
	applied, err := m.Applied(ctx)
	if err != nil {
		return 0, err
	}

	ran := 0
	version, err := m.src.First()
	for err == nil {
		if !applied[version] {
			if err := m.apply(ctx, version, true); err != nil {
				return ran, err
			}
			ran++
		}
		version, err = m.src.Next(version)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return ran, fmt.Errorf("could not list migrations: %w", err)
	}
	return ran, nil
}

// Down reverts the most recently applied migration. It returns false when none is applied.
func (m *Migrator) Down(ctx context.Context) (bool, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return false, err
	}
	var latest int64
	err := m.db.GetContext(ctx, &latest, `SELECT NVL(MAX(version), -1) FROM `+versionTable)
	if err != nil {
		return false, fmt.Errorf("could not read %s: %w", versionTable, err)
	}
	if latest < 0 {
		return false, nil
	}
	return true, m.apply(ctx, uint(latest), false)
}

func (m *Migrator) apply(ctx context.Context, version uint, up bool) error {
	var (
		r    io.ReadCloser
		name string
		err  error
	)
	if up {
		r, name, err = m.src.ReadUp(version)
	} else {
		r, name, err = m.src.ReadDown(version)
	}
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}
	defer r.Close()

	body, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}

	for _, stmt := range SplitStatements(string(body)) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute migration %d (%s): %w", version, name, err)
		}
	}

	if up {
		_, err = m.db.ExecContext(ctx, `INSERT INTO `+versionTable+` (version) VALUES (:1)`, int64(version))
	} else {
		_, err = m.db.ExecContext(ctx, `DELETE FROM `+versionTable+` WHERE version = :1`, int64(version))
	}
	if err != nil {
		return fmt.Errorf("could not record migration %d: %w", version, err)
	}

	direction := "up"
	if !up {
		direction = "down"
	}
	logger.Get().Info("Executed migration",
		zap.Uint("version", version),
		zap.String("name", name),
		zap.String("direction", direction))
	return nil
}

// SplitStatements splits a migration body on ";" at line ends. The Oracle
// driver executes one statement per call and rejects a trailing semicolon.
func SplitStatements(body string) []string {
	var stmts []string
	var current strings.Builder
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			current.WriteString(strings.TrimSuffix(strings.TrimRight(line, " \t\r"), ";"))
			stmts = append(stmts, strings.TrimSpace(current.String()))
			current.Reset()
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}
