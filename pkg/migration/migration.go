package migration

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/questdb"
)

// Migration is one versioned schema change loaded from <id>.up.sql. QuestDB has no
// DELETE, so migrations are forward only.
type Migration struct {
	ID    string
	Name  string
	UpSQL string
}

// Runner applies migrations from a file system to QuestDB and records them in schema_migrations.
type Runner struct {
	client questdb.QuestDBClient
	fsys   fs.FS
	logger logger.Interface
}

// NewRunner creates a new migration runner. fsys is usually an embed.FS or os.DirFS.
func NewRunner(client questdb.QuestDBClient, fsys fs.FS, logger logger.Interface) *Runner {
	return &Runner{
		client: client,
		fsys:   fsys,
		logger: logger,
	}
}

const createMigrationTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	id STRING,
	name STRING,
	applied_at TIMESTAMP
) TIMESTAMP(applied_at) PARTITION BY YEAR`

// EnsureMigrationTable creates the schema_migrations table if it doesn't exist.
func (r *Runner) EnsureMigrationTable(ctx context.Context) error {
	if err := r.client.Exec(ctx, createMigrationTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	return nil
}

// Applied returns the set of applied migration ids.
func (r *Runner) Applied(ctx context.Context) (map[string]bool, error) {
	applied := make(map[string]bool)

	rows, err := r.client.Query(ctx, "SELECT id FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query schema_migrations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan migration id: %w", err)
		}
		applied[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return applied, nil
}

// Load reads all migrations from the file system sorted by id.
func (r *Runner) Load() ([]Migration, error) {
	upFiles, err := fs.Glob(r.fsys, "*.up.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(upFiles)

	migrations := make([]Migration, 0, len(upFiles))
	for _, upFile := range upFiles {
		upContent, err := fs.ReadFile(r.fsys, upFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", upFile, err)
		}

		id := strings.TrimSuffix(path.Base(upFile), ".up.sql")
		name := id
		if parts := strings.SplitN(id, "_", 2); len(parts) == 2 {
			name = parts[1]
		}

		migrations = append(migrations, Migration{
			ID:    id,
			Name:  name,
			UpSQL: strings.TrimSpace(string(upContent)),
		})
	}

	return migrations, nil
}

// Up applies up to steps pending migrations, all of them when steps <= 0.
// Each file may hold several statements separated by ';'.
func (r *Runner) Up(ctx context.Context, steps int) (int, error) {
	if err := r.EnsureMigrationTable(ctx); err != nil {
		return 0, err
	}

	migrations, err := r.Load()
	if err != nil {
		return 0, err
	}

	applied, err := r.Applied(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, m := range migrations {
		if applied[m.ID] {
			continue
		}
		if steps > 0 && count >= steps {
			break
		}

		for _, stmt := range splitStatements(m.UpSQL) {
			if err := r.client.Exec(ctx, stmt); err != nil {
				return count, fmt.Errorf("failed to apply migration %s: %w", m.ID, err)
			}
		}

		if err := r.client.Exec(ctx, "INSERT INTO schema_migrations VALUES ($1, $2, now())", m.ID, m.Name); err != nil {
			return count, fmt.Errorf("failed to record migration %s: %w", m.ID, err)
		}

		r.logger.InfoContext(ctx, "migration applied", logger.NewField("id", m.ID))
		count++
	}

	return count, nil
}

func splitStatements(sql string) []string {
	var stmts []string
	for _, part := range strings.Split(sql, ";") {
		if s := strings.TrimSpace(part); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
