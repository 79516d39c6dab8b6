package stunt

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver.

	"github.com/KirkDiggler/age-toolbox/internal/entities"
	"github.com/KirkDiggler/age-toolbox/internal/errors"
)

// MemoryDSN opens a private in-memory database
const MemoryDSN = ":memory:"

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS stunts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		cost TEXT NOT NULL,
		category TEXT NOT NULL,
		setting TEXT,
		description TEXT NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_stunts_category ON stunts(category);`,
}

const stuntColumns = `id, name, cost, category, setting, description`

// OpenSQLite opens or creates the SQLite database at path. The parent
// directory is created when missing.
func OpenSQLite(path string) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.InvalidArgument("sqlite path is required")
	}

	if path != MemoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create directory for %s", path)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite db")
	}

	// Each connection to :memory: is its own database
	if path == MemoryDSN {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to ping sqlite db")
	}

	return db, nil
}

// SQLiteConfig contains configuration for the SQLite stunt repository
type SQLiteConfig struct {
	DB *sql.DB
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.DB == nil {
		return errors.InvalidArgument("db cannot be nil")
	}
	return nil
}

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-backed stunt repository and applies migrations
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for _, stmt := range migrations {
		if _, err := cfg.DB.ExecContext(ctx, stmt); err != nil {
			return nil, errors.Wrapf(err, "failed to migrate stunts table")
		}
	}

	return &sqliteRepository{db: cfg.DB}, nil
}

var _ Repository = (*sqliteRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStunt(row rowScanner) (*entities.Stunt, error) {
	var (
		stunt   entities.Stunt
		cost    string
		setting sql.NullString
	)
	if err := row.Scan(&stunt.ID, &stunt.Name, &cost, &stunt.Category, &setting, &stunt.Description); err != nil {
		return nil, err
	}

	stunt.Cost = entities.Cost(cost)
	if setting.Valid {
		stunt.Setting = &setting.String
	}
	return &stunt, nil
}

func nullSetting(setting *string) sql.NullString {
	if setting == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *setting, Valid: true}
}

func (r *sqliteRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+stuntColumns+` FROM stunts ORDER BY id`)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list stunts")
	}
	defer func() {
		_ = rows.Close()
	}()

	stunts := make([]*entities.Stunt, 0)
	for rows.Next() {
		stunt, err := scanStunt(rows)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan stunt")
		}
		stunts = append(stunts, stunt)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to iterate stunts")
	}

	return &ListOutput{Stunts: stunts}, nil
}

func (r *sqliteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+stuntColumns+` FROM stunts WHERE id = ?`, input.ID)
	stunt, err := scanStunt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get stunt")
	}

	return &GetOutput{Stunt: stunt}, nil
}

func (r *sqliteRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Stunt == nil {
		return nil, errors.InvalidArgument(errStuntNil)
	}

	stunt := input.Stunt.Clone()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO stunts (name, cost, category, setting, description) VALUES (?, ?, ?, ?, ?)`,
		stunt.Name,
		stunt.Cost.String(),
		stunt.Category,
		nullSetting(stunt.Setting),
		stunt.Description,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create stunt")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read stunt ID")
	}
	stunt.ID = id

	return &CreateOutput{Stunt: stunt}, nil
}

func (r *sqliteRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Stunt == nil {
		return nil, errors.InvalidArgument(errStuntNil)
	}
	if err := validateID(input.Stunt.ID); err != nil {
		return nil, err
	}

	stunt := input.Stunt.Clone()

	res, err := r.db.ExecContext(ctx,
		`UPDATE stunts SET name = ?, cost = ?, category = ?, setting = ?, description = ? WHERE id = ?`,
		stunt.Name,
		stunt.Cost.String(),
		stunt.Category,
		nullSetting(stunt.Setting),
		stunt.Description,
		stunt.ID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update stunt")
	}

	if err := requireAffected(res, stunt.ID); err != nil {
		return nil, err
	}

	return &UpdateOutput{Stunt: stunt}, nil
}

func (r *sqliteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM stunts WHERE id = ?`, input.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete stunt")
	}

	if err := requireAffected(res, input.ID); err != nil {
		return nil, err
	}

	return &DeleteOutput{}, nil
}

func (r *sqliteRepository) Count(ctx context.Context, _ CountInput) (*CountOutput, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stunts`).Scan(&count); err != nil {
		return nil, errors.Wrapf(err, "failed to count stunts")
	}

	return &CountOutput{Count: count}, nil
}

func requireAffected(res sql.Result, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "failed to read affected rows")
	}
	if affected == 0 {
		return notFound(id)
	}
	return nil
}
