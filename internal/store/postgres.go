package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// PostgresStore is the per-record backend: one JSONB row per record
// instead of a whole-collection snapshot. Updates touch a single row
// (JSONB || implements the shallow merge), so concurrent writers to
// different records cannot lose each other's changes, and the seq
// ordering key comes from a BIGSERIAL assigned by the database.
type PostgresStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS records (
	collection TEXT   NOT NULL,
	id         TEXT   NOT NULL,
	seq        BIGSERIAL,
	data       JSONB  NOT NULL,
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS records_room_idx
	ON records (collection, (UPPER(data->>'room_id')));`

// NewPostgresStore ensures the records table exists.
func NewPostgresStore(db *sqlx.DB, logger *zap.Logger) (*PostgresStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to ensure records schema: %w", err)
	}
	logger.Info("Postgres store ready")
	return &PostgresStore{db: db, logger: logger}, nil
}

func (s *PostgresStore) Collection(name string) (Collection, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	return &pgCollection{name: name, db: s.db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

type pgCollection struct {
	name string
	db   *sqlx.DB
}

type pgRow struct {
	ID   string `db:"id"`
	Seq  int64  `db:"seq"`
	Data []byte `db:"data"`
}

func (r *pgRow) record() (Record, error) {
	var rec Record
	if err := json.Unmarshal(r.Data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", r.ID, err)
	}
	rec["id"] = r.ID
	rec["seq"] = r.Seq
	return rec, nil
}

func (c *pgCollection) Name() string {
	return c.name
}

func (c *pgCollection) GetAll(ctx context.Context) ([]Record, error) {
	query := `SELECT id, seq, data FROM records WHERE collection = $1 ORDER BY seq`

	var rows []pgRow
	if err := c.db.SelectContext(ctx, &rows, query, c.name); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.name, err)
	}
	return rowsToRecords(rows)
}

func (c *pgCollection) GetByID(ctx context.Context, id string) (Record, error) {
	query := `SELECT id, seq, data FROM records WHERE collection = $1 AND id = $2`

	var row pgRow
	if err := c.db.GetContext(ctx, &row, query, c.name, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get %s record: %w", c.name, err)
	}
	return row.record()
}

func (c *pgCollection) GetBy(ctx context.Context, field, value string) ([]Record, error) {
	// Room codes compare case-insensitively; the expression matches
	// the records_room_idx index.
	var query string
	if field == "room_id" {
		query = `
			SELECT id, seq, data FROM records
			WHERE collection = $1 AND UPPER(data->>'room_id') = UPPER(TRIM($2))
			ORDER BY seq`
	} else {
		query = fmt.Sprintf(`
			SELECT id, seq, data FROM records
			WHERE collection = $1 AND data->>%s = $2
			ORDER BY seq`, pqQuoteLiteral(field))
	}

	var rows []pgRow
	if err := c.db.SelectContext(ctx, &rows, query, c.name, value); err != nil {
		return nil, fmt.Errorf("failed to query %s by %s: %w", c.name, field, err)
	}
	return rowsToRecords(rows)
}

func (c *pgCollection) Add(ctx context.Context, rec Record) (Record, error) {
	stored := rec.Clone()
	id := stored.ID()
	if id == "" {
		id = uuid.New().String()
	}
	delete(stored, "id")
	delete(stored, "seq")

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s record: %w", c.name, err)
	}

	query := `
		INSERT INTO records (collection, id, data)
		VALUES ($1, $2, $3)
		RETURNING seq`

	var seq int64
	if err := c.db.QueryRowxContext(ctx, query, c.name, id, data).Scan(&seq); err != nil {
		return nil, fmt.Errorf("failed to add %s record: %w", c.name, err)
	}

	stored["id"] = id
	stored["seq"] = seq
	return stored, nil
}

func (c *pgCollection) Update(ctx context.Context, id string, patch Record) (Record, error) {
	p := patch.Clone()
	delete(p, "id")
	delete(p, "seq")

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s patch: %w", c.name, err)
	}

	query := `
		UPDATE records
		SET data = data || $3
		WHERE collection = $1 AND id = $2
		RETURNING id, seq, data`

	var row pgRow
	if err := c.db.GetContext(ctx, &row, query, c.name, id, data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to update %s record: %w", c.name, err)
	}
	return row.record()
}

func (c *pgCollection) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM records WHERE collection = $1 AND id = $2`

	if _, err := c.db.ExecContext(ctx, query, c.name, id); err != nil {
		return fmt.Errorf("failed to delete %s record: %w", c.name, err)
	}
	return nil
}

func (c *pgCollection) Clear(ctx context.Context) error {
	query := `DELETE FROM records WHERE collection = $1`

	if _, err := c.db.ExecContext(ctx, query, c.name); err != nil {
		return fmt.Errorf("failed to clear %s: %w", c.name, err)
	}
	return nil
}

func rowsToRecords(rows []pgRow) ([]Record, error) {
	records := make([]Record, 0, len(rows))
	for i := range rows {
		rec, err := rows[i].record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// pqQuoteLiteral quotes a JSON field name for interpolation. Field
// names come from repository code, never from request input, but
// quoting keeps the query well-formed for any name.
func pqQuoteLiteral(s string) string {
	out := make([]rune, 0, len(s)+2)
	out = append(out, '\'')
	for _, r := range s {
		if r == '\'' {
			out = append(out, '\'')
		}
		out = append(out, r)
	}
	out = append(out, '\'')
	return string(out)
}
