package templates

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/templatewing/pkg/db"
)

const selectColumns = `id, name, category, subject, body, to_addrs, cc_addrs, bcc_addrs,
	attachments, insert_mode, identities, usage_count, last_used_at, created_at, updated_at`

// PostgresStore persists templates in the "templates" table.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresStore returns a store over pool. Run Migrations first.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, now: time.Now}
}

// List returns all templates ordered by their insertion sequence.
func (s *PostgresStore) List(ctx context.Context) ([]Template, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+selectColumns+` FROM templates ORDER BY seq`)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	out, err := pgx.CollectRows(rows, scanTemplate)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return out, nil
}

// GetByID returns the template with id, or ErrNotFound.
func (s *PostgresStore) GetByID(ctx context.Context, id string) (Template, error) {
	return getByID(ctx, s.pool, id, false)
}

// Save creates or merges t in a read-committed transaction. The existing row is
// locked with SELECT ... FOR UPDATE so concurrent merges of one id apply in turn.
func (s *PostgresStore) Save(ctx context.Context, t Template) (Template, error) {
	return db.InTx(ctx, s.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) (Template, error) {
		var existing *Template
		if t.ID != "" {
			cur, err := getByID(ctx, tx, t.ID, true)
			switch {
			case err == nil:
				existing = &cur
			case !errors.Is(err, ErrNotFound):
				return Template{}, err
			}
		}

		p, err := prepare(existing, t, s.now())
		if err != nil {
			return Template{}, err
		}
		if err := upsert(ctx, tx, p); err != nil {
			return Template{}, err
		}
		return p, nil
	})
}

// Delete removes the template with id, or returns ErrNotFound.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// TrackUsage increments usage_count of id in place and sets last_used_at to at.
func (s *PostgresStore) TrackUsage(ctx context.Context, id string, at time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE templates SET usage_count = usage_count + 1, last_used_at = $2 WHERE id = $1`,
		id, at,
	)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func getByID(ctx context.Context, q querier, id string, forUpdate bool) (Template, error) {
	sql := `SELECT ` + selectColumns + ` FROM templates WHERE id = $1`
	if forUpdate {
		sql += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, sql, id)
	if err != nil {
		return Template{}, errors.Join(ErrStoreFailure, err)
	}
	t, err := pgx.CollectExactlyOneRow(rows, scanTemplate)
	if errors.Is(err, pgx.ErrNoRows) {
		return Template{}, ErrNotFound
	}
	if err != nil {
		return Template{}, errors.Join(ErrStoreFailure, err)
	}
	return t, nil
}

func upsert(ctx context.Context, tx pgx.Tx, t Template) error {
	attachments, err := json.Marshal(t.Attachments)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO templates (id, name, category, subject, body, to_addrs, cc_addrs, bcc_addrs,
			attachments, insert_mode, identities, usage_count, last_used_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			subject = EXCLUDED.subject,
			body = EXCLUDED.body,
			to_addrs = EXCLUDED.to_addrs,
			cc_addrs = EXCLUDED.cc_addrs,
			bcc_addrs = EXCLUDED.bcc_addrs,
			attachments = EXCLUDED.attachments,
			insert_mode = EXCLUDED.insert_mode,
			identities = EXCLUDED.identities,
			updated_at = EXCLUDED.updated_at`,
		t.ID, t.Name, t.Category, t.Subject, t.Body, t.To, t.CC, t.BCC,
		attachments, string(t.InsertMode), t.Identities, t.UsageCount, t.LastUsedAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func scanTemplate(row pgx.CollectableRow) (Template, error) {
	var (
		t           Template
		mode        string
		attachments []byte
	)
	err := row.Scan(
		&t.ID, &t.Name, &t.Category, &t.Subject, &t.Body, &t.To, &t.CC, &t.BCC,
		&attachments, &mode, &t.Identities, &t.UsageCount, &t.LastUsedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return Template{}, err
	}
	t.InsertMode = InsertMode(mode)
	if err := json.Unmarshal(attachments, &t.Attachments); err != nil {
		return Template{}, err
	}
	return t, nil
}
