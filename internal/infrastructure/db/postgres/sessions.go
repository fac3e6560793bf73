package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scoutlens/tracking-service/internal/domain"
	"github.com/scoutlens/tracking-service/internal/service"
)

type SessionRepo struct {
	base
}

func NewSessionRepo(db *sql.DB, timeout time.Duration) *SessionRepo {
	return &SessionRepo{base{db: db, timeout: timeout}}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var s domain.Session
	err := row.Scan(
		&s.ID, &s.UserID, &s.SessionToken, &s.URL, &s.StartTime, &s.EndTime,
		&s.Duration, &s.InteractionCount, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	s.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx, insertSessionSQL,
		s.ID, s.UserID, s.SessionToken, s.URL, s.StartTime, s.EndTime,
		s.Duration, s.InteractionCount, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	return r.mapErr(err)
}

func (r *SessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	s, err := scanSession(r.db.QueryRowContext(ctx, getSessionSQL, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("session not found")
	}
	if err != nil {
		return nil, r.mapErr(err)
	}
	return s, nil
}

func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	s, err := scanSession(r.db.QueryRowContext(ctx, getSessionByTokenSQL, token))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("session not found")
	}
	if err != nil {
		return nil, r.mapErr(err)
	}
	return s, nil
}

// Mutate runs fn against the current row under FOR UPDATE, then writes the
// result back, all in one transaction. Concurrent mutations of the same
// session serialize on the row lock.
func (r *SessionRepo) Mutate(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	var out *domain.Session
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		s, err := scanSession(tx.QueryRowContext(ctx, lockSessionSQL, id))
		if err == sql.ErrNoRows {
			return domain.ErrNotFound("session not found")
		}
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, updateSessionSQL,
			s.ID, s.URL, s.EndTime, s.Duration, s.InteractionCount,
			s.IsActive, s.UpdatedAt,
		); err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SessionRepo) List(ctx context.Context, f service.SessionFilter, p service.Page) ([]*domain.Session, int, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	where := []string{}
	args := []any{}
	argN := 1

	add := func(condFmt string, val any) {
		where = append(where, fmt.Sprintf(condFmt, argN))
		args = append(args, val)
		argN++
	}

	if f.UserID != "" {
		add("user_id = $%d", f.UserID)
	}
	if f.Active != nil {
		add("is_active = $%d", *f.Active)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countSQL := "SELECT COUNT(*) FROM sessions " + whereSQL
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, r.mapErr(err)
	}

	listSQL := "SELECT " + sessionCols + "\nFROM sessions\n" + whereSQL + `
ORDER BY created_at DESC
LIMIT $` + fmt.Sprintf("%d", argN) + ` OFFSET $` + fmt.Sprintf("%d", argN+1)
	args = append(args, p.Limit, p.Offset)

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, r.mapErr(err)
	}
	defer rows.Close()

	var out []*domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, 0, r.mapErr(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, r.mapErr(err)
	}
	return out, total, nil
}

func (r *SessionRepo) CountActive(ctx context.Context, userID string) (int, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	q := "SELECT COUNT(*) FROM sessions WHERE is_active = TRUE"
	args := []any{}
	if userID != "" {
		q += " AND user_id = $1"
		args = append(args, userID)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, r.mapErr(err)
	}
	return n, nil
}

func (r *SessionRepo) IncrementInteractions(ctx context.Context, id string, now time.Time) (*domain.Session, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	s, err := scanSession(r.db.QueryRowContext(ctx, incrementSessionSQL, id, now.UTC()))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("session not found")
	}
	if err != nil {
		return nil, r.mapErr(err)
	}
	return s, nil
}
