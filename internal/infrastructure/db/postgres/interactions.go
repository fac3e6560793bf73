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

type InteractionRepo struct {
	base
}

func NewInteractionRepo(db *sql.DB, timeout time.Duration) *InteractionRepo {
	return &InteractionRepo{base{db: db, timeout: timeout}}
}

func scanInteraction(row rowScanner) (*domain.Interaction, error) {
	var it domain.Interaction
	err := row.Scan(
		&it.ID, &it.SessionToken, &it.UserID, &it.InteractionType, &it.Timestamp,
		&it.URL, &it.ElementInfo, &it.Data, &it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *InteractionRepo) Create(ctx context.Context, it *domain.Interaction) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	it.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx, insertInteractionSQL,
		it.ID, it.SessionToken, it.UserID, it.InteractionType, it.Timestamp,
		it.URL, it.ElementInfo, it.Data, it.CreatedAt,
	)
	return r.mapErr(err)
}

func (r *InteractionRepo) GetByID(ctx context.Context, id string) (*domain.Interaction, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	it, err := scanInteraction(r.db.QueryRowContext(ctx, getInteractionSQL, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("interaction not found")
	}
	if err != nil {
		return nil, r.mapErr(err)
	}
	return it, nil
}

// ListBySession replays a session's interactions oldest-first.
func (r *InteractionRepo) ListBySession(ctx context.Context, sessionToken string, f service.InteractionFilter, p service.Page) ([]*domain.Interaction, int, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	where := []string{"session_token = $1"}
	args := []any{sessionToken}
	argN := 2

	add := func(condFmt string, val any) {
		where = append(where, fmt.Sprintf(condFmt, argN))
		args = append(args, val)
		argN++
	}

	if f.UserID != "" {
		add("user_id = $%d", f.UserID)
	}
	if f.InteractionType != "" {
		add("interaction_type = $%d", f.InteractionType)
	}

	whereSQL := "WHERE " + strings.Join(where, " AND ")

	var total int
	countSQL := "SELECT COUNT(*) FROM user_interactions " + whereSQL
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, r.mapErr(err)
	}

	listSQL := "SELECT " + interactionCols + "\nFROM user_interactions\n" + whereSQL + `
ORDER BY "timestamp" ASC
LIMIT $` + fmt.Sprintf("%d", argN) + ` OFFSET $` + fmt.Sprintf("%d", argN+1)
	args = append(args, p.Limit, p.Offset)

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, r.mapErr(err)
	}
	defer rows.Close()

	var out []*domain.Interaction
	for rows.Next() {
		it, err := scanInteraction(rows)
		if err != nil {
			return nil, 0, r.mapErr(err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, r.mapErr(err)
	}
	return out, total, nil
}

// Summarize groups matching interactions by type, alphabetically.
func (r *InteractionRepo) Summarize(ctx context.Context, f service.SummaryFilter) ([]domain.TypeCount, error) {
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
	if f.SessionToken != "" {
		add("session_token = $%d", f.SessionToken)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	q := "SELECT interaction_type, COUNT(*) FROM user_interactions " + whereSQL + `
GROUP BY interaction_type
ORDER BY interaction_type ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, r.mapErr(err)
	}
	defer rows.Close()

	var out []domain.TypeCount
	for rows.Next() {
		var tc domain.TypeCount
		if err := rows.Scan(&tc.InteractionType, &tc.Count); err != nil {
			return nil, r.mapErr(err)
		}
		out = append(out, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapErr(err)
	}
	return out, nil
}
