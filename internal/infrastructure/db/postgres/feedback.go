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

type FeedbackRepo struct {
	base
}

func NewFeedbackRepo(db *sql.DB, timeout time.Duration) *FeedbackRepo {
	return &FeedbackRepo{base{db: db, timeout: timeout}}
}

func scanFeedback(row rowScanner) (*domain.Feedback, error) {
	var f domain.Feedback
	err := row.Scan(
		&f.ID, &f.UserID, &f.FeedbackType, &f.Feedback, &f.SubjectName,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FeedbackRepo) Create(ctx context.Context, f *domain.Feedback) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	f.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx, insertFeedbackSQL,
		f.ID, f.UserID, f.FeedbackType, f.Feedback, f.SubjectName,
		f.CreatedAt, f.UpdatedAt,
	)
	return r.mapErr(err)
}

func (r *FeedbackRepo) GetByID(ctx context.Context, id string) (*domain.Feedback, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	f, err := scanFeedback(r.db.QueryRowContext(ctx, getFeedbackSQL, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("feedback not found")
	}
	if err != nil {
		return nil, r.mapErr(err)
	}
	return f, nil
}

func (r *FeedbackRepo) Mutate(ctx context.Context, id string, fn func(*domain.Feedback) error) (*domain.Feedback, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	var out *domain.Feedback
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		f, err := scanFeedback(tx.QueryRowContext(ctx, lockFeedbackSQL, id))
		if err == sql.ErrNoRows {
			return domain.ErrNotFound("feedback not found")
		}
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, updateFeedbackSQL,
			f.ID, f.FeedbackType, f.Feedback, f.SubjectName, f.UpdatedAt,
		); err != nil {
			return err
		}
		out = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete reports found=false when no row matched; that is not an error.
func (r *FeedbackRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, deleteFeedbackSQL, id)
	if err != nil {
		return false, r.mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, r.mapErr(err)
	}
	return n > 0, nil
}

func (r *FeedbackRepo) List(ctx context.Context, f service.FeedbackFilter, p service.Page) ([]*domain.Feedback, int, error) {
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
	if f.FeedbackType != "" {
		add("feedback_type = $%d", f.FeedbackType)
	}
	if f.SubjectName != "" {
		add("subject_name = $%d", f.SubjectName)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countSQL := "SELECT COUNT(*) FROM feedback " + whereSQL
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, r.mapErr(err)
	}

	listSQL := "SELECT " + feedbackCols + "\nFROM feedback\n" + whereSQL + `
ORDER BY created_at DESC
LIMIT $` + fmt.Sprintf("%d", argN) + ` OFFSET $` + fmt.Sprintf("%d", argN+1)
	args = append(args, p.Limit, p.Offset)

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, r.mapErr(err)
	}
	defer rows.Close()

	var out []*domain.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, 0, r.mapErr(err)
		}
		out = append(out, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, r.mapErr(err)
	}
	return out, total, nil
}
