package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlens/tracking-service/internal/domain"
	"github.com/scoutlens/tracking-service/internal/service"
)

var interactionRows = []string{
	"id", "session_token", "user_id", "interaction_type", "timestamp",
	"url", "element_info", "data", "created_at",
}

func newInteractionMock(t *testing.T) (*InteractionRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewInteractionRepo(db, 5*time.Second), mock
}

func TestInteractionRepo_Create_MarshalsDocuments(t *testing.T) {
	repo, mock := newInteractionMock(t)
	now := time.Now().UTC()
	it := &domain.Interaction{
		SessionToken: "tok", UserID: "u1", InteractionType: "click",
		Timestamp: now, URL: "https://x.com",
		ElementInfo: domain.Document{"tag": "button"},
		Data:        nil,
		CreatedAt:   now,
	}

	mock.ExpectExec("INSERT INTO user_interactions").
		WithArgs(sqlmock.AnyArg(), "tok", "u1", "click", now,
			"https://x.com", []byte(`{"tag":"button"}`), nil, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), it)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInteractionRepo_GetByID_ScansDocuments(t *testing.T) {
	repo, mock := newInteractionMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM user_interactions WHERE id =").
		WithArgs("int_1").
		WillReturnRows(sqlmock.NewRows(interactionRows).AddRow(
			"int_1", "tok", "u1", "click", now,
			"", []byte(`{"tag":"a","href":"/pricing"}`), nil, now,
		))

	it, err := repo.GetByID(context.Background(), "int_1")
	require.NoError(t, err)
	assert.Equal(t, "a", it.ElementInfo["tag"])
	assert.Nil(t, it.Data)
}

func TestInteractionRepo_ListBySession_AscendingWithTotal(t *testing.T) {
	repo, mock := newInteractionMock(t)
	t0 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM user_interactions WHERE session_token =`).
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT (.+) FROM user_interactions(.+)ORDER BY "timestamp" ASC`).
		WithArgs("tok", 20, 0).
		WillReturnRows(sqlmock.NewRows(interactionRows).
			AddRow("i1", "tok", "u1", "click", t0, "", nil, nil, t0).
			AddRow("i2", "tok", "u1", "scroll", t0.Add(time.Second), "", nil, nil, t0))

	items, total, err := repo.ListBySession(context.Background(), "tok", service.InteractionFilter{}, service.Page{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 2)
	assert.True(t, items[0].Timestamp.Before(items[1].Timestamp))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInteractionRepo_Summarize(t *testing.T) {
	repo, mock := newInteractionMock(t)

	mock.ExpectQuery(`SELECT interaction_type, COUNT\(\*\) FROM user_interactions WHERE user_id = (.+)GROUP BY interaction_type`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"interaction_type", "count"}).
			AddRow("click", 3).
			AddRow("scroll", 1))

	counts, err := repo.Summarize(context.Background(), service.SummaryFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, []domain.TypeCount{
		{InteractionType: "click", Count: 3},
		{InteractionType: "scroll", Count: 1},
	}, counts)
}
