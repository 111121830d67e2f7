package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketcheckin/internal/domain"
)

const (
	ticketID    = "0b6f1c52-6f0e-4c1b-9a57-2f0a3cfb1d11"
	eventID     = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	organizerID = "org-1"
)

var snapshotColumns = []string{
	"id", "event_id", "ticket_type_id", "user_id", "transaction_id",
	"checked_in", "check_in_time",
	"title", "organizer_id", "name",
	"name", "email",
	"full_name", "email",
}

func snapshotRow(checkedIn bool, checkInTime any, holderName, holderEmail any) *sqlmock.Rows {
	return sqlmock.NewRows(snapshotColumns).AddRow(
		ticketID, eventID, "tt-1", "user-1", "tx-1",
		checkedIn, checkInTime,
		"Jazz Night", organizerID, "VIP",
		"Ada Buyer", "ada@example.com",
		holderName, holderEmail,
	)
}

func TestTicketRepository_GetSnapshotByID(t *testing.T) {
	ctx := context.Background()
	checkedAt := time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		mock     func(mock sqlmock.Sqlmock)
		wantKind domain.ErrorKind
		check    func(t *testing.T, s *domain.TicketSnapshot)
	}{
		{
			name: "unchecked ticket with owner fallback",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT t.id, tr.event_id`).
					WithArgs(ticketID).
					WillReturnRows(snapshotRow(false, nil, nil, nil))
			},
			check: func(t *testing.T, s *domain.TicketSnapshot) {
				assert.Equal(t, ticketID, s.ID)
				assert.Equal(t, eventID, s.EventID)
				assert.Equal(t, organizerID, s.EventOrganizerID)
				assert.Equal(t, "Jazz Night", s.EventTitle)
				assert.Equal(t, "VIP", s.TicketTypeName)
				assert.False(t, s.CheckedIn)
				assert.Nil(t, s.CheckInTime)
				assert.Nil(t, s.Holder)
				assert.Equal(t, domain.Holder{FullName: "Ada Buyer", Email: "ada@example.com"}, s.DisplayHolder())
			},
		},
		{
			name: "checked in ticket with holder",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT t.id, tr.event_id`).
					WithArgs(ticketID).
					WillReturnRows(snapshotRow(true, checkedAt, "Grace Guest", "grace@example.com"))
			},
			check: func(t *testing.T, s *domain.TicketSnapshot) {
				assert.True(t, s.CheckedIn)
				require.NotNil(t, s.CheckInTime)
				assert.True(t, checkedAt.Equal(*s.CheckInTime))
				assert.Equal(t, domain.Holder{FullName: "Grace Guest", Email: "grace@example.com"}, s.DisplayHolder())
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT t.id, tr.event_id`).
					WithArgs(ticketID).
					WillReturnError(sql.ErrNoRows)
			},
			wantKind: domain.KindTicketNotFound,
		},
		{
			name: "invalid uuid text maps to not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT t.id, tr.event_id`).
					WithArgs(ticketID).
					WillReturnError(&pq.Error{Code: "22P02"})
			},
			wantKind: domain.KindTicketNotFound,
		},
		{
			name: "connection failure",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT t.id, tr.event_id`).
					WithArgs(ticketID).
					WillReturnError(sql.ErrConnDone)
			},
			wantKind: domain.KindStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewTicketRepository(db)
			snap, err := repo.GetSnapshotByID(ctx, ticketID)
			if tt.wantKind != "" {
				require.Error(t, err)
				kind, ok := domain.KindOf(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantKind, kind)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			tt.check(t, snap)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTicketRepository_CheckIn(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		mock     func(mock sqlmock.Sqlmock)
		wantKind domain.ErrorKind
	}{
		{
			name: "one row updated commits and returns fresh snapshot",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE tickets`).
					WithArgs(ticketID, at).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(`SELECT t.id, tr.event_id`).
					WithArgs(ticketID).
					WillReturnRows(snapshotRow(true, at, nil, nil))
				mock.ExpectCommit()
			},
		},
		{
			name: "zero rows and already checked in",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE tickets`).
					WithArgs(ticketID, at).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT checked_in FROM tickets WHERE id`).
					WithArgs(ticketID).
					WillReturnRows(sqlmock.NewRows([]string{"checked_in"}).AddRow(true))
				mock.ExpectRollback()
			},
			wantKind: domain.KindAlreadyCheckedIn,
		},
		{
			name: "zero rows and row vanished",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE tickets`).
					WithArgs(ticketID, at).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT checked_in FROM tickets WHERE id`).
					WithArgs(ticketID).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			wantKind: domain.KindTicketNotFound,
		},
		{
			name: "begin fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(sql.ErrConnDone)
			},
			wantKind: domain.KindStorageUnavailable,
		},
		{
			name: "update fails with serialization failure",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE tickets`).
					WithArgs(ticketID, at).
					WillReturnError(&pq.Error{Code: "40001"})
				mock.ExpectRollback()
			},
			wantKind: domain.KindStorageUnavailable,
		},
		{
			name: "commit fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE tickets`).
					WithArgs(ticketID, at).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(`SELECT t.id, tr.event_id`).
					WithArgs(ticketID).
					WillReturnRows(snapshotRow(true, at, nil, nil))
				mock.ExpectCommit().WillReturnError(sql.ErrConnDone)
			},
			wantKind: domain.KindStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewTicketRepository(db)
			snap, err := repo.CheckIn(ctx, ticketID, at)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Nil(t, snap)
				kind, ok := domain.KindOf(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantKind, kind)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.NotNil(t, snap)
			assert.True(t, snap.CheckedIn)
			require.NotNil(t, snap.CheckInTime)
			assert.True(t, at.Equal(*snap.CheckInTime))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
