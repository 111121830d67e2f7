package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"ticketcheckin/internal/domain"
)

const ticketSnapshotQuery = `
		SELECT t.id, tr.event_id, t.ticket_type_id, t.user_id, t.transaction_id,
		       t.checked_in, t.check_in_time,
		       e.title, e.organizer_id, tt.name,
		       u.name, u.email,
		       th.full_name, th.email
		FROM tickets t
		JOIN transactions tr ON tr.id = t.transaction_id
		JOIN events e ON e.id = tr.event_id
		JOIN ticket_types tt ON tt.id = t.ticket_type_id
		LEFT JOIN users u ON u.id = t.user_id
		LEFT JOIN ticket_holders th ON th.ticket_id = t.id
		WHERE t.id = $1
	`

const checkInStmt = `
		UPDATE tickets
		SET checked_in = TRUE, check_in_time = $2, updated_at = $2
		WHERE id = $1 AND checked_in = FALSE
	`

const checkedInQuery = `SELECT checked_in FROM tickets WHERE id = $1`

// Postgres SQLSTATE codes the repository inspects.
const (
	pqInvalidTextRepresentation = "22P02"
	pqSerializationFailure      = "40001"
	pqDeadlockDetected          = "40P01"
)

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type ticketRepository struct {
	DB *sql.DB
}

// NewTicketRepository returns a domain.TicketRepository implemented with Postgres.
func NewTicketRepository(db *sql.DB) domain.TicketRepository {
	return &ticketRepository{DB: db}
}

func (r *ticketRepository) GetSnapshotByID(ctx context.Context, ticketID string) (*domain.TicketSnapshot, error) {
	return getSnapshot(ctx, r.DB, ticketID)
}

// CheckIn runs the conditional update in its own read-committed transaction.
// Concurrent updaters of the same row block on its lock and then re-check
// checked_in = FALSE against the committed version, so at most one of them
// affects a row. The affected-row count decides the outcome.
func (r *ticketRepository) CheckIn(ctx context.Context, ticketID string, at time.Time) (*domain.TicketSnapshot, error) {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, classify("begin check-in", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, checkInStmt, ticketID, at)
	if err != nil {
		return nil, classify("check in ticket", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, classify("check in rows affected", err)
	}

	if affected == 0 {
		var checkedIn bool
		err := tx.QueryRowContext(ctx, checkedInQuery, ticketID).Scan(&checkedIn)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, domain.ErrTicketNotFound
			}
			return nil, classify("re-read ticket", err)
		}
		if checkedIn {
			return nil, domain.ErrAlreadyCheckedIn
		}
		return nil, domain.NewError(domain.KindStorageUnavailable,
			fmt.Errorf("check in ticket %s: no row updated but ticket is not checked in", ticketID))
	}

	snap, err := getSnapshot(ctx, tx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, classify("commit check-in", err)
	}
	return snap, nil
}

func getSnapshot(ctx context.Context, q rowQuerier, ticketID string) (*domain.TicketSnapshot, error) {
	s := &domain.TicketSnapshot{}
	var checkInTime sql.NullTime
	var ownerName, ownerEmail, holderName, holderEmail sql.NullString
	err := q.QueryRowContext(ctx, ticketSnapshotQuery, ticketID).Scan(
		&s.ID, &s.EventID, &s.TicketTypeID, &s.OwnerUserID, &s.TransactionID,
		&s.CheckedIn, &checkInTime,
		&s.EventTitle, &s.EventOrganizerID, &s.TicketTypeName,
		&ownerName, &ownerEmail,
		&holderName, &holderEmail,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, classify("get ticket", err)
	}
	if checkInTime.Valid {
		t := checkInTime.Time.UTC()
		s.CheckInTime = &t
	}
	s.OwnerName = ownerName.String
	s.OwnerEmail = ownerEmail.String
	if holderName.Valid || holderEmail.Valid {
		s.Holder = &domain.Holder{FullName: holderName.String, Email: holderEmail.String}
	}
	return s, nil
}

// classify maps a driver error to a check-in error kind. A malformed id can
// only name a ticket that does not exist; everything else is the store failing.
func classify(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqInvalidTextRepresentation:
			return domain.NewError(domain.KindTicketNotFound, fmt.Errorf("%s: %w", op, err))
		case pqSerializationFailure, pqDeadlockDetected:
			return domain.NewError(domain.KindStorageUnavailable, fmt.Errorf("%s: transient: %w", op, err))
		}
	}
	return domain.NewError(domain.KindStorageUnavailable, fmt.Errorf("%s: %w", op, err))
}
