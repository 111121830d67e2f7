package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"ticketcheckin/internal/clock"
	"ticketcheckin/internal/domain"
)

const checkInTimeLayout = "Jan 2, 2006 15:04 MST"

type ticketValidationService struct {
	codec          domain.ClaimCodec
	verifier       domain.ClaimVerifier
	ticketRepo     domain.TicketRepository
	clock          clock.Clock
	publisher      domain.EventPublisher
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration

	// pending tracks post check-in notifications still in flight.
	pending sync.WaitGroup
}

// NewTicketValidationService wires the QR validation pipeline. publisher and
// emailService are optional; when nil the matching notification is skipped.
func NewTicketValidationService(
	codec domain.ClaimCodec,
	verifier domain.ClaimVerifier,
	ticketRepo domain.TicketRepository,
	clk clock.Clock,
	publisher domain.EventPublisher,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.TicketValidationService {
	if logger == nil {
		logger = slog.Default()
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &ticketValidationService{
		codec:          codec,
		verifier:       verifier,
		ticketRepo:     ticketRepo,
		clock:          clk,
		publisher:      publisher,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *ticketValidationService) Validate(ctx context.Context, rawQR string) (*domain.TicketSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.resolve(ctx, rawQR, "")
}

func (s *ticketValidationService) ValidateAndCheckIn(ctx context.Context, rawQR, organizerID string) (*domain.TicketSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	snap, err := s.resolve(ctx, rawQR, organizerID)
	if err != nil {
		return nil, err
	}
	if !Authorize(organizerID, snap) {
		return nil, domain.ErrNotAuthorized
	}
	// The conditional update still decides the race; this only saves a write.
	if snap.CheckedIn {
		return nil, domain.ErrAlreadyCheckedIn
	}

	at := s.clock.Now()
	// A commit whose acknowledgement was lost is retried like any storage fault;
	// the retry then reports AlreadyCheckedIn even though this scan admitted the ticket.
	checked, err := withRetry(ctx, func(ctx context.Context) (*domain.TicketSnapshot, error) {
		return s.ticketRepo.CheckIn(ctx, snap.ID, at)
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "ticket checked in",
		"ticket_id", checked.ID,
		"event_id", checked.EventID,
		"organizer_id", organizerID,
	)
	s.notifyCheckedIn(ctx, checked, organizerID, at)
	return checked, nil
}

// resolve runs decode, verify, lookup and the claim/ticket event check.
func (s *ticketValidationService) resolve(ctx context.Context, rawQR, organizerID string) (*domain.TicketSnapshot, error) {
	claim, err := s.codec.Decode(rawQR)
	if err != nil {
		if _, ok := domain.KindOf(err); !ok {
			err = domain.NewError(domain.KindMalformedToken, err)
		}
		return nil, err
	}
	if !s.verifier.Verify(claim) {
		s.logger.WarnContext(ctx, "qr signature rejected",
			"ticket_id", claim.TicketID,
			"event_id", claim.EventID,
			"organizer_id", organizerID,
		)
		return nil, domain.ErrInvalidSignature
	}

	snap, err := withRetry(ctx, func(ctx context.Context) (*domain.TicketSnapshot, error) {
		return s.ticketRepo.GetSnapshotByID(ctx, claim.TicketID)
	})
	if err != nil {
		return nil, err
	}
	// A genuine ticket presented at another event's gate.
	if snap.EventID != claim.EventID {
		return nil, domain.ErrTicketNotFound
	}
	return snap, nil
}

// withRetry runs op and repeats it once when storage was unavailable and the
// deadline has not passed. Both storage operations are idempotent.
func withRetry[T any](ctx context.Context, op func(context.Context) (T, error)) (T, error) {
	v, err := op(ctx)
	if err != nil && errors.Is(err, domain.ErrStorageUnavailable) && ctx.Err() == nil {
		return op(ctx)
	}
	return v, err
}

// notifyCheckedIn publishes the check-in event and mails the holder. Both run
// after the response is decided and their failures are only logged.
func (s *ticketValidationService) notifyCheckedIn(ctx context.Context, snap *domain.TicketSnapshot, organizerID string, at time.Time) {
	base := context.WithoutCancel(ctx)
	checkInTime := at
	if snap.CheckInTime != nil {
		checkInTime = *snap.CheckInTime
	}

	if s.publisher != nil {
		evt := domain.TicketCheckedInEvent{
			TicketID:     snap.ID,
			EventID:      snap.EventID,
			TicketTypeID: snap.TicketTypeID,
			OrganizerID:  organizerID,
			CheckInTime:  checkInTime,
		}
		s.pending.Go(func() {
			ctx, cancel := context.WithTimeout(base, s.contextTimeout)
			defer cancel()
			if err := s.publisher.Publish(ctx, domain.SubjectTicketCheckedIn, evt); err != nil {
				s.logger.WarnContext(ctx, "publish check-in event", "ticket_id", evt.TicketID, "error", err)
			}
		})
	}

	holder := snap.DisplayHolder()
	if s.emailService != nil && holder.Email != "" {
		data := &domain.CheckInConfirmationEmailData{
			Email:          holder.Email,
			FullName:       holder.FullName,
			EventTitle:     snap.EventTitle,
			TicketTypeName: snap.TicketTypeName,
			TicketID:       snap.ID,
			CheckInTime:    checkInTime.Format(checkInTimeLayout),
		}
		s.pending.Go(func() {
			ctx, cancel := context.WithTimeout(base, s.contextTimeout)
			defer cancel()
			if err := s.emailService.SendCheckInConfirmation(ctx, data); err != nil {
				s.logger.WarnContext(ctx, "send check-in confirmation", "ticket_id", data.TicketID, "error", err)
			}
		})
	}
}

// Wait blocks until in-flight check-in notifications have finished.
func (s *ticketValidationService) Wait() {
	s.pending.Wait()
}
