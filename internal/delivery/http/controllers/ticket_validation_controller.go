package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"ticketcheckin/internal/delivery/http/helpers"
	"ticketcheckin/internal/delivery/http/middleware"
	"ticketcheckin/internal/domain"
	"ticketcheckin/internal/services"
)

const (
	messageQRValid   = "QR code is valid"
	messageCheckedIn = "Ticket checked in successfully"
)

// ValidateQRCodeRequest is the request body for the QR validation endpoints.
type ValidateQRCodeRequest struct {
	QRCodeData string `json:"qrCodeData"`
	CheckIn    bool   `json:"checkIn"`
}

// Validate implements Validator.
func (req ValidateQRCodeRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(req.QRCodeData) == "" {
		errs = append(errs, "qrCodeData is required")
	}
	return errs
}

// TicketEvent is the event part of a validated ticket.
type TicketEvent struct {
	Title string `json:"title"`
}

// TicketType is the ticket type part of a validated ticket.
type TicketType struct {
	Name string `json:"name"`
}

// ValidatedTicket is the ticket as shown to gate staff.
type ValidatedTicket struct {
	ID          string        `json:"id"`
	CheckedIn   bool          `json:"checkedIn"`
	CheckInTime *time.Time    `json:"checkInTime,omitempty"`
	Event       TicketEvent   `json:"event"`
	TicketType  TicketType    `json:"ticketType"`
	Holder      domain.Holder `json:"holder"`
}

// ValidateQRCodeData is the data object of a successful validation.
type ValidateQRCodeData struct {
	Ticket ValidatedTicket `json:"ticket"`
}

// ValidateQRCodeSuccessResponse is the success envelope for the validation endpoints.
type ValidateQRCodeSuccessResponse struct {
	Success bool               `json:"success" example:"true"`
	Message string             `json:"message" example:"Ticket checked in successfully"`
	Data    ValidateQRCodeData `json:"data"`
}

func newValidateQRCodeData(s *domain.TicketSnapshot) ValidateQRCodeData {
	return ValidateQRCodeData{Ticket: ValidatedTicket{
		ID:          s.ID,
		CheckedIn:   s.CheckedIn,
		CheckInTime: s.CheckInTime,
		Event:       TicketEvent{Title: s.EventTitle},
		TicketType:  TicketType{Name: s.TicketTypeName},
		Holder:      s.DisplayHolder(),
	}}
}

type TicketValidationController struct {
	Logger  *slog.Logger
	Service domain.TicketValidationService
}

func NewTicketValidationController(logger *slog.Logger, svc domain.TicketValidationService) *TicketValidationController {
	return &TicketValidationController{
		Logger:  logger,
		Service: svc,
	}
}

// Validate godoc
// @Summary Validate a scanned ticket QR code
// @Description Decodes and verifies a scanned QR payload for the caller's organizer account and returns the ticket. With checkIn=true the ticket is admitted; a ticket is admitted at most once.
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ValidateQRCodeRequest true "Scanned QR payload"
// @Success 200 {object} controllers.ValidateQRCodeSuccessResponse
// @Failure 400 {object} helpers.APIResponse "code: malformed_token, invalid_signature, ticket_not_found, not_authorized, already_checked_in, validation_error, bad_request"
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Failure 429 {object} helpers.APIResponse "code: rate_limited"
// @Failure 500 {object} helpers.APIResponse "code: storage_unavailable, internal_error"
// @Router /validate [post]
func (c *TicketValidationController) Validate(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "Authentication required")
		return
	}
	if p.OrganizerID == "" {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "organizer account required")
		return
	}
	var req ValidateQRCodeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	c.validate(w, r, req, p.OrganizerID)
}

// ValidateForOrganizer godoc
// @Summary Validate a scanned ticket QR code for an organizer
// @Description Same as POST /validate for the organizer in the path. Organizers may only act for themselves; admins may act for any organizer.
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param organizerID path string true "Organizer ID"
// @Param body body ValidateQRCodeRequest true "Scanned QR payload"
// @Success 200 {object} controllers.ValidateQRCodeSuccessResponse
// @Failure 400 {object} helpers.APIResponse "code: malformed_token, invalid_signature, ticket_not_found, not_authorized, already_checked_in, validation_error, bad_request"
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Failure 429 {object} helpers.APIResponse "code: rate_limited"
// @Failure 500 {object} helpers.APIResponse "code: storage_unavailable, internal_error"
// @Router /organizers/{organizerID}/qr-code/validate [post]
func (c *TicketValidationController) ValidateForOrganizer(w http.ResponseWriter, r *http.Request) {
	organizerID := strings.TrimSpace(r.PathValue("organizerID"))
	if organizerID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Invalid organizer ID")
		return
	}
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "Authentication required")
		return
	}
	if !p.HasRole(domain.RoleAdmin) && p.OrganizerID != organizerID {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "not allowed to act for this organizer")
		return
	}
	var req ValidateQRCodeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	c.validate(w, r, req, organizerID)
}

func (c *TicketValidationController) validate(w http.ResponseWriter, r *http.Request, req ValidateQRCodeRequest, organizerID string) {
	var (
		snap    *domain.TicketSnapshot
		err     error
		message string
	)
	if req.CheckIn {
		snap, err = c.Service.ValidateAndCheckIn(r.Context(), req.QRCodeData, organizerID)
		message = messageCheckedIn
	} else {
		snap, err = c.Service.Validate(r.Context(), req.QRCodeData)
		// The response carries holder details, so read-only lookups are scoped too.
		if err == nil && !services.Authorize(organizerID, snap) {
			err = domain.ErrNotAuthorized
		}
		message = messageQRValid
	}

	result := domain.NewValidationResult(snap, err)
	if result.Valid {
		helpers.WriteJSONSuccess(w, http.StatusOK, message, newValidateQRCodeData(result.Ticket))
		return
	}
	if _, ok := domain.KindOf(result.Cause); !ok {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", result.Cause)
		helpers.WriteInternalError(w)
		return
	}
	if result.Error == domain.KindStorageUnavailable {
		c.Logger.ErrorContext(r.Context(), "ticket storage unavailable", "path", r.URL.Path, "err", result.Cause)
	} else {
		c.Logger.InfoContext(r.Context(), "qr code rejected", "organizer_id", organizerID, "check_in", req.CheckIn, "reason", string(result.Error))
	}
	helpers.WriteKindError(w, result.Error)
}
