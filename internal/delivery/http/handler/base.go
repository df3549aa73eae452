package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hospital-management-api/internal/domain/billing"
	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/internal/domain/scheduling"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// errorMapping translates a usecase error into a status code and message.
// An empty message means the error text itself is shown.
type errorMapping struct {
	target  error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{usecase.ErrForbidden, http.StatusForbidden, "Not authorized to access this resource"},
	{usecase.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{usecase.ErrInvalidToken, http.StatusUnauthorized, "Invalid or expired token"},
	{usecase.ErrTokenRevoked, http.StatusUnauthorized, "Token has been revoked"},
	{usecase.ErrAccountInactive, http.StatusUnauthorized, "Account is inactive"},

	{usecase.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{usecase.ErrPatientNotFound, http.StatusNotFound, "Patient not found"},
	{usecase.ErrStaffNotFound, http.StatusNotFound, "Staff not found"},
	{usecase.ErrAppointmentNotFound, http.StatusNotFound, "Appointment not found"},
	{usecase.ErrInvoiceNotFound, http.StatusNotFound, "Invoice not found"},
	{usecase.ErrMedicalRecordNotFound, http.StatusNotFound, "Medical record not found"},
	{usecase.ErrAuditLogNotFound, http.StatusNotFound, "Audit log not found"},

	{usecase.ErrUserAlreadyExists, http.StatusBadRequest, "User already exists"},
	{usecase.ErrSchedulingConflict, http.StatusBadRequest, "There is a scheduling conflict with another appointment"},
	{usecase.ErrInvoiceNotPayable, http.StatusBadRequest, "Invoice is already paid or cancelled"},
	{usecase.ErrStaffHasRecords, http.StatusBadRequest, "Staff member has medical records and cannot be deleted"},
	{usecase.ErrFieldNotAllowed, http.StatusBadRequest, ""},
	{usecase.ErrInvalidDateFormat, http.StatusBadRequest, ""},
	{usecase.ErrInvalidDateRange, http.StatusBadRequest, ""},
	{usecase.ErrDueDateBeforeIssue, http.StatusBadRequest, ""},
	{usecase.ErrRecordAuthorRequired, http.StatusBadRequest, ""},
	{usecase.ErrRoleNotFound, http.StatusBadRequest, ""},

	{scheduling.ErrInvalidClock, http.StatusBadRequest, ""},
	{scheduling.ErrInvalidDuration, http.StatusBadRequest, ""},
	{scheduling.ErrCrossesMidnight, http.StatusBadRequest, ""},

	{billing.ErrNoItems, http.StatusBadRequest, ""},
	{billing.ErrInvalidQuantity, http.StatusBadRequest, ""},
	{billing.ErrNegativeAmount, http.StatusBadRequest, ""},
	{billing.ErrNegativeTotal, http.StatusBadRequest, ""},
	{billing.ErrMissingItemLabel, http.StatusBadRequest, ""},
}

// base holds what every handler needs to read requests and report failures.
type base struct {
	validator *validator.CustomValidator
	log       *logrus.Logger
}

func newBase(validator *validator.CustomValidator, log *logrus.Logger) base {
	return base{validator: validator, log: log}
}

// bind decodes the JSON body into dst and validates it. On failure the
// response has already been written and false is returned.
func (b *base) bind(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body")
		return false
	}
	if err := b.validator.Validate(dst); err != nil {
		response.ValidationError(w, b.validator.FormatValidationErrors(err))
		return false
	}
	return true
}

// principal returns the caller set by the auth middleware.
func (b *base) principal(w http.ResponseWriter, r *http.Request) (*policy.Principal, bool) {
	p, ok := policy.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return nil, false
	}
	return p, true
}

// fail writes the response for err. Anything not in errorMappings is logged,
// reported to Sentry and answered with a generic 500.
func (b *base) fail(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			message := m.message
			if message == "" {
				message = capitalize(err.Error())
			}
			response.Error(w, m.status, message, nil)
			return
		}
	}

	b.log.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Errorf("Unhandled error: %+v", err)

	if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
		hub.CaptureException(err)
	} else {
		sentry.CaptureException(err)
	}

	response.InternalServerError(w, "")
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, true
	}
	t, err := scheduling.ParseDate(value)
	if err != nil {
		response.BadRequest(w, "Invalid "+name+", use YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return fallback
	}
	return n
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
