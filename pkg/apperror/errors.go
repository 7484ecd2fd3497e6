package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error by how the delivery layer must react to it.
type Kind string

const (
	// KindNotApplicable marks expected outcomes: nothing to do for this message.
	KindNotApplicable Kind = "not_applicable"
	// KindTransient marks storage or connectivity failures; the message is redelivered.
	KindTransient Kind = "transient"
	// KindGeneration marks wallet-side failures; reported, never redelivered.
	KindGeneration Kind = "generation"
	// KindInternal covers everything else.
	KindInternal Kind = "internal"
)

// AppError is a structured error carrying its classification and HTTP mapping.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	Kind       Kind   `json:"-"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, kind Kind, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Kind:       kind,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, kind Kind, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Kind:       kind,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// KindOf returns the kind of the outermost AppError in err's chain.
// Errors that carry no AppError are internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsTransient reports whether err must cross the worker boundary so the
// message is redelivered.
func IsTransient(err error) bool {
	return err != nil && KindOf(err) == KindTransient
}

// ---- Not applicable (ADDR_00x) ----

func ErrNotFound(entity string) *AppError {
	return New("ADDR_001", fmt.Sprintf("%s not found", entity), KindNotApplicable, http.StatusNotFound)
}

func ErrFiatCurrency(currency string) *AppError {
	return New("ADDR_002", fmt.Sprintf("currency %s does not use deposit addresses", currency), KindNotApplicable, http.StatusUnprocessableEntity)
}

func ErrNoDepositWallet(currency string) *AppError {
	return New("ADDR_003", fmt.Sprintf("deposit wallet for %s doesn't exist", currency), KindNotApplicable, http.StatusUnprocessableEntity)
}

func ErrUnsupportedGateway(gateway string) *AppError {
	return New("ADDR_004", fmt.Sprintf("wallet gateway %q is not supported", gateway), KindNotApplicable, http.StatusUnprocessableEntity)
}

func ErrGatewayMisconfigured(err error) *AppError {
	return Wrap("ADDR_005", "Wallet gateway misconfigured", KindNotApplicable, http.StatusUnprocessableEntity, err)
}

// ---- Generation (ADDR_01x) ----

func ErrWalletFailure(err error) *AppError {
	return Wrap("ADDR_010", "Wallet service failed to create address", KindGeneration, http.StatusBadGateway, err)
}

func ErrWalletUnavailable(err error) *AppError {
	return Wrap("ADDR_011", "Wallet service temporarily unavailable", KindGeneration, http.StatusServiceUnavailable, err)
}

func ErrWalletTimeout(err error) *AppError {
	return Wrap("ADDR_012", "Wallet service timed out", KindGeneration, http.StatusGatewayTimeout, err)
}

func ErrAddressConflict() *AppError {
	return New("ADDR_013", "Payment address already assigned", KindInternal, http.StatusConflict)
}

// ---- Validation (VAL) ----

func Validation(message string) *AppError {
	return New("VAL_001", message, KindNotApplicable, http.StatusBadRequest)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", KindNotApplicable, http.StatusUnauthorized)
}

func ErrMissingAuth() *AppError {
	return New("AUTH_002", "Missing authorization header", KindNotApplicable, http.StatusUnauthorized)
}

// ---- Rate limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", KindNotApplicable, http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrStoreUnavailable(err error) *AppError {
	return Wrap("SYS_001", "Record store unavailable", KindTransient, http.StatusServiceUnavailable, err)
}

func ErrBrokerUnavailable(err error) *AppError {
	return Wrap("SYS_002", "Message broker unavailable", KindTransient, http.StatusServiceUnavailable, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", KindInternal, http.StatusInternalServerError, err)
}

func ErrRetrySchedule(err error) *AppError {
	return Wrap("SYS_004", "Failed to schedule address generation retry", KindInternal, http.StatusInternalServerError, err)
}

func ErrNotification(err error) *AppError {
	return Wrap("SYS_005", "Failed to publish deposit address notification", KindInternal, http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_000 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_000", "Internal server error", KindInternal, http.StatusInternalServerError, err)
}
