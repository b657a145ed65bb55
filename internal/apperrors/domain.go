package apperrors

import "net/http"

// Factories for wrapping repository errors.

func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrStorageFailed(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "storage", "Resume upload failed. Please try again.", http.StatusBadGateway)
}

// Predeclared domain errors.

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

// ErrUserNotVerified deliberately differs from the generic credentials
// message: inactive-but-existing accounts are told to verify first. This
// matches observed behavior even though it leaks account existence.
var ErrUserNotVerified = New(
	CodeUserNotVerified,
	"auth",
	"Please verify your email before login",
	http.StatusForbidden,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusBadRequest,
)

var ErrWeakPassword = New(
	CodeWeakPassword,
	"auth",
	"Password does not meet the strength policy",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeEmailAlreadyExists,
	"auth",
	"Email already registered",
	http.StatusConflict,
)

var ErrInviteInvalid = New(
	CodeInvalidToken,
	"invite",
	"Invalid or expired invite link",
	http.StatusBadRequest,
)

var ErrInvitePending = New(
	CodeConflict,
	"invite",
	"An active invite already exists for this email",
	http.StatusConflict,
)

var ErrAlreadyApplied = New(
	CodeAlreadyApplied,
	"application",
	"You have already applied for this job",
	http.StatusBadRequest,
)

var ErrInvalidAppStatus = New(
	CodeInvalidStatus,
	"application",
	"Invalid status",
	http.StatusBadRequest,
)

var ErrJobForbidden = New(
	CodeForbidden,
	"job",
	"You are not allowed to modify this job",
	http.StatusForbidden,
)

var ErrAdminReadOnly = New(
	CodeForbidden,
	"job",
	"Admins are not allowed to edit jobs",
	http.StatusForbidden,
)
