package domain

import "net/http"

type ErrorCode string

const (
	ErrorCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrorCodeBadRequest       ErrorCode = "BAD_REQUEST"
	ErrorCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	ErrorCodeConflict         ErrorCode = "CONFLICT"
)

// DomainError is an error meant to be shown to the client as is.
type DomainError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
}

func (e *DomainError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func NotFound(msg string) *DomainError {
	return &DomainError{Code: ErrorCodeNotFound, Message: msg, HTTPStatus: http.StatusNotFound}
}

func BadRequest(msg string) *DomainError {
	return &DomainError{Code: ErrorCodeBadRequest, Message: msg, HTTPStatus: http.StatusBadRequest}
}

func PermissionDenied(msg string) *DomainError {
	return &DomainError{Code: ErrorCodePermissionDenied, Message: msg, HTTPStatus: http.StatusForbidden}
}

func Conflict(msg string) *DomainError {
	return &DomainError{Code: ErrorCodeConflict, Message: msg, HTTPStatus: http.StatusConflict}
}
