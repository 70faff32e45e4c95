// Package apperr defines the coded error taxonomy for the digest worker.
package apperr

import (
	"errors"
	"fmt"
)

// Error codes
const (
	// Fatal: the run aborts with a non-zero exit.
	CodeConfigError = "CONFIG_ERROR" // missing/invalid startup configuration
	CodeAuthFailed  = "AUTH_FAILED"  // token exchange failed
	CodeFetchFailed = "FETCH_FAILED" // mailbox listing failed

	// Non-fatal: logged, processing continues.
	CodeClassifyFailed = "CLASSIFY_FAILED" // one email degraded to unclassified
	CodeSendFailed     = "SEND_FAILED"     // report dispatch failed
)

// AppError is a structured application error with a stable code.
type AppError struct {
	Code    string
	Message string
	Err     error
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

func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Constructors matching the taxonomy.

func ConfigError(message string) *AppError {
	return New(CodeConfigError, message)
}

func AuthFailed(err error) *AppError {
	return Wrap(err, CodeAuthFailed, "token exchange failed")
}

func FetchFailed(err error) *AppError {
	return Wrap(err, CodeFetchFailed, "mailbox listing failed")
}

func ClassifyFailed(emailID string, err error) *AppError {
	return Wrap(err, CodeClassifyFailed, fmt.Sprintf("classification failed for email %s", emailID))
}

func SendFailed(err error) *AppError {
	return Wrap(err, CodeSendFailed, "summary dispatch failed")
}

// Fatal reports whether the error must terminate the run.
func Fatal(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return true // unexpected errors terminate the run
	}
	switch appErr.Code {
	case CodeConfigError, CodeAuthFailed, CodeFetchFailed:
		return true
	}
	return false
}

// Code extracts the error code, or empty for non-AppErrors.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
