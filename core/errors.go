// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

// Error codes surfaced to callers.
const (
	CodeInvalidInput        Code = "INVALID_INPUT"
	CodeNotFound            Code = "NOT_FOUND"
	CodeSelfVoteForbidden   Code = "SELF_VOTE_FORBIDDEN"
	CodeAlreadyVoted        Code = "ALREADY_VOTED"
	CodeUnauthenticated     Code = "UNAUTHENTICATED"
	CodeProviderUnavailable Code = "PROVIDER_UNAVAILABLE"
)

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithDetails returns a copy of the error carrying details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// Sentinels for errors.Is checks. Any *Error with the same code matches.
var (
	ErrInvalidInput        = &Error{Code: CodeInvalidInput, Message: "invalid input"}
	ErrNotFound            = &Error{Code: CodeNotFound, Message: "not found"}
	ErrSelfVoteForbidden   = &Error{Code: CodeSelfVoteForbidden, Message: "cannot vote on your own keyword"}
	ErrAlreadyVoted        = &Error{Code: CodeAlreadyVoted, Message: "already voted on this keyword"}
	ErrUnauthenticated     = &Error{Code: CodeUnauthenticated, Message: "authentication required"}
	ErrProviderUnavailable = &Error{Code: CodeProviderUnavailable, Message: "embedding provider unavailable"}
)

// InvalidInput creates a validation error.
func InvalidInput(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a missing book or keyword error.
func NotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// SelfVoteForbidden creates the error returned when a creator votes on their keyword.
func SelfVoteForbidden(keyword string) *Error {
	return &Error{Code: CodeSelfVoteForbidden, Message: fmt.Sprintf("cannot vote on your own keyword %q", keyword)}
}

// AlreadyVoted creates the error returned for a second vote on the same keyword.
func AlreadyVoted(keyword string) *Error {
	return &Error{Code: CodeAlreadyVoted, Message: fmt.Sprintf("already voted on keyword %q", keyword)}
}

// Unauthenticated creates the error returned when an operation needs an identity.
func Unauthenticated(message string) *Error {
	return &Error{Code: CodeUnauthenticated, Message: message}
}

// ProviderUnavailable wraps an embedding provider failure.
func ProviderUnavailable(message string, cause error) *Error {
	return &Error{Code: CodeProviderUnavailable, Message: message, cause: cause}
}

// CodeOf returns the code of a domain error, or "" for other errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
