// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperr defines the typed business errors that cross the service
// boundary. Cache-tier failures never use this package; they are logged
// and absorbed where they occur.
package apperr

import (
	"errors"
	"fmt"
)

// Code classifies an Error for transport mapping.
type Code string

const (
	CodeNotFound     Code = "not_found"
	CodeDuplicate    Code = "duplicate"
	CodeInvalid      Code = "invalid_operation"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
)

// Error is a business error with a caller-safe message.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

// NotFound reports an absent entity, or one hidden from public callers.
// Inactive and missing are deliberately indistinguishable in the message.
func NotFound(resource string) *Error {
	return &Error{Code: CodeNotFound, Message: resource + " not found"}
}

// NotFoundf reports an absent entity identified by a field value.
func NotFoundf(resource, field string, value any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s not found with %s: %v", resource, field, value)}
}

// Duplicate reports a uniqueness violation on create or rename.
func Duplicate(msg string) *Error {
	return &Error{Code: CodeDuplicate, Message: msg}
}

// Invalid reports a structurally disallowed mutation, such as cyclic
// reparenting or deleting a non-empty category.
func Invalid(msg string) *Error {
	return &Error{Code: CodeInvalid, Message: msg}
}

// Unauthorized reports a missing or invalid credential.
func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

// Forbidden reports an authenticated caller lacking permission.
func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// CodeOf extracts the Code from err, or "" if err is not an apperr.Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsNotFound reports whether err is a not-found business error.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

// IsDuplicate reports whether err is a uniqueness violation.
func IsDuplicate(err error) bool { return CodeOf(err) == CodeDuplicate }

// IsInvalid reports whether err is a disallowed mutation.
func IsInvalid(err error) bool { return CodeOf(err) == CodeInvalid }
