package core

// error_messages.go maps technical errors to messages a user can act on.
// Codes are stable so a user can quote one to support.
//
//	DB001   connection refused          DB005   deadlock
//	DB002   connection reset            DB006   invalid input syntax
//	DB003   closed pool                 DB007   timeout
//	DB004   too many clients
//
//	VAL001  mixed or non-comparable element types
//	VAL002  unknown method
//	VAL003  no header row
//	VAL004  column not found
//	VAL005  invalid analysis id
//
//	FILE001 file too large              FILE004 no file provided
//	FILE002 invalid csv                 FILE005 empty file
//	FILE003 encoding error
//
//	ANL001  too many concurrent analyses
//	ANL002  analysis not found
//	ANL003  request cancelled
//	ANL004  request timed out
//
//	RATE001 rate limited
//	ERR000  anything else; check the logs for the technical error
//
// Patterns match case-insensitively with strings.Contains and the first match
// wins, so specific patterns precede general ones ("context deadline
// exceeded" before "timeout").

import (
	"fmt"
	"strings"
)

// UserMessage is the user-facing side of an error.
type UserMessage struct {
	Message string // what happened
	Action  string // what to do about it
	Code    string // support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgMixedTypes = UserMessage{
		Message: "Values must all have the same type",
		Action:  "Send only strings, only numbers or only booleans; use null for missing values",
		Code:    "VAL001",
	}
	msgNotFound = UserMessage{
		Message: "Analysis not found",
		Action:  "It may have been deleted or expired; run the analysis again",
		Code:    "ANL002",
	}
)

var errorPatterns = []errorPattern{
	// Estimator input
	{"mixed types", msgMixedTypes},
	{"non-comparable type", msgMixedTypes},
	{"unknown method", UserMessage{
		Message: "Unknown estimation method",
		Action:  "Use one of: first, all, single",
		Code:    "VAL002",
	}},
	{"no header row", UserMessage{
		Message: "The file has no header row",
		Action:  "Add a first row naming each column",
		Code:    "VAL003",
	}},
	{"column not found", UserMessage{
		Message: "A requested column is not in the file",
		Action:  "Check the column names against the file's header row",
		Code:    "VAL004",
	}},
	{"invalid parameter", UserMessage{
		Message: "A request parameter is invalid",
		Action:  "Check the request parameters and try again",
		Code:    "VAL006",
	}},
	{"invalid analysis id", UserMessage{
		Message: "The analysis id is malformed",
		Action:  "Use the id returned when the analysis was created",
		Code:    "VAL005",
	}},

	// Files
	{"file too large", UserMessage{
		Message: "File exceeds the maximum size limit",
		Action:  "Split the file or analyze fewer columns",
		Code:    "FILE001",
	}},
	{"invalid csv", UserMessage{
		Message: "File is not a valid CSV",
		Action:  "Ensure the file is comma-separated with balanced quotes",
		Code:    "FILE002",
	}},
	{"encoding error", UserMessage{
		Message: "File contains invalid characters",
		Action:  "Save the file as UTF-8",
		Code:    "FILE003",
	}},
	{"no file provided", UserMessage{
		Message: "No file was selected",
		Action:  "Please select a CSV file",
		Code:    "FILE004",
	}},
	{"empty file", UserMessage{
		Message: "The uploaded file is empty",
		Action:  "Please upload a CSV file with a header and data rows",
		Code:    "FILE005",
	}},

	// Analysis lifecycle
	{"too many concurrent analyses", UserMessage{
		Message: "The system is busy with other analyses",
		Action:  "Please wait a moment and try again",
		Code:    "ANL001",
	}},
	{"analysis not found", msgNotFound},
	{"audit entry not found", UserMessage{
		Message: "Audit entry not found",
		Action:  "It may have expired under the retention policy",
		Code:    "ANL005",
	}},
	{"no rows in result set", msgNotFound},
	{"context canceled", UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "ANL003",
	}},
	{"context deadline exceeded", UserMessage{
		Message: "Request timed out",
		Action:  "Try a smaller file or select fewer columns",
		Code:    "ANL004",
	}},

	// Database
	{"connection refused", UserMessage{
		Message: "Unable to connect to database",
		Action:  "Please try again in a few moments",
		Code:    "DB001",
	}},
	{"connection reset", UserMessage{
		Message: "Database connection was interrupted",
		Action:  "Please try again",
		Code:    "DB002",
	}},
	{"closed pool", UserMessage{
		Message: "The server is shutting down",
		Action:  "Please try again shortly",
		Code:    "DB003",
	}},
	{"too many clients", UserMessage{
		Message: "The database is at its connection limit",
		Action:  "Please try again in a few moments",
		Code:    "DB004",
	}},
	{"deadlock", UserMessage{
		Message: "Database was busy with conflicting operations",
		Action:  "Please try again",
		Code:    "DB005",
	}},
	{"invalid input syntax", UserMessage{
		Message: "The database rejected a value",
		Action:  "Check the request parameters",
		Code:    "DB006",
	}},
	{"timeout", UserMessage{
		Message: "Operation timed out",
		Action:  "Please try again later",
		Code:    "DB007",
	}},

	{"rate limit", UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError returns the message of the first pattern contained in err's text,
// or the ERR000 fallback. A nil error maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	text := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(text, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a specific pattern.
func IsUserFacing(err error) bool {
	return err != nil && MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error (for logs) with its user message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string { return e.User.Message }

func (e *UserError) Unwrap() error { return e.Technical }

// NewUserError maps err. Returns nil for a nil error.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{Technical: err, User: MapError(err)}
}
