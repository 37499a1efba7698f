// Package core provides the vacancy statistics engine.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Users quote the code; support staff look it up here.
//
// # Input Errors (IN001-IN099)
//
// The file cannot be analyzed at all:
//
//	IN001 - Empty input: The file has no data rows after the header
//	        Action: Upload a CSV file with at least one posting
//	        Sentinel: ErrEmptyInput
//
//	IN002 - No data: Every row was discarded as incomplete
//	        Action: Check that rows have a value in every column
//	        Sentinel: ErrNoData
//
//	IN003 - Missing column: A required column is missing from the header
//	        Action: Include name, salary_from, salary_to, salary_currency, area_name, published_at
//	        Sentinel: ErrMissingColumns
//
// # Validation Errors (VAL001-VAL099)
//
// A complete row holds a value the engine cannot use. The whole run aborts:
//
//	VAL001 - Invalid date: Publication date is not ISO-8601 with offset
//	         Action: Use 2022-03-01T00:00:00+0300
//	         Sentinel: ErrMalformedDate
//
//	VAL002 - Invalid number: Salary bound is not a number
//	         Action: Use plain decimal numbers for salary_from and salary_to
//	         Sentinel: ErrMalformedNumber
//
//	VAL003 - Unknown currency: Currency code is outside the supported list
//	         Action: Use one of AZN, BYR, EUR, GEL, KGS, KZT, RUR, UAH, USD, UZS
//	         Sentinel: ErrUnknownCurrency
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the maximum upload size
//	          Patterns: "file too large", "request body too large"
//
//	FILE002 - Invalid CSV: File is not a valid CSV
//	          Sentinel: ErrInvalidCSV
//
//	FILE003 - No file: No file was provided
//	          Patterns: "no file provided"
//
// # Run Errors (RUN001-RUN099)
//
//	RUN001 - System busy: Too many analyses in progress
//	         Sentinel: ErrTooManyAnalyses
//
//	RUN002 - Request cancelled: Request was cancelled
//	         Patterns: "context canceled"
//
//	RUN003 - Request timeout: Request timed out
//	         Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Rate limited: Too many requests
//	          Patterns: "rate limit"
//
// # HTTP Errors (HTTP001)
//
//	HTTP001 - Not found: The requested page does not exist
//	          Patterns: "page not found"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the logs for the technical error.
//
// # Matching
//
// Sentinels are matched with errors.Is first, in table order. Errors that
// cross a process or library boundary (and lose their identity) are then
// matched case-insensitively by message pattern.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorRule maps a sentinel or a message pattern to a user message.
type errorRule struct {
	target  error
	pattern string
	msg     UserMessage
}

var errorRules = []errorRule{
	// =========================================================================
	// Input Errors (IN001-IN003)
	// =========================================================================
	{
		target:  ErrEmptyInput,
		pattern: "empty file",
		msg: UserMessage{
			Message: "The file has no data rows",
			Action:  "Upload a CSV file with at least one posting",
			Code:    "IN001",
		},
	},
	{
		target:  ErrNoData,
		pattern: "no valid records",
		msg: UserMessage{
			Message: "No complete postings were found",
			Action:  "Check that rows have a value in every column",
			Code:    "IN002",
		},
	},
	{
		target:  ErrMissingColumns,
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column is missing from CSV",
			Action:  "Include name, salary_from, salary_to, salary_currency, area_name, published_at",
			Code:    "IN003",
		},
	},

	// =========================================================================
	// Validation Errors (VAL001-VAL003)
	// =========================================================================
	{
		target:  ErrMalformedDate,
		pattern: "invalid date",
		msg: UserMessage{
			Message: "Invalid publication date detected",
			Action:  "Use ISO-8601 with offset, e.g. 2022-03-01T00:00:00+0300",
			Code:    "VAL001",
		},
	},
	{
		target:  ErrMalformedNumber,
		pattern: "invalid number",
		msg: UserMessage{
			Message: "Invalid salary number detected",
			Action:  "Use plain decimal numbers for salary_from and salary_to",
			Code:    "VAL002",
		},
	},
	{
		target:  ErrUnknownCurrency,
		pattern: "unknown currency",
		msg: UserMessage{
			Message: "Unsupported salary currency",
			Action:  "Use one of AZN, BYR, EUR, GEL, KGS, KZT, RUR, UAH, USD, UZS",
			Code:    "VAL003",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE003)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		target:  ErrInvalidCSV,
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure file is comma-separated with consistent quoting",
			Code:    "FILE002",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to analyze",
			Code:    "FILE003",
		},
	},

	// =========================================================================
	// Run Errors (RUN001-RUN003)
	// =========================================================================
	{
		target:  ErrTooManyAnalyses,
		pattern: "too many concurrent analyses",
		msg: UserMessage{
			Message: "System is busy processing other files",
			Action:  "Please wait a moment and try again",
			Code:    "RUN001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "RUN002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "RUN003",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},

	// =========================================================================
	// HTTP Errors (HTTP001)
	// =========================================================================
	{
		pattern: "page not found",
		msg: UserMessage{
			Message: "Page not found",
			Action:  "Check the address or start from the upload form",
			Code:    "HTTP001",
		},
	},
}

// defaultMessage is returned when no rule matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Sentinel matches take precedence over message patterns.
//
// Example:
//
//	msg := MapError(&CurrencyError{Code: "XYZ"})
//	// msg.Code == "VAL003"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, rule := range errorRules {
		if rule.target != nil && errors.Is(err, rule.target) {
			return rule.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, rule := range errorRules {
		if rule.pattern != "" && strings.Contains(errStr, rule.pattern) {
			return rule.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
