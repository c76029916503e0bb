package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Validation errors
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeMissingField  = "MISSING_FIELD"
	ErrCodeInvalidFormat = "INVALID_FORMAT"

	// Tenancy errors
	ErrCodeMissingTeamContext = "MISSING_TEAM_CONTEXT"

	// Resource errors
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONFLICT"

	// Business rule violations (422)
	RuleCapacityExceeded      = "CAPACITY_EXCEEDED"
	RuleDailyCapacityExceeded = "DAILY_CAPACITY_EXCEEDED"
	RuleSkillMismatch         = "RESOURCE_SKILL_MISMATCH"
	RuleInactiveResource      = "INACTIVE_RESOURCE"
	RuleCapacityBelowAssigned = "CAPACITY_BELOW_ASSIGNED"

	// Service errors
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RuleError is a business rule violation. It carries a machine-readable rule
// tag plus the figures the caller needs to correct their input (resource,
// period, requested and available hours).
type RuleError struct {
	Rule    string
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *RuleError) Error() string {
	return e.Message
}

// NewRuleError creates a RuleError for the given rule tag
func NewRuleError(rule, message string, details map[string]interface{}) *RuleError {
	return &RuleError{
		Rule:    rule,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Helper functions for common error responses

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// BadRequestWithDetails sends a 400 response with details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, message, details))
}

// MissingTeamContext sends a 400 response for requests without a team identity
func MissingTeamContext(c *gin.Context) {
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeMissingTeamContext, "X-User-Team header is required"))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeAlreadyExists, message))
}

// UnprocessableEntity sends a 422 response for a business rule violation
func UnprocessableEntity(c *gin.Context, err *RuleError) {
	RespondWithError(c, http.StatusUnprocessableEntity, &APIError{
		Code:    err.Rule,
		Message: err.Message,
		Details: err.Details,
	})
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}
