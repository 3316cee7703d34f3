package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeFeatureDisabled    ErrorCode = "COMMON_015"
)

// Rose diagram Error Codes
const (
	ErrCodeParse              ErrorCode = "ROSE_001"
	ErrCodeFormat             ErrorCode = "ROSE_002"
	ErrCodeMeasurementInvalid ErrorCode = "ROSE_003"
	ErrCodeBinWidthInvalid    ErrorCode = "ROSE_004"
	ErrCodePaletteUnsupported ErrorCode = "ROSE_005"
	ErrCodeRenderFailed       ErrorCode = "ROSE_006"
	ErrCodeArchiveFailed      ErrorCode = "ROSE_007"
	ErrCodeEventPublishFailed ErrorCode = "ROSE_008"
)

// Aliases
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")

	CodeParseError      = ErrCodeParse
	CodeFormatError     = ErrCodeFormat
	CodeValidationError = ErrCodeMeasurementInvalid
	CodeCacheError      = ErrCodeCacheError
	CodeStorageError    = ErrCodeArchiveFailed
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusInternalServerError,
	ErrCodeFeatureDisabled:    http.StatusForbidden,

	ErrCodeParse:              http.StatusBadRequest,
	ErrCodeFormat:             http.StatusBadRequest,
	ErrCodeMeasurementInvalid: http.StatusUnprocessableEntity,
	ErrCodeBinWidthInvalid:    http.StatusBadRequest,
	ErrCodePaletteUnsupported: http.StatusBadRequest,
	ErrCodeRenderFailed:       http.StatusInternalServerError,
	ErrCodeArchiveFailed:      http.StatusInternalServerError,
	ErrCodeEventPublishFailed: http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeFeatureDisabled:    "feature disabled",

	ErrCodeParse:              "input is not numeric",
	ErrCodeFormat:             "malformed tabular input",
	ErrCodeMeasurementInvalid: "measurement data failed validation",
	ErrCodeBinWidthInvalid:    "invalid bin width",
	ErrCodePaletteUnsupported: "unsupported palette",
	ErrCodeRenderFailed:       "failed to render diagram",
	ErrCodeArchiveFailed:      "failed to archive diagram",
	ErrCodeEventPublishFailed: "failed to publish diagram event",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
