package errors

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "COMMON_001", ErrCodeInternal.String())
	assert.Equal(t, "ROSE_003", ErrCodeMeasurementInvalid.String())
}

func TestHTTPStatusForCode(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeInternal, 500},
		{ErrCodeBadRequest, 400},
		{ErrCodeNotFound, 404},
		{ErrCodeParse, 400},
		{ErrCodeFormat, 400},
		{ErrCodeMeasurementInvalid, 422},
		{ErrCodeBinWidthInvalid, 400},
		{ErrCodePaletteUnsupported, 400},
		{ErrCodeRenderFailed, 500},
		{ErrorCode("UNKNOWN"), 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, HTTPStatusForCode(tt.code), string(tt.code))
	}
}

func TestDefaultMessageForCode(t *testing.T) {
	assert.Equal(t, "internal server error", DefaultMessageForCode(ErrCodeInternal))
	assert.Equal(t, "unsupported palette", DefaultMessageForCode(ErrCodePaletteUnsupported))
	assert.Equal(t, "unknown error", DefaultMessageForCode(ErrorCode("UNKNOWN")))
}

func TestIsClientServerError(t *testing.T) {
	assert.True(t, IsClientError(ErrCodeMeasurementInvalid))
	assert.False(t, IsClientError(ErrCodeRenderFailed))
	assert.True(t, IsServerError(ErrCodeRenderFailed))
	assert.False(t, IsServerError(ErrCodeParse))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "COMMON", ModuleForCode(ErrCodeInternal))
	assert.Equal(t, "ROSE", ModuleForCode(ErrCodeParse))
	assert.Equal(t, "UNKNOWN", ModuleForCode(ErrorCode("")))
}

func TestErrorCodeMappings_Completeness(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z]+_\d{3}$`)
	allCodes := []ErrorCode{
		ErrCodeInternal, ErrCodeBadRequest, ErrCodeNotFound, ErrCodeTooManyRequests,
		ErrCodeServiceUnavailable, ErrCodeTimeout, ErrCodeValidation, ErrCodeSerialization,
		ErrCodeCacheError, ErrCodeExternalService, ErrCodeFeatureDisabled,
		ErrCodeParse, ErrCodeFormat, ErrCodeMeasurementInvalid, ErrCodeBinWidthInvalid,
		ErrCodePaletteUnsupported, ErrCodeRenderFailed, ErrCodeArchiveFailed,
		ErrCodeEventPublishFailed,
	}
	for _, code := range allCodes {
		assert.Regexp(t, re, string(code))
		_, hasStatus := ErrorCodeHTTPStatus[code]
		_, hasMessage := ErrorCodeMessage[code]
		assert.True(t, hasStatus, "missing status for %s", code)
		assert.True(t, hasMessage, "missing message for %s", code)
	}
}

//Personal.AI order the ending
