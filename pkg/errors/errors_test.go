package errors_test

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/GeoRose/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// TestNew
// ─────────────────────────────────────────────────────────────────────────────

func TestNew_SetsCodeAndMessage(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.CodeInvalidParam, "bin width must be within [1, 90]")

	require.NotNil(t, ae)
	assert.Equal(t, errors.CodeInvalidParam, ae.Code)
	assert.Equal(t, "bin width must be within [1, 90]", ae.Message)
	assert.Empty(t, ae.Detail)
	assert.Nil(t, ae.Cause)
	assert.NotEmpty(t, ae.Stack, "stack should be captured at creation")
}

// ─────────────────────────────────────────────────────────────────────────────
// TestWrap
// ─────────────────────────────────────────────────────────────────────────────

func TestWrap_NilReturnsNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, errors.Wrap(nil, errors.CodeInternal, "ignored"))
}

func TestWrap_UnwrapReturnsCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("unexpected EOF")
	ae := errors.Wrap(cause, errors.CodeFormatError, "failed to read CSV")

	assert.Equal(t, cause, stderrors.Unwrap(ae))
	assert.Equal(t, errors.CodeFormatError, ae.Code)
}

func TestWrap_PreservesOriginalCodeWhenCodeUnknown(t *testing.T) {
	t.Parallel()

	inner := errors.NewParseError("abc", 3)
	outer := errors.Wrap(inner, errors.CodeUnknown, "adding context")

	require.NotNil(t, outer)
	assert.Equal(t, errors.ErrCodeParse, outer.Code)
}

func TestWrap_OverridesCodeWhenExplicit(t *testing.T) {
	t.Parallel()

	inner := errors.NewParseError("abc", 3)
	outer := errors.Wrap(inner, errors.CodeInternal, "unexpected state")

	assert.Equal(t, errors.CodeInternal, outer.Code)
	assert.True(t, errors.IsCode(outer, errors.ErrCodeParse), "inner code stays visible in the chain")
}

// ─────────────────────────────────────────────────────────────────────────────
// TestError_Method
// ─────────────────────────────────────────────────────────────────────────────

func TestError_FormatWithoutDetail(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.ErrCodeRenderFailed, "encode png")
	assert.Equal(t, "[ROSE_006] encode png", ae.Error())
}

func TestError_FormatWithDetail(t *testing.T) {
	t.Parallel()

	ae := errors.NewFormatError("missing column").WithDetail("Strike/Dip")
	s := ae.Error()

	assert.True(t, strings.HasPrefix(s, "[ROSE_002]"))
	assert.Contains(t, s, "missing column: Strike/Dip")
}

func TestWithDetail_DoesNotMutateOriginal(t *testing.T) {
	t.Parallel()

	original := errors.NotFound("artifact missing")
	detailed := original.WithDetail("id=42")

	assert.Empty(t, original.Detail)
	assert.Equal(t, "id=42", detailed.Detail)
	assert.Equal(t, original.Code, detailed.Code)
}

func TestWithDetail_NilReceiverReturnsNil(t *testing.T) {
	t.Parallel()

	var ae *errors.AppError
	assert.Nil(t, ae.WithDetail("x"))
	assert.Nil(t, ae.WithCause(stderrors.New("x")))
}

func TestWithCause_AttachesCause(t *testing.T) {
	t.Parallel()

	root := stderrors.New("connection refused")
	ae := errors.New(errors.CodeCacheError, "cache unavailable").WithCause(root)

	assert.Equal(t, root, stderrors.Unwrap(ae))
}

// ─────────────────────────────────────────────────────────────────────────────
// Rose constructors
// ─────────────────────────────────────────────────────────────────────────────

func TestNewParseError_NamesTokenAndPosition(t *testing.T) {
	t.Parallel()

	ae := errors.NewParseError("12x", 4)

	assert.Equal(t, errors.ErrCodeParse, ae.Code)
	assert.Contains(t, ae.Message, `"12x"`)
	assert.Contains(t, ae.Message, "position 4")
	assert.Equal(t, 400, errors.HTTPStatusForCode(ae.Code))
}

func TestNewValidationError_KeepsEveryMessage(t *testing.T) {
	t.Parallel()

	msgs := []string{
		"strike data requires at least 25 values, got 3",
		"dip data must not be empty",
	}
	ae := errors.NewValidationError(msgs)

	assert.Equal(t, errors.CodeValidationError, ae.Code)
	assert.Equal(t, msgs[0], ae.Message)
	assert.Equal(t, msgs, ae.Details)
	assert.Equal(t, msgs, ae.Messages())
	assert.Equal(t, 422, errors.HTTPStatusForCode(ae.Code))

	// Details is a copy.
	msgs[0] = "mutated"
	assert.NotEqual(t, "mutated", ae.Details[0])
}

func TestNewValidationError_EmptyUsesDefaultMessage(t *testing.T) {
	t.Parallel()

	ae := errors.NewValidationError(nil)
	assert.Equal(t, "measurement data failed validation", ae.Message)
	assert.Equal(t, []string{"measurement data failed validation"}, ae.Messages())
}

// ─────────────────────────────────────────────────────────────────────────────
// Chain inspection
// ─────────────────────────────────────────────────────────────────────────────

func TestGetCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(fmt.Errorf("plain")))
	assert.Equal(t, errors.ErrCodeFormat,
		errors.GetCode(fmt.Errorf("ctx: %w", errors.NewFormatError("bad"))))
}

func TestIsValidation(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"parse", errors.NewParseError("x", 1), true},
		{"format", errors.NewFormatError("bad"), true},
		{"validation", errors.NewValidationError([]string{"m"}), true},
		{"bin width", errors.New(errors.ErrCodeBinWidthInvalid, "bad bin"), true},
		{"palette", errors.New(errors.ErrCodePaletteUnsupported, "bad palette"), true},
		{"render", errors.New(errors.ErrCodeRenderFailed, "boom"), false},
		{"plain", fmt.Errorf("plain"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, errors.IsValidation(tc.err))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.IsNotFound(errors.NotFound("gone")))
	assert.True(t, errors.IsNotFound(errors.Wrap(errors.NotFound("gone"), errors.CodeInternal, "wrapped")))
	assert.False(t, errors.IsNotFound(errors.Internal("boom")))
	assert.False(t, errors.IsNotFound(nil))
}

func TestMessagesOf(t *testing.T) {
	t.Parallel()

	assert.Nil(t, errors.MessagesOf(nil))
	assert.Equal(t, []string{"plain"}, errors.MessagesOf(fmt.Errorf("plain")))
	assert.Equal(t, []string{"a", "b"},
		errors.MessagesOf(fmt.Errorf("wrapped: %w", errors.NewValidationError([]string{"a", "b"}))))
}

//Personal.AI order the ending
