package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{
			name:     "load error type",
			errType:  ErrTypeLoad,
			expected: "LOAD",
		},
		{
			name:     "periodicity error type",
			errType:  ErrTypePeriodicity,
			expected: "PERIODICITY",
		},
		{
			name:     "parsing error type",
			errType:  ErrTypeParsing,
			expected: "PARSING",
		},
		{
			name:     "regression error type",
			errType:  ErrTypeRegression,
			expected: "REGRESSION",
		},
		{
			name:     "storage error type",
			errType:  ErrTypeStorage,
			expected: "STORAGE",
		},
		{
			name:     "validation error type",
			errType:  ErrTypeValidation,
			expected: "VALIDATION",
		},
		{
			name:     "not found error type",
			errType:  ErrTypeNotFound,
			expected: "NOT_FOUND",
		},
		{
			name:     "config error type",
			errType:  ErrTypeConfig,
			expected: "CONFIG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypePeriodicity,
				Message: "date spacing fits neither band",
				Cause:   nil,
			},
			wantMessage: "[PERIODICITY] date spacing fits neither band",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeLoad,
				Message: "NavLoader.LoadFund failed",
				Cause:   fmt.Errorf("open nav.csv: no such file"),
			},
			wantMessage: "[LOAD] NavLoader.LoadFund failed: open nav.csv: no such file",
		},
		{
			name: "error with empty message",
			appError: &AppError{
				Type:    ErrTypeValidation,
				Message: "",
				Cause:   nil,
			},
			wantMessage: "[VALIDATION] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appError.Error()
			assert.Equal(t, tt.wantMessage, got)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")

	wrapped := NewAppError(ErrTypeLoad, "load failed", cause)
	assert.Equal(t, cause, wrapped.Unwrap())
	assert.True(t, errors.Is(wrapped, cause))

	bare := NewAppError(ErrTypeConfig, "config failed", nil)
	assert.Nil(t, bare.Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	err := NewAppError(ErrTypeParsing, "cannot parse cell", nil).
		WithContext("row", 14).
		WithContext("column", "NAV")

	assert.Equal(t, 14, err.Context["row"])
	assert.Equal(t, "NAV", err.Context["column"])

	// context on a zero-value error allocates the map lazily
	var zero AppError
	zero.WithContext("key", "value")
	assert.Equal(t, "value", zero.Context["key"])
}

func TestNewLoadError(t *testing.T) {
	tests := []struct {
		name        string
		loader      string
		op          string
		cause       error
		args        []interface{}
		wantMessage string
	}{
		{
			name:        "without arguments",
			loader:      "NavLoader",
			op:          "LoadFund",
			cause:       errors.New("boom"),
			wantMessage: "[LOAD] NavLoader.LoadFund failed: boom",
		},
		{
			name:        "with arguments",
			loader:      "FactorLoader",
			op:          "LoadFactorTable",
			cause:       errors.New("sheet not found"),
			args:        []interface{}{"factors.xlsx", "Global"},
			wantMessage: "[LOAD] FactorLoader.LoadFactorTable failed with arguments [factors.xlsx Global]: sheet not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewLoadError(tt.loader, tt.op, tt.cause, tt.args...)
			require.NotNil(t, err)
			assert.Equal(t, ErrTypeLoad, err.Type)
			assert.Equal(t, tt.wantMessage, err.Error())
			assert.Equal(t, tt.loader, err.Context["loader"])
			assert.Equal(t, tt.op, err.Context["op"])
		})
	}
}

func TestIsType(t *testing.T) {
	loadErr := NewLoadError("NavLoader", "LoadFund", errors.New("boom"), "fund.csv")
	periodErr := NewPeriodicityError("gap of 15 days")

	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{
			name:    "direct match",
			err:     loadErr,
			errType: ErrTypeLoad,
			want:    true,
		},
		{
			name:    "type mismatch",
			err:     periodErr,
			errType: ErrTypeLoad,
			want:    false,
		},
		{
			name:    "wrapped AppError",
			err:     fmt.Errorf("filling portfolio: %w", loadErr),
			errType: ErrTypeLoad,
			want:    true,
		},
		{
			name:    "plain error",
			err:     errors.New("plain"),
			errType: ErrTypeLoad,
			want:    false,
		},
		{
			name:    "nil error",
			err:     nil,
			errType: ErrTypeLoad,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsType(tt.err, tt.errType))
		})
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
	}{
		{"periodicity", NewPeriodicityError("bad spacing"), ErrTypePeriodicity},
		{"parsing", NewParsingError("bad cell", cause), ErrTypeParsing},
		{"regression", NewRegressionError("singular design", cause), ErrTypeRegression},
		{"storage", NewStorageError("write failed", cause), ErrTypeStorage},
		{"validation", NewAppValidationError("universe unknown"), ErrTypeValidation},
		{"not found", NewNotFoundError("fund column"), ErrTypeNotFound},
		{"config", NewConfigError("bad level", cause), ErrTypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.True(t, IsType(tt.err, tt.wantType))
		})
	}
}
