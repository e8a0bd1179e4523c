package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDataset indicates a dataset with zero rows or columns
	ErrEmptyDataset = errors.New("dataset is empty")
	// ErrSessionNotFound indicates an unknown or expired session handle
	ErrSessionNotFound = errors.New("session not found or expired")
	// ErrUnsupportedFileType indicates a disallowed upload extension
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// UnknownChartKindError reports a chart kind outside the supported set.
type UnknownChartKindError struct {
	Kind ChartKind
}

func (e *UnknownChartKindError) Error() string {
	return fmt.Sprintf("unknown chart type %q, must be one of %v", e.Kind, ChartKinds)
}

// MissingParameterError reports a required parameter role absent from
// a chart-data request.
type MissingParameterError struct {
	Kind      ChartKind
	Parameter string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("chart type %q requires parameter %q", e.Kind, e.Parameter)
}

// ColumnNotFoundError reports a referenced column missing from the
// dataset.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q does not exist in the dataset", e.Column)
}

// TypeMismatchError reports a column whose dtype does not satisfy the
// requested operation.
type TypeMismatchError struct {
	Column string
	Want   DType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("column %q must be %s", e.Column, e.Want)
}

// ProviderError reports a failure of the external text generator:
// quota, timeout or transport. It is never retried by the
// orchestrator.
type ProviderError struct {
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("model provider error (status %d): %v", e.StatusCode, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// RateLimited reports whether the provider rejected the call for
// quota or rate-limit reasons.
func (e *ProviderError) RateLimited() bool {
	return e.StatusCode == 429
}

// SuggestionInvalidError reports that the model never produced a
// usable suggestion batch within the retry budget.
type SuggestionInvalidError struct {
	Attempts int
	Err      error
}

func (e *SuggestionInvalidError) Error() string {
	return fmt.Sprintf("no valid visualization suggestions after %d attempts: %v", e.Attempts, e.Err)
}

func (e *SuggestionInvalidError) Unwrap() error {
	return e.Err
}
