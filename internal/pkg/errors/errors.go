package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

// WithDetails returns a copy carrying details, the shared sentinel is left alone.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// Is matches any AppError with the same code.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !stderrors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// Pipeline sentinels.
var (
	ErrRegionNotFound = stderrors.New("region not found in catalog")
	ErrExtractMissing = stderrors.New("region extract missing")
)

// BatchError reports a batch whose transaction was rolled back. Earlier batches
// of the same run stay committed.
type BatchError struct {
	RunID  uuid.UUID
	Region string
	Batch  int
	Total  int
	Size   int
	Err    error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("run %s region %s: batch %d/%d (%d places) rolled back: %v",
		e.RunID, e.Region, e.Batch, e.Total, e.Size, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
