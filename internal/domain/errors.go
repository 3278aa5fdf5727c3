package domain

import (
	"errors"
	"fmt"
)

// Predefined domain errors
var (
	// ErrRequestFailed covers transport errors, bad statuses and undecodable replies
	ErrRequestFailed = errors.New("request failed")
	// ErrBusy a submission is already outstanding
	ErrBusy = errors.New("submission in progress")
	// ErrEmptySubmission neither text nor attachment present
	ErrEmptySubmission = errors.New("nothing to submit")
	// ErrInvalidAttachment the selected file could not be used as an image
	ErrInvalidAttachment = errors.New("invalid attachment")
	// ErrInvalidInput invalid input
	ErrInvalidInput = errors.New("invalid input")
)

// DomainError domain error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface (used for logs)
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// UserMessage returns the message shown to the user, without internal details
func (e *DomainError) UserMessage() string {
	return e.Message
}

// Unwrap returns the wrapped error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewRequestFailedError wraps a failed backend call. The user message is the
// fixed apology of the flow.
func NewRequestFailedError(flow Flow, cause error) error {
	return &DomainError{
		Code:    "REQUEST_FAILED",
		Message: flow.Apology(),
		Err:     fmt.Errorf("%w: %w", ErrRequestFailed, cause),
	}
}

// NewInvalidAttachmentError creates an attachment error
func NewInvalidAttachmentError(message string, cause error) error {
	err := ErrInvalidAttachment
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidAttachment, cause)
	}
	return &DomainError{
		Code:    "INVALID_ATTACHMENT",
		Message: message,
		Err:     err,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string) error {
	return &DomainError{
		Code:    "INVALID_INPUT",
		Message: message,
		Err:     ErrInvalidInput,
	}
}

// UserMessage returns the user-facing text of err
func UserMessage(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.UserMessage()
	}
	return err.Error()
}

// IsRequestFailed reports whether err is a failed backend request
func IsRequestFailed(err error) bool {
	return errors.Is(err, ErrRequestFailed)
}

// IsBusy reports whether err rejected a submission because one is outstanding
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}

// IsEmptySubmission reports whether err rejected an empty submission
func IsEmptySubmission(err error) bool {
	return errors.Is(err, ErrEmptySubmission)
}

// IsInvalidAttachment reports whether err is an attachment error
func IsInvalidAttachment(err error) bool {
	return errors.Is(err, ErrInvalidAttachment)
}

// IsInvalidInput reports whether err is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
