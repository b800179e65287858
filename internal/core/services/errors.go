package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Base error kinds. Every sentinel below wraps one of these so that the
// transport layer can map an error to a status code with errors.Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrAuthorization = errors.New("not authorized")
	ErrNotFound      = errors.New("not found")
	ErrInvalidState  = errors.New("invalid state")
)

// Task errors
var (
	ErrTaskNotFound      = fmt.Errorf("task %w", ErrNotFound)
	ErrNotTaskOwner      = fmt.Errorf("%w: only the task owner may perform this action", ErrAuthorization)
	ErrTaskNotOpen       = fmt.Errorf("%w: task is not open", ErrInvalidState)
	ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", ErrInvalidState)
	ErrNotParticipant    = fmt.Errorf("%w: only the client or the assigned worker may update this task", ErrAuthorization)
	ErrCancelClientOnly  = fmt.Errorf("%w: only the client can cancel a task", ErrAuthorization)
	ErrWorkOnlyAssignee  = fmt.Errorf("%w: only the assigned worker can update work status", ErrAuthorization)
	ErrTaskNotCompleted  = fmt.Errorf("%w: task is not completed", ErrInvalidState)
	ErrTaskAlreadyRated  = fmt.Errorf("%w: task has already been rated", ErrInvalidState)
)

// Proposal errors
var (
	ErrProposalNotFound  = fmt.Errorf("proposal %w", ErrNotFound)
	ErrWorkerRoleOnly    = fmt.Errorf("%w: only workers can apply for tasks", ErrAuthorization)
	ErrClientRoleOnly    = fmt.Errorf("%w: only clients can post tasks", ErrAuthorization)
	ErrDuplicateProposal = fmt.Errorf("%w: you have already applied for this task", ErrAuthorization)
	ErrNotProposalOwner  = fmt.Errorf("%w: proposal belongs to another worker", ErrAuthorization)
	ErrProposalSettled   = fmt.Errorf("%w: proposal has already been accepted", ErrInvalidState)
)

// User/auth errors
var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrEmailTaken         = fmt.Errorf("%w: user already exists", ErrValidation)
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Message errors
var (
	ErrMessageNotFound     = fmt.Errorf("message %w", ErrNotFound)
	ErrRecipientNotFound   = fmt.Errorf("recipient %w", ErrNotFound)
	ErrNotMessageRecipient = fmt.Errorf("%w: only the recipient can mark a message as read", ErrAuthorization)
)

// Review errors
var (
	ErrNotReviewParticipant = fmt.Errorf("%w: you can only review tasks you were directly involved in", ErrAuthorization)
	ErrReviewTypeMismatch   = fmt.Errorf("%w: review type does not match your role on this task", ErrAuthorization)
	ErrAlreadyReviewed      = fmt.Errorf("%w: you have already reviewed this task", ErrValidation)
	ErrReviewNotCompleted   = fmt.Errorf("%w: cannot review a task that is not completed", ErrInvalidState)
)

// validationError builds a field-specific error carrying the validation kind.
func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// notFoundOr maps a missing record to the given sentinel. Any other
// repository failure passes through unchanged so it surfaces as a server
// error instead of a 404.
func notFoundOr(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
