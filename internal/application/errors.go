package application

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrScholarshipNotFound indicates the referenced scholarship does not exist
type ErrScholarshipNotFound struct {
	ID uuid.UUID
}

func (e *ErrScholarshipNotFound) Error() string {
	return fmt.Sprintf("scholarship not found: %s", e.ID)
}

// ErrApplicationNotFound indicates the referenced application does not exist
type ErrApplicationNotFound struct {
	ID uuid.UUID
}

func (e *ErrApplicationNotFound) Error() string {
	return fmt.Sprintf("application not found: %s", e.ID)
}

// ErrNotOwner indicates the caller does not own the application
type ErrNotOwner struct {
	ApplicationID uuid.UUID
}

func (e *ErrNotOwner) Error() string {
	return fmt.Sprintf("application %s does not belong to the caller", e.ApplicationID)
}

// ErrScholarshipClosed indicates the scholarship is not accepting applications
type ErrScholarshipClosed struct {
	ID     uuid.UUID
	Reason string
}

func (e *ErrScholarshipClosed) Error() string {
	return fmt.Sprintf("scholarship %s is not accepting applications: %s", e.ID, e.Reason)
}

// ErrDuplicateApplication indicates the user already applied to this scholarship
type ErrDuplicateApplication struct {
	ScholarshipID uuid.UUID
}

func (e *ErrDuplicateApplication) Error() string {
	return fmt.Sprintf("an application for scholarship %s already exists", e.ScholarshipID)
}

// ErrInvalidTransition indicates a stage action violated the pipeline's rules,
// e.g. acting on an inactive stage or editing a reviewed essay.
type ErrInvalidTransition struct {
	Message string
}

func (e *ErrInvalidTransition) Error() string {
	return e.Message
}
