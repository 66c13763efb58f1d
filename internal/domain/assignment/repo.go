package assignment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts the link. A duplicate (patient, doctor) pair fails with
	// the conflict error even under concurrent identical requests; the
	// store's unique index is the authority, not the caller's pre-check.
	Create(ctx context.Context, a *Assignment) error
	Exists(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Assignment, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Assignment, error)
	// Delete removes the link, scoped through the patient's owning account.
	Delete(ctx context.Context, accountID, id uuid.UUID) error
}
