package assignment

import (
	"time"

	"github.com/google/uuid"
)

// Assignment links one patient to one doctor. At most one assignment exists
// per (patient, doctor) pair, enforced by a unique index in the store. The
// name/specialization fields are denormalized from the joined records for
// response convenience and are never written.
type Assignment struct {
	ID                   uuid.UUID `db:"id" json:"id"`
	PatientID            uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID             uuid.UUID `db:"doctor_id" json:"doctor_id"`
	AssignedAt           time.Time `db:"assigned_at" json:"assigned_at"`
	PatientName          string    `db:"patient_name" json:"patient_name"`
	DoctorName           string    `db:"doctor_name" json:"doctor_name"`
	DoctorSpecialization string    `db:"doctor_specialization" json:"doctor_specialization"`
}
