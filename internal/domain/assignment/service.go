package assignment

import (
	"context"

	"github.com/google/uuid"

	"github.com/carelink/carelink/internal/domain/records"
	"github.com/carelink/carelink/internal/platform/httperr"
)

type Service struct {
	assignments Repository
	patients    records.PatientRepository
	doctors     records.DoctorRepository
}

func NewService(assignments Repository, patients records.PatientRepository, doctors records.DoctorRepository) *Service {
	return &Service{assignments: assignments, patients: patients, doctors: doctors}
}

// Assign links a patient to a doctor. Both records must be owned by the
// requesting account; a pair that is already linked fails with the conflict
// error. The pre-check gives a clean message on the common path, and the
// store's unique index closes the race between concurrent identical requests.
func (s *Service) Assign(ctx context.Context, accountID, patientID, doctorID uuid.UUID) (*Assignment, error) {
	patient, err := s.patients.GetByID(ctx, accountID, patientID)
	if err != nil {
		return nil, err
	}
	doctor, err := s.doctors.GetByID(ctx, accountID, doctorID)
	if err != nil {
		return nil, err
	}

	exists, err := s.assignments.Exists(ctx, patientID, doctorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, httperr.Conflictf("this doctor is already assigned to this patient")
	}

	a := &Assignment{
		PatientID:            patientID,
		DoctorID:             doctorID,
		PatientName:          patient.Name,
		DoctorName:           doctor.Name,
		DoctorSpecialization: doctor.Specialization,
	}
	if err := s.assignments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAll returns every assignment whose patient is owned by the account.
func (s *Service) ListAll(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Assignment, int, error) {
	return s.assignments.ListByAccount(ctx, accountID, limit, offset)
}

// ListForPatient returns the patient's assignments along with the patient
// itself. The ownership check on the patient happens first, so an unowned
// patient id reads as not found.
func (s *Service) ListForPatient(ctx context.Context, accountID, patientID uuid.UUID) (*records.Patient, []*Assignment, error) {
	patient, err := s.patients.GetByID(ctx, accountID, patientID)
	if err != nil {
		return nil, nil, err
	}
	assignments, err := s.assignments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, nil, err
	}
	return patient, assignments, nil
}

// Unassign removes an assignment, ownership-checked through its patient.
func (s *Service) Unassign(ctx context.Context, accountID, id uuid.UUID) error {
	return s.assignments.Delete(ctx, accountID, id)
}
