package records

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/carelink/carelink/internal/platform/httperr"
)

type Service struct {
	patients PatientRepository
	doctors  DoctorRepository
}

func NewService(patients PatientRepository, doctors DoctorRepository) *Service {
	return &Service{patients: patients, doctors: doctors}
}

// -- Patient --

func validatePatient(p *Patient) error {
	if strings.TrimSpace(p.Name) == "" {
		return httperr.Validationf("name is required")
	}
	if p.Age <= 0 {
		return httperr.Validationf("age must be positive")
	}
	if !ValidGender(p.Gender) {
		return httperr.Validationf("gender must be one of M, F, O")
	}
	if strings.TrimSpace(p.Contact) == "" {
		return httperr.Validationf("contact is required")
	}
	if strings.TrimSpace(p.Address) == "" {
		return httperr.Validationf("address is required")
	}
	return nil
}

func (s *Service) CreatePatient(ctx context.Context, accountID uuid.UUID, p *Patient) error {
	p.AccountID = accountID
	if err := validatePatient(p); err != nil {
		return err
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, accountID, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, accountID, id)
}

func (s *Service) ListPatients(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, accountID, limit, offset)
}

// UpdatePatient applies a partial update: nil fields keep their stored value.
func (s *Service) UpdatePatient(ctx context.Context, accountID, id uuid.UUID, upd PatientUpdate) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Age != nil {
		p.Age = *upd.Age
	}
	if upd.Gender != nil {
		p.Gender = *upd.Gender
	}
	if upd.Contact != nil {
		p.Contact = *upd.Contact
	}
	if upd.Address != nil {
		p.Address = *upd.Address
	}
	if upd.MedicalHistory != nil {
		p.MedicalHistory = upd.MedicalHistory
	}

	if err := validatePatient(p); err != nil {
		return nil, err
	}
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePatient(ctx context.Context, accountID, id uuid.UUID) error {
	return s.patients.Delete(ctx, accountID, id)
}

// -- Doctor --

func validateDoctor(d *Doctor) error {
	if strings.TrimSpace(d.Name) == "" {
		return httperr.Validationf("name is required")
	}
	if !ValidSpecialization(d.Specialization) {
		return httperr.Validationf("specialization must be one of %s", strings.Join(Specializations, ", "))
	}
	if strings.TrimSpace(d.Contact) == "" {
		return httperr.Validationf("contact is required")
	}
	if strings.TrimSpace(d.Address) == "" {
		return httperr.Validationf("address is required")
	}
	if d.Experience < 0 {
		return httperr.Validationf("experience cannot be negative")
	}
	return nil
}

func (s *Service) CreateDoctor(ctx context.Context, accountID uuid.UUID, d *Doctor) error {
	d.AccountID = accountID
	if err := validateDoctor(d); err != nil {
		return err
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, accountID, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, accountID, id)
}

func (s *Service) ListDoctors(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, accountID, limit, offset)
}

// UpdateDoctor applies a partial update: nil fields keep their stored value.
func (s *Service) UpdateDoctor(ctx context.Context, accountID, id uuid.UUID, upd DoctorUpdate) (*Doctor, error) {
	d, err := s.doctors.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		d.Name = *upd.Name
	}
	if upd.Specialization != nil {
		d.Specialization = *upd.Specialization
	}
	if upd.Contact != nil {
		d.Contact = *upd.Contact
	}
	if upd.Address != nil {
		d.Address = *upd.Address
	}
	if upd.Experience != nil {
		d.Experience = *upd.Experience
	}

	if err := validateDoctor(d); err != nil {
		return nil, err
	}
	if err := s.doctors.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, accountID, id uuid.UUID) error {
	return s.doctors.Delete(ctx, accountID, id)
}
