package records

import (
	"time"

	"github.com/google/uuid"
)

// Gender codes accepted for patients. Closed set; anything else is rejected
// at validation.
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

func ValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Specializations accepted for doctors. Closed set.
var Specializations = []string{
	"Cardiologist",
	"Dermatologist",
	"Pediatrician",
	"Neurologist",
	"General",
}

func ValidSpecialization(s string) bool {
	for _, v := range Specializations {
		if v == s {
			return true
		}
	}
	return false
}

// Patient maps to the patient table. AccountID is the owning account; every
// query is scoped by it.
type Patient struct {
	ID             uuid.UUID `db:"id" json:"id"`
	AccountID      uuid.UUID `db:"account_id" json:"-"`
	Name           string    `db:"name" json:"name"`
	Age            int       `db:"age" json:"age"`
	Gender         string    `db:"gender" json:"gender"`
	Contact        string    `db:"contact" json:"contact"`
	Address        string    `db:"address" json:"address"`
	MedicalHistory *string   `db:"medical_history" json:"medical_history,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Doctor maps to the doctor table.
type Doctor struct {
	ID             uuid.UUID `db:"id" json:"id"`
	AccountID      uuid.UUID `db:"account_id" json:"-"`
	Name           string    `db:"name" json:"name"`
	Specialization string    `db:"specialization" json:"specialization"`
	Contact        string    `db:"contact" json:"contact"`
	Address        string    `db:"address" json:"address"`
	Experience     int       `db:"experience" json:"experience"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// PatientUpdate carries a partial update; nil fields are left unchanged.
type PatientUpdate struct {
	Name           *string `json:"name"`
	Age            *int    `json:"age"`
	Gender         *string `json:"gender"`
	Contact        *string `json:"contact"`
	Address        *string `json:"address"`
	MedicalHistory *string `json:"medical_history"`
}

// DoctorUpdate carries a partial update; nil fields are left unchanged.
type DoctorUpdate struct {
	Name           *string `json:"name"`
	Specialization *string `json:"specialization"`
	Contact        *string `json:"contact"`
	Address        *string `json:"address"`
	Experience     *int    `json:"experience"`
}
