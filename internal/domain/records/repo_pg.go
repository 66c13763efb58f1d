package records

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carelink/carelink/internal/platform/httperr"
)

// -- Patient Repository --

type patientRepoPG struct {
	pool *pgxpool.Pool
}

func NewPatientRepo(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

const patientCols = `id, account_id, name, age, gender, contact, address, medical_history, created_at, updated_at`

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO patient (id, account_id, name, age, gender, contact, address, medical_history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		p.ID, p.AccountID, p.Name, p.Age, p.Gender, p.Contact, p.Address, p.MedicalHistory,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *patientRepoPG) GetByID(ctx context.Context, accountID, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE id = $1 AND account_id = $2`, id, accountID))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patient SET
			name=$3, age=$4, gender=$5, contact=$6, address=$7, medical_history=$8, updated_at=NOW()
		WHERE id = $1 AND account_id = $2`,
		p.ID, p.AccountID, p.Name, p.Age, p.Gender, p.Contact, p.Address, p.MedicalHistory,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.NotFoundf("patient not found")
	}
	return nil
}

func (r *patientRepoPG) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM patient WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.NotFoundf("patient not found")
	}
	return nil
}

func (r *patientRepoPG) List(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM patient WHERE account_id = $1`, accountID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+patientCols+` FROM patient WHERE account_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, p)
	}
	return patients, total, rows.Err()
}

func scanPatient(row pgx.Row) (*Patient, error) {
	p := &Patient{}
	err := row.Scan(&p.ID, &p.AccountID, &p.Name, &p.Age, &p.Gender, &p.Contact,
		&p.Address, &p.MedicalHistory, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httperr.NotFoundf("patient not found")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// -- Doctor Repository --

type doctorRepoPG struct {
	pool *pgxpool.Pool
}

func NewDoctorRepo(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepoPG{pool: pool}
}

const doctorCols = `id, account_id, name, specialization, contact, address, experience, created_at, updated_at`

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO doctor (id, account_id, name, specialization, contact, address, experience)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		d.ID, d.AccountID, d.Name, d.Specialization, d.Contact, d.Address, d.Experience,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *doctorRepoPG) GetByID(ctx context.Context, accountID, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.pool.QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctor WHERE id = $1 AND account_id = $2`, id, accountID))
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE doctor SET
			name=$3, specialization=$4, contact=$5, address=$6, experience=$7, updated_at=NOW()
		WHERE id = $1 AND account_id = $2`,
		d.ID, d.AccountID, d.Name, d.Specialization, d.Contact, d.Address, d.Experience,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.NotFoundf("doctor not found")
	}
	return nil
}

func (r *doctorRepoPG) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM doctor WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.NotFoundf("doctor not found")
	}
	return nil
}

func (r *doctorRepoPG) List(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM doctor WHERE account_id = $1`, accountID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+doctorCols+` FROM doctor WHERE account_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var doctors []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		doctors = append(doctors, d)
	}
	return doctors, total, rows.Err()
}

func scanDoctor(row pgx.Row) (*Doctor, error) {
	d := &Doctor{}
	err := row.Scan(&d.ID, &d.AccountID, &d.Name, &d.Specialization, &d.Contact,
		&d.Address, &d.Experience, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httperr.NotFoundf("doctor not found")
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}
