package assignment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carelink/carelink/internal/platform/httperr"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const assignmentSelect = `
	SELECT a.id, a.patient_id, a.doctor_id, a.assigned_at,
	       p.name, d.name, d.specialization
	FROM assignment a
	JOIN patient p ON p.id = a.patient_id
	JOIN doctor d ON d.id = a.doctor_id`

func (r *repoPG) Create(ctx context.Context, a *Assignment) error {
	a.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO assignment (id, patient_id, doctor_id)
		VALUES ($1, $2, $3)
		RETURNING assigned_at`,
		a.ID, a.PatientID, a.DoctorID,
	).Scan(&a.AssignedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return httperr.Conflictf("this doctor is already assigned to this patient")
		}
		return err
	}
	return nil
}

func (r *repoPG) Exists(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM assignment WHERE patient_id = $1 AND doctor_id = $2)`,
		patientID, doctorID,
	).Scan(&exists)
	return exists, err
}

func (r *repoPG) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Assignment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM assignment a
		JOIN patient p ON p.id = a.patient_id
		WHERE p.account_id = $1`, accountID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, assignmentSelect+`
		WHERE p.account_id = $1
		ORDER BY a.assigned_at
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	assignments, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return assignments, total, nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Assignment, error) {
	rows, err := r.pool.Query(ctx, assignmentSelect+`
		WHERE a.patient_id = $1
		ORDER BY a.assigned_at`,
		patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

func (r *repoPG) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM assignment a
		USING patient p
		WHERE a.id = $1 AND p.id = a.patient_id AND p.account_id = $2`,
		id, accountID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.NotFoundf("mapping not found")
	}
	return nil
}

func collect(rows pgx.Rows) ([]*Assignment, error) {
	var assignments []*Assignment
	for rows.Next() {
		a := &Assignment{}
		if err := rows.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.AssignedAt,
			&a.PatientName, &a.DoctorName, &a.DoctorSpecialization); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
