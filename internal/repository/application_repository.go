package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/careers-portal/internal/domain"
)

// ApplicationRepository encapsulates application persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	GetByUserAndJob(ctx context.Context, userID, jobPostingID string) (*domain.Application, error)
	ListByJob(ctx context.Context, jobPostingID string) ([]domain.Application, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Application, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus, notes *string) (*domain.Application, error)
	Delete(ctx context.Context, id string) error
	CountByOwnerAndStatus(ctx context.Context, ownerID string, status *domain.ApplicationStatus) (int, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `id, user_id, job_posting_id, status, notes, created_at, updated_at`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	// The (user_id, job_posting_id) unique constraint is the authoritative
	// duplicate check; a violation surfaces as ErrDuplicate.
	const query = `
        INSERT INTO applications (user_id, job_posting_id, status)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		app.UserID,
		app.JobPostingID,
		app.Status,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	const query = `
        SELECT ` + applicationColumns + `
        FROM applications WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *applicationRepository) GetByUserAndJob(ctx context.Context, userID, jobPostingID string) (*domain.Application, error) {
	const query = `
        SELECT ` + applicationColumns + `
        FROM applications WHERE user_id=$1 AND job_posting_id=$2`

	var app domain.Application
	if err := r.pool.QueryRow(ctx, query, userID, jobPostingID).Scan(
		&app.ID,
		&app.UserID,
		&app.JobPostingID,
		&app.Status,
		&app.Notes,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Application, error) {
	var app domain.Application
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&app.ID,
		&app.UserID,
		&app.JobPostingID,
		&app.Status,
		&app.Notes,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobPostingID string) ([]domain.Application, error) {
	const query = `
        SELECT ` + applicationColumns + `
        FROM applications WHERE job_posting_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, jobPostingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *applicationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Application, error) {
	const query = `
        SELECT ` + applicationColumns + `
        FROM applications WHERE user_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *applicationRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT ` + applicationColumns + `
        FROM applications ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus, notes *string) (*domain.Application, error) {
	// Nil notes keep the stored value; only a provided value overwrites.
	const query = `
        UPDATE applications SET status=$1, notes=COALESCE($2, notes), updated_at=NOW()
        WHERE id=$3
        RETURNING ` + applicationColumns

	var app domain.Application
	if err := r.pool.QueryRow(ctx, query, status, notes, id).Scan(
		&app.ID,
		&app.UserID,
		&app.JobPostingID,
		&app.Status,
		&app.Notes,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM applications WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *applicationRepository) CountByOwnerAndStatus(ctx context.Context, ownerID string, status *domain.ApplicationStatus) (int, error) {
	const base = `
        SELECT COUNT(*)
        FROM applications a
        JOIN job_postings j ON j.id = a.job_posting_id
        WHERE j.owner_id=$1`

	var count int
	if status != nil {
		if err := r.pool.QueryRow(ctx, base+` AND a.status=$2`, ownerID, *status).Scan(&count); err != nil {
			return 0, err
		}
		return count, nil
	}
	if err := r.pool.QueryRow(ctx, base, ownerID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanApplications(rows pgx.Rows) ([]domain.Application, error) {
	var result []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID,
			&app.UserID,
			&app.JobPostingID,
			&app.Status,
			&app.Notes,
			&app.CreatedAt,
			&app.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}
