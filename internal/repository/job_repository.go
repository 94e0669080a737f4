package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/careers-portal/internal/domain"
)

// JobWithApplicationCount pairs a posting with its application tally for
// employer listings.
type JobWithApplicationCount struct {
	Job          domain.JobPosting
	Applications int
}

// JobRepository encapsulates job posting persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.JobPosting) error
	Update(ctx context.Context, job *domain.JobPosting) error
	GetByID(ctx context.Context, id string) (*domain.JobPosting, error)
	ListOpen(ctx context.Context, now time.Time, limit, offset int) ([]domain.JobPosting, error)
	ListByOwner(ctx context.Context, ownerID string) ([]JobWithApplicationCount, error)
	CountActiveByOwner(ctx context.Context, ownerID string) (int, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobColumns = `id, title, company, location, description, requirements,
               deadline, status, mbti_types, owner_id, created_at, updated_at`

func (r *jobRepository) Create(ctx context.Context, job *domain.JobPosting) error {
	const query = `
        INSERT INTO job_postings (title, company, location, description, requirements, deadline, status, mbti_types, owner_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		job.Title,
		job.Company,
		job.Location,
		job.Description,
		job.Requirements,
		job.Deadline,
		job.Status,
		job.MBTITypes,
		job.OwnerID,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.JobPosting) error {
	const query = `
        UPDATE job_postings SET title=$1, company=$2, location=$3, description=$4,
            requirements=$5, deadline=$6, status=$7, mbti_types=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		job.Title,
		job.Company,
		job.Location,
		job.Description,
		job.Requirements,
		job.Deadline,
		job.Status,
		job.MBTITypes,
		job.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	const query = `
        SELECT ` + jobColumns + `
        FROM job_postings WHERE id=$1`

	var job domain.JobPosting
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&job.Title,
		&job.Company,
		&job.Location,
		&job.Description,
		&job.Requirements,
		&job.Deadline,
		&job.Status,
		&job.MBTITypes,
		&job.OwnerID,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) ListOpen(ctx context.Context, now time.Time, limit, offset int) ([]domain.JobPosting, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT ` + jobColumns + `
        FROM job_postings
        WHERE status=$1 AND deadline >= $2
        ORDER BY created_at DESC LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, domain.JobStatusActive, now, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (r *jobRepository) ListByOwner(ctx context.Context, ownerID string) ([]JobWithApplicationCount, error) {
	const query = `
        SELECT j.id, j.title, j.company, j.location, j.description, j.requirements,
               j.deadline, j.status, j.mbti_types, j.owner_id, j.created_at, j.updated_at,
               COUNT(a.id) AS applications
        FROM job_postings j
        LEFT JOIN applications a ON a.job_posting_id = j.id
        WHERE j.owner_id=$1
        GROUP BY j.id
        ORDER BY j.created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []JobWithApplicationCount
	for rows.Next() {
		var item JobWithApplicationCount
		if err := rows.Scan(
			&item.Job.ID,
			&item.Job.Title,
			&item.Job.Company,
			&item.Job.Location,
			&item.Job.Description,
			&item.Job.Requirements,
			&item.Job.Deadline,
			&item.Job.Status,
			&item.Job.MBTITypes,
			&item.Job.OwnerID,
			&item.Job.CreatedAt,
			&item.Job.UpdatedAt,
			&item.Applications,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *jobRepository) CountActiveByOwner(ctx context.Context, ownerID string) (int, error) {
	const query = `SELECT COUNT(*) FROM job_postings WHERE owner_id=$1 AND status=$2`

	var count int
	if err := r.pool.QueryRow(ctx, query, ownerID, domain.JobStatusActive).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanJobs(rows pgx.Rows) ([]domain.JobPosting, error) {
	var result []domain.JobPosting
	for rows.Next() {
		var job domain.JobPosting
		if err := rows.Scan(
			&job.ID,
			&job.Title,
			&job.Company,
			&job.Location,
			&job.Description,
			&job.Requirements,
			&job.Deadline,
			&job.Status,
			&job.MBTITypes,
			&job.OwnerID,
			&job.CreatedAt,
			&job.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, job)
	}
	return result, rows.Err()
}
