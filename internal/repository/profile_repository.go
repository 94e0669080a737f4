package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/careers-portal/internal/domain"
)

// ProfileUpdate carries a partial profile mutation. Nil fields are left
// untouched.
type ProfileUpdate struct {
	FirstName      *string
	LastName       *string
	Phone          *string
	MBTIType       *string
	MBTICompleted  *bool
	ResumeURL      *string
	CertificateURL *string
}

// ProfileRepository defines persistence access for profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, userID string, update ProfileUpdate) (*domain.Profile, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	const query = `
        INSERT INTO profiles (user_id, first_name, last_name, phone, mbti_type, mbti_completed, resume_url, certificate_url)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.Phone,
		profile.MBTIType,
		profile.MBTICompleted,
		profile.ResumeURL,
		profile.CertificateURL,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	const query = `
        SELECT id, user_id, first_name, last_name, phone, mbti_type, mbti_completed,
               resume_url, certificate_url, created_at, updated_at
        FROM profiles WHERE user_id=$1`

	var profile domain.Profile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Phone,
		&profile.MBTIType,
		&profile.MBTICompleted,
		&profile.ResumeURL,
		&profile.CertificateURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, userID string, update ProfileUpdate) (*domain.Profile, error) {
	// COALESCE keeps the stored value for fields the caller omitted.
	const query = `
        UPDATE profiles SET
            first_name      = COALESCE($1, first_name),
            last_name       = COALESCE($2, last_name),
            phone           = COALESCE($3, phone),
            mbti_type       = COALESCE($4, mbti_type),
            mbti_completed  = COALESCE($5, mbti_completed),
            resume_url      = COALESCE($6, resume_url),
            certificate_url = COALESCE($7, certificate_url),
            updated_at      = NOW()
        WHERE user_id=$8
        RETURNING id, user_id, first_name, last_name, phone, mbti_type, mbti_completed,
                  resume_url, certificate_url, created_at, updated_at`

	var profile domain.Profile
	if err := r.pool.QueryRow(ctx, query,
		update.FirstName,
		update.LastName,
		update.Phone,
		update.MBTIType,
		update.MBTICompleted,
		update.ResumeURL,
		update.CertificateURL,
		userID,
	).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Phone,
		&profile.MBTIType,
		&profile.MBTICompleted,
		&profile.ResumeURL,
		&profile.CertificateURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return &profile, nil
}
