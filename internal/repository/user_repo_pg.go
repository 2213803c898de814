package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/planepal/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository is read-only here: profiles and documents are owned by the
// account service, bookings only need eligibility data.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT u.email, u.status, d.id, d.document_number, d.expiration_date
		FROM users u
		LEFT JOIN identification_documents d ON d.id = u.document_id
		WHERE u.email=$1`, email)

	var u domain.User
	var status int
	var docID *int64
	var docNumber *string
	var docExpiration *time.Time
	if err := row.Scan(&u.Email, &status, &docID, &docNumber, &docExpiration); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.Status = domain.UserStatus(status)
	if docID != nil {
		u.Document = &domain.IdentificationDocument{ID: *docID}
		if docNumber != nil {
			u.Document.DocumentNumber = *docNumber
		}
		if docExpiration != nil {
			u.Document.ExpirationDate = *docExpiration
		}
	}
	return &u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
