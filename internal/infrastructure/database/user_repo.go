package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"presence/internal/domain"
	"presence/internal/domain/entities"
	"presence/internal/ports/output"
)

var _ output.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	const q = `
		SELECT id, name, email, role, device_id, device_verified, created_at, updated_at
		FROM users WHERE id = $1`
	var u entities.User
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Role, &u.DeviceID, &u.DeviceVerified,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) UpdateDevice(ctx context.Context, userID, deviceID string, verified bool) error {
	const q = `
		UPDATE users SET device_id = $2, device_verified = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, userID, deviceID, verified)
	if err != nil {
		return fmt.Errorf("update user device: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
