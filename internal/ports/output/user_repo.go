package output

import (
	"context"

	"presence/internal/domain/entities"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entities.User, error)
	UpdateDevice(ctx context.Context, userID, deviceID string, verified bool) error
}
