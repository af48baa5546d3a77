package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"presence/internal/ports/input"
	"presence/internal/ports/output"
)

var _ input.DeviceTrustUseCase = (*DeviceTrustService)(nil)

// DeviceTrustService decides whether a login comes from the user's
// bound device. It never judges the quality of the identifier itself;
// producing one is the DeviceIdentitySource's job.
type DeviceTrustService struct {
	userRepo output.UserRepository
	logger   *zap.SugaredLogger
}

func NewDeviceTrustService(userRepo output.UserRepository, logger *zap.SugaredLogger) *DeviceTrustService {
	return &DeviceTrustService{userRepo: userRepo, logger: logger}
}

func (s *DeviceTrustService) BindOrVerify(ctx context.Context, userID, presentedDeviceID string) (*input.BindResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.DeviceID == "" {
		// First login from any device auto-trusts it.
		if err := s.userRepo.UpdateDevice(ctx, userID, presentedDeviceID, true); err != nil {
			return nil, fmt.Errorf("bind device: %w", err)
		}
		s.logger.Infow("appareil lié au compte", "user_id", userID)
		return &input.BindResult{OK: true}, nil
	}
	if user.DeviceID == presentedDeviceID {
		return &input.BindResult{OK: true}, nil
	}
	// Mismatch: the caller must route to explicit re-verification
	// before any role-specific view is reachable.
	return &input.BindResult{NeedsVerification: true}, nil
}

func (s *DeviceTrustService) ApproveDevice(ctx context.Context, userID, presentedDeviceID string) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.UpdateDevice(ctx, userID, presentedDeviceID, true); err != nil {
		return fmt.Errorf("approve device: %w", err)
	}
	s.logger.Infow("nouvel appareil approuvé", "user_id", userID)
	return nil
}
