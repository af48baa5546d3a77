package input

import "context"

// BindResult is the outcome of a device-trust check at login.
type BindResult struct {
	OK                bool
	NeedsVerification bool
}

type DeviceTrustUseCase interface {
	// BindOrVerify binds the presented device on first login, passes
	// silently on a match and requests re-verification on a mismatch.
	BindOrVerify(ctx context.Context, userID, presentedDeviceID string) (*BindResult, error)
	// ApproveDevice overwrites the bound device after an administratively
	// approved re-verification.
	ApproveDevice(ctx context.Context, userID, presentedDeviceID string) error
}
