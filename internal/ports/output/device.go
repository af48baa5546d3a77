package output

import "context"

// DeviceIdentitySource produces a stable, unique-enough identifier for
// the current installation. The default implementation is a best-effort
// environment fingerprint; deployments wanting signed installation
// credentials plug in their own without touching the trust manager.
type DeviceIdentitySource interface {
	DeviceID(ctx context.Context) (string, error)
}
