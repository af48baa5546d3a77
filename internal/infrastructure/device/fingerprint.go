// Package device provides the default DeviceIdentitySource: a stable,
// unique-enough identifier per installation built from environment
// signals, with a locally persisted random fallback token. It is a
// best-effort fingerprint, not a cryptographic credential.
package device

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"presence/internal/ports/output"
)

var _ output.DeviceIdentitySource = (*Fingerprint)(nil)

type Fingerprint struct {
	tokenPath string
}

func NewFingerprint(tokenPath string) *Fingerprint {
	return &Fingerprint{tokenPath: tokenPath}
}

// DeviceID returns the persisted token when one exists, otherwise
// derives a fresh identifier from host signals plus random bytes and
// persists it for subsequent runs.
func (f *Fingerprint) DeviceID(ctx context.Context) (string, error) {
	if b, err := os.ReadFile(f.tokenPath); err == nil {
		if tok := string(bytes.TrimSpace(b)); tok != "" {
			return tok, nil
		}
	}

	host, _ := os.Hostname()
	signals := strings.Join([]string{
		host,
		runtime.GOOS,
		runtime.GOARCH,
		time.Now().Location().String(),
	}, "|")

	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("device: random token: %w", err)
	}
	sum := sha256.Sum256(append([]byte(signals), buf...))
	id := "dev_" + hex.EncodeToString(sum[:16])

	if dir := filepath.Dir(f.tokenPath); dir != "." {
		_ = os.MkdirAll(dir, 0o700)
	}
	if err := os.WriteFile(f.tokenPath, []byte(id), 0o600); err != nil {
		// Still usable for this run; the next run derives a new one.
		return id, nil
	}
	return id, nil
}
