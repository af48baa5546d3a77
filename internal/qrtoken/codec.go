// Package qrtoken encodes and decodes the transient payload carried by
// an event QR code. The engine only handles the token text; rendering
// it as an image is delegated to an external service.
package qrtoken

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"presence/internal/domain"
)

// Token is a decoded QR payload. Expiry is zero when the payload was a
// bare event id.
type Token struct {
	EventID string
	Expiry  time.Time
}

// Expired reports whether the token carries an expiry that has passed.
// Token expiry is independent of the event's own time window.
func (t Token) Expired(now time.Time) bool {
	return !t.Expiry.IsZero() && now.After(t.Expiry)
}

type payload struct {
	EventID string `json:"eventId"`
	Expiry  string `json:"expiry,omitempty"`
}

// Encode serializes {eventId, expiry} as base64 JSON, compact enough to
// embed in a QR image request.
func Encode(eventID string, expiry time.Time) string {
	p := payload{EventID: eventID}
	if !expiry.IsZero() {
		p.Expiry = expiry.UTC().Format(time.RFC3339)
	}
	b, _ := json.Marshal(p)
	return base64.StdEncoding.EncodeToString(b)
}

// Decode accepts three input shapes, tried in order: a renderer URL
// whose query parameter "data" carries the token, a base64 JSON object,
// and a bare event id (legacy payloads). It never panics; only an empty
// input or a JSON payload without an event id is malformed.
func Decode(raw string) (Token, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Token{}, domain.ErrMalformedToken
	}
	cleaned := extractDataParam(raw)
	if b, err := base64.StdEncoding.DecodeString(cleaned); err == nil {
		var p payload
		if err := json.Unmarshal(b, &p); err == nil {
			if p.EventID == "" {
				return Token{}, domain.ErrMalformedToken
			}
			tok := Token{EventID: p.EventID}
			if p.Expiry != "" {
				if exp, err := time.Parse(time.RFC3339, p.Expiry); err == nil {
					tok.Expiry = exp
				}
			}
			return tok, nil
		}
	}
	// Not base64 JSON: legacy payloads carry the event id directly.
	return Token{EventID: cleaned}, nil
}

// extractDataParam unwraps a token scanned from a QR image service URL
// (…?data=<token>). Anything else comes back unchanged.
func extractDataParam(raw string) string {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if data := u.Query().Get("data"); data != "" {
		return data
	}
	return raw
}

// ImageURL builds the external renderer URL for a token.
func ImageURL(baseURL, token string) string {
	return baseURL + "?size=300x300&data=" + url.QueryEscape(token)
}
