package domain

import "errors"

// Check-in rejections, in gate order. Every rejection is returned to the
// caller as one of these sentinels, never panicked past the engine.
var (
	ErrMissingToken        = errors.New("code QR requis")
	ErrLocationUnavailable = errors.New("position non disponible")
	ErrMalformedToken      = errors.New("code QR illisible")
	ErrUnauthenticated     = errors.New("utilisateur non authentifié")
	ErrTokenExpired        = errors.New("code QR expiré")
	ErrEventNotFound       = errors.New("événement non trouvé")
	ErrEventEnded          = errors.New("événement terminé")
	ErrEventNotStarted     = errors.New("événement pas encore commencé")
	ErrDuplicateCheckIn    = errors.New("présence déjà enregistrée")
	ErrOutsideGeofence     = errors.New("hors de la zone autorisée")
	ErrPersistence         = errors.New("échec de persistance")
)

// Other domain errors.
var (
	ErrUserNotFound       = errors.New("utilisateur non trouvé")
	ErrEventNameRequired  = errors.New("nom de l'événement requis")
	ErrInvalidEventWindow = errors.New("la fin doit être après le début")
	ErrInvalidCoordinates = errors.New("coordonnées hors limites")
)

// Code returns a stable identifier for a domain error, used to build the
// i18n message key for user-facing text. Unknown errors yield "".
func Code(err error) string {
	switch {
	case errors.Is(err, ErrMissingToken):
		return "missing_token"
	case errors.Is(err, ErrLocationUnavailable):
		return "location_unavailable"
	case errors.Is(err, ErrMalformedToken):
		return "malformed_token"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrEventNotFound):
		return "event_not_found"
	case errors.Is(err, ErrEventEnded):
		return "event_ended"
	case errors.Is(err, ErrEventNotStarted):
		return "event_not_started"
	case errors.Is(err, ErrDuplicateCheckIn):
		return "duplicate_checkin"
	case errors.Is(err, ErrOutsideGeofence):
		return "outside_geofence"
	case errors.Is(err, ErrPersistence):
		return "persistence_failure"
	case errors.Is(err, ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, ErrEventNameRequired):
		return "event_name_required"
	case errors.Is(err, ErrInvalidEventWindow):
		return "invalid_event_window"
	case errors.Is(err, ErrInvalidCoordinates):
		return "invalid_coordinates"
	default:
		return ""
	}
}
