package redirect

import "time"

// TTL is the fixed validity window for cached redirect descriptors.
const TTL = 15 * time.Minute

// Descriptor is the data needed to send the user to a booking partner.
type Descriptor struct {
	TargetURL  string            `json:"url"`
	Method     string            `json:"method"`
	Params     map[string]string `json:"params,omitempty"`
	Partner    string            `json:"partner,omitempty"`
	ObtainedAt time.Time         `json:"obtained_at"`
}

// isExpired is the single place TTL is decided; taking now as an
// argument keeps expiry deterministic under an injected clock.
func isExpired(d Descriptor, now time.Time) bool {
	return now.Sub(d.ObtainedAt) > TTL
}
