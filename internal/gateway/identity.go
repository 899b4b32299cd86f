package gateway

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// fingerprintLen caps the header-derived fallback identity. Twenty characters
// of base64 is enough to spread anonymous direct traffic across quota keys
// without storing a full fingerprint.
const fingerprintLen = 20

// Identity derives the quota identity for a request. An explicit userId wins;
// otherwise the network origin is used, preferring the first forwarded-for
// entry so the scheme works behind proxies, then the real-IP header. Direct
// traffic with neither header degrades to a header fingerprint so anonymous
// callers still get per-client quotas without cookies.
func Identity(r *http.Request, userID string) string {
	if userID != "" {
		return userID
	}

	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	fingerprint := base64.StdEncoding.EncodeToString(
		[]byte(r.Header.Get("User-Agent") + r.Header.Get("Accept-Language")),
	)
	if len(fingerprint) > fingerprintLen {
		fingerprint = fingerprint[:fingerprintLen]
	}
	return "ua:" + fingerprint
}
