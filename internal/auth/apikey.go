// Package auth guards the HTTP API with static API keys and HS256 JWTs.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// APIKeyMiddleware authenticates requests by a static key header. Keys are
// compared by SHA-256 digest in constant time.
type APIKeyMiddleware struct {
	headerName string
	keyHashes  [][32]byte
}

func NewAPIKeyMiddleware(headerName string, keys []string) *APIKeyMiddleware {
	if headerName == "" {
		headerName = "X-API-Key"
	}
	hashes := make([][32]byte, len(keys))
	for i, k := range keys {
		hashes[i] = sha256.Sum256([]byte(k))
	}
	return &APIKeyMiddleware{headerName: headerName, keyHashes: hashes}
}

// Authenticate rejects requests whose key header does not match a configured
// key. With no keys configured the middleware is a no-op, which keeps local
// development friction-free.
func (m *APIKeyMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(m.keyHashes) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(m.headerName)
		if key == "" {
			writeError(w, http.StatusUnauthorized, "missing API key")
			return
		}

		hash := sha256.Sum256([]byte(key))
		for _, known := range m.keyHashes {
			if subtle.ConstantTimeCompare(known[:], hash[:]) == 1 {
				next.ServeHTTP(w, r)
				return
			}
		}
		writeError(w, http.StatusUnauthorized, "invalid API key")
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
