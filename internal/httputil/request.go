package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxBodyBytes caps a turn request body. Conversation input is small; a
// bigger body is abuse, not a longer chat.
const maxBodyBytes = 1 << 20

// ParseJSON decodes the request body into dest, enforcing the body size cap.
// The writer is needed so MaxBytesReader can emit a proper 413.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
