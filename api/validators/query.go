package validators

import (
	"net/http"
	"strings"
)

// QueryString returns a pointer to the trimmed query value, or nil when the
// parameter is absent or blank.
func QueryString(r *http.Request, key string) *string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil
	}
	return &raw
}
