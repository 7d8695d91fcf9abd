package api

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// StatusError is returned when the backend answered with a non-2xx status.
// Detail carries the backend's human-readable reason when the response body
// had one; otherwise it is empty and callers fall back to a generic message.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// extractDetail pulls the `detail` field out of an error response body.
// Bodies are not guaranteed to be JSON (proxies, crashes), so the parse is
// tolerant: anything unexpected yields an empty string.
func extractDetail(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	return gjson.GetBytes(body, "detail").String()
}
