package shared

import (
	"encoding/json"
	"net/http"
)

// DecodeJSON reads a single JSON value from the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
