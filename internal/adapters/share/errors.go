package share

import "errors"

// ErrInvalidToken is returned for any share token that cannot be turned back
// into a complete snapshot.
var ErrInvalidToken = errors.New("invalid share link")

// Decode failure reasons, used as metric labels.
const (
	reasonEmpty   = "empty"
	reasonBase64  = "base64"
	reasonJSON    = "json"
	reasonMissing = "missing_field"
	reasonValue   = "invalid_value"
)
