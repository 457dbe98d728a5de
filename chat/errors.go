package chat

import "fmt"

// Sentinel errors returned by the presence and admission engines. Handlers
// translate these to HTTP status codes with errors.Is; everything else is
// treated as an internal failure.
var (
	ErrValidation       = fmt.Errorf("validation failed")
	ErrDuplicateName    = fmt.Errorf("name already in use")
	ErrNotFound         = fmt.Errorf("not found")
	ErrUnknownSender    = fmt.Errorf("unknown sender")
	ErrForbidden        = fmt.Errorf("forbidden")
	ErrStoreUnavailable = fmt.Errorf("store unavailable")
)
