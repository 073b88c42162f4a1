package fetch

import "errors"

// Error kinds raised by Fetch. Callers classify with errors.Is; each
// returned error wraps exactly one of these sentinels, except for
// unexpected failures which are reported verbatim.
var (
	// ErrInvalidInput indicates a url whose scheme is not http or https.
	// It is raised before any network activity.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRejectedContent indicates a response whose content-type is not
	// an image. Nothing is written to disk.
	ErrRejectedContent = errors.New("not an image")

	// ErrTooLarge indicates a declared or observed body size above the
	// configured cap. Any partial file is removed.
	ErrTooLarge = errors.New("file too large")

	// ErrNetwork indicates a transport-level failure or a non-2xx status.
	ErrNetwork = errors.New("network error")
)
