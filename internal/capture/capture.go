// Package capture obtains an image as raw bytes and encodes it into the
// base64 data URI form the classification API and the backend both consume.
package capture

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrPermissionDenied is returned when the platform refuses access to the
// image source. Callers display it and move on; there is no retry loop.
var ErrPermissionDenied = errors.New("capture: permission denied")

// FromFile reads image bytes from a file path, or from stdin when path is
// "-". No validation of content is performed; any bytes are accepted.
func FromFile(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("capture: reading stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("capture: reading %s: %w", path, err)
	}
	return data, nil
}
