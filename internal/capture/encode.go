package capture

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrEncoding is returned when a source cannot be turned into a data URI.
var ErrEncoding = errors.New("capture: encoding error")

// EncodeDataURI produces a deterministic base64 data URI for the given
// bytes: standard alphabet, no line wrapping, MIME type sniffed from the
// content. Decoding the output reproduces the input bytes exactly.
func EncodeDataURI(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty input", ErrEncoding)
	}

	mimeType := http.DetectContentType(data)
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDataURI reverses EncodeDataURI, returning the MIME type and the
// original bytes.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data: prefix", ErrEncoding)
	}

	mimeType, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, fmt.Errorf("%w: not base64 encoded", ErrEncoding)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return mimeType, data, nil
}
