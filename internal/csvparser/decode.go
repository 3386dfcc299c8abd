package csvparser

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Decode converts a raw payload in the named encoding to a UTF-8 string.
//
// PARAMETERS:
//   - data: The payload bytes as received.
//   - enc: "utf-8" (default), "latin1"/"iso-8859-1", "windows-1252"/"cp1252".
//
// RETURNS:
//   - The decoded text.
//   - An error for an unknown encoding name or undecodable input.
func Decode(data []byte, enc string) (string, error) {
	decoder, err := decoderFor(enc)
	if err != nil {
		return "", err
	}
	if decoder == nil {
		return string(data), nil
	}

	out, err := decoder.Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s payload: %w", enc, err)
	}
	return string(out), nil
}

// decoderFor returns nil for UTF-8, which needs no transformation.
func decoderFor(enc string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "", "utf-8", "utf8", "utf-8-sig":
		return nil, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
}
