package io

import (
	"bytes"
	"encoding/hex"

	"lukechampine.com/blake3"

	"github.com/matzehuels/graphsketch/pkg/errors"
	"github.com/matzehuels/graphsketch/pkg/graph"
)

// Text formats understood by [Marshal] and [Unmarshal].
const (
	FormatJSON = errors.FormatJSON
	FormatYAML = errors.FormatYAML
)

// Formats lists the text formats in preference order.
var Formats = []string{FormatJSON, FormatYAML}

// Marshal encodes s in format ("json" or "yaml").
func Marshal(s *graph.Snapshot, format string) ([]byte, error) {
	f, err := errors.ValidateFormat(format, Formats...)
	if err != nil {
		return nil, err
	}
	if f == FormatYAML {
		return marshalYAML(s)
	}
	var buf bytes.Buffer
	if err := WriteJSON(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data in format. On error no snapshot is returned.
func Unmarshal(data []byte, format string) (*graph.Snapshot, error) {
	f, err := errors.ValidateFormat(format, Formats...)
	if err != nil {
		return nil, err
	}
	if f == FormatYAML {
		return ReadYAML(bytes.NewReader(data))
	}
	return ReadJSON(bytes.NewReader(data))
}

// Fingerprint returns the hex BLAKE3-256 digest of the canonical JSON
// encoding of s. Equal snapshots have equal fingerprints.
func Fingerprint(s *graph.Snapshot) string {
	data, err := Marshal(s, FormatJSON)
	if err != nil {
		// Snapshots only hold finite weights, so encoding cannot fail.
		panic(err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
