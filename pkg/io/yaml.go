package io

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/graphsketch/pkg/errors"
	"github.com/matzehuels/graphsketch/pkg/graph"
)

// WriteYAML encodes s as YAML using the JSON schema's field names.
func WriteYAML(s *graph.Snapshot, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fromSnapshot(s)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
	}
	return enc.Close()
}

// ReadYAML decodes a YAML graph from r with the same validation as
// [ReadJSON].
func ReadYAML(r io.Reader) (*graph.Snapshot, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "decode yaml: empty document")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return doc.snapshot()
}

func marshalYAML(s *graph.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteYAML(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
