package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/graphsketch/pkg/errors"
	"github.com/matzehuels/graphsketch/pkg/graph"
)

// ReadJSON decodes a JSON graph from r.
//
// The input must be a single object in the format described in the package
// documentation. ReadJSON returns INVALID_FORMAT if the text does not parse
// and INVALID_GRAPH if the decoded graph breaks an invariant. It never
// returns a partially built snapshot.
func ReadJSON(r io.Reader) (*graph.Snapshot, error) {
	var doc document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "decode json: trailing data after graph")
	}
	return doc.snapshot()
}

// ImportJSON reads a JSON file at path and returns the decoded snapshot.
// A missing file yields FILE_NOT_FOUND; decoding errors are those of
// [ReadJSON].
func ImportJSON(path string) (*graph.Snapshot, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
