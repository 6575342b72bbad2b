package core

import (
	"encoding/json"
	"io"
)

// MarshalRoots pretty-prints root records as JSON.
func MarshalRoots(w io.Writer, roots []RootRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(roots)
}

// UnmarshalRoots decodes root records written by MarshalRoots.
func UnmarshalRoots(r io.Reader) ([]RootRecord, error) {
	var rs []RootRecord
	if err := json.NewDecoder(r).Decode(&rs); err != nil {
		return nil, err
	}
	return rs, nil
}
