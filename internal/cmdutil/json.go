package cmdutil

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// WriteJSON encodes data as pretty-printed JSON to the given writer.
// Used by commands when --format json or --json is specified.
func WriteJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ReadJSONFile reads and decodes a JSON file into target. The path
// "-" reads from stdin, supporting pipelines like
// `ddog monitor get 1 --json | ... | ddog monitor create -f -`.
func ReadJSONFile(path string, stdin io.Reader, target any) error {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return FlagErrorf("reading %s: %v", path, err)
		}
	}

	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(target); err != nil {
		return FlagErrorf("invalid JSON in %s: %v", path, err)
	}
	return nil
}
