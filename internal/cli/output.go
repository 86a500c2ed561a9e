package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/espd/espd-web/backend/go-services/internal/espd"
	"gopkg.in/yaml.v3"
)

func render(w io.Writer, v interface{}) error {
	switch output {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("error marshaling yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	}
	return fmt.Errorf("unknown output format %q (want json or yaml)", output)
}

// readDocument loads a JSON document from path, or stdin when path is "-".
func readDocument(path string, stdin io.Reader) (*espd.Document, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var d espd.Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &d, nil
}
