package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// writeOutput renders v as indented JSON or as YAML. YAML goes through JSON first so
// both formats share the json field names.
func writeOutput(w io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml", "yml":
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("convert output: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return fmt.Errorf("encode yaml output: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
