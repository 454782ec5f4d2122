package pipeline

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/safety-cli/internal/model"
)

// Output formats accepted by WriteReport.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ParsedPath returns the location artifact path for a PDF: the same base
// name with a _parsed.json suffix, in the same directory.
func ParsedPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + "_parsed.json"
}

// WriteLocations writes the report's location mapping to path as JSON.
func WriteLocations(path string, r *model.Report) error {
	data, err := json.MarshalIndent(r.Locations, "", "  ")
	if err != nil {
		return eris.Wrap(err, "pipeline: marshal locations")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return eris.Wrapf(err, "pipeline: write %s", path)
	}
	return nil
}

// WriteReport writes the full report to w in the given format.
func WriteReport(w io.Writer, r *model.Report, format string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return eris.Wrap(err, "pipeline: marshal report")
	}

	switch format {
	case FormatJSON, "":
		_, err = w.Write(append(data, '\n'))
	case FormatYAML:
		// Round-trip through JSON so YAML keys follow the json tags.
		var doc map[string]any
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return eris.Wrap(err, "pipeline: decode report")
		}
		out, yerr := yaml.Marshal(normalizeNumbers(doc))
		if yerr != nil {
			return eris.Wrap(yerr, "pipeline: marshal yaml")
		}
		_, err = w.Write(out)
	default:
		return eris.Errorf("pipeline: unknown format %q", format)
	}
	if err != nil {
		return eris.Wrap(err, "pipeline: write report")
	}
	return nil
}

// normalizeNumbers converts json.Number leaves to int64 or float64 so YAML
// renders them as numbers rather than strings.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
		return t
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}
