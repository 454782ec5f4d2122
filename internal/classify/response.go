package classify

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/safety-cli/internal/model"
)

// ErrMalformedResponse marks a remote response that does not match the
// expected schema. It is retried like any other failure.
var ErrMalformedResponse = eris.New("classify: malformed response")

type wireItem struct {
	Type         string  `json:"type"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Summary      string  `json:"summary"`
	OriginalText *string `json:"original_text"`
}

type wireLocation struct {
	Incidents      []wireItem `json:"incidents"`
	PositiveEvents []wireItem `json:"positive_events"`
}

// ParseResponse validates a remote response and converts it into a
// classification, keeping the location order of the response. Any schema
// violation yields an error wrapping ErrMalformedResponse.
func ParseResponse(text string) (*model.Classification, error) {
	var root struct {
		Locations json.RawMessage `json:"locations"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(text)), &root); err != nil {
		return nil, eris.Wrapf(ErrMalformedResponse, "decode: %v", err)
	}
	if len(root.Locations) == 0 || string(root.Locations) == "null" {
		return nil, eris.Wrap(ErrMalformedResponse, "missing locations")
	}

	dec := json.NewDecoder(bytes.NewReader(root.Locations))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, eris.Wrap(ErrMalformedResponse, "locations is not an object")
	}

	out := model.NewClassification()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, eris.Wrapf(ErrMalformedResponse, "read location name: %v", err)
		}
		name := strings.TrimSpace(tok.(string))
		var loc wireLocation
		if err := dec.Decode(&loc); err != nil {
			return nil, eris.Wrapf(ErrMalformedResponse, "location %q: %v", name, err)
		}
		if name == "" {
			return nil, eris.Wrap(ErrMalformedResponse, "empty location name")
		}

		out.Ensure(name)
		for _, w := range loc.Incidents {
			inc, err := w.toIncident()
			if err != nil {
				return nil, eris.Wrapf(err, "location %q", name)
			}
			out.AddIncident(name, inc)
		}
		for _, w := range loc.PositiveEvents {
			inc, err := w.toIncident()
			if err != nil {
				return nil, eris.Wrapf(err, "location %q", name)
			}
			out.AddPositiveEvent(name, inc)
		}
	}
	return out, nil
}

func (w wireItem) toIncident() (model.Incident, error) {
	raw := w.Type
	if raw == "" {
		raw = w.Category
	}
	cat, ok := model.ParseCategory(raw)
	if !ok {
		return model.Incident{}, eris.Wrapf(ErrMalformedResponse, "unknown category %q", raw)
	}
	if w.OriginalText == nil {
		return model.Incident{}, eris.Wrap(ErrMalformedResponse, "missing original_text")
	}
	summary := w.Description
	if summary == "" {
		summary = w.Summary
	}
	return model.Incident{
		Category:     cat,
		Summary:      truncateRunes(strings.TrimSpace(summary), MaxSummaryChars),
		OriginalText: *w.OriginalText,
	}, nil
}

// cleanJSON strips markdown fences and surrounding prose from a model reply.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}
