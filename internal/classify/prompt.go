package classify

import "strings"

// ParagraphMarker precedes every paragraph in the prompt payload.
const ParagraphMarker = "===PARA==="

// InstructionHeader tells the remote model what to extract and the exact
// JSON shape to return.
const InstructionHeader = `You are given several paragraphs from a local newspaper, each preceded by ` + ParagraphMarker + `.
Extract all content relevant to crime, safety, public hazards, accidents, emergencies,
police actions, protests, public disturbances and safety improvements.

For each extracted paragraph:
- Identify the location(s) mentioned, using standardized place names.
- Classify it into exactly one category: violent_crime, property_crime,
  public_disturbance, accident, safety_measure, police_action, other.
- Write a 1-2 sentence summary (at most 200 characters).
- Copy the full original paragraph verbatim.

Items categorized police_action or safety_measure go under "positive_events";
all others go under "incidents". If a paragraph involves multiple locations,
create an entry under each location with the same category, summary and paragraph.

Respond with JSON only, no prose, in exactly this shape:
{"locations": {"<place name>": {"incidents": [{"type": "<category>", "description": "<summary>", "original_text": "<paragraph>"}], "positive_events": [...]}}}

Do not invent facts. Do not add extra interpretation.`

// BuildPayload joins paragraphs into the prompt payload.
func BuildPayload(paragraphs []string) string {
	parts := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		parts[i] = ParagraphMarker + "\n" + p
	}
	return strings.Join(parts, "\n\n")
}
