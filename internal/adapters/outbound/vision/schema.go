package vision

import (
	"google.golang.org/genai"

	"github.com/tradecheck/tradecheck/internal/domain"
)

func str(enum ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Enum: enum}
}

func bounded(t genai.Type, lo, hi float64) *genai.Schema {
	return &genai.Schema{Type: t, Minimum: genai.Ptr(lo), Maximum: genai.Ptr(hi)}
}

// responseSchema mirrors domain.VisualObservation for structured output;
// domain.ValidateObservation still runs on every response.
func responseSchema() *genai.Schema {
	issueKeys := make([]string, len(domain.AllIssueKeys))
	for i, k := range domain.AllIssueKeys {
		issueKeys[i] = string(k)
	}
	angles := make([]string, len(domain.AllAngles))
	for i, a := range domain.AllAngles {
		angles[i] = string(a)
	}

	finding := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"issueKey":    str(issueKeys...),
			"title":       str(),
			"description": str(),
			"icon":        str(),
			"severity":    bounded(genai.TypeInteger, domain.MinSeverity, domain.MaxSeverity),
			"confidence":  bounded(genai.TypeNumber, 0, 1),
		},
		Required: []string{"issueKey", "title", "description", "icon", "severity", "confidence"},
	}
	findings := &genai.Schema{Type: genai.TypeArray, Items: finding}

	categories := map[string]*genai.Schema{}
	names := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		categories[string(c)] = findings
		names = append(names, string(c))
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"observations": {Type: genai.TypeObject, Properties: categories, Required: names},
			"cleanliness": str(
				string(domain.CleanlinessRough), string(domain.CleanlinessAverage),
				string(domain.CleanlinessClean), string(domain.CleanlinessExcellent),
			),
			"overallComment": str(),
			"coverage": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"angles":            {Type: genai.TypeArray, Items: str(angles...)},
					"photoCount":        {Type: genai.TypeInteger, Minimum: genai.Ptr(0.0)},
					"photoQualityScore": bounded(genai.TypeNumber, 0, 1),
				},
				Required: []string{"angles", "photoCount", "photoQualityScore"},
			},
		},
		Required: []string{"observations", "cleanliness", "overallComment", "coverage"},
	}
}
