// Package validation checks knowledge seed documents against JSON Schemas
// before they are loaded into the pipeline. Malformed entries inside an
// otherwise valid document are the loader's concern; this package rejects
// documents whose overall shape is wrong.
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const intentRulesSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["intent", "patterns"],
		"properties": {
			"intent": {"type": "string"},
			"patterns": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["regex"],
					"properties": {
						"regex": {"type": "string"},
						"flags": {"type": "array", "items": {"type": "string"}}
					}
				}
			}
		}
	}
}`

const gazetteerSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["slotType", "items"],
		"properties": {
			"slotType": {"type": "string"},
			"items": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["canonical"],
					"properties": {
						"canonical": {"type": "string"},
						"aliases": {"type": "array", "items": {"type": "string"}}
					}
				}
			}
		}
	}
}`

const hallsSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"shortDescription": {"type": "string"},
			"address": {"type": "string"},
			"cateringType": {"type": "string"},
			"tags": {"type": "array", "items": {"type": "string"}},
			"lifestyleTags": {"type": "array", "items": {"type": "string"}},
			"facilities": {"type": "array", "items": {"type": "string"}},
			"roomFeaturesCommon": {"type": "array", "items": {"type": "string"}},
			"services": {"type": "array", "items": {"type": "string"}},
			"roomTypes": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["name"],
					"properties": {
						"name": {"type": "string"},
						"ensuite": {"type": "boolean"},
						"tenancyWeeks": {"type": "integer", "minimum": 0},
						"prices": {
							"type": "array",
							"items": {
								"type": "object",
								"required": ["year"],
								"properties": {
									"year": {"type": "string"},
									"perWeekAmount": {"type": ["number", "null"]},
									"totalAmount": {"type": ["number", "null"]}
								}
							}
						}
					}
				}
			},
			"officialUrl": {"type": "string"},
			"contactEmail": {"type": "string"},
			"contactPhone": {"type": "string"}
		}
	}
}`

// ValidateIntentRules checks an intent rules seed document.
func ValidateIntentRules(doc []byte) (*ValidationResult, error) {
	return validateAgainst(intentRulesSchema, doc)
}

// ValidateGazetteer checks a gazetteer seed document.
func ValidateGazetteer(doc []byte) (*ValidationResult, error) {
	return validateAgainst(gazetteerSchema, doc)
}

// ValidateHalls checks a hall knowledge collection.
func ValidateHalls(doc []byte) (*ValidationResult, error) {
	return validateAgainst(hallsSchema, doc)
}

func validateAgainst(schema string, doc []byte) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed to run: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return out, nil
}
