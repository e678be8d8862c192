package generation

// Response schemas passed to the API for structured operations. Field
// names match the decode targets in service.go exactly.

const vocabularyWordSchema = `{
	"type": "object",
	"properties": {
		"native": {"type": "string"},
		"meaning": {"type": "string"},
		"pronunciation": {"type": "string"}
	},
	"required": ["native", "meaning", "pronunciation"]
}`

const coreSchema = `{
	"type": "object",
	"properties": {
		"description": {"type": "string"},
		"grammar": {
			"type": "object",
			"properties": {
				"wordOrder": {"type": "string"},
				"pluralRule": {"type": "string"},
				"tenseRule": {"type": "string"},
				"adjectivePlacement": {"type": "string"}
			},
			"required": ["wordOrder", "pluralRule", "tenseRule", "adjectivePlacement"]
		},
		"vocabulary": {
			"type": "array",
			"items": ` + vocabularyWordSchema + `
		}
	},
	"required": ["description", "grammar", "vocabulary"]
}`

const extendSchema = `{
	"type": "object",
	"properties": {
		"vocabulary": {
			"type": "array",
			"items": ` + vocabularyWordSchema + `
		}
	},
	"required": ["vocabulary"]
}`

const translationSchema = `{
	"type": "object",
	"properties": {
		"translation": {"type": "string"},
		"pronunciation": {"type": "string"},
		"breakdown": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"word": {"type": "string"},
					"meaning": {"type": "string"}
				},
				"required": ["word", "meaning"]
			}
		}
	},
	"required": ["translation", "pronunciation", "breakdown"]
}`

const suggestSchema = `{
	"type": "object",
	"properties": {
		"phonemes": {
			"type": "array",
			"items": {"type": "string"}
		}
	},
	"required": ["phonemes"]
}`
