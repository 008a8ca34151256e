// Package analyze inspects chat-completions response shapes: which fields
// are present, where displayable content lives, and how a captured trace
// compares with a live response.
package analyze

import (
	"github.com/tidwall/gjson"

	"phxdiag/internal/models"
)

// FieldCheck records whether one expected top-level field is present
type FieldCheck struct {
	Name    string
	Present bool
	Type    string
}

// SchemaReport summarizes the shape of a raw chat-completions response
type SchemaReport struct {
	Valid        bool
	TopLevelKeys []string
	Fields       []FieldCheck
	HasChoices   bool
	ChoiceKeys   []string
	HasMessage   bool
	// HasMessageContent is true when choices[0].message.content is a string.
	HasMessageContent bool
	HasText           bool
	MessageRaw        string
}

// Schema inspects the raw response bytes without decoding into structs, so
// unknown fields are reported too.
func Schema(raw []byte) SchemaReport {
	report := SchemaReport{Valid: gjson.ValidBytes(raw)}
	if !report.Valid {
		return report
	}

	parsed := gjson.ParseBytes(raw)
	if !parsed.IsObject() {
		report.Valid = false
		return report
	}

	parsed.ForEach(func(key, _ gjson.Result) bool {
		report.TopLevelKeys = append(report.TopLevelKeys, key.String())
		return true
	})

	for _, field := range models.ExpectedResponseFields() {
		value := parsed.Get(field)
		check := FieldCheck{Name: field, Present: value.Exists()}
		if check.Present {
			check.Type = typeName(value)
		}
		report.Fields = append(report.Fields, check)
	}

	choices := parsed.Get("choices")
	report.HasChoices = choices.IsArray() && len(choices.Array()) > 0
	if !report.HasChoices {
		return report
	}

	first := choices.Array()[0]
	first.ForEach(func(key, _ gjson.Result) bool {
		report.ChoiceKeys = append(report.ChoiceKeys, key.String())
		return true
	})

	message := first.Get("message")
	report.HasMessage = message.Exists()
	if report.HasMessage {
		report.MessageRaw = message.Raw
	}
	report.HasMessageContent = message.Get("content").Type == gjson.String
	report.HasText = first.Get("text").Type == gjson.String

	return report
}

// HasDisplayableContent reports whether either content convention is satisfied
func (r SchemaReport) HasDisplayableContent() bool {
	return r.HasMessageContent || r.HasText
}

func typeName(value gjson.Result) string {
	switch {
	case value.IsObject():
		return "object"
	case value.IsArray():
		return "array"
	case value.Type == gjson.String:
		return "string"
	case value.Type == gjson.Number:
		return "number"
	case value.Type == gjson.True, value.Type == gjson.False:
		return "boolean"
	case value.Type == gjson.Null:
		return "null"
	default:
		return value.Type.String()
	}
}
