package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// noteWriteSchema is the body accepted by create and update. Only the
// presence and type of text are checked; an empty string is allowed.
const noteWriteSchema = `{
	"$id": "note.write",
	"type": "object",
	"properties": {
		"text": {"type": "string"},
		"email": {"type": "string"}
	},
	"required": ["text"]
}`

var compiledNoteWrite = mustCompile(gojsonschema.NewStringLoader(noteWriteSchema))

func mustCompile(l gojsonschema.JSONLoader) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(l)
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return s
}

// validateNoteWrite checks a raw request body against noteWriteSchema.
func validateNoteWrite(body []byte) error {
	result, err := compiledNoteWrite.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("bad json: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return nil
}
