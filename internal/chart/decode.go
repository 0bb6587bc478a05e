package chart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	app_errors "viz-ai/backend/internal/errors"
)

const fence = "```"

// DecodeGenerated turns model output into an untyped JSON tree. Models often
// wrap their answer in a markdown code fence even when told not to, so a
// leading fence line and the closing line are stripped before decoding.
// Numbers are kept as json.Number.
func DecodeGenerated(text string) (any, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", app_errors.ErrGenerationUnavailable)
	}
	return ParseJSON([]byte(StripFences(text)))
}

// StripFences removes a surrounding markdown code fence from text.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, fence) {
		return text
	}
	if lines := strings.Split(text, "\n"); len(lines) > 2 {
		text = strings.Join(lines[1:len(lines)-1], "\n")
	}
	text = strings.ReplaceAll(text, fence+"json", "")
	text = strings.ReplaceAll(text, fence, "")
	return strings.TrimSpace(text)
}

// ParseJSON decodes exactly one JSON value from b.
func ParseJSON(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrJSONDecode, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", app_errors.ErrJSONDecode)
	}
	return v, nil
}
