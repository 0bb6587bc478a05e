package chart

import (
	"fmt"

	app_errors "viz-ai/backend/internal/errors"
)

// Result is the outcome of Process.
type Result struct {
	// Document is the validated, themed document.
	Document *Document
	// Repaired is true when the raw document failed validation and was repaired.
	Repaired bool
	// InitialErr is the violation that triggered the repair, nil otherwise.
	InitialErr error
}

// Process validates raw, repairs it once if it is malformed, and themes the
// result. A document that is still invalid after repair is unrecoverable.
func Process(raw any) (*Result, error) {
	doc, err := Parse(raw)
	if err == nil {
		return &Result{Document: Theme(doc)}, nil
	}

	res := &Result{Repaired: true, InitialErr: err}
	doc, err = Parse(Repair(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrUnrecoverableDocument, err)
	}
	res.Document = Theme(doc)
	return res, nil
}
