package service

import "errors"

var (
	ErrTendersNotLoaded = errors.New("tender list is not loaded from the backing store")
	ErrTenderNotFound   = errors.New("tender not found")
	ErrNoActiveTender   = errors.New("no tender is selected")

	ErrInvalidStatus           = errors.New("unknown tender status")
	ErrInvalidStatusTransition = errors.New("tender workflow does not allow this status change")

	ErrUnknownStage         = errors.New("unknown stage")
	ErrDocumentFieldUnknown = errors.New("unknown document field")
	ErrVersionNotFound      = errors.New("document has no such version")
	ErrEditInProgress       = errors.New("field is being edited, finish or cancel the edit first")
)
