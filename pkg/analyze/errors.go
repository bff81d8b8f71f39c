package analyze

import "errors"

var (
	// ErrEmptyImage is returned when a detector or classifier is given a
	// zero-length or undecodable image.
	ErrEmptyImage = errors.New("analyze: empty or undecodable image")

	// ErrNoObservation is returned when a collaborator ran but produced
	// nothing usable for the region it was asked about.
	ErrNoObservation = errors.New("analyze: no observation")

	// ErrClosed is returned when a collaborator is used after Close.
	ErrClosed = errors.New("analyze: collaborator closed")
)
