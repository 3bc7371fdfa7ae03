package model

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrInvalidInput is returned when an identifier or request is malformed.
	// It is raised before any I/O is attempted.
	ErrInvalidInput = goerr.New("invalid input")

	// ErrCapability marks a failure of the conversational AI capability.
	// Use cases recover from it with a degraded reply.
	ErrCapability = goerr.New("conversational AI capability failure")

	// ErrPersistence marks a failure of the document store. It is fatal to the request.
	ErrPersistence = goerr.New("persistence failure")

	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = goerr.New("not found")
)
