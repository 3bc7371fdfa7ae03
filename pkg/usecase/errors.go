package usecase

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/model"
)

var (
	// ErrCompanionUnavailable is the capability failure used when no AI is configured
	ErrCompanionUnavailable = goerr.New("conversational AI is not configured")
)

// outcome classifies the result of an AI call for the fallback decision
type outcome int

const (
	outcomeSucceeded outcome = iota
	outcomeCapabilityFailed
	outcomeFatal
)

func classify(err error) outcome {
	switch {
	case err == nil:
		return outcomeSucceeded
	case errors.Is(err, model.ErrCapability):
		return outcomeCapabilityFailed
	default:
		return outcomeFatal
	}
}
