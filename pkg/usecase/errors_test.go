package usecase_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/usecase"
)

func TestErrors_ErrorsAreDistinct(t *testing.T) {
	errs := []error{
		usecase.ErrCompanionUnavailable,
		model.ErrInvalidInput,
		model.ErrCapability,
		model.ErrPersistence,
		model.ErrNotFound,
	}

	for i, a := range errs {
		for j, b := range errs {
			if i != j {
				gt.Bool(t, errors.Is(a, b)).False()
			}
		}
	}
}
