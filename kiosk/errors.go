/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kiosk

import (
	"errors"
	"fmt"
)

// ErrLoadFailure matches every error returned by Load.
var ErrLoadFailure = errors.New("unable to load prompts")

// LoadError describes why a question source could not be read.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s from %s: %v", ErrLoadFailure, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoadFailure
}
