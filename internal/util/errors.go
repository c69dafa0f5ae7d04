package util

import "errors"

var (
	ErrModelNotLoaded      = errors.New("completion model not loaded")
	ErrDifficultyNotLoaded = errors.New("difficulty stats not loaded")
	ErrMissingColumn       = errors.New("required column missing")
	ErrEmptyUpload         = errors.New("uploaded file contains no records")
)
