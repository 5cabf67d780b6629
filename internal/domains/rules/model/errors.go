package model

import "errors"

var (
	ErrRulesNotFound = errors.New("planning rules template not found")
	ErrNoActiveRules = errors.New("no active planning rules template")
	ErrInvalidRules  = errors.New("planning rules failed validation")
)
