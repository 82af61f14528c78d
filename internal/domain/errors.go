package domain

import "errors"

// Common domain errors
var (
	// ErrPlanNotFound is returned when the plan file does not exist.
	ErrPlanNotFound = errors.New("plan file not found")

	// ErrInvalidPlan is returned when the plan is structurally unusable
	// (missing name, missing vlan_id, duplicate VLAN ids).
	ErrInvalidPlan = errors.New("invalid network plan")

	// ErrUnknownRole is returned when a network references a role that is
	// not registered.
	ErrUnknownRole = errors.New("unknown network role")
)
