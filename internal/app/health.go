package app

import (
	"time"

	"github.com/ameliebergh/traject/internal/domain"
)

type HealthRequest struct {
	Now            *time.Time
	ScopeID        string
	IncludeRemoved bool
}

func NewHealthRequest(scopeID string) HealthRequest {
	return HealthRequest{ScopeID: scopeID}
}

type DependencyHealthView struct {
	DependencyID    string
	SourceID        string
	SourceTitle     string
	TargetID        string
	TargetTitle     string
	State           domain.DependencyState
	Health          domain.DependencyHealth
	SourcePlannedOn *string
	TargetPlannedOn *string
	IsActive        bool
	RemovedOn       *string
}

type HealthSummary struct {
	GeneratedAt     time.Time
	CountsTotal     int
	CountsHealthy   int
	CountsAtRisk    int
	CountsUnhealthy int
	PolicyMessage   string
}

type HealthResponse struct {
	Summary      HealthSummary
	ScopeID      string
	ScopeName    string
	Dependencies []DependencyHealthView
	Warnings     []string
}

type HealthErrorCode string

const (
	HealthErrInvalidScope HealthErrorCode = "INVALID_SCOPE"
)

type HealthError struct {
	Code    HealthErrorCode
	Message string
}

func (e *HealthError) Error() string {
	return string(e.Code) + ": " + e.Message
}
