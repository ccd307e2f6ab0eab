package contract

import "github.com/ameliebergh/traject/internal/app"

type HealthRequest = app.HealthRequest

func NewHealthRequest(scopeID string) HealthRequest {
	return app.NewHealthRequest(scopeID)
}

type DependencyHealthView = app.DependencyHealthView

type HealthSummary = app.HealthSummary

type HealthResponse = app.HealthResponse

type HealthErrorCode = app.HealthErrorCode

const (
	HealthErrInvalidScope HealthErrorCode = app.HealthErrInvalidScope
)

type HealthError = app.HealthError
