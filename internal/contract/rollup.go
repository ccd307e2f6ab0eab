package contract

import "github.com/ameliebergh/traject/internal/app"

type RollupRequest = app.RollupRequest

func NewRollupRequest(scopeID string) RollupRequest {
	return app.NewRollupRequest(scopeID)
}

type RollupResponse = app.RollupResponse

type RollupErrorCode = app.RollupErrorCode

const (
	RollupErrInvalidScope  RollupErrorCode = app.RollupErrInvalidScope
	RollupErrInvalidWindow RollupErrorCode = app.RollupErrInvalidWindow
	RollupErrUnknownRoot   RollupErrorCode = app.RollupErrUnknownRoot
)

type RollupError = app.RollupError
