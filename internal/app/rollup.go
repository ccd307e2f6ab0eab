package app

import (
	"time"

	"github.com/ameliebergh/traject/internal/domain"
)

type RollupRequest struct {
	Now       *time.Time
	ScopeID   string
	Start     *time.Time
	End       *time.Time
	RootID    *string
	DoneOnly  bool
	UseEffort bool
}

func NewRollupRequest(scopeID string) RollupRequest {
	return RollupRequest{ScopeID: scopeID}
}

type RollupResponse struct {
	GeneratedAt time.Time
	ScopeID     string
	ScopeName   string
	LeafCount   int
	Series      []domain.DailyRollup
	Latest      *domain.DailyRollup
	Warnings    []string
}

type RollupErrorCode string

const (
	RollupErrInvalidScope  RollupErrorCode = "INVALID_SCOPE"
	RollupErrInvalidWindow RollupErrorCode = "INVALID_WINDOW"
	RollupErrUnknownRoot   RollupErrorCode = "UNKNOWN_ROOT"
)

type RollupError struct {
	Code    RollupErrorCode
	Message string
}

func (e *RollupError) Error() string {
	return string(e.Code) + ": " + e.Message
}
