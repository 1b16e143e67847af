package cerrors

import (
	"encoding/json"
	"fmt"
)

type ErrorType string

const (
	ErrorTypeNonUserFriendly ErrorType = "NON_USER_FRIENDLY_ERROR"
	ErrorTypeGeneric         ErrorType = "GENERIC_ERROR"
	ErrorTypeChaosResultCRUD ErrorType = "CHAOS_RESULT_CRUD_ERROR"
	ErrorTypeStatusChecks    ErrorType = "STATUS_CHECKS_ERROR"
	ErrorTypeTargetSelection ErrorType = "TARGET_SELECTION_ERROR"
	ErrorTypeChaosInject     ErrorType = "CHAOS_INJECT_ERROR"
	ErrorTypeChaosRevert     ErrorType = "CHAOS_REVERT_ERROR"
	ErrorTypeTimeout         ErrorType = "TIMEOUT"
)

// Error is the user-friendly error reported in the chaosresult
type Error struct {
	ErrorCode ErrorType `json:"errorCode,omitempty"`
	Phase     string    `json:"phase,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Target    string    `json:"target,omitempty"`
}

func (e Error) Error() string {
	out, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf("{\"errorCode\":%q,\"reason\":%q}", e.ErrorCode, e.Reason)
	}
	return string(out)
}

func (e Error) UserFriendly() bool {
	return true
}

func (e Error) ErrorType() ErrorType {
	return e.ErrorCode
}
