package leave

import "errors"

var (
	ErrLeaveTypeNotFound   = errors.New("Leave type not found")
	ErrApplicationNotFound = errors.New("Leave application not found")
	ErrBalanceNotFound     = errors.New("Leave balance not found")
	ErrInsufficientBalance = errors.New("Insufficient leave balance")
	ErrAlreadyReviewed     = errors.New("Leave application already reviewed")
	ErrInvalidDateRange    = errors.New("End date must not be before start date")
	ErrTypeNotOffered      = errors.New("Leave type not offered for this batch")
	ErrLeaveTypeInactive   = errors.New("Leave type is no longer active")
)
