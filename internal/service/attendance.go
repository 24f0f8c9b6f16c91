package service

import (
	"errors"
	"fmt"

	"worktrack/internal/model"
)

var (
	ErrInvalidTransition = errors.New("invalid attendance transition")
	ErrUnknownLogType    = errors.New("unknown log type")
)

// AttendanceState 使用者目前的出勤狀態
type AttendanceState string

const (
	StateCheckedOut AttendanceState = "CHECKED_OUT"
	StateCheckedIn  AttendanceState = "CHECKED_IN"
)

// StateFromLast 由最後一筆紀錄推得狀態；沒有紀錄視為已簽退
func StateFromLast(last *model.LogType) AttendanceState {
	if last != nil && *last == model.LogTypeCheckIn {
		return StateCheckedIn
	}
	return StateCheckedOut
}

// Transition check-in 只能從 CHECKED_OUT，check-out 只能從 CHECKED_IN
func Transition(from AttendanceState, t model.LogType) (AttendanceState, error) {
	if !t.Valid() {
		return from, fmt.Errorf("%w: %q", ErrUnknownLogType, t)
	}
	if t == model.LogTypeCheckIn {
		if from != StateCheckedOut {
			return from, fmt.Errorf("%w: %s while %s", ErrInvalidTransition, t, from)
		}
		return StateCheckedIn, nil
	}
	if from != StateCheckedIn {
		return from, fmt.Errorf("%w: %s while %s", ErrInvalidTransition, t, from)
	}
	return StateCheckedOut, nil
}

// GuardTransition matches store.TransitionGuard.
func GuardTransition(last *model.LogType, next model.LogType) error {
	_, err := Transition(StateFromLast(last), next)
	return err
}
