package util

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDirectionNotFound = errors.New("direction not found")
	ErrCourseNotFound    = errors.New("course not found")
	ErrMaterialNotFound  = errors.New("material not found")
	ErrNoteNotFound      = errors.New("note not found")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrInvalidPercent    = errors.New("progress percent must be between 0 and 100")
	ErrNegativeTimeSpent = errors.New("time spent delta must not be negative")
	ErrInvalidInitData   = errors.New("invalid telegram init data")
)
