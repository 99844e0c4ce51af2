package util

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailRegistered   = errors.New("email already registered")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrLessonNotFound    = errors.New("lesson not found")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrBadgeNotFound     = errors.New("badge not found")
	ErrAlreadyCompleted  = errors.New("lesson already completed")
	ErrAlreadyJoined     = errors.New("challenge already joined")
	ErrAlreadyEarned     = errors.New("badge already earned")
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrQuizNotPassed     = errors.New("quiz score below passing threshold")
)
