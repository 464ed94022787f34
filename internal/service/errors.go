package service

import "errors"

var (
	ErrEmptyCode           = errors.New("code word is empty")
	ErrUnknownCode         = errors.New("unknown code word")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrUnknownPreference   = errors.New("unknown preference flag")
	ErrBroadcastNotFound   = errors.New("broadcast job not found")
)
