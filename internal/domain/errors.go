package domain

import "errors"

var (
	ErrInvalidSettings            = errors.New("invalid settings")
	ErrUnknownEventKind           = errors.New("unknown event kind")
	ErrUnknownChatChannel         = errors.New("unknown chat channel")
	ErrUnknownSessionBoundary     = errors.New("unknown session boundary")
	ErrUnsupportedScenarioFormat  = errors.New("unsupported scenario format")
	ErrUnsupportedScenarioVersion = errors.New("unsupported scenario version")
	ErrOutOfOrderStep             = errors.New("scenario step out of order")
)
