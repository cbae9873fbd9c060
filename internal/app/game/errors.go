package game

import "errors"

// Error text doubles as the client-facing error event message.
var (
	ErrRoomNotFound = errors.New("Room not found")
	ErrRoomFull     = errors.New("Room is full")
)

const msgInvalidPayload = "Invalid payload"
