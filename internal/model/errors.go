package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomExists     = errors.New("room already exists")
	ErrRoomFull       = errors.New("room is full")
	ErrAlreadyStarted = errors.New("game has already started")

	// Player errors
	ErrPlayerNotFound     = errors.New("player not found")
	ErrMissingPreferences = errors.New("preference categories must not be empty")
	ErrInvalidPosition    = errors.New("requested position out of range")

	// Role assignment errors
	ErrInsufficientPlayers = errors.New("insufficient players to start game")
	ErrUnsupportedSize     = errors.New("player count outside supported range")
)
