package domain

import "errors"

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrMatchNotFound       = errors.New("match not found")
	ErrInteractionNotFound = errors.New("interaction not found")
	ErrInteractionExists   = errors.New("interaction already exists")
	ErrCannotInteractSelf  = errors.New("cannot interact with yourself")
	ErrInvalidInteraction  = errors.New("invalid interaction kind")
	ErrFetchInFlight       = errors.New("candidate fetch already in flight")

	ErrCommentNotFound   = errors.New("comment not found")
	ErrNotCommentAuthor  = errors.New("only the author can delete a comment")
	ErrEditWindowExpired = errors.New("comment can no longer be edited")
)
