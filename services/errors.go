package services

import "errors"

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrForbidden       = errors.New("forbidden")
	ErrEmailTaken      = errors.New("email or username already in use")
	ErrBadCredentials  = errors.New("invalid email or password")
)
