package handler

import "errors"

var (
	errNotAuthorized  = errors.New("user is not authorized")
	errInvalidPostID  = errors.New("invalid post ID")
	errInvalidUserID  = errors.New("invalid user ID")
	errInvalidPetID   = errors.New("invalid pet ID")
	errRecordNotFound = errors.New("record not found")
)
