package service

import "errors"

var (
	ErrInternal          = errors.New("internal server error")
	ErrPostNotFound      = errors.New("record not found")
	ErrNotPostOwner      = errors.New("unauthorized")
	ErrUnknownReportType = errors.New("unknown report type")
	ErrInvalidMention    = errors.New("mentions must be a comma-separated list of pet ids")
)
