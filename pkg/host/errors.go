package host

import "errors"

var (
	// ErrInvalidCounts indicates ask and min counts that cannot form a request.
	ErrInvalidCounts = errors.New("invalid ask/min count")
	// ErrDuplicateSource indicates two data sources registered under one id.
	ErrDuplicateSource = errors.New("duplicate data source id")
)
