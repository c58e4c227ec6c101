package api

import (
	"time"

	"playbox/errs"
)

// Details identifies the request that failed.
type Details struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	Route     string    `json:"route"`
	Timestamp time.Time `json:"timestamp"`
}

// Error is the single failure shape returned by Client. It matches
// errs.ErrNetwork or errs.ErrParse through errors.Is.
type Error struct {
	Message string    `json:"error"`
	Kind    errs.Kind `json:"-"`
	Status  int       `json:"-"`
	Timeout bool      `json:"-"`
	Details Details   `json:"details"`
	Err     error     `json:"-"`
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	s := e.Kind.Sentinel()
	return s != nil && target == s
}
