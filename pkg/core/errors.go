package core

import (
	"errors"
	"fmt"
)

// NetError reports a timeout or a non-200 HTTP status. StatusCode is zero for
// timeouts.
type NetError struct {
	StatusCode int
	Reason     string
	Err        error
}

func (e *NetError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("network error: code:%d msg:%s", e.StatusCode, e.Reason)
	}
	if e.Err != nil {
		return "network error: " + e.Err.Error()
	}
	return "network error: " + e.Reason
}

func (e *NetError) Unwrap() error { return e.Err }

// BizError reports a failure that is unlikely to succeed on retry without
// changing the request: non-timeout transport failures, encoding problems and
// undecodable responses.
type BizError struct {
	Msg string
	Err error
}

func (e *BizError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("business error: %s: %v", e.Msg, e.Err)
	}
	return "business error: " + e.Msg
}

func (e *BizError) Unwrap() error { return e.Err }

// IsNetError reports whether err is or wraps a *NetError.
func IsNetError(err error) bool {
	var ne *NetError
	return errors.As(err, &ne)
}

// IsBizError reports whether err is or wraps a *BizError.
func IsBizError(err error) bool {
	var be *BizError
	return errors.As(err, &be)
}
