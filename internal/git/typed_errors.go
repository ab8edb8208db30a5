package git

import (
	"fmt"
	"strings"
)

// Typed remote-operation errors enabling structured classification without
// string parsing upstream.

type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("%s auth error: %v", e.Op, e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

type RemoteDivergedError struct {
	Op  string
	Err error
}

func (e *RemoteDivergedError) Error() string {
	return fmt.Sprintf("%s rejected, remote diverged: %v", e.Op, e.Err)
}
func (e *RemoteDivergedError) Unwrap() error { return e.Err }

// classifyRemoteError wraps pull/push failures into typed variants when
// possible.
func classifyRemoteError(op string, err error) error {
	if err == nil {
		return nil
	}
	l := strings.ToLower(err.Error())
	switch {
	case strings.Contains(l, "auth"):
		return &AuthError{Op: op, Err: err}
	case strings.Contains(l, "non-fast-forward"):
		return &RemoteDivergedError{Op: op, Err: err}
	default:
		return fmt.Errorf("%s failed: %w", op, err)
	}
}
