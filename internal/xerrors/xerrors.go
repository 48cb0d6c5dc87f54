package xerrors

import (
	"errors"
	"fmt"
)

// Errorf is fmt.Errorf with a stack record of the caller
func Errorf(format string, args ...interface{}) error {
	return WithStackTrace(fmt.Errorf(format, args...), WithSkipDepth(1))
}

// As is a proxy to errors.As
// This need to single import errors
func As(err error, targets ...interface{}) (ok bool) {
	if err == nil {
		return false
	}
	for _, t := range targets {
		if errors.As(err, t) {
			if !ok {
				ok = true
			}
		}
	}

	return ok
}

// Is is a improved proxy to errors.Is
// This need to single import errors
func Is(err error, targets ...error) bool {
	if len(targets) == 0 {
		panic("empty targets")
	}
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
