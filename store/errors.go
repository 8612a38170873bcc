package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// ErrUnavailable matches every *UnavailableError through errors.Is.
var ErrUnavailable = errors.New("store unavailable")

// UnavailableError reports a backend failure: I/O, connectivity,
// throttling and permission errors are all treated alike.
type UnavailableError struct {
	// Op is the store operation that failed.
	Op string
	// Code is the backend error code, when the backend reported one.
	Code  string
	Cause error
}

func (e *UnavailableError) Error() string {
	cause := fmt.Sprint(e.Cause)
	// smithy API errors already print their code.
	if e.Code != "" && !strings.Contains(cause, e.Code) {
		return fmt.Sprintf("store %s: %s: %s", e.Op, e.Code, cause)
	}
	return fmt.Sprintf("store %s: %s", e.Op, cause)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// unavailable wraps err for op, lifting the API error code out of
// DynamoDB failures.
func unavailable(op string, err error) error {
	ue := &UnavailableError{Op: op, Cause: err}
	var ae smithy.APIError
	if errors.As(err, &ae) {
		ue.Code = ae.ErrorCode()
	}
	return ue
}
