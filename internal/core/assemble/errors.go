package assemble

import (
	"errors"
	"fmt"
)

// ErrPerCase marks a recoverable failure while resolving a single case. The
// batch driver logs it with the case id and continues; it never aborts a run.
var ErrPerCase = errors.New("case resolution failed")

func perCaseError(caseID int, cause interface{}) error {
	return fmt.Errorf("%w: case %d: %v", ErrPerCase, caseID, cause)
}
