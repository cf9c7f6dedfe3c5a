package checker

import (
	"errors"
	"fmt"

	"github.com/m-manu/ddda-modfix/entity"
)

// ErrNotFixable is returned by Repair for a tree that has nothing to repair it into
var ErrNotFixable = errors.New("mod layout cannot be repaired automatically")

// RepairError records the repair step that failed. The tree is left partially modified and should
// be discarded
type RepairError struct {
	Step entity.Step
	Err  error
}

func (e *RepairError) Error() string {
	return fmt.Sprintf("repair failed at %s: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error
func (e *RepairError) Unwrap() error {
	return e.Err
}
