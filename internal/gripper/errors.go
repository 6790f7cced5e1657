// internal/gripper/errors.go
package gripper

import (
	"errors"
	"fmt"
)

// ErrMaintenanceRequired means the device reports a state that cannot be
// cleared over the bus. No automatic recovery is attempted.
var ErrMaintenanceRequired = errors.New("gripper: maintenance required, device needs manual intervention")

// ErrAcceptTimeout means the device did not latch a command within the
// acceptance poll budget. The link soft reset has already run; the command is
// considered unissued and may be retried by the caller.
var ErrAcceptTimeout = errors.New("gripper: command not accepted within poll budget")

// RangeError reports an argument outside its physical domain.
// It is raised before any register I/O.
type RangeError struct {
	Param    string
	Value    int
	Min, Max int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("gripper: %s out of range: got=%d want=%d..%d", e.Param, e.Value, e.Min, e.Max)
}
