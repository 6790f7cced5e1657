// internal/gripper/recovery.go
package gripper

import "time"

// recoveryPolicy clears recoverable device error states before a command is
// issued. It decides from a fresh status read, never from a cached one.
type recoveryPolicy struct {
	seq *sequencer
}

// clear runs before every command issuance.
//
//	Ready       -> proceed
//	Error       -> acknowledge, settle, proceed
//	OutOfSpec   -> link soft reset, settle, proceed
//	Maintenance -> ErrMaintenanceRequired, no automatic action
func (r recoveryPolicy) clear() (StatusWord, error) {
	w, err := r.seq.readStatus()
	if err != nil {
		return StatusWord{}, err
	}

	switch w.Operating {
	case StatusError:
		if err := r.seq.acknowledge(); err != nil {
			return w, err
		}
		time.Sleep(r.seq.timing.Settle)
	case StatusOutOfSpec:
		if err := r.seq.softReset(); err != nil {
			return w, err
		}
		time.Sleep(r.seq.timing.Settle)
	case StatusMaintenance:
		return w, ErrMaintenanceRequired
	}
	return w, nil
}
