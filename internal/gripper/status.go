// internal/gripper/status.go
package gripper

// OperatingStatus is the device operating state, derived fresh from every
// status register read. Never cached across a decision.
type OperatingStatus uint16

const (
	StatusError OperatingStatus = iota
	StatusOutOfSpec
	StatusMaintenance
	StatusReady
)

func (s OperatingStatus) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusOutOfSpec:
		return "out-of-specification"
	case StatusMaintenance:
		return "maintenance-required"
	case StatusReady:
		return "ready"
	}
	return "unknown"
}

// StatusWord is one decoded read of the status register. Transient.
//
// Layout (bit 15 = most significant):
//
//	bit 15    process-command / command accepted
//	bit 14    success
//	bits 8-10 operating status
type StatusWord struct {
	Raw            uint16
	ProcessCommand bool
	Success        bool
	Operating      OperatingStatus
}

// decodeStatus is pure bit extraction, no side effects.
func decodeStatus(raw uint16) StatusWord {
	return StatusWord{
		Raw:            raw,
		ProcessCommand: raw&0x8000 != 0,
		Success:        raw>>14&1 == 1,
		Operating:      OperatingStatus(raw >> 8 & 0x7),
	}
}
