// internal/gripper/bus.go

// Package gripper drives a single electromechanical gripper actuator over a
// register-based fieldbus link. It owns the command/status protocol: encoding
// physical quantities into the device register layout, the two-phase
// arm/execute handshake, acceptance polling, and error recovery.
package gripper

// RegisterBus is the exact transport contract the driver uses.
// The driver depends on 16-bit registers only; framing, connection setup and
// addressing belong to the implementation.
type RegisterBus interface {
	ReadRegisters(addr, qty uint16) ([]uint16, error)
	WriteRegister(addr, value uint16) error
	WriteRegisters(addr uint16, values []uint16) error
	Close() error
}
