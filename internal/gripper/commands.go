// internal/gripper/commands.go
package gripper

// Register map and command words.
// These values define the device protocol and MUST NOT be configurable.

// ---- REGISTER MAP ----

// regStatus is the status word (input register, read).
const regStatus uint16 = 0x0001

// regPosition is the finger position, big-endian f32 across two registers (read).
const regPosition uint16 = 0x0003

// regCommand is the start of the command block, up to 4 registers (write).
const regCommand uint16 = 0x0801

// regLinkTimeout is the link inactivity timeout in seconds (write). 0 = never.
const regLinkTimeout uint16 = 0x1120

// ---- COMMAND WORDS ----

// Low byte of a command word is the phase marker; executeBit turns an armed
// word into its execute phase.
const executeBit uint16 = 0x8000

const (
	cmdFastStop      uint16 = 0x0000 // single phase, never combined with executeBit
	cmdAcknowledge   uint16 = 0x0100
	cmdReference     uint16 = 0x0200
	cmdRelease       uint16 = 0x0300
	cmdGrip          uint16 = 0x0400
	cmdMove          uint16 = 0x0500
	cmdMeasureStroke uint16 = 0x0700
	cmdStop          uint16 = 0x0800
	cmdCalibrate     uint16 = 0x0900
)
