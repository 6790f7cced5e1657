// internal/gripper/builder.go
package gripper

import (
	"time"

	cfg "github.com/tamzrod/modbus-gripper/internal/config"
	gmodbus "github.com/tamzrod/modbus-gripper/internal/gripper/modbus"
)

// Build constructs a connected, referenced Session from validated config.
// The returned closer releases the bus connection.
func Build(c cfg.GripperConfig) (*Session, func() error, error) {
	bus, err := gmodbus.New(gmodbus.Config{
		Endpoint:   c.Endpoint,
		UnitID:     c.UnitID,
		Timeout:    time.Duration(c.TimeoutMs) * time.Millisecond,
		LogTraffic: c.LogTraffic,
	})
	if err != nil {
		return nil, nil, err
	}

	sess, err := NewSession(bus, Timing{
		Settle:       time.Duration(c.Handshake.SettleMs) * time.Millisecond,
		ArmDelay:     time.Duration(c.Handshake.ArmDelayMs) * time.Millisecond,
		AcceptBudget: c.Handshake.AcceptBudget,
		SuccessPoll:  time.Duration(c.Handshake.SuccessPollMs) * time.Millisecond,
		SuccessDelay: time.Duration(c.Handshake.SuccessDelayMs) * time.Millisecond,
	})
	if err != nil {
		// NewSession already closed the bus on init failure.
		return nil, nil, err
	}

	return sess, sess.Close, nil
}
