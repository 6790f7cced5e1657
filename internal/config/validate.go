// internal/config/validate.go
package config

import (
	"fmt"
	"net"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	g := cfg.Gripper

	// ------------------------------------------------------------
	// TRANSPORT
	// ------------------------------------------------------------

	if g.Endpoint == "" {
		return fmt.Errorf("gripper: endpoint is required")
	}
	if _, _, err := net.SplitHostPort(g.Endpoint); err != nil {
		return fmt.Errorf("gripper: endpoint %q is not host:port: %v", g.Endpoint, err)
	}
	if g.TimeoutMs < 0 {
		return fmt.Errorf("gripper: timeout_ms must be >= 0, got %d", g.TimeoutMs)
	}

	// ------------------------------------------------------------
	// HANDSHAKE TIMING
	// ------------------------------------------------------------

	h := g.Handshake
	if h.SettleMs < 0 {
		return fmt.Errorf("gripper: handshake settle_ms must be >= 0, got %d", h.SettleMs)
	}
	if h.ArmDelayMs < 0 {
		return fmt.Errorf("gripper: handshake arm_delay_ms must be >= 0, got %d", h.ArmDelayMs)
	}
	if h.AcceptBudget < 0 {
		return fmt.Errorf("gripper: handshake accept_budget must be >= 0, got %d", h.AcceptBudget)
	}
	if h.SuccessPollMs < 0 {
		return fmt.Errorf("gripper: handshake success_poll_ms must be >= 0, got %d", h.SuccessPollMs)
	}
	if h.SuccessDelayMs < 0 {
		return fmt.Errorf("gripper: handshake success_delay_ms must be >= 0, got %d", h.SuccessDelayMs)
	}

	return nil
}
