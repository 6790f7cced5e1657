// internal/config/normalize.go
package config

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	g := &cfg.Gripper

	if g.TimeoutMs == 0 {
		g.TimeoutMs = 5000
	}

	// ------------------------------------------------------------
	// HANDSHAKE TIMING DEFAULTS
	// ------------------------------------------------------------

	h := &g.Handshake
	if h.SettleMs == 0 {
		h.SettleMs = 100
	}
	if h.ArmDelayMs == 0 {
		h.ArmDelayMs = 50
	}
	if h.AcceptBudget == 0 {
		h.AcceptBudget = 1000
	}
	if h.SuccessPollMs == 0 {
		h.SuccessPollMs = 50
	}
	if h.SuccessDelayMs == 0 {
		h.SuccessDelayMs = 1000
	}
}
