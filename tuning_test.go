package hydrogen

import "testing"

func TestApplyProcessTuning_DisabledIsNoop(t *testing.T) {
	// Both tuning hooks default to off; applying them must not touch the
	// runtime or panic.
	applyProcessTuning(defaultConfig())
}

func TestApplyProcessTuning_EnabledDoesNotPanic(t *testing.T) {
	cfg := defaultConfig()
	cfg.autoGOMAXPROCS = true
	cfg.autoGOMEMLIMIT = true
	applyProcessTuning(cfg)
}
