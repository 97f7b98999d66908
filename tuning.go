package hydrogen

import (
	"fmt"

	"github.com/KimMachineGun/automemlimit/memlimit"
	"go.uber.org/automaxprocs/maxprocs"
)

// applyProcessTuning runs the opt-in GOMAXPROCS/GOMEMLIMIT sizing hooks.
// It is called once, before the acceptor starts, so the fixed worker
// pool and the Go runtime are sized to the container's cgroup quota
// rather than the host's full capacity.
func applyProcessTuning(cfg config) {
	if cfg.autoGOMAXPROCS {
		undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			logger().Info().Str("component", "tuning").Log(fmt.Sprintf(format, args...))
		}))
		if err != nil {
			logger().Warning().Str("component", "tuning").Err(err).Log("GOMAXPROCS tuning failed, leaving runtime default")
		} else {
			// undo is intentionally discarded: this is a one-shot, process-
			// lifetime setting for a long-running server engine.
			_ = undo
		}
	}

	if cfg.autoGOMEMLIMIT {
		limit, err := memlimit.SetGoMemLimitWithOpts(
			memlimit.WithRatio(0.9),
			memlimit.WithProvider(memlimit.FromCgroup),
		)
		if err != nil {
			logger().Warning().Str("component", "tuning").Err(err).Log("GOMEMLIMIT tuning failed, leaving runtime default")
		} else {
			logger().Info().Str("component", "tuning").Int64("gomemlimit", limit).Log("applied GOMEMLIMIT from cgroup quota")
		}
	}
}
