package hydrogen

// Option configures a Server at construction time.
type Option interface {
	applyConfig(*config)
}

type optionFunc func(*config)

func (f optionFunc) applyConfig(c *config) { f(c) }

// WithAddr sets the bind host. Default "0.0.0.0".
func WithAddr(addr string) Option {
	return optionFunc(func(c *config) { c.addr = addr })
}

// WithPort sets the bind port. Default 0 (kernel-assigned).
func WithPort(port int) Option {
	return optionFunc(func(c *config) { c.port = port })
}

// WithMaxThreads sets the fixed worker pool size. Default 4.
func WithMaxThreads(n int) Option {
	return optionFunc(func(c *config) { c.maxThreads = n })
}

// WithPreAllocated sets the initial capacity of the live connection
// registry. Default 64.
func WithPreAllocated(n int) Option {
	return optionFunc(func(c *config) { c.preAllocated = n })
}

// WithAutoGOMAXPROCS enables automatic GOMAXPROCS tuning to the
// container's CPU quota via go.uber.org/automaxprocs, applied once
// during Server.ListenAndServe before the acceptor starts. This sizes
// the fixed worker pool's host correctly under cgroup CPU limits.
func WithAutoGOMAXPROCS(enabled bool) Option {
	return optionFunc(func(c *config) { c.autoGOMAXPROCS = enabled })
}

// WithAutoGOMEMLIMIT enables automatic GOMEMLIMIT tuning to the
// container's memory quota via github.com/KimMachineGun/automemlimit,
// applied once during Server.ListenAndServe before the acceptor starts.
func WithAutoGOMEMLIMIT(enabled bool) Option {
	return optionFunc(func(c *config) { c.autoGOMEMLIMIT = enabled })
}

func resolveOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyConfig(&cfg)
	}
	return cfg
}
