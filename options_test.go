package hydrogen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOptions_Defaults(t *testing.T) {
	cfg := resolveOptions(nil)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestResolveOptions_AppliesInOrderAndIgnoresNil(t *testing.T) {
	cfg := resolveOptions([]Option{
		WithAddr("127.0.0.1"),
		nil,
		WithPort(9000),
		WithMaxThreads(8),
		WithPreAllocated(128),
		WithAutoGOMAXPROCS(true),
		WithAutoGOMEMLIMIT(true),
	})

	assert.Equal(t, "127.0.0.1", cfg.addr)
	assert.Equal(t, 9000, cfg.port)
	assert.Equal(t, 8, cfg.maxThreads)
	assert.Equal(t, 128, cfg.preAllocated)
	assert.True(t, cfg.autoGOMAXPROCS)
	assert.True(t, cfg.autoGOMEMLIMIT)
}

func TestResolveOptions_LaterOptionWins(t *testing.T) {
	cfg := resolveOptions([]Option{WithPort(1), WithPort(2)})
	assert.Equal(t, 2, cfg.port)
}

func TestConfig_Validate(t *testing.T) {
	cases := map[string]struct {
		cfg     config
		wantErr bool
	}{
		"default is valid":      {cfg: defaultConfig(), wantErr: false},
		"negative port invalid": {cfg: config{port: -1, maxThreads: 1}, wantErr: true},
		"port over range":       {cfg: config{port: 70000, maxThreads: 1}, wantErr: true},
		"zero maxThreads":       {cfg: config{port: 0, maxThreads: 0}, wantErr: true},
		"negative preAllocated": {cfg: config{port: 0, maxThreads: 1, preAllocated: -1}, wantErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.cfg.validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
