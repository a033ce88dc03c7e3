package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ardufsm/pkg/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_LayersMergeInOrder(t *testing.T) {
	dir := t.TempDir()
	rig := writeFile(t, dir, "rig.yaml", `
log_level: debug
lick_threshold: 850
poll_interval: 2
params:
  REW_DUR: 40
  ITI: 2500
`)
	subject := writeFile(t, dir, "subject.yaml", `
poll_interval: 500us
trials: 200
params:
  ITI: 4000
  RWIN: 30000
`)

	cfg, err := config.Load([]string{rig, subject}, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 850, cfg.LickThreshold)
	assert.Equal(t, 500*time.Microsecond, cfg.PollInterval)
	assert.Equal(t, 200, cfg.Trials)
	assert.Equal(t, map[string]int64{"REW_DUR": 40, "ITI": 4000, "RWIN": 30000}, cfg.Params)
	assert.Equal(t, time.Second, cfg.RetryDelay, "unset keys keep defaults")
}

func TestLoad_BareNumbersAreMilliseconds(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "c.yaml", "retry_delay: 250\n")

	cfg, err := config.Load([]string{path}, nil)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
}

func TestLoad_EnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "c.yaml", "fake_responses: false\nparams:\n  REW: 1\n")

	cfg, err := config.Load([]string{path}, []string{
		"HOME=/root",
		"ARDUFSM_FAKE_RESPONSES=true",
		"ARDUFSM_SEED=99",
		"ARDUFSM_POLL_INTERVAL=3",
		"ARDUFSM_PARAM_REW=2",
		"ARDUFSM_PARAM_mrt=4",
	})
	require.NoError(t, err)

	assert.True(t, cfg.FakeResponses)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 3*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, map[string]int64{"REW": 2, "MRT": 4}, cfg.Params)
}

func TestLoad_UnrelatedEnvironmentIgnored(t *testing.T) {
	cfg, err := config.Load(nil, []string{
		"ARDUFSM_DEBUG=1",
		"ARDUFSM_PARAMS=oops",
		"ARDUFSM_TRIALS=4",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Trials)
	assert.Empty(t, cfg.Params)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "lick_treshold: 10\n"},
		{"bad yaml", "params: [\n"},
		{"threshold out of range", "lick_threshold: 2000\n"},
		{"bad level", "log_level: loud\n"},
		{"negative trials", "trials: -1\n"},
		{"go fraction", "go_fraction: 1.5\n"},
		{"non-integer param", "params:\n  REW: yes please\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "bad.yaml", tt.content)
			_, err := config.Load([]string{path}, nil)
			assert.Error(t, err)
		})
	}

	_, err := config.Load([]string{filepath.Join(dir, "missing.yaml")}, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "ARDUFSM_TEST_DOTENV=from-file\nARDUFSM_TEST_PRESET=from-file\n")
	t.Setenv("ARDUFSM_TEST_PRESET", "from-env")

	require.NoError(t, config.LoadDotEnv(filepath.Join(dir, "absent.env"), path))
	t.Cleanup(func() { os.Unsetenv("ARDUFSM_TEST_DOTENV") })

	assert.Equal(t, "from-file", os.Getenv("ARDUFSM_TEST_DOTENV"))
	assert.Equal(t, "from-env", os.Getenv("ARDUFSM_TEST_PRESET"))
}
