package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ardufsm/pkg/adapters/clock"
	"github.com/aretw0/ardufsm/pkg/config"
)

// tickingClock moves forward a little on every read, the way a fast control loop
// sees time pass between polls.
type tickingClock struct {
	*clock.Manual
	step time.Duration
}

func (c *tickingClock) Now() time.Duration {
	c.Advance(c.step)
	return c.Manual.Now()
}

// shortTrial keeps every timed state at a millisecond so sessions finish fast.
var shortTrial = map[string]int64{
	"STIMDUR": 1,
	"RWIN":    1,
	"ITI":     1,
	"TO":      1,
	"IRI":     1,
	"REW_DUR": 1,
}

func TestRunSession_HostLink(t *testing.T) {
	cfg := config.Default()
	cfg.Trials = 1
	cfg.Params = shortTrial
	cfg.RetryDelay = time.Millisecond

	var stdout, stderr bytes.Buffer
	err := RunSession(context.Background(), SessionOptions{
		Config: cfg,
		Stdin:  strings.NewReader("SET STPRIDX 1\nSET REW 2\nRELEASE_TRL\n"),
		Stdout: &stdout,
		Stderr: &stderr,
	})
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "DBG begin setup")
	assert.Contains(t, out, "TRL_RELEASED")
	assert.Contains(t, out, "TRLP STPRIDX 1")
	assert.Contains(t, out, "TRLR OUTC")
	assert.Contains(t, stderr.String(), "| correct_rejection | 1 |")
	assert.Contains(t, stderr.String(), "session=")
}

func TestRunSession_Simulated(t *testing.T) {
	cfg := config.Default()
	cfg.Simulate = true
	cfg.Trials = 3
	cfg.Seed = 7
	cfg.Params = shortTrial

	metricsPath := filepath.Join(t.TempDir(), "metrics.prom")
	var stdout, stderr bytes.Buffer
	err := RunSession(context.Background(), SessionOptions{
		Config:     cfg,
		Stdout:     &stdout,
		Stderr:     &stderr,
		MetricsOut: metricsPath,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(stdout.String(), "TRL_RELEASED"))
	assert.Contains(t, stderr.String(), "3 trials")

	dump, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(dump), "ardufsm_trials_total")
	assert.Contains(t, string(dump), "ardufsm_state_transitions_total")
}

func TestRunSession_SimulatedTrialsReachResponseWindow(t *testing.T) {
	cfg := config.Default()
	cfg.Simulate = true
	cfg.Trials = 10
	cfg.Seed = 7
	// Stimulus keeps its default 2 s.
	cfg.Params = map[string]int64{"RWIN": 1000, "ITI": 1, "TO": 1}

	var stdout bytes.Buffer
	err := RunSession(context.Background(), SessionOptions{
		Config: cfg,
		Stdout: &stdout,
		Stderr: &bytes.Buffer{},
		Clock:  &tickingClock{Manual: clock.NewManual(0), step: 10 * time.Microsecond},
	})
	require.NoError(t, err)

	out := stdout.String()
	toResponse := strings.Count(out, " ST_CHG 2 4\n")
	toError := strings.Count(out, " ST_CHG 2 5\n")
	assert.Equal(t, 10, toResponse+toError)
	assert.Positive(t, toResponse, "stimulus never ran to the response window")
}

func TestRunSession_CancelledDuringSetup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	err := RunSession(ctx, SessionOptions{
		Config: config.Default(),
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	})
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "session interrupted")
	assert.Contains(t, stderr.String(), "0 trials")
}

func TestRunSession_BadLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "loud"

	err := RunSession(context.Background(), SessionOptions{
		Config: cfg,
		Stdin:  strings.NewReader(""),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	})
	assert.Error(t, err)
}

func TestRunSession_MissingPort(t *testing.T) {
	cfg := config.Default()
	cfg.Port = filepath.Join(t.TempDir(), "ttyACM9")

	err := RunSession(context.Background(), SessionOptions{
		Config: cfg,
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open port")
}

func TestSignalContext_CancelWithoutSignal(t *testing.T) {
	sc := NewSignalContext(context.Background())
	sc.Cancel()
	<-sc.Done()
	assert.Nil(t, sc.Signal())
}
