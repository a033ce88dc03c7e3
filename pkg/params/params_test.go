package params_test

import (
	"testing"

	"github.com/aretw0/ardufsm/pkg/domain"
	"github.com/aretw0/ardufsm/pkg/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandard_Defaults(t *testing.T) {
	store := params.Standard()

	tests := []struct {
		id     params.ParamID
		name   string
		value  int64
		report bool
	}{
		{params.StepperIndex, "STPRIDX", 0, true},
		{params.SpeakerIndex, "SPKRIDX", 0, true},
		{params.StimDuration, "STIMDUR", 2000, true},
		{params.Rewarded, "REW", 0, true},
		{params.RewardDuration, "REW_DUR", 50, false},
		{params.InterRewardInterval, "IRI", 500, false},
		{params.ErrorTimeout, "TO", 6000, false},
		{params.InterTrialInterval, "ITI", 3000, false},
		{params.ResponseWindowDuration, "RWIN", 45000, false},
		{params.MaxRewards, "MRT", 1, false},
		{params.TerminateOnError, "TOE", 1, false},
	}

	require.Equal(t, len(tests), store.Len())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, store.Name(tt.id))
			assert.Equal(t, tt.value, store.Get(tt.id))
			assert.Equal(t, tt.report, store.Report(tt.id))

			id, ok := store.Lookup(tt.name)
			assert.True(t, ok)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestStore_SetByName(t *testing.T) {
	store := params.Standard()

	require.NoError(t, store.SetByName("RWIN", 1200))
	assert.Equal(t, int64(1200), store.Get(params.ResponseWindowDuration))

	err := store.SetByName("NOPE", 1)
	assert.ErrorIs(t, err, domain.ErrUnknownParam)
}

func TestStore_MissingRequired(t *testing.T) {
	store := params.Standard()
	assert.Equal(t, []string{"STPRIDX", "REW"}, store.MissingRequired())

	store.Set(params.StepperIndex, 1)
	store.Set(params.Rewarded, 2)
	assert.Empty(t, store.MissingRequired())
}

func TestStore_Each(t *testing.T) {
	store := params.NewStore([]params.Spec{
		{Name: "A", Default: 1},
		{Name: "B", Default: 2, Report: true},
	})

	var names []string
	var sum int64
	store.Each(func(id params.ParamID, name string, value int64) {
		names = append(names, name)
		sum += value
	})

	assert.Equal(t, []string{"A", "B"}, names)
	assert.Equal(t, int64(3), sum)
	assert.Equal(t, map[string]int64{"A": 1, "B": 2}, store.Snapshot())
}

func TestResults_ResetIsIdempotent(t *testing.T) {
	results := params.NewResults([]params.ResultSpec{
		{Name: "RESP", Default: 0},
		{Name: "OUTC", Default: 7},
	})

	results.Set(params.Response, int64(domain.ResponseGo))
	results.Set(params.Outcome, int64(domain.OutcomeHit))

	results.Reset()
	assert.Equal(t, int64(0), results.Get(params.Response))
	assert.Equal(t, int64(7), results.Get(params.Outcome))

	results.Reset()
	assert.Equal(t, map[string]int64{"RESP": 0, "OUTC": 7}, results.Snapshot())
}

func TestResults_GetByName(t *testing.T) {
	results := params.StandardResults()
	results.Set(params.Outcome, int64(domain.OutcomeMiss))

	v, err := results.GetByName("OUTC")
	require.NoError(t, err)
	assert.Equal(t, int64(domain.OutcomeMiss), v)

	_, err = results.GetByName("XYZ")
	assert.ErrorIs(t, err, domain.ErrUnknownResult)
}

func TestStore_OutOfRangePanics(t *testing.T) {
	store := params.Standard()
	assert.Panics(t, func() { store.Get(params.ParamID(store.Len())) })
}
