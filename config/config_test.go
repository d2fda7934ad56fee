package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     WorkerConfig
		wantErr bool
	}{
		{name: "valid", cfg: WorkerConfig{StaleSweepMinutes: 10, StaleAfterMinutes: 1440}},
		{name: "zero sweep cadence", cfg: WorkerConfig{StaleSweepMinutes: 0, StaleAfterMinutes: 1440}, wantErr: true},
		{name: "negative sweep cadence", cfg: WorkerConfig{StaleSweepMinutes: -5, StaleAfterMinutes: 1440}, wantErr: true},
		{name: "zero stale age", cfg: WorkerConfig{StaleSweepMinutes: 10, StaleAfterMinutes: 0}, wantErr: true},
		{name: "absent section", cfg: WorkerConfig{}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
