package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{name: "default", cfg: DefaultConfig(), wantLevel: zapcore.InfoLevel},
		{name: "debug development", cfg: Config{Level: "debug", Development: true}, wantLevel: zapcore.DebugLevel},
		{name: "warn", cfg: Config{Level: "warn"}, wantLevel: zapcore.WarnLevel},
		{name: "bad level", cfg: Config{Level: "chatty"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Error(t, tt.cfg.Validate())
				return
			}
			require.NoError(t, err)
			assert.NoError(t, tt.cfg.Validate())
			assert.True(t, logger.Core().Enabled(tt.wantLevel))
			assert.False(t, logger.Core().Enabled(tt.wantLevel-1))
		})
	}
}
