package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		level       string
		development bool
		wantErr     bool
	}{
		{name: "DebugDevelopment", level: "debug", development: true},
		{name: "InfoProduction", level: "info", development: false},
		{name: "WarnLevel", level: "warn", development: false},
		{name: "ErrorLevel", level: "error", development: true},
		{name: "InvalidLevel", level: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			log, err := NewLogger(tt.level, tt.development)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, log)
		})
	}
}

func TestWithComponent(t *testing.T) {
	t.Parallel()

	log := NewNopLogger()
	child := log.WithComponent("projector")
	require.NotNil(t, child)
	require.NotSame(t, log, child)
}

type fakeLoggingConfig struct {
	defaultLevel    string
	development     bool
	componentLevels map[string]string
}

func (f *fakeLoggingConfig) GetComponentLevel(component string) string {
	return f.componentLevels[component]
}

func (f *fakeLoggingConfig) GetDefaultLevel() string { return f.defaultLevel }
func (f *fakeLoggingConfig) IsDevelopment() bool     { return f.development }

func TestNewComponentLoggerFromConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		component string
		config    LoggingConfig
	}{
		{
			name:      "component with specific level",
			component: "syncer",
			config: &fakeLoggingConfig{
				defaultLevel:    "info",
				componentLevels: map[string]string{"syncer": "debug"},
			},
		},
		{
			name:      "component using default level",
			component: "projector",
			config: &fakeLoggingConfig{
				defaultLevel:    "warn",
				componentLevels: map[string]string{},
			},
		},
		{
			name:      "nil config uses defaults",
			component: "api",
			config:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			log := NewComponentLoggerFromConfig(tt.component, tt.config)
			require.NotNil(t, log)
		})
	}
}

func TestGetDefaultLogger(t *testing.T) {
	first := GetDefaultLogger()
	require.NotNil(t, first)
	require.Same(t, first, GetDefaultLogger())
}
