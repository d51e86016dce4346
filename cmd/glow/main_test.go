package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		config       string
		args         []string
		expectedExit int
	}{
		{
			name: "Success with valid config",
			config: `version: "1"
modules:
  wave:
    inputs: [x]
    nodes:
      - name: s
        op: sin
        args: [x]
    output: s
`,
			args:         []string{"glow", "run", "wave", "0.5"},
			expectedExit: 0,
		},
		{
			name:         "Error with missing config",
			config:       "",
			args:         []string{"glow", "-c", "nonexistent.yaml", "run", "wave", "0.5"},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()

			if tt.config != "" {
				require.NoError(t, os.WriteFile(tmpDir+"/glow.yaml", []byte(tt.config), 0o600))
			}

			originalWd, _ := os.Getwd()
			require.NoError(t, os.Chdir(tmpDir))
			defer func() {
				_ = os.Chdir(originalWd)
			}()

			os.Args = tt.args

			exitCode := run()
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}
