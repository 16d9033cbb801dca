package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

func TestCheckConfigCompatibility(t *testing.T) {
	tests := []struct {
		name          string
		binaryVersion string
		configVersion string
		code          errors.ErrorCode
		errorContains string
	}{
		{
			name:          "exact match",
			binaryVersion: "1.2.0",
			configVersion: "1.2.0",
		},
		{
			name:          "config patch higher",
			binaryVersion: "1.2.0",
			configVersion: "1.2.5",
		},
		{
			name:          "binary minor higher",
			binaryVersion: "1.3.0",
			configVersion: "1.2.0",
		},
		{
			name:          "config minor higher",
			binaryVersion: "1.2.0",
			configVersion: "1.3.0",
			code:          errors.ErrCodeVersionMismatch,
			errorContains: "minor version mismatch",
		},
		{
			name:          "major differs",
			binaryVersion: "2.0.0",
			configVersion: "1.2.0",
			code:          errors.ErrCodeVersionMismatch,
			errorContains: "major version mismatch",
		},
		{
			name:          "development binary",
			binaryVersion: "main",
			configVersion: "9.9.9",
		},
		{
			name:          "development config",
			binaryVersion: "1.0.0",
			configVersion: "main",
		},
		{
			name:          "no config version",
			binaryVersion: "1.0.0",
			configVersion: "",
		},
		{
			name:          "v prefix on both",
			binaryVersion: "v1.2.0",
			configVersion: "v1.2.0",
		},
		{
			name:          "prerelease binary",
			binaryVersion: "1.2.0-alpha",
			configVersion: "1.2.0",
		},
		{
			name:          "invalid binary version",
			binaryVersion: "not-a-version",
			configVersion: "1.2.0",
			code:          errors.ErrCodeInvalidVersion,
			errorContains: "invalid binary version",
		},
		{
			name:          "invalid config version",
			binaryVersion: "1.2.0",
			configVersion: "one.two",
			code:          errors.ErrCodeInvalidVersion,
			errorContains: "invalid config version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckConfigCompatibility(tt.binaryVersion, tt.configVersion)
			if tt.code == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code))
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestGetVersion(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	Version = "v1.4.2"
	assert.Equal(t, "v1.4.2", GetVersion())
}
