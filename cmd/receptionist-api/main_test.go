package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		env  string
		args []string
		want string
	}{
		{"nothing set", "", nil, ""},
		{"env only", "/etc/receptionist.yaml", nil, "/etc/receptionist.yaml"},
		{"flag wins", "/etc/receptionist.yaml", []string{"--config", "local.yaml"}, "local.yaml"},
		{"equals form", "", []string{"-config=local.yaml"}, "local.yaml"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("CONFIG_PATH", tc.env)

			got, err := parseFlags(tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFlags_Unknown(t *testing.T) {
	_, err := parseFlags([]string{"--port", "9000"})
	assert.Error(t, err)
}
