package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "apply", args: []string{"--entities", "50", "--commands", "2000", "--rounds", "2", "--workers", "4"}},
		{name: "instantiate", args: []string{"--variant", "instantiate", "--entities", "5", "--commands", "300", "--rounds", "1"}},
		{name: "unknown variant", args: []string{"--variant", "destroy", "--rounds", "1"}, wantErr: true},
		{name: "unknown profile", args: []string{"--profile", "block"}, wantErr: true},
		{name: "no entities", args: []string{"--entities", "0"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
