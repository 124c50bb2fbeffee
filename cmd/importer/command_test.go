package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inwheel/accessibility-importer/internal/domain"
)

func execute(t *testing.T, args ...string) (domain.RunParams, bool, error) {
	t.Helper()

	var got domain.RunParams
	called := false
	cmd := newRootCommand(func(_ context.Context, params domain.RunParams) error {
		called = true
		got = params
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	return got, called, err
}

func TestRootCommand_Flags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want domain.RunParams
	}{
		{
			name: "defaults import every region",
			args: nil,
			want: domain.RunParams{},
		},
		{
			name: "repeated regions keep their order",
			args: []string{"--region", "switzerland", "-r", "finland"},
			want: domain.RunParams{Regions: []string{"switzerland", "finland"}},
		},
		{
			name: "test mode limits to 100",
			args: []string{"--test"},
			want: domain.RunParams{Limit: 100},
		},
		{
			name: "explicit limit wins over test",
			args: []string{"--test", "--limit", "5"},
			want: domain.RunParams{Limit: 5},
		},
		{
			name: "overwrite and batch size",
			args: []string{"--overwrite", "--batch-size", "500"},
			want: domain.RunParams{Overwrite: true, BatchSize: 500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, called, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.True(t, called)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRootCommand_RejectsInvalidFlags(t *testing.T) {
	for _, args := range [][]string{
		{"--limit", "-1"},
		{"--batch-size", "-10"},
		{"unexpected"},
	} {
		_, called, err := execute(t, args...)
		assert.Error(t, err, args)
		assert.False(t, called, args)
	}
}

func TestRegionsCommand(t *testing.T) {
	cmd := newRootCommand(func(context.Context, domain.RunParams) error {
		t.Fatal("import must not run")
		return nil
	})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"regions"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "switzerland")
	assert.Contains(t, out.String(), "finland")
}
