package shell

import (
	"context"
	"testing"

	"github.com/difrex/surok-build/internal/core/domain"
	"github.com/difrex/surok-build/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMergeEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		base  []string
		extra []string
		want  []string
	}{
		{
			name: "extra appended",
			base: []string{"PATH=/usr/bin"},
			extra: []string{
				"DEB_BUILD_OPTIONS=nocheck",
			},
			want: []string{"PATH=/usr/bin", "DEB_BUILD_OPTIONS=nocheck"},
		},
		{
			name:  "extra overrides base in place",
			base:  []string{"PATH=/usr/bin", "LANG=C"},
			extra: []string{"LANG=C.UTF-8"},
			want:  []string{"PATH=/usr/bin", "LANG=C.UTF-8"},
		},
		{
			name:  "malformed entries dropped",
			base:  []string{"PATH=/usr/bin"},
			extra: []string{"NOT_AN_ASSIGNMENT"},
			want:  []string{"PATH=/usr/bin"},
		},
		{
			name:  "empty base",
			base:  nil,
			extra: []string{"A=1", "B=2"},
			want:  []string{"A=1", "B=2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mergeEnvironment(tt.base, tt.extra))
		})
	}
}

func TestPackager_Run_EmptyCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	p := NewPackager(log)
	err := p.Run(context.Background(), domain.PackageJob{})
	require.ErrorIs(t, err, domain.ErrPackageBuildFailed)
}
