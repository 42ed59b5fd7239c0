package domain_test

import (
	"errors"
	"testing"

	"github.com/difrex/surok-build/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func TestImageSpec_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    domain.ImageSpec
		wantErr error
	}{
		{
			name: "valid spec",
			spec: domain.ImageSpec{Name: "base", Tag: "surok/base", Context: "dockerfiles/base"},
		},
		{
			name:    "missing tag",
			spec:    domain.ImageSpec{Name: "base", Context: "dockerfiles/base"},
			wantErr: domain.ErrInvalidImageSpec,
		},
		{
			name:    "missing context",
			spec:    domain.ImageSpec{Name: "base", Tag: "surok/base"},
			wantErr: domain.ErrInvalidImageSpec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.spec.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConfig_Image(t *testing.T) {
	t.Parallel()

	cfg := &domain.Config{
		Images: map[string]domain.ImageSpec{
			domain.ImageAlpine: {Name: domain.ImageAlpine, Tag: "surok/alpine", Context: "dockerfiles/alpine"},
		},
	}

	spec, err := cfg.Image(domain.ImageAlpine)
	require.NoError(t, err)
	assert.Equal(t, "surok/alpine", spec.Tag)

	_, err = cfg.Image(domain.ImageCentos)
	require.ErrorIs(t, err, domain.ErrUnknownImage)
}

func TestExitStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: 0},
		{name: "plain error", err: errors.New("boom"), want: 1},
		{
			name: "exit error",
			err:  &domain.ExitError{Code: 3, Err: errors.New("packaging failed")},
			want: 3,
		},
		{
			name: "wrapped exit error",
			err:  zerr.Wrap(&domain.ExitError{Code: 42}, "outer"),
			want: 42,
		},
		{
			name: "joined with sentinel",
			err:  errors.Join(domain.ErrBuildExecutionFailed, &domain.ExitError{Code: 2}),
			want: 2,
		},
		{
			name: "zero code falls back to one",
			err:  &domain.ExitError{Code: 0, Err: errors.New("unknown status")},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, domain.ExitStatus(tt.err))
		})
	}
}

func TestExitError_Message(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "exit status 7", (&domain.ExitError{Code: 7}).Error())
	assert.Equal(t, "inner", (&domain.ExitError{Code: 7, Err: errors.New("inner")}).Error())
}
