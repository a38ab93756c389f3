package services

import (
	"testing"

	apperrors "bimber/errors"
	"bimber/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateMatcherResolve(t *testing.T) {
	m := NewStateMatcher()

	tests := []struct {
		in   string
		want models.State
	}{
		{"lagos", models.StateLagos},
		{"LAGOS", models.StateLagos},
		{"Akwa Ibom", models.StateAkwaIbom},
		{"AKWA_IBOM", models.StateAkwaIbom},
		{"cross-river", models.StateCrossRiver},
		{"Enugu State", models.StateEnugu},
		{"abuja", models.StateFCT},
		{"FCT", models.StateFCT},
		{"Lagoss", models.StateLagos},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := m.Resolve(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStateMatcherRejects(t *testing.T) {
	m := NewStateMatcher()

	_, err := m.Resolve("   ")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRequiredField))

	_, err = m.Resolve("california")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
}

func TestCalculateSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, calculateSimilarity("", ""))
	assert.Equal(t, 1.0, calculateSimilarity("kano", "kano"))
	// thay thế tính chi phí 2 theo DefaultOptions
	assert.InDelta(t, 0.6, calculateSimilarity("lagos", "lagoz"), 0.001)
	assert.InDelta(t, 5.0/6.0, calculateSimilarity("lagoss", "lagos"), 0.001)
}
