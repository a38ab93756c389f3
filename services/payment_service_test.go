package services

import (
	"context"
	"testing"

	"bimber/constants"
	apperrors "bimber/errors"
	"bimber/models"
	"bimber/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentsByUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db, logger.NewNop())
	user := seedUser(t, db, "guest01", 0)

	for i, kind := range []string{constants.PaymentKindFunding, constants.PaymentKindCharge, constants.PaymentKindRefund} {
		require.NoError(t, db.Create(&models.Payment{
			UserID:    user.ID,
			Amount:    float64(10 * (i + 1)),
			Kind:      kind,
			Success:   true,
			Reference: kind,
		}).Error)
	}

	all, err := svc.PaymentsByUser(context.Background(), Caller{ID: user.ID, Role: constants.RoleUser}, user.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, constants.PaymentKindRefund, all[0].Kind)

	charges, err := svc.PaymentsByUser(context.Background(), Caller{ID: 1000, Role: constants.RoleAdmin}, user.ID, constants.PaymentKindCharge)
	require.NoError(t, err)
	require.Len(t, charges, 1)
	assert.Equal(t, 20.0, charges[0].Amount)

	_, err = svc.PaymentsByUser(context.Background(), Caller{ID: user.ID + 1, Role: constants.RoleUser}, user.ID, "")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))
}
