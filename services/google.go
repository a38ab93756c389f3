package services

import (
	"context"
	"fmt"

	apperrors "bimber/errors"

	"google.golang.org/api/idtoken"
)

type GoogleIdentity struct {
	Email         string
	EmailVerified bool
	Name          string
}

// GoogleVerifier xác thực ID token từ Google
type GoogleVerifier interface {
	Verify(ctx context.Context, rawToken string) (*GoogleIdentity, error)
}

type IDTokenVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{clientID: clientID}
}

func (v *IDTokenVerifier) Verify(ctx context.Context, rawToken string) (*GoogleIdentity, error) {
	if v.clientID == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUpstream, "Google sign-in is not configured", nil)
	}
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Invalid Google token", err)
	}

	identity := &GoogleIdentity{}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}
	if identity.Email == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, fmt.Sprintf("Google token for %s has no email", payload.Subject), nil)
	}
	return identity, nil
}
