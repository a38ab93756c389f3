package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"bimber/constants"
	"bimber/dto"
	apperrors "bimber/errors"
	"bimber/models"
	"bimber/services/logger"
	"bimber/services/mail"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGoogle struct {
	identity *GoogleIdentity
	err      error
}

func (f fakeGoogle) Verify(context.Context, string) (*GoogleIdentity, error) {
	return f.identity, f.err
}

type authFixture struct {
	db     *gorm.DB
	svc    *AuthService
	tokens *TokenService
	mailer *mail.Recorder
	async  *AsyncRunner
}

func newAuthFixture(t *testing.T, google GoogleVerifier) *authFixture {
	t.Helper()
	f := &authFixture{
		db:     newTestDB(t),
		tokens: NewTokenService(testSecret, time.Hour),
		mailer: &mail.Recorder{},
		async:  newTestAsync(),
	}
	f.svc = NewAuthService(AuthServiceOptions{
		DB:       f.db,
		Logger:   logger.NewNop(),
		Tokens:   f.tokens,
		Mailer:   f.mailer,
		Google:   google,
		Async:    f.async,
		BaseURL:  "https://bimber.test/",
		AdminKey: "let-me-in",
	})
	return f
}

func (f *authFixture) latestToken(t *testing.T, userID uint) string {
	t.Helper()
	var tok models.VerificationToken
	require.NoError(t, f.db.Where("user_id = ?", userID).Order("id DESC").First(&tok).Error)
	return tok.Token
}

func TestRegisterVerifyLogin(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := context.Background()

	user, err := f.svc.RegisterUser(ctx, dto.RegisterRequest{Username: "adaeze", Email: "Ada@Example.com", Password: "secret1"})
	require.NoError(t, err)
	waitAsync(t, f.async)
	assert.False(t, user.Enabled)
	assert.Equal(t, constants.RoleUser, user.Role)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.Password)

	token := f.latestToken(t, user.ID)
	sent := f.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ada@example.com", sent[0].To)
	assert.Contains(t, sent[0].Body, "https://bimber.test/api/v1/auth/verify?token="+token)

	_, err = f.svc.Login(ctx, "adaeze", "secret1")
	assert.ErrorIs(t, err, apperrors.ErrNotActivated)

	verified, err := f.svc.VerifyAccount(ctx, token)
	require.NoError(t, err)
	assert.True(t, verified.Enabled)

	_, err = f.svc.VerifyAccount(ctx, token)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidToken))

	resp, err := f.svc.Login(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	id, role, err := f.tokens.GetUserIDFromToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, constants.RoleUser, role)

	_, err = f.svc.Login(ctx, "adaeze", "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)

	_, err = f.svc.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
}

func TestRegisterRejections(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.RegisterUser(ctx, dto.RegisterRequest{Username: "adaeze", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  dto.RegisterRequest
		code apperrors.ErrorCode
	}{
		{"duplicate username", dto.RegisterRequest{Username: "adaeze", Email: "other@example.com", Password: "secret1"}, apperrors.ErrCodeUserExists},
		{"duplicate email", dto.RegisterRequest{Username: "another", Email: "ADA@example.com", Password: "secret1"}, apperrors.ErrCodeUserExists},
		{"short username", dto.RegisterRequest{Username: "ada", Email: "x@example.com", Password: "secret1"}, apperrors.ErrCodeValidation},
		{"bad email", dto.RegisterRequest{Username: "someone", Email: "not-an-email", Password: "secret1"}, apperrors.ErrCodeInvalidFormat},
		{"short password", dto.RegisterRequest{Username: "someone", Email: "s@example.com", Password: "123"}, apperrors.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.RegisterUser(ctx, tt.req)
			assert.True(t, apperrors.HasCode(err, tt.code), "got %v", err)
		})
	}
	waitAsync(t, f.async)
}

func TestRegisterAdmin(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := context.Background()
	req := dto.RegisterRequest{Username: "manager", Email: "manager@example.com", Password: "secret1"}

	_, err := f.svc.RegisterAdmin(ctx, req, "wrong")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	admin, err := f.svc.RegisterAdmin(ctx, req, "let-me-in")
	require.NoError(t, err)
	assert.Equal(t, constants.RoleAdmin, admin.Role)
	waitAsync(t, f.async)
}

func TestVerificationTokenExpiryAndResend(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := context.Background()

	user, err := f.svc.RegisterUser(ctx, dto.RegisterRequest{Username: "chinedu", Email: "chinedu@example.com", Password: "secret1"})
	require.NoError(t, err)
	first := f.latestToken(t, user.ID)

	f.svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	_, err = f.svc.VerifyAccount(ctx, first)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeExpiredToken))

	removed, err := f.svc.CleanupExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	f.svc.now = time.Now
	require.NoError(t, f.svc.ResendVerification(ctx, "CHINEDU@example.com"))
	second := f.latestToken(t, user.ID)
	assert.NotEqual(t, first, second)

	_, err = f.svc.VerifyAccount(ctx, second)
	require.NoError(t, err)

	err = f.svc.ResendVerification(ctx, "chinedu@example.com")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidOperation))

	err = f.svc.ResendVerification(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	waitAsync(t, f.async)
	assert.Len(t, f.mailer.Sent(), 2)
}

func TestLoginWithGoogle(t *testing.T) {
	f := newAuthFixture(t, fakeGoogle{identity: &GoogleIdentity{Email: "Funmi.Ade@gmail.com", EmailVerified: true, Name: "Funmi"}})
	ctx := context.Background()

	resp, err := f.svc.LoginWithGoogle(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, "funmi.ade@gmail.com", resp.User.Email)
	assert.Equal(t, "funmi.ade", resp.User.Username)
	assert.True(t, resp.User.Enabled)

	again, err := f.svc.LoginWithGoogle(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, again.User.ID)

	var count int64
	require.NoError(t, f.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	short := newAuthFixture(t, fakeGoogle{identity: &GoogleIdentity{Email: "bo@gmail.com", EmailVerified: true}})
	resp, err = short.svc.LoginWithGoogle(ctx, "id-token")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.User.Username, "bo_"))

	unverified := newAuthFixture(t, fakeGoogle{identity: &GoogleIdentity{Email: "x@gmail.com"}})
	_, err = unverified.svc.LoginWithGoogle(ctx, "id-token")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))
}
