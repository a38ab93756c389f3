package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"bimber/constants"
	"bimber/dto"
	apperrors "bimber/errors"
	"bimber/models"
	"bimber/services/logger"
	"bimber/services/mail"
	"bimber/validator"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Tokens   *TokenService
	Mailer   mail.Sender
	Google   GoogleVerifier
	Async    *AsyncRunner
	BaseURL  string
	AdminKey string
}

type AuthService struct {
	db       *gorm.DB
	logger   logger.Logger
	tokens   *TokenService
	mailer   mail.Sender
	google   GoogleVerifier
	async    *AsyncRunner
	baseURL  string
	adminKey string
	now      func() time.Time
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		db:       opts.DB,
		logger:   opts.Logger,
		tokens:   opts.Tokens,
		mailer:   opts.Mailer,
		google:   opts.Google,
		async:    opts.Async,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		adminKey: opts.AdminKey,
		now:      time.Now,
	}
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// RegisterUser tạo tài khoản USER chưa kích hoạt và gửi link kích hoạt
func (s *AuthService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	return s.register(ctx, req, constants.RoleUser)
}

// RegisterAdmin yêu cầu đúng ADMIN_REGISTRATION_KEY khi key được cấu hình
func (s *AuthService) RegisterAdmin(ctx context.Context, req dto.RegisterRequest, adminKey string) (*models.User, error) {
	if s.adminKey != "" && adminKey != s.adminKey {
		return nil, apperrors.Forbidden("Invalid admin registration key")
	}
	return s.register(ctx, req, constants.RoleAdmin)
}

func (s *AuthService) register(ctx context.Context, req dto.RegisterRequest, role string) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.ValidateRegistration(username, email, req.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, "Password cannot be used", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Role:     role,
		Enabled:  false,
		Provider: "local",
	}
	var token *models.VerificationToken

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique(tx, 0, username, email); err != nil {
			return err
		}
		if err := tx.Create(user).Error; err != nil {
			if isUniqueViolation(err) {
				return apperrors.NewAppError(apperrors.ErrCodeUserExists, "Username or email already in use", err)
			}
			return apperrors.DB("failed to create account", err)
		}
		token, err = s.issueToken(tx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("registered %s account id=%d username=%s", strings.ToLower(role), user.ID, user.Username)
	s.sendVerification(user, token)
	return user, nil
}

// ensureUnique kiểm tra username/email chưa thuộc về tài khoản khác
func ensureUnique(tx *gorm.DB, excludeID uint, username, email string) error {
	if username != "" {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ? AND id <> ?", username, excludeID).Count(&count).Error; err != nil {
			return apperrors.DB("failed to check username", err)
		}
		if count > 0 {
			return apperrors.NewAppError(apperrors.ErrCodeUserExists, "Username already in use", nil)
		}
	}
	if email != "" {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", email, excludeID).Count(&count).Error; err != nil {
			return apperrors.DB("failed to check email", err)
		}
		if count > 0 {
			return apperrors.NewAppError(apperrors.ErrCodeUserExists, "Email already in use", nil)
		}
	}
	return nil
}

func (s *AuthService) issueToken(tx *gorm.DB, userID uint) (*models.VerificationToken, error) {
	token := &models.VerificationToken{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.now().UTC().Add(constants.VerificationTokenTTLHours * time.Hour),
	}
	if err := tx.Create(token).Error; err != nil {
		return nil, apperrors.DB("failed to create verification token", err)
	}
	return token, nil
}

func (s *AuthService) verificationLink(token string) string {
	return fmt.Sprintf("%s/api/v1/auth/verify?token=%s", s.baseURL, url.QueryEscape(token))
}

func (s *AuthService) sendVerification(user *models.User, token *models.VerificationToken) {
	msg := mail.VerificationMessage(user.Email, user.Username, s.verificationLink(token.Token))
	s.async.Go("verification-mail", func(ctx context.Context) error {
		return s.mailer.Send(ctx, msg)
	})
}

// VerifyAccount kích hoạt tài khoản sở hữu token
func (s *AuthService) VerifyAccount(ctx context.Context, rawToken string) (*models.User, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Verification token is required", nil)
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var token models.VerificationToken
		if err := tx.Where("token = ?", rawToken).First(&token).Error; err != nil {
			if isNotFound(err) {
				return apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Invalid verification token", nil)
			}
			return apperrors.DB("failed to load verification token", err)
		}
		if token.Used {
			return apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Verification token already used", nil)
		}
		if token.Expired(s.now()) {
			return apperrors.NewAppError(apperrors.ErrCodeExpiredToken, "Verification token has expired", nil)
		}

		if err := tx.Model(&token).Update("used", true).Error; err != nil {
			return apperrors.DB("failed to consume verification token", err)
		}
		if err := tx.Model(&models.User{}).Where("id = ?", token.UserID).Update("enabled", true).Error; err != nil {
			return apperrors.DB("failed to enable account", err)
		}
		return notFoundOrNil(tx.First(&user, token.UserID).Error)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account %d verified", user.ID)
	return &user, nil
}

func notFoundOrNil(err error) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return apperrors.ErrUserNotFound
	}
	return apperrors.DB("failed to load account", err)
}

// ResendVerification cấp token mới cho tài khoản chưa kích hoạt
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	var token *models.VerificationToken
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
			return notFoundOrNil(err)
		}
		if user.Enabled {
			return apperrors.InvalidOperation("Account is already activated")
		}
		if err := tx.Where("user_id = ? AND used = ?", user.ID, false).Delete(&models.VerificationToken{}).Error; err != nil {
			return apperrors.DB("failed to revoke old tokens", err)
		}
		var err error
		token, err = s.issueToken(tx, user.ID)
		return err
	})
	if err != nil {
		return err
	}
	s.sendVerification(&user, token)
	return nil
}

// Login: identifier là username hoặc email
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*dto.LoginResponse, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Identifier and password are required", nil)
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, strings.ToLower(identifier)).
		First(&user).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrInvalidCredential
		}
		return nil, apperrors.DB("failed to load account", err)
	}
	if !checkPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredential
	}
	if !user.Enabled {
		return nil, apperrors.ErrNotActivated
	}
	return s.loginResponse(&user)
}

func (s *AuthService) loginResponse(user *models.User) (*dto.LoginResponse, error) {
	token, expiresAt, err := s.tokens.GenerateToken(UserInfo{UserId: user.ID, Role: user.Role})
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Failed to sign token", err)
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: dto.NewUserResponse(user)}, nil
}

// LoginWithGoogle tìm tài khoản theo email Google hoặc tạo USER mới đã kích hoạt
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*dto.LoginResponse, error) {
	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if !identity.EmailVerified {
		return nil, apperrors.Forbidden("Google account email is not verified")
	}
	email := strings.ToLower(identity.Email)

	var user models.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ?", email).First(&user).Error
		if err == nil {
			if !user.Enabled {
				return tx.Model(&user).Update("enabled", true).Error
			}
			return nil
		}
		if !isNotFound(err) {
			return apperrors.DB("failed to load account", err)
		}

		username, err := s.uniqueUsername(tx, email)
		if err != nil {
			return err
		}
		hashed, err := HashPassword(uuid.NewString())
		if err != nil {
			return err
		}
		user = models.User{
			Username: username,
			Email:    email,
			Password: hashed,
			Role:     constants.RoleUser,
			Enabled:  true,
			Provider: "google",
		}
		if err := tx.Create(&user).Error; err != nil {
			return apperrors.DB("failed to create account", err)
		}
		s.logger.Info("created google account id=%d username=%s", user.ID, user.Username)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.loginResponse(&user)
}

// uniqueUsername lấy phần trước @ của email, thêm hậu tố khi trùng hoặc quá ngắn
func (s *AuthService) uniqueUsername(tx *gorm.DB, email string) (string, error) {
	base := email
	if i := strings.Index(base, "@"); i > 0 {
		base = base[:i]
	}
	if len(base) > 48 {
		base = base[:48]
	}
	candidate := base
	for attempt := 0; attempt < 5; attempt++ {
		if len(candidate) >= constants.MinUsernameLength {
			var count int64
			if err := tx.Model(&models.User{}).Where("username = ?", candidate).Count(&count).Error; err != nil {
				return "", apperrors.DB("failed to check username", err)
			}
			if count == 0 {
				return candidate, nil
			}
		}
		candidate = base + "_" + uuid.NewString()[:6]
	}
	return "", apperrors.Conflict("Could not allocate a username")
}

// CleanupExpiredTokens xóa token hết hạn chưa dùng
func (s *AuthService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("used = ? AND expires_at < ?", false, s.now().UTC()).
		Delete(&models.VerificationToken{})
	if res.Error != nil {
		return 0, apperrors.DB("failed to delete expired tokens", res.Error)
	}
	return res.RowsAffected, nil
}
