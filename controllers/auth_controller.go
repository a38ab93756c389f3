package controllers

import (
	"net/http"

	"bimber/dto"
	"bimber/response"
	"bimber/services"

	"github.com/gin-gonic/gin"
)

// HeaderAdminKey mang ADMIN_REGISTRATION_KEY khi đăng ký admin
const HeaderAdminKey = "X-Admin-Key"

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register godoc
// @Summary  Register a user account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body dto.RegisterRequest true "account"
// @Success  201 {object} response.Response{data=dto.RegisterResponse}
// @Failure  409 {object} response.Response
// @Router   /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ac.auth.RegisterUser(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.RegisterResponse{
		User:    dto.NewUserResponse(user),
		Message: "Account created. Check your email to activate it.",
	})
}

// RegisterAdmin godoc
// @Summary  Register an admin account
// @Tags     auth
// @Param    X-Admin-Key header string true "admin registration key"
// @Param    body body dto.RegisterRequest true "account"
// @Success  201 {object} response.Response{data=dto.RegisterResponse}
// @Router   /auth/register/admin [post]
func (ac *AuthController) RegisterAdmin(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ac.auth.RegisterAdmin(c.Request.Context(), req, c.GetHeader(HeaderAdminKey))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.RegisterResponse{
		User:    dto.NewUserResponse(user),
		Message: "Admin account created. Check your email to activate it.",
	})
}

// Verify kích hoạt tài khoản từ link trong email
// @Summary  Activate an account
// @Tags     auth
// @Param    token query string true "verification token"
// @Success  200 {object} response.Response{data=dto.UserResponse}
// @Router   /auth/verify [get]
func (ac *AuthController) Verify(c *gin.Context) {
	user, err := ac.auth.VerifyAccount(c.Request.Context(), c.Query("token"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(user))
}

func (ac *AuthController) ResendVerification(c *gin.Context) {
	var req dto.ResendVerificationRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := ac.auth.ResendVerification(c.Request.Context(), req.Email); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Verification email sent"})
}

// Login godoc
// @Summary  Log in with username or email
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body dto.LoginRequest true "credentials"
// @Success  200 {object} response.Response{data=dto.LoginResponse}
// @Failure  401 {object} response.Response
// @Failure  403 {object} response.Response
// @Router   /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := ac.auth.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, resp)
}

func (ac *AuthController) GoogleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := ac.auth.LoginWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, resp)
}

// Logout: JWT không lưu phía server, client tự xóa token
func (ac *AuthController) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
