package controllers

import (
	"strings"

	"bimber/dto"
	"bimber/response"
	"bimber/services"
	"bimber/utils"

	"github.com/gin-gonic/gin"
)

// AccountController phục vụ cả /users và /admins, role giới hạn loại tài khoản
type AccountController struct {
	users    *services.UserService
	payments *services.PaymentService
	role     string
}

func NewAccountController(users *services.UserService, payments *services.PaymentService, role string) *AccountController {
	return &AccountController{users: users, payments: payments, role: role}
}

// GetAccount godoc
// @Summary  Get an account
// @Tags     users
// @Security BearerAuth
// @Param    id path int true "account id"
// @Success  200 {object} response.Response{data=dto.UserResponse}
// @Router   /users/{id} [get]
func (ac *AccountController) GetAccount(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := ac.users.GetAccount(c.Request.Context(), caller, id, ac.role)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(user))
}

func (ac *AccountController) EditAccount(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ac.users.EditAccount(c.Request.Context(), caller, id, ac.role, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(user))
}

func (ac *AccountController) DeleteAccount(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ac.users.DeleteAccount(c.Request.Context(), caller, id, ac.role); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.IDResponse{ID: id})
}

// FundAccount godoc
// @Summary  Add money to an account balance
// @Tags     users
// @Security BearerAuth
// @Param    id   path int                    true "account id"
// @Param    body body dto.FundAccountRequest true "amount"
// @Success  200 {object} response.Response{data=dto.BalanceResponse}
// @Router   /users/{id}/fund [post]
func (ac *AccountController) FundAccount(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.FundAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	balance, err := ac.users.FundAccount(c.Request.Context(), caller, id, req.Amount)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.BalanceResponse{UserID: id, Balance: balance})
}

// Payments trả về sổ giao dịch, lọc theo ?kind=CHARGE|REFUND|FUNDING
func (ac *AccountController) Payments(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	payments, err := ac.payments.PaymentsByUser(c.Request.Context(), caller, id, strings.ToUpper(c.Query("kind")))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, payments)
}

// ListAccounts chỉ dành cho admin, ?role= để lọc
func (ac *AccountController) ListAccounts(c *gin.Context) {
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"))
	users, total, err := ac.users.ListUsers(c.Request.Context(), c.Query("role"), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, dto.NewUserResponses(users), page, limit, int(total))
}
