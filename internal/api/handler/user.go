package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ljz/netops_go_server/internal/api/middleware"
	"github.com/ljz/netops_go_server/internal/model/dto"
	"github.com/ljz/netops_go_server/internal/pkg/response"
	"github.com/ljz/netops_go_server/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetUser 获取用户信息
// GET /api/v1/user/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "用户 ID 无效")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.OK(c, "", user)
}

// GetProfile 获取当前登录用户信息
// GET /api/v1/user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.OK(c, "", user)
}

// AdjustTokens 调整当前登录用户的 Token 余额
// POST /api/v1/user/tokens/adjust
func (h *UserHandler) AdjustTokens(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.AdjustTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "调整数量不能为空")
		return
	}

	balance, err := h.userService.AdjustTokens(c.Request.Context(), userID, req.Delta)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.OK(c, "", &dto.AdjustTokensResponse{TokenBalance: balance})
}
