package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 状态码对应的默认消息
var statusMessages = map[int]string{
	http.StatusBadRequest:          "参数错误",
	http.StatusUnauthorized:        "认证失败",
	http.StatusNotFound:            "资源不存在",
	http.StatusInternalServerError: "服务器内部错误",
}

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK 成功响应
func OK(c *gin.Context, message string, data interface{}) {
	if message == "" {
		message = "success"
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, message string, data interface{}) {
	if message == "" {
		message = "success"
	}
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, status int, message string) {
	if message == "" {
		message = statusMessages[status]
	}
	c.JSON(status, Response{
		Success: false,
		Message: message,
	})
}

// ParamError 参数错误
func ParamError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// AuthError 认证失败
func AuthError(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFoundError 资源不存在
func NotFoundError(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// ServerError 服务器错误（对外不暴露内部错误细节）
func ServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
