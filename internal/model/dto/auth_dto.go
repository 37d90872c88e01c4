package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=1,max=50"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// LoginRequest 登录请求（username 字段可以是用户名、邮箱或手机号）
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// UserInfo 用户信息（返回给前端，永远不包含密码哈希）
type UserInfo struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	TokenBalance int64  `json:"token_balance"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// AdjustTokensRequest 调整 Token 余额请求
type AdjustTokensRequest struct {
	Delta int64 `json:"delta" binding:"required"`
}

// AdjustTokensResponse 调整 Token 余额响应
type AdjustTokensResponse struct {
	TokenBalance int64 `json:"token_balance"`
}
