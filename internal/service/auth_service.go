package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/ljz/netops_go_server/config"
	"github.com/ljz/netops_go_server/internal/model"
	"github.com/ljz/netops_go_server/internal/model/dto"
	"github.com/ljz/netops_go_server/internal/pkg/jwt"
	"github.com/ljz/netops_go_server/internal/repository"
)

var (
	ErrDuplicateUser      = errors.New("用户名、邮箱或手机号已被注册")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrPasswordMismatch   = errors.New("两次输入的密码不一致")
	ErrPasswordTooShort   = errors.New("密码长度至少为6位")
	ErrInvalidPhone       = errors.New("手机号格式不正确")
)

// 注册赠送的初始 Token 数量
const initialTokenBalance = 1000

var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

type AuthService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Register 用户注册
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfo, error) {
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if len(req.Password) < 6 {
		return nil, ErrPasswordTooShort
	}
	if !phonePattern.MatchString(req.Phone) {
		return nil, ErrInvalidPhone
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: HashPassword(req.Password),
		TokenBalance: initialTokenBalance,
	}

	// 唯一性冲突由存储引擎的唯一索引一次性裁决，不预查
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return buildUserInfo(user), nil
}

// Login 用户登录，成功后签发 JWT
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.VerifyCredential(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  buildUserInfo(user),
	}, nil
}

// VerifyCredential 校验登录凭证。identifier 按固定规则分类后查找：
// 含 @ 视为邮箱；纯数字且长度 >= 10 视为手机号；其余视为用户名。
// 分支之间不回退。查无此人和密码错误统一返回 ErrInvalidCredentials，
// 避免对外暴露标识符是否存在。
func (s *AuthService) VerifyCredential(ctx context.Context, identifier, password string) (*model.User, error) {
	var (
		user *model.User
		err  error
	)
	switch {
	case strings.Contains(identifier, "@"):
		user, err = s.userRepo.GetByEmail(ctx, identifier)
	case isAllDigits(identifier) && len(identifier) >= 10:
		user, err = s.userRepo.GetByPhone(ctx, identifier)
	default:
		user, err = s.userRepo.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.PasswordHash != HashPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// HashPassword 计算密码的 sha256 十六进制摘要。
// 摘要是明文的纯函数（同一明文必须得到同一哈希），注册和登录共用。
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func buildUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Phone:        user.Phone,
		TokenBalance: user.TokenBalance,
	}
}
