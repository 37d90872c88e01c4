package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ljz/netops_go_server/config"
	"github.com/ljz/netops_go_server/internal/model/dto"
	"github.com/ljz/netops_go_server/internal/repository"
)

type UserService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
}

func NewUserService(userRepo *repository.UserRepository, cfg *config.Config) *UserService {
	return &UserService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// GetUser 根据 ID 获取用户信息
func (s *UserService) GetUser(ctx context.Context, id int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	info := buildUserInfo(user)
	info.CreatedAt = user.CreatedAt.Format("2006-01-02 15:04:05")
	return info, nil
}

// AdjustTokens 调整用户 Token 余额，返回调整后的余额。
// 余额没有下限，允许为负（欠费由上层业务自行处理）。
func (s *UserService) AdjustTokens(ctx context.Context, userID int64, delta int64) (int64, error) {
	balance, err := s.userRepo.AdjustTokenBalance(ctx, userID, delta)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to adjust token balance: %w", err)
	}
	return balance, nil
}
