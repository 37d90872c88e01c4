package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"github.com/ljz/netops_go_server/internal/model"
)

var userSeq int64

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	seq := atomic.AddInt64(&userSeq, 1)
	user := &model.User{
		Username: fmt.Sprintf("testuser_%d", seq),
		Email:    fmt.Sprintf("test_%d@example.com", seq),
		// 13 开头的 11 位手机号，低位用序号保证唯一
		Phone:        fmt.Sprintf("138%08d", seq),
		PasswordHash: "0000000000000000000000000000000000000000000000000000000000000000",
		TokenBalance: 1000,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithPhone 设置手机号
func WithPhone(phone string) func(*model.User) {
	return func(u *model.User) {
		u.Phone = phone
	}
}

// WithPasswordHash 设置密码哈希
func WithPasswordHash(hash string) func(*model.User) {
	return func(u *model.User) {
		u.PasswordHash = hash
	}
}

// WithTokenBalance 设置 Token 余额
func WithTokenBalance(balance int64) func(*model.User) {
	return func(u *model.User) {
		u.TokenBalance = balance
	}
}
