package service

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/proofpage/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// AuthService 提供邮箱加密码的认证。
type AuthService struct {
	db *gorm.DB
}

// NewAuthService 返回一个新的 AuthService 实例。
func NewAuthService(gdb *gorm.DB) *AuthService {
	return &AuthService{db: gdb}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp 创建账号。
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*db.User, error) {
	email = normalizeEmail(email)
	err := fromValidation(validation.Errors{
		"email": validation.Validate(email,
			validation.Required.Error("Email is required."),
			is.EmailFormat.Error("Enter a valid email address.")),
		"password": validation.Validate(password,
			validation.Required.Error("Password is required."),
			validation.RuneLength(minPasswordLength, 0).Error("Password must be at least 8 characters.")),
	}.Filter())
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&db.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, invalid("email", "An account with this email already exists.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := db.User{Email: email, Password: string(hashed)}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, persistence("create user", err)
	}
	return &user, nil
}

// SignIn 校验凭据并返回用户。
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*db.User, error) {
	var user db.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Get 返回指定 id 的用户。
func (s *AuthService) Get(ctx context.Context, id uint) (*db.User, error) {
	var user db.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// EnsureUser 若账号不存在则以 bcrypt 哈希创建，已存在时直接返回。
func (s *AuthService) EnsureUser(ctx context.Context, email, password string) (*db.User, bool, error) {
	var existing db.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	user, err := s.SignUp(ctx, email, password)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
