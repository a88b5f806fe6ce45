package service

import (
	"errors"
	"regexp"
	"time"

	"pixelgram/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcrypt cost，与原有账号的哈希保持一致
const bcryptCost = 10

var (
	hasUpperPattern = regexp.MustCompile(`[A-Z]`)
	hasLowerPattern = regexp.MustCompile(`[a-z]`)
	hasDigitPattern = regexp.MustCompile(`[0-9]`)
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// SignupUser 注册成功后返回的字段（不含密码哈希）
type SignupUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Signup 注册新账号
// 密码策略：至少 8 位，必须同时包含大写字母、小写字母和数字
// 只存 bcrypt 哈希，原始密码不落任何地方
func (s *AuthService) Signup(email, username, password string) (*SignupUser, error) {
	if email == "" || password == "" || username == "" {
		return nil, ValidationErr("general", "Missing required fields")
	}

	if len(password) < 8 {
		return nil, ValidationErr("password", "Password must be at least 8 characters")
	}
	if !hasUpperPattern.MatchString(password) {
		return nil, ValidationErr("password", "Password must contain at least one uppercase letter")
	}
	if !hasLowerPattern.MatchString(password) {
		return nil, ValidationErr("password", "Password must contain at least one lowercase letter")
	}
	if !hasDigitPattern.MatchString(password) {
		return nil, ValidationErr("password", "Password must contain at least one number")
	}

	// 邮箱或用户名任一已存在都拒绝
	var count int64
	err := s.db.Model(&model.User{}).Where("email = ? OR username = ?", email, username).Count(&count).Error
	if err != nil {
		return nil, InternalErr("Failed to create user", err)
	}
	if count > 0 {
		return nil, ConflictErr("User with this email or username already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, InternalErr("Failed to create user", err)
	}

	hashedStr := string(hashed)
	user := &model.User{
		Email:    email,
		Username: username,
		Password: &hashedStr,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, InternalErr("Failed to create user", err)
	}

	return &SignupUser{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}, nil
}

// Login 校验邮箱+密码，成功返回用户
// 不区分"账号不存在"和"密码错误"，避免泄露账号是否存在
func (s *AuthService) Login(email, password string) (*model.User, error) {
	var user model.User
	err := s.db.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthorized()
	}
	if err != nil {
		return nil, InternalErr("Failed to log in", err)
	}

	// OAuth 账号没有本地密码，不能走密码登录
	if user.Password == nil {
		return nil, ErrUnauthorized()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password)); err != nil {
		return nil, ErrUnauthorized()
	}

	return &user, nil
}
