package service

import (
	"errors"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/pkg/jwt"
	"go-stockledger/pkg/validator"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(req *RegisterRequest) (*AuthResponse, error)
	Login(email, password string) (*AuthResponse, error)
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"`
}

type AuthResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	role := req.Role
	if role == "" {
		role = model.RoleStaff
	}
	if !model.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	user := &model.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		// The existence pre-check is not race-free; the unique index is.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.respond(user)
}

func (s *authService) Login(email, password string) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return s.respond(user)
}

func (s *authService) respond(user *model.User) (*AuthResponse, error) {
	token, err := jwt.GenerateToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}
	return &AuthResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
