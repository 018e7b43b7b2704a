package service

import (
	"errors"
	"strings"

	"matchday/auth"
	"matchday/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserService struct {
	userRepository *repository.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		userRepository: repository.NewUserRepository(db),
	}
}

// GetUserFromRequest reads the token from the Authorization header or the auth cookie.
func (s *UserService) GetUserFromRequest(c *gin.Context) (*repository.User, error) {
	authHeader := c.Request.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return s.GetUserFromToken(strings.TrimPrefix(authHeader, "Bearer "))
	}
	authCookie, err := c.Cookie("auth")
	if err != nil || authCookie == "" {
		return nil, ErrNotAuthenticated
	}
	return s.GetUserFromToken(authCookie)
}

func (s *UserService) GetUserFromToken(tokenString string) (*repository.User, error) {
	claims, err := auth.ParseToken(tokenString)
	if err != nil {
		return nil, ErrNotAuthenticated.Wrap(err)
	}
	user, err := s.userRepository.GetUserById(claims.UserId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	return user, nil
}
