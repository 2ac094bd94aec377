package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/core-banking-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking-ledger/src/internal/commons"
	"github.com/api-sage/core-banking-ledger/src/internal/domain"
	"github.com/api-sage/core-banking-ledger/src/internal/logger"
	"github.com/api-sage/core-banking-ledger/src/internal/usecase/models"
	"github.com/api-sage/core-banking-ledger/src/internal/usecase/service_interfaces"
	"golang.org/x/crypto/bcrypt"
)

var _ service_interfaces.UserService = (*UserService)(nil)

type UserService struct {
	userRepo repo_interfaces.UserRepository
}

func NewUserService(userRepo repo_interfaces.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Register(ctx context.Context, req models.RegisterUserRequest) (commons.Response[models.UserResponse], error) {
	logger.Info("user service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("user service register validation failed", err, nil)
		return commons.ErrorResponseFromErr[models.UserResponse]("validation failed", err), err
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		logger.Error("user service register hash password failed", err, nil)
		return commons.ErrorResponse[models.UserResponse]("failed to register user", "failed to hash password"), err
	}

	user := domain.UserDetails{
		Username:     strings.TrimSpace(req.Username),
		Name:         strings.TrimSpace(req.Name),
		City:         strings.TrimSpace(req.City),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hashed,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		logger.Error("user service register repository failed", err, logger.Fields{
			"username": user.Username,
		})
		if errors.Is(err, domain.ErrUsernameTaken) {
			return commons.ErrorResponseFromErr[models.UserResponse]("validation failed", err), err
		}
		return commons.ErrorResponse[models.UserResponse]("failed to register user", "Unable to register user right now"), err
	}

	response := mapUserToResponse(created)
	logger.Info("user service register success", logger.Fields{
		"username": response.Username,
	})

	return commons.SuccessResponse("user registered successfully", response), nil
}

func (s *UserService) Authenticate(ctx context.Context, username, password string) (commons.Response[models.AuthenticateResponse], error) {
	username = strings.TrimSpace(username)
	logger.Info("user service authenticate request", logger.Fields{
		"username": username,
	})

	if username == "" {
		err := fmt.Errorf("username is required")
		return commons.ErrorResponseFromErr[models.AuthenticateResponse]("validation failed", err), err
	}
	if password == "" {
		err := fmt.Errorf("password is required")
		return commons.ErrorResponseFromErr[models.AuthenticateResponse]("validation failed", err), err
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		logger.Error("user service authenticate lookup failed", err, logger.Fields{
			"username": username,
		})
		if errors.Is(err, domain.ErrUserNotFound) {
			return commons.ErrorResponse[models.AuthenticateResponse]("User not found"), err
		}
		return commons.ErrorResponse[models.AuthenticateResponse]("failed to authenticate", "Unable to authenticate right now"), err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logger.Info("user service authenticate mismatch", logger.Fields{
				"username": username,
			})
			return commons.ErrorResponse[models.AuthenticateResponse]("invalid credentials", "provided password does not match"), fmt.Errorf("invalid credentials")
		}
		wrapped := fmt.Errorf("authenticate user: %w", err)
		logger.Error("user service authenticate compare failed", wrapped, logger.Fields{
			"username": username,
		})
		return commons.ErrorResponse[models.AuthenticateResponse]("failed to authenticate", "Unable to authenticate right now"), wrapped
	}

	response := models.AuthenticateResponse{
		Username:      username,
		Authenticated: true,
	}

	return commons.SuccessResponse("authenticated successfully", response), nil
}

func (s *UserService) GetUser(ctx context.Context, username string) (commons.Response[models.UserResponse], error) {
	username = strings.TrimSpace(username)

	if username == "" {
		err := fmt.Errorf("username is required")
		return commons.ErrorResponseFromErr[models.UserResponse]("validation failed", err), err
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		logger.Error("user service get user failed", err, logger.Fields{
			"username": username,
		})
		if errors.Is(err, domain.ErrUserNotFound) {
			return commons.ErrorResponse[models.UserResponse]("User not found"), err
		}
		return commons.ErrorResponse[models.UserResponse]("failed to get user", "Unable to fetch user right now"), err
	}

	return commons.SuccessResponse("user fetched successfully", mapUserToResponse(user)), nil
}

func (s *UserService) ListAllUsers(ctx context.Context) (commons.Response[[]models.UserResponse], error) {
	users, err := s.userRepo.All(ctx)
	if err != nil {
		logger.Error("user service list all failed", err, nil)
		return commons.ErrorResponse[[]models.UserResponse]("failed to list users", "Unable to list users right now"), err
	}

	out := make([]models.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, mapUserToResponse(user))
	}

	return commons.SuccessResponse("users fetched successfully", out), nil
}

func mapUserToResponse(user domain.UserDetails) models.UserResponse {
	return models.UserResponse{
		Username: user.Username,
		Name:     user.Name,
		City:     user.City,
		Email:    user.Email,
		Phone:    user.Phone,
	}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hashed), nil
}
