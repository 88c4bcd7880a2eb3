package service

import (
	"context"
	"errors"
	"os"
	"time"

	"guest-concierge-be/internal/constant"
	"guest-concierge-be/internal/dto"
	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/repository/specification"
	"guest-concierge-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory) IAuthService {
	return &authService{
		uowFactory: uowFactory,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.AccountRepository().FindOne(ctx, specification.FilterBy{Field: "email", Value: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &entity.Account{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Plan:         constant.PlanFree,
		MessageCount: 0,
		MessageLimit: constant.PlanMessageLimits[constant.PlanFree],
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.AccountRepository().Create(ctx, account); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(account)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	account, err := uow.AccountRepository().FindOne(ctx, specification.FilterBy{Field: "email", Value: req.Email})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	return s.buildAuthResponse(account)
}

func (s *authService) buildAuthResponse(account *entity.Account) (*dto.AuthResponse, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": account.Id.String(),
		"email":      account.Email,
		"exp":        time.Now().Add(72 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:     signed,
		AccountId: account.Id,
		Email:     account.Email,
		FullName:  account.FullName,
		Plan:      account.Plan,
	}, nil
}
