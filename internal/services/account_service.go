package services

import (
	"context"
	"log"
	"time"

	"sitesmith/internal/models/db_models"
	"sitesmith/internal/models/request_models"
	"sitesmith/internal/models/response_models"
	"sitesmith/internal/repositories"
	"sitesmith/pkg/utils"
)

type AccountServiceInterface interface {
	Login(request request_models.LoginRequest, ctx context.Context) (response_models.AccountLoginResponse, error)
	CreateAccount(request request_models.SignUpRequest) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
}

func NewAccountService(accountRepo repositories.AccountRepository) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
	}
}

func (a *AccountService) Login(request request_models.LoginRequest, ctx context.Context) (response_models.AccountLoginResponse, error) {

	startTime := time.Now()

	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return response_models.AccountLoginResponse{}, utils.ErrDatabaseError
	}

	if account == nil {
		return response_models.AccountLoginResponse{}, utils.ErrInvalidCredentials
	}

	err = utils.ComparePasswords(account.PasswordHash, request.Password)
	if err != nil {
		return response_models.AccountLoginResponse{}, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return response_models.AccountLoginResponse{}, utils.ErrInvalidCredentials
	}

	log.Printf("Login process took %s", time.Since(startTime))

	return response_models.AccountLoginResponse{Token: token}, nil
}

func (a *AccountService) CreateAccount(request request_models.SignUpRequest) error {

	existingAccount, err := a.accountRepo.FindByEmail(context.Background(), request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		FullName:     request.FullName,
		Email:        request.Email,
		Phone:        request.Phone,
		PasswordHash: hashedPassword,
		Role:         "user", // default role
	}

	if err := a.accountRepo.InsertTx(newAccount, context.Background()); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}
