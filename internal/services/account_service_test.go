package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitesmith/internal/models/db_models"
	"sitesmith/internal/models/request_models"
	"sitesmith/pkg/utils"
)

type fakeAccountStore struct {
	byEmail map[string]*db_models.Account
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{byEmail: make(map[string]*db_models.Account)}
}

func (f *fakeAccountStore) InsertTx(account *db_models.Account, ctx context.Context) error {
	f.byEmail[account.Email] = account
	return nil
}

func (f *fakeAccountStore) FindById(ctx context.Context, id string) (*db_models.Account, error) {
	for _, acc := range f.byEmail {
		if acc.ID.String() == id {
			return acc, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountStore) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	return f.byEmail[email], nil
}

func TestCreateAccountThenLogin(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewAccountService(store)

	err := svc.CreateAccount(request_models.SignUpRequest{
		FullName: "Site Owner",
		Email:    "owner@example.com",
		Phone:    "+1555000111",
		Password: "s3cretpw",
	})
	require.NoError(t, err)

	saved := store.byEmail["owner@example.com"]
	require.NotNil(t, saved)
	assert.Equal(t, "user", saved.Role)
	assert.NotEqual(t, "s3cretpw", saved.PasswordHash)

	result, err := svc.Login(request_models.LoginRequest{
		Email:    "owner@example.com",
		Password: "s3cretpw",
	}, context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestCreateAccountRejectsDuplicateEmail(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewAccountService(store)

	req := request_models.SignUpRequest{
		FullName: "Site Owner",
		Email:    "owner@example.com",
		Password: "s3cretpw",
	}
	require.NoError(t, svc.CreateAccount(req))

	err := svc.CreateAccount(req)
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewAccountService(store)

	require.NoError(t, svc.CreateAccount(request_models.SignUpRequest{
		FullName: "Site Owner",
		Email:    "owner@example.com",
		Password: "s3cretpw",
	}))

	_, err := svc.Login(request_models.LoginRequest{
		Email:    "owner@example.com",
		Password: "wrongpass",
	}, context.Background())
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAccountService(newFakeAccountStore())

	_, err := svc.Login(request_models.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	}, context.Background())
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}
