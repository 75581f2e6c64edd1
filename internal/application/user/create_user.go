package user

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/campushub/user-gateway/internal/domain/user"
)

type CreateUserInput struct {
	Email      string
	Password   string
	Role       string
	GivenName  string
	FamilyName string
	Name       string
}

type CreateUser interface {
	Execute(ctx context.Context, in CreateUserInput) (domain.DirectoryUser, error)
}

type createUser struct {
	directory domain.DirectoryClient
}

func NewCreateUser(directory domain.DirectoryClient) CreateUser {
	return &createUser{directory: directory}
}

// Execute registers a single user. Unlike the bulk path, the password is
// required here: callers creating one user at a time choose the credential.
func (uc *createUser) Execute(ctx context.Context, in CreateUserInput) (domain.DirectoryUser, error) {
	record := domain.Record{
		Email:      in.Email,
		Password:   in.Password,
		Role:       in.Role,
		GivenName:  in.GivenName,
		FamilyName: in.FamilyName,
		Name:       in.Name,
	}
	if err := record.Validate(); err != nil {
		return domain.DirectoryUser{}, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	if strings.TrimSpace(in.Password) == "" {
		return domain.DirectoryUser{}, fmt.Errorf("%w: %s", ErrValidation, domain.ErrPasswordTooShort.Error())
	}

	return uc.directory.CreateUser(ctx, normalizeRecord(record))
}
