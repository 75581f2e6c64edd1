package user

import (
	"context"

	domain "github.com/campushub/user-gateway/internal/domain/user"
)

type GetUserByEmailInput struct {
	Email string
}

type GetUserByEmail interface {
	Execute(ctx context.Context, in GetUserByEmailInput) (domain.DirectoryUser, error)
}

type getUserByEmail struct {
	directory domain.DirectoryClient
}

func NewGetUserByEmail(directory domain.DirectoryClient) GetUserByEmail {
	return &getUserByEmail{directory: directory}
}

func (uc *getUserByEmail) Execute(ctx context.Context, in GetUserByEmailInput) (domain.DirectoryUser, error) {
	return uc.directory.FindByEmail(ctx, in.Email)
}
