package user

import (
	"context"

	domain "github.com/campushub/user-gateway/internal/domain/user"
)

type DeleteUserInput struct {
	Email string
}

type DeleteUser interface {
	Execute(ctx context.Context, in DeleteUserInput) error
}

type deleteUser struct {
	directory domain.DirectoryClient
}

func NewDeleteUser(directory domain.DirectoryClient) DeleteUser {
	return &deleteUser{directory: directory}
}

func (uc *deleteUser) Execute(ctx context.Context, in DeleteUserInput) error {
	existing, err := uc.directory.FindByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	return uc.directory.DeleteUser(ctx, existing.ID)
}
