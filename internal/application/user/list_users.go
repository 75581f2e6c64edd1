package user

import (
	"context"

	domain "github.com/campushub/user-gateway/internal/domain/user"
)

type ListUsersInput struct {
	Page    int
	PerPage int
}

type ListUsersOutput struct {
	Users   []domain.DirectoryUser `json:"users"`
	Total   int                    `json:"total"`
	Page    int                    `json:"page"`
	PerPage int                    `json:"per_page"`
}

type ListUsers interface {
	Execute(ctx context.Context, in ListUsersInput) (ListUsersOutput, error)
}

type listUsers struct {
	directory domain.DirectoryClient
}

func NewListUsers(directory domain.DirectoryClient) ListUsers {
	return &listUsers{directory: directory}
}

func (uc *listUsers) Execute(ctx context.Context, in ListUsersInput) (ListUsersOutput, error) {
	if in.Page < 0 {
		in.Page = 0
	}
	if in.PerPage <= 0 {
		in.PerPage = 50
	}

	users, total, err := uc.directory.ListUsers(ctx, in.Page, in.PerPage)
	if err != nil {
		return ListUsersOutput{}, err
	}

	return ListUsersOutput{
		Users:   users,
		Total:   total,
		Page:    in.Page,
		PerPage: in.PerPage,
	}, nil
}
