package user

import (
	"context"
	"fmt"

	domain "github.com/campushub/user-gateway/internal/domain/user"
)

type UpdateUserInput struct {
	Email      string
	GivenName  *string
	FamilyName *string
	Name       *string
	Password   *string
	Role       *string
}

type UpdateUser interface {
	Execute(ctx context.Context, in UpdateUserInput) (domain.DirectoryUser, error)
}

type updateUser struct {
	directory domain.DirectoryClient
}

func NewUpdateUser(directory domain.DirectoryClient) UpdateUser {
	return &updateUser{directory: directory}
}

// Execute applies a partial update to the user identified by email. A role
// change re-runs the directory's best-effort role assignment.
func (uc *updateUser) Execute(ctx context.Context, in UpdateUserInput) (domain.DirectoryUser, error) {
	update := domain.UpdateUser{
		GivenName:  in.GivenName,
		FamilyName: in.FamilyName,
		Name:       in.Name,
		Password:   in.Password,
	}

	if in.Role != nil {
		role, ok := domain.ParseRole(*in.Role)
		if !ok {
			return domain.DirectoryUser{}, fmt.Errorf("%w: %s", ErrValidation, domain.ErrInvalidRole.Error())
		}
		update.Role = &role
	}
	if in.Password != nil && len(*in.Password) < 8 {
		return domain.DirectoryUser{}, fmt.Errorf("%w: %s", ErrValidation, domain.ErrPasswordTooShort.Error())
	}

	existing, err := uc.directory.FindByEmail(ctx, in.Email)
	if err != nil {
		return domain.DirectoryUser{}, err
	}

	return uc.directory.UpdateUser(ctx, existing.ID, update)
}
