package user_test

import (
	"context"
	"errors"
	"testing"

	app "github.com/campushub/user-gateway/internal/application/user"
	domain "github.com/campushub/user-gateway/internal/domain/user"
)

func TestCreateUserValidation(t *testing.T) {
	t.Parallel()

	directory := &fakeDirectory{}
	uc := app.NewCreateUser(directory)

	cases := []struct {
		name string
		in   app.CreateUserInput
	}{
		{"missing email", app.CreateUserInput{Role: "student", Password: "longenough"}},
		{"bad role", app.CreateUserInput{Email: "a@b.com", Role: "admin", Password: "longenough"}},
		{"missing password", app.CreateUserInput{Email: "a@b.com", Role: "student"}},
		{"short password", app.CreateUserInput{Email: "a@b.com", Role: "student", Password: "short1"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := uc.Execute(context.Background(), tc.in)
			if !errors.Is(err, app.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	if len(directory.created) != 0 {
		t.Fatalf("expected no directory calls, got %d", len(directory.created))
	}
}

func TestCreateUserSuccess(t *testing.T) {
	t.Parallel()

	directory := &fakeDirectory{}
	uc := app.NewCreateUser(directory)

	created, err := uc.Execute(context.Background(), app.CreateUserInput{
		Email:      "  alice@example.com ",
		Password:   "longenough",
		Role:       "teacher",
		GivenName:  "Alice",
		FamilyName: "Smith",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %q", created.Email)
	}
	if len(directory.created) != 1 {
		t.Fatalf("expected one create, got %d", len(directory.created))
	}
	if directory.created[0].Role != domain.RoleTeacher {
		t.Fatalf("unexpected role: %q", directory.created[0].Role)
	}
}

func TestUpdateUserRejectsBadFields(t *testing.T) {
	t.Parallel()

	uc := app.NewUpdateUser(&fakeDirectory{})

	badRole := "admin"
	if _, err := uc.Execute(context.Background(), app.UpdateUserInput{Email: "a@b.com", Role: &badRole}); !errors.Is(err, app.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	shortPassword := "short1"
	if _, err := uc.Execute(context.Background(), app.UpdateUserInput{Email: "a@b.com", Password: &shortPassword}); !errors.Is(err, app.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	t.Parallel()

	uc := app.NewUpdateUser(&fakeDirectory{})
	name := "New Name"
	_, err := uc.Execute(context.Background(), app.UpdateUserInput{Email: "ghost@example.com", Name: &name})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	t.Parallel()

	uc := app.NewDeleteUser(&fakeDirectory{})
	if err := uc.Execute(context.Background(), app.DeleteUserInput{Email: "ghost@example.com"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListUsersDefaults(t *testing.T) {
	t.Parallel()

	pages, total := directoryPages(10, 50)
	directory := &fakeDirectory{pages: pages, total: total}
	uc := app.NewListUsers(directory)

	out, err := uc.Execute(context.Background(), app.ListUsersInput{Page: -1, PerPage: 0})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Page != 0 || out.PerPage != 50 {
		t.Fatalf("expected defaults 0/50, got %d/%d", out.Page, out.PerPage)
	}
	if out.Total != 10 || len(out.Users) != 10 {
		t.Fatalf("unexpected listing: total=%d users=%d", out.Total, len(out.Users))
	}
}
