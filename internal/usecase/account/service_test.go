package account_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"newsroom/internal/domain/entity"
	accUC "newsroom/internal/usecase/account"
)

// very-light UserRepository stub
type stubUserRepo struct {
	data   map[int64]*entity.User
	nextID int64
	err    error // forced error injection
}

func newStub() *stubUserRepo {
	return &stubUserRepo{data: map[int64]*entity.User{}, nextID: 1}
}

func (s *stubUserRepo) Get(_ context.Context, id int64) (*entity.User, error) {
	return s.data[id], s.err
}

func (s *stubUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.data {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) ListByRole(_ context.Context, role entity.Role) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range s.data {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, s.err
}

func (s *stubUserRepo) ListByIDs(_ context.Context, ids []int64) ([]*entity.User, error) {
	var out []*entity.User
	for _, id := range ids {
		if u, ok := s.data[id]; ok {
			out = append(out, u)
		}
	}
	return out, s.err
}

func (s *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	if s.err != nil {
		return s.err
	}
	for _, existing := range s.data {
		if existing.Username == u.Username {
			return entity.ErrDuplicateUsername
		}
	}
	u.ID = s.nextID
	s.nextID++
	s.data[u.ID] = u
	return nil
}

func (s *stubUserRepo) Update(_ context.Context, u *entity.User) error {
	if s.err != nil {
		return s.err
	}
	s.data[u.ID] = u
	return nil
}

func (s *stubUserRepo) Delete(_ context.Context, id int64) error {
	delete(s.data, id)
	return s.err
}

func validInput() accUC.RegisterInput {
	return accUC.RegisterInput{
		Username:        "jane",
		Email:           "jane@example.com",
		Password:        "correct-horse",
		PasswordConfirm: "correct-horse",
		Role:            "journalist",
	}
}

func TestService_Register_success(t *testing.T) {
	stub := newStub()
	svc := accUC.Service{Repo: stub}

	u, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register err=%v", err)
	}
	if u.ID == 0 {
		t.Fatal("user ID not assigned")
	}
	if u.Role != entity.RoleJournalist {
		t.Fatalf("role = %q", u.Role)
	}
	if len(u.Groups) != 1 || u.Groups[0] != "Journalist" {
		t.Fatalf("groups = %v, want [Journalist]", u.Groups)
	}
	if u.PasswordHash == "correct-horse" || u.PasswordHash == "" {
		t.Fatal("password stored unhashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct-horse")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestService_Register_validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*accUC.RegisterInput)
		field  string
	}{
		{"missing username", func(in *accUC.RegisterInput) { in.Username = "" }, "username"},
		{"bad email", func(in *accUC.RegisterInput) { in.Email = "not-an-address" }, "email"},
		{"short password", func(in *accUC.RegisterInput) { in.Password = "short"; in.PasswordConfirm = "short" }, "password"},
		{"mismatched confirm", func(in *accUC.RegisterInput) { in.PasswordConfirm = "different-pass" }, "passwordConfirm"},
		{"unknown role", func(in *accUC.RegisterInput) { in.Role = "admin" }, "role"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := accUC.Service{Repo: newStub()}
			in := validInput()
			tc.mutate(&in)

			_, err := svc.Register(context.Background(), in)
			var verr *entity.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}

func TestService_Register_duplicateUsername(t *testing.T) {
	stub := newStub()
	svc := accUC.Service{Repo: stub}

	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("first Register err=%v", err)
	}
	_, err := svc.Register(context.Background(), validInput())
	if !errors.Is(err, entity.ErrDuplicateUsername) {
		t.Fatalf("want ErrDuplicateUsername, got %v", err)
	}
}

func TestService_Authenticate(t *testing.T) {
	stub := newStub()
	svc := accUC.Service{Repo: stub}

	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("Register err=%v", err)
	}

	u, err := svc.Authenticate(context.Background(), "jane", "correct-horse")
	if err != nil {
		t.Fatalf("Authenticate err=%v", err)
	}
	if u.Username != "jane" {
		t.Fatalf("username = %q", u.Username)
	}

	if _, err := svc.Authenticate(context.Background(), "jane", "wrong-password"); !errors.Is(err, accUC.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody", "correct-horse"); !errors.Is(err, accUC.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestService_GetJournalist_roleFilter(t *testing.T) {
	stub := newStub()
	stub.data[1] = &entity.User{ID: 1, Username: "ed", Role: entity.RoleEditor}
	stub.data[2] = &entity.User{ID: 2, Username: "jo", Role: entity.RoleJournalist}
	stub.nextID = 3
	svc := accUC.Service{Repo: stub}

	if _, err := svc.GetJournalist(context.Background(), 2); err != nil {
		t.Fatalf("GetJournalist err=%v", err)
	}
	// An editor must not be exposed through the journalist directory.
	if _, err := svc.GetJournalist(context.Background(), 1); !errors.Is(err, accUC.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}

func TestService_ListJournalists(t *testing.T) {
	stub := newStub()
	stub.data[1] = &entity.User{ID: 1, Role: entity.RoleEditor}
	stub.data[2] = &entity.User{ID: 2, Role: entity.RoleJournalist}
	stub.data[3] = &entity.User{ID: 3, Role: entity.RoleReader}
	svc := accUC.Service{Repo: stub}

	out, err := svc.ListJournalists(context.Background())
	if err != nil {
		t.Fatalf("ListJournalists err=%v", err)
	}
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("want only journalist 2, got %v", out)
	}
}
