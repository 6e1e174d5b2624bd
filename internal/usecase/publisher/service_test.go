package publisher_test

import (
	"context"
	"errors"
	"testing"

	"newsroom/internal/domain/access"
	"newsroom/internal/domain/entity"
	pubUC "newsroom/internal/usecase/publisher"
)

type stubPublisherRepo struct {
	data   map[int64]*entity.Publisher
	nextID int64
	err    error
}

func newPubStub() *stubPublisherRepo {
	return &stubPublisherRepo{data: map[int64]*entity.Publisher{}, nextID: 1}
}

func (s *stubPublisherRepo) Get(_ context.Context, id int64) (*entity.Publisher, error) {
	return s.data[id], s.err
}

func (s *stubPublisherRepo) List(_ context.Context) ([]*entity.Publisher, error) {
	var out []*entity.Publisher
	for _, p := range s.data {
		out = append(out, p)
	}
	return out, s.err
}

func (s *stubPublisherRepo) ListByEditor(_ context.Context, editorID int64) ([]*entity.Publisher, error) {
	var out []*entity.Publisher
	for _, p := range s.data {
		if p.HasEditor(editorID) {
			out = append(out, p)
		}
	}
	return out, s.err
}

func (s *stubPublisherRepo) Create(_ context.Context, p *entity.Publisher) error {
	if s.err != nil {
		return s.err
	}
	p.ID = s.nextID
	s.nextID++
	s.data[p.ID] = p
	return nil
}

func (s *stubPublisherRepo) Update(_ context.Context, p *entity.Publisher) error {
	if s.err != nil {
		return s.err
	}
	s.data[p.ID] = p
	return nil
}

func (s *stubPublisherRepo) Delete(_ context.Context, id int64) error {
	delete(s.data, id)
	return s.err
}

func (s *stubPublisherRepo) AddEditor(_ context.Context, publisherID, userID int64) error {
	p := s.data[publisherID]
	if !p.HasEditor(userID) {
		p.EditorIDs = append(p.EditorIDs, userID)
	}
	return s.err
}

func (s *stubPublisherRepo) RemoveEditor(_ context.Context, publisherID, userID int64) error {
	p := s.data[publisherID]
	for i, id := range p.EditorIDs {
		if id == userID {
			p.EditorIDs = append(p.EditorIDs[:i], p.EditorIDs[i+1:]...)
			break
		}
	}
	return s.err
}

func (s *stubPublisherRepo) AddJournalist(_ context.Context, publisherID, userID int64) error {
	p := s.data[publisherID]
	if !p.HasJournalist(userID) {
		p.JournalistIDs = append(p.JournalistIDs, userID)
	}
	return s.err
}

func (s *stubPublisherRepo) RemoveJournalist(_ context.Context, publisherID, userID int64) error {
	p := s.data[publisherID]
	for i, id := range p.JournalistIDs {
		if id == userID {
			p.JournalistIDs = append(p.JournalistIDs[:i], p.JournalistIDs[i+1:]...)
			break
		}
	}
	return s.err
}

func (s *stubPublisherRepo) IsEditor(_ context.Context, publisherID, userID int64) (bool, error) {
	p, ok := s.data[publisherID]
	return ok && p.HasEditor(userID), s.err
}

type stubUserRepo struct {
	data map[int64]*entity.User
}

func (s *stubUserRepo) Get(_ context.Context, id int64) (*entity.User, error) {
	return s.data[id], nil
}
func (s *stubUserRepo) GetByUsername(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) ListByRole(_ context.Context, _ entity.Role) ([]*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) ListByIDs(_ context.Context, _ []int64) ([]*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) Create(_ context.Context, _ *entity.User) error { return nil }
func (s *stubUserRepo) Update(_ context.Context, _ *entity.User) error { return nil }
func (s *stubUserRepo) Delete(_ context.Context, _ int64) error        { return nil }

var (
	editor     = access.Actor{UserID: 3, Role: entity.RoleEditor}
	outsider   = access.Actor{UserID: 4, Role: entity.RoleEditor}
	journalist = access.Actor{UserID: 7, Role: entity.RoleJournalist}
)

func newService() (*pubUC.Service, *stubPublisherRepo) {
	repo := newPubStub()
	svc := &pubUC.Service{
		Repo: repo,
		Users: &stubUserRepo{data: map[int64]*entity.User{
			3: {ID: 3, Role: entity.RoleEditor},
			4: {ID: 4, Role: entity.RoleEditor},
			7: {ID: 7, Role: entity.RoleJournalist},
		}},
	}
	return svc, repo
}

func TestService_Create(t *testing.T) {
	svc, repo := newService()

	p, err := svc.Create(context.Background(), editor, pubUC.CreateInput{Name: "The Daily"})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if !p.HasEditor(editor.UserID) {
		t.Fatal("creator not seeded into editor set")
	}
	if len(repo.data) != 1 {
		t.Fatalf("want 1 publisher, got %d", len(repo.data))
	}

	// Journalists cannot create publishers.
	if _, err := svc.Create(context.Background(), journalist, pubUC.CreateInput{Name: "x"}); !errors.Is(err, entity.ErrPermissionDenied) {
		t.Fatalf("want ErrPermissionDenied, got %v", err)
	}

	// Name is required.
	var verr *entity.ValidationError
	if _, err := svc.Create(context.Background(), editor, pubUC.CreateInput{}); !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestService_Update_memberOnly(t *testing.T) {
	svc, _ := newService()

	p, err := svc.Create(context.Background(), editor, pubUC.CreateInput{Name: "The Daily"})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}

	name := "The Weekly"
	if _, err := svc.Update(context.Background(), outsider, pubUC.UpdateInput{ID: p.ID, Name: &name}); !errors.Is(err, entity.ErrPermissionDenied) {
		t.Fatalf("want ErrPermissionDenied, got %v", err)
	}

	updated, err := svc.Update(context.Background(), editor, pubUC.UpdateInput{ID: p.ID, Name: &name})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if updated.Name != "The Weekly" {
		t.Fatalf("name = %q", updated.Name)
	}
}

func TestService_AddMember_roleChecked(t *testing.T) {
	svc, repo := newService()

	p, err := svc.Create(context.Background(), editor, pubUC.CreateInput{Name: "The Daily"})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}

	// A journalist cannot join the editor set.
	var verr *entity.ValidationError
	if err := svc.AddEditor(context.Background(), editor, p.ID, 7); !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}

	if err := svc.AddEditor(context.Background(), editor, p.ID, 4); err != nil {
		t.Fatalf("AddEditor err=%v", err)
	}
	if err := svc.AddJournalist(context.Background(), editor, p.ID, 7); err != nil {
		t.Fatalf("AddJournalist err=%v", err)
	}
	got := repo.data[p.ID]
	if !got.HasEditor(4) || !got.HasJournalist(7) {
		t.Fatalf("member sets wrong: %+v", got)
	}

	// Unknown user.
	if err := svc.AddJournalist(context.Background(), editor, p.ID, 99); !errors.As(err, &verr) {
		t.Fatalf("want ValidationError for unknown user, got %v", err)
	}
}

func TestService_RemoveMember(t *testing.T) {
	svc, repo := newService()

	p, _ := svc.Create(context.Background(), editor, pubUC.CreateInput{Name: "The Daily"})
	if err := svc.AddJournalist(context.Background(), editor, p.ID, 7); err != nil {
		t.Fatalf("AddJournalist err=%v", err)
	}

	if err := svc.RemoveJournalist(context.Background(), outsider, p.ID, 7); !errors.Is(err, entity.ErrPermissionDenied) {
		t.Fatalf("want ErrPermissionDenied, got %v", err)
	}
	if err := svc.RemoveJournalist(context.Background(), editor, p.ID, 7); err != nil {
		t.Fatalf("RemoveJournalist err=%v", err)
	}
	if repo.data[p.ID].HasJournalist(7) {
		t.Fatal("journalist not removed")
	}
}

func TestService_Delete(t *testing.T) {
	svc, repo := newService()

	p, _ := svc.Create(context.Background(), editor, pubUC.CreateInput{Name: "The Daily"})

	if err := svc.Delete(context.Background(), outsider, p.ID); !errors.Is(err, entity.ErrPermissionDenied) {
		t.Fatalf("want ErrPermissionDenied, got %v", err)
	}
	if err := svc.Delete(context.Background(), editor, p.ID); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if len(repo.data) != 0 {
		t.Fatalf("want empty store, got %d", len(repo.data))
	}

	if _, err := svc.Get(context.Background(), p.ID); !errors.Is(err, pubUC.ErrPublisherNotFound) {
		t.Fatalf("want ErrPublisherNotFound, got %v", err)
	}
}
