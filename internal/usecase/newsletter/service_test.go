package newsletter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"newsroom/internal/domain/access"
	"newsroom/internal/domain/entity"
	"newsroom/internal/usecase/newsletter"
)

/* ──────────────── in-memory stubs ──────────────── */

type stubNewsletterRepo struct {
	data   map[int64]*entity.Newsletter
	nextID int64
	err    error
}

func newNewsletterStub() *stubNewsletterRepo {
	return &stubNewsletterRepo{data: map[int64]*entity.Newsletter{}, nextID: 1}
}

func (s *stubNewsletterRepo) Get(_ context.Context, id int64) (*entity.Newsletter, error) {
	return s.data[id], s.err
}

func (s *stubNewsletterRepo) ListPublished(_ context.Context) ([]*entity.Newsletter, error) {
	var out []*entity.Newsletter
	for _, n := range s.data {
		if n.IsPublished {
			out = append(out, n)
		}
	}
	return out, s.err
}

func (s *stubNewsletterRepo) ListByAuthor(_ context.Context, authorID int64) ([]*entity.Newsletter, error) {
	var out []*entity.Newsletter
	for _, n := range s.data {
		if n.AuthorID == authorID {
			out = append(out, n)
		}
	}
	return out, s.err
}

func (s *stubNewsletterRepo) ListDraftsByPublishers(_ context.Context, ids []int64) ([]*entity.Newsletter, error) {
	var out []*entity.Newsletter
	for _, n := range s.data {
		if n.IsPublished || n.PublisherID == nil {
			continue
		}
		for _, id := range ids {
			if *n.PublisherID == id {
				out = append(out, n)
				break
			}
		}
	}
	return out, s.err
}

func (s *stubNewsletterRepo) Create(_ context.Context, n *entity.Newsletter) error {
	if s.err != nil {
		return s.err
	}
	n.ID = s.nextID
	s.nextID++
	s.data[n.ID] = n
	return nil
}

func (s *stubNewsletterRepo) Update(_ context.Context, n *entity.Newsletter) error {
	if s.err != nil {
		return s.err
	}
	s.data[n.ID] = n
	return nil
}

func (s *stubNewsletterRepo) Delete(_ context.Context, id int64) error {
	delete(s.data, id)
	return s.err
}

func (s *stubNewsletterRepo) Publish(_ context.Context, id int64, publishedAt time.Time) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	n, ok := s.data[id]
	if !ok || n.IsPublished {
		return false, nil
	}
	n.Publish(publishedAt)
	return true, nil
}

type stubPublisherRepo struct {
	data map[int64]*entity.Publisher
}

func (s *stubPublisherRepo) Get(_ context.Context, id int64) (*entity.Publisher, error) {
	return s.data[id], nil
}
func (s *stubPublisherRepo) List(_ context.Context) ([]*entity.Publisher, error) { return nil, nil }
func (s *stubPublisherRepo) ListByEditor(_ context.Context, editorID int64) ([]*entity.Publisher, error) {
	var out []*entity.Publisher
	for _, p := range s.data {
		if p.HasEditor(editorID) {
			out = append(out, p)
		}
	}
	return out, nil
}
func (s *stubPublisherRepo) Create(_ context.Context, _ *entity.Publisher) error  { return nil }
func (s *stubPublisherRepo) Update(_ context.Context, _ *entity.Publisher) error  { return nil }
func (s *stubPublisherRepo) Delete(_ context.Context, _ int64) error              { return nil }
func (s *stubPublisherRepo) AddEditor(_ context.Context, _, _ int64) error        { return nil }
func (s *stubPublisherRepo) RemoveEditor(_ context.Context, _, _ int64) error     { return nil }
func (s *stubPublisherRepo) AddJournalist(_ context.Context, _, _ int64) error    { return nil }
func (s *stubPublisherRepo) RemoveJournalist(_ context.Context, _, _ int64) error { return nil }
func (s *stubPublisherRepo) IsEditor(_ context.Context, publisherID, userID int64) (bool, error) {
	p, ok := s.data[publisherID]
	return ok && p.HasEditor(userID), nil
}

var (
	journalist = access.Actor{UserID: 7, Role: entity.RoleJournalist}
	editor     = access.Actor{UserID: 3, Role: entity.RoleEditor}
	reader     = access.Actor{UserID: 5, Role: entity.RoleReader}
)

func ptr(v int64) *int64 { return &v }

func newService() (*newsletter.Service, *stubNewsletterRepo) {
	repo := newNewsletterStub()
	svc := &newsletter.Service{
		Repo: repo,
		Publishers: &stubPublisherRepo{data: map[int64]*entity.Publisher{
			1: {ID: 1, Name: "The Daily", EditorIDs: []int64{3}},
		}},
	}
	return svc, repo
}

/* ──────────────── tests ──────────────── */

func TestService_Create_editorRequiresPublisher(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), editor, newsletter.CreateInput{Title: "w", Content: "c"})
	var verr *entity.ValidationError
	if !errors.As(err, &verr) || verr.Field != "publisher" {
		t.Fatalf("want publisher validation error, got %v", err)
	}

	nl, err := svc.Create(context.Background(), editor, newsletter.CreateInput{Title: "w", Content: "c", PublisherID: ptr(1)})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if nl.IsPublished {
		t.Fatal("publisher newsletter must start as draft")
	}
}

func TestService_Create_journalistIndependentPublishes(t *testing.T) {
	svc, _ := newService()

	nl, err := svc.Create(context.Background(), journalist, newsletter.CreateInput{Title: "d", Content: "c"})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if !nl.IsPublished || nl.PublishedAt == nil {
		t.Fatalf("independent newsletter must publish immediately: %+v", nl)
	}
}

func TestService_Create_readerDenied(t *testing.T) {
	svc, _ := newService()

	if _, err := svc.Create(context.Background(), reader, newsletter.CreateInput{Title: "t", Content: "c"}); !errors.Is(err, entity.ErrPermissionDenied) {
		t.Fatalf("want ErrPermissionDenied, got %v", err)
	}
}

func TestService_Publish(t *testing.T) {
	svc, repo := newService()

	nl, err := svc.Create(context.Background(), editor, newsletter.CreateInput{Title: "w", Content: "c", PublisherID: ptr(1)})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}

	outsider := access.Actor{UserID: 4, Role: entity.RoleEditor}
	if _, err := svc.Publish(context.Background(), outsider, nl.ID); !errors.Is(err, entity.ErrPermissionDenied) {
		t.Fatalf("want ErrPermissionDenied for outsider, got %v", err)
	}

	published, err := svc.Publish(context.Background(), editor, nl.ID)
	if err != nil {
		t.Fatalf("Publish err=%v", err)
	}
	if !published.IsPublished || published.PublishedAt == nil {
		t.Fatalf("not published: %+v", published)
	}

	stamp := *repo.data[nl.ID].PublishedAt
	if _, err := svc.Publish(context.Background(), editor, nl.ID); !errors.Is(err, newsletter.ErrAlreadyPublished) {
		t.Fatalf("want ErrAlreadyPublished, got %v", err)
	}
	if !repo.data[nl.ID].PublishedAt.Equal(stamp) {
		t.Fatal("published_at moved on repeated publish")
	}

	// A non-member editor still gets a denial once the newsletter is
	// live, never the already-published conflict.
	if _, err := svc.Publish(context.Background(), outsider, nl.ID); !errors.Is(err, entity.ErrPermissionDenied) {
		t.Fatalf("want ErrPermissionDenied for outsider on published newsletter, got %v", err)
	}
}

func TestService_List_editorSeesOwnPublisherDrafts(t *testing.T) {
	svc, _ := newService()

	if _, err := svc.Create(context.Background(), journalist, newsletter.CreateInput{Title: "pub", Content: "c"}); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	draft, err := svc.Create(context.Background(), editor, newsletter.CreateInput{Title: "draft", Content: "c", PublisherID: ptr(1)})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}

	out, err := svc.List(context.Background(), editor)
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(out) != 2 {
		t.Fatalf("editor listing: want 2, got %d", len(out))
	}

	out, err = svc.List(context.Background(), reader)
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	for _, n := range out {
		if n.ID == draft.ID {
			t.Fatal("reader listing leaked a draft")
		}
	}
	if len(out) != 1 {
		t.Fatalf("reader listing: want 1, got %d", len(out))
	}
}

func TestService_Delete_authorOnly(t *testing.T) {
	svc, repo := newService()

	nl, err := svc.Create(context.Background(), journalist, newsletter.CreateInput{Title: "d", Content: "c"})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}

	other := access.Actor{UserID: 8, Role: entity.RoleJournalist}
	if err := svc.Delete(context.Background(), other, nl.ID); !errors.Is(err, entity.ErrPermissionDenied) {
		t.Fatalf("want ErrPermissionDenied, got %v", err)
	}
	if err := svc.Delete(context.Background(), journalist, nl.ID); err != nil {
		t.Fatalf("author delete err=%v", err)
	}
	if len(repo.data) != 0 {
		t.Fatalf("want empty store, got %d", len(repo.data))
	}
}
