package newsletter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newsroom/internal/domain/entity"
	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/newsletter"
	"newsroom/internal/repository"
	nlUC "newsroom/internal/usecase/newsletter"
	"newsroom/internal/usecase/notify"
)

/* ──────────────── stubs ──────────────── */

type stubNewsletterRepo struct {
	repository.NewsletterRepository
	data   map[int64]*entity.Newsletter
	nextID int64
}

func newNewsletterStub() *stubNewsletterRepo {
	return &stubNewsletterRepo{data: map[int64]*entity.Newsletter{}, nextID: 1}
}

func (s *stubNewsletterRepo) Get(_ context.Context, id int64) (*entity.Newsletter, error) {
	return s.data[id], nil
}

func (s *stubNewsletterRepo) Create(_ context.Context, n *entity.Newsletter) error {
	n.ID = s.nextID
	s.nextID++
	s.data[n.ID] = n
	return nil
}

func (s *stubNewsletterRepo) Update(_ context.Context, n *entity.Newsletter) error {
	s.data[n.ID] = n
	return nil
}

func (s *stubNewsletterRepo) Delete(_ context.Context, id int64) error {
	delete(s.data, id)
	return nil
}

func (s *stubNewsletterRepo) Publish(_ context.Context, id int64, publishedAt time.Time) (bool, error) {
	n, ok := s.data[id]
	if !ok || n.IsPublished {
		return false, nil
	}
	n.IsPublished = true
	if n.PublishedAt == nil {
		n.PublishedAt = &publishedAt
	}
	return true, nil
}

type stubPublisherRepo struct {
	repository.PublisherRepository
	publisher *entity.Publisher
}

func (s *stubPublisherRepo) Get(_ context.Context, id int64) (*entity.Publisher, error) {
	if s.publisher != nil && s.publisher.ID == id {
		return s.publisher, nil
	}
	return nil, nil
}

func (s *stubPublisherRepo) IsEditor(_ context.Context, publisherID, userID int64) (bool, error) {
	if s.publisher == nil || s.publisher.ID != publisherID {
		return false, nil
	}
	for _, e := range s.publisher.EditorIDs {
		if e == userID {
			return true, nil
		}
	}
	return false, nil
}

type stubSubRepo struct {
	repository.SubscriptionRepository
}

func (s *stubSubRepo) ListPublisherSubscribers(_ context.Context, publisherID int64) ([]int64, error) {
	return nil, nil
}

func (s *stubSubRepo) ListJournalistSubscribers(_ context.Context, journalistID int64) ([]int64, error) {
	return nil, nil
}

func (s *stubSubRepo) IsSubscribedToPublisher(_ context.Context, readerID, publisherID int64) (bool, error) {
	return false, nil
}

func (s *stubSubRepo) IsSubscribedToJournalist(_ context.Context, readerID, journalistID int64) (bool, error) {
	return false, nil
}

type stubUserRepo struct {
	repository.UserRepository
}

func (s *stubUserRepo) ListByIDs(_ context.Context, ids []int64) ([]*entity.User, error) {
	return nil, nil
}

type nullNotifier struct{}

func (nullNotifier) Dispatch(ctx context.Context, msg *notify.Message) error { return nil }
func (nullNotifier) GetChannelHealth() []notify.ChannelHealthStatus          { return nil }
func (nullNotifier) Shutdown(ctx context.Context) error                      { return nil }

/* ──────────────── helpers ──────────────── */

func newService(repo *stubNewsletterRepo, pubs *stubPublisherRepo) *nlUC.Service {
	return &nlUC.Service{
		Repo:       repo,
		Publishers: pubs,
		Subs:       &stubSubRepo{},
		Users:      &stubUserRepo{},
		Notifier:   nullNotifier{},
	}
}

func newMux(svc *nlUC.Service) *http.ServeMux {
	mux := http.NewServeMux()
	newsletter.Register(mux, svc)
	return mux
}

func asUser(r *http.Request, userID int64, role entity.Role) *http.Request {
	ctx := auth.WithIdentity(r.Context(), &auth.Identity{
		UserID:   userID,
		Username: "user",
		Role:     role,
	})
	return r.WithContext(ctx)
}

/* ──────────────── tests ──────────────── */

func TestCreate_IndependentNewsletterPublishedImmediately(t *testing.T) {
	repo := newNewsletterStub()
	mux := newMux(newService(repo, &stubPublisherRepo{}))

	body, _ := json.Marshal(map[string]any{"title": "Weekly", "content": "Digest"})
	req := asUser(httptest.NewRequest(http.MethodPost, "/newsletters", bytes.NewReader(body)), 7, entity.RoleJournalist)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out newsletter.DTO
	_ = json.NewDecoder(rec.Body).Decode(&out)
	if !out.IsPublished || out.PublishedAt == nil {
		t.Errorf("independent newsletter should be live: %+v", out)
	}
}

func TestCreate_EditorWithoutPublisherRejected(t *testing.T) {
	mux := newMux(newService(newNewsletterStub(), &stubPublisherRepo{}))

	body, _ := json.Marshal(map[string]any{"title": "Weekly", "content": "Digest"})
	req := asUser(httptest.NewRequest(http.MethodPost, "/newsletters", bytes.NewReader(body)), 9, entity.RoleEditor)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
	}
}

func TestCreate_ReaderForbidden(t *testing.T) {
	mux := newMux(newService(newNewsletterStub(), &stubPublisherRepo{}))

	body, _ := json.Marshal(map[string]any{"title": "T", "content": "C"})
	req := asUser(httptest.NewRequest(http.MethodPost, "/newsletters", bytes.NewReader(body)), 5, entity.RoleReader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestGet_NotFound(t *testing.T) {
	mux := newMux(newService(newNewsletterStub(), &stubPublisherRepo{}))

	req := asUser(httptest.NewRequest(http.MethodGet, "/newsletters/42", nil), 7, entity.RoleJournalist)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestPublish_StampsOnce(t *testing.T) {
	pubID := int64(3)
	repo := newNewsletterStub()
	now := time.Now()
	repo.data[1] = &entity.Newsletter{
		ID: 1, Title: "Draft", Content: "C", AuthorID: 7, PublisherID: &pubID,
		CreatedAt: now,
	}
	repo.nextID = 2
	pubs := &stubPublisherRepo{publisher: &entity.Publisher{ID: 3, Name: "P", EditorIDs: []int64{9}}}
	mux := newMux(newService(repo, pubs))

	req := asUser(httptest.NewRequest(http.MethodPost, "/newsletters/1/publish", nil), 9, entity.RoleEditor)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out newsletter.DTO
	_ = json.NewDecoder(rec.Body).Decode(&out)
	if !out.IsPublished || out.PublishedAt == nil {
		t.Fatalf("published newsletter missing stamp: %+v", out)
	}

	// second publish conflicts
	req = asUser(httptest.NewRequest(http.MethodPost, "/newsletters/1/publish", nil), 9, entity.RoleEditor)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("second publish status = %d, want 409", rec.Code)
	}
}

func TestDelete_Author(t *testing.T) {
	repo := newNewsletterStub()
	now := time.Now()
	repo.data[1] = &entity.Newsletter{ID: 1, Title: "T", Content: "C", AuthorID: 7, CreatedAt: now}
	repo.nextID = 2
	mux := newMux(newService(repo, &stubPublisherRepo{}))

	req := asUser(httptest.NewRequest(http.MethodDelete, "/newsletters/1", nil), 7, entity.RoleJournalist)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if _, ok := repo.data[1]; ok {
		t.Error("newsletter not deleted")
	}
}

func TestUpdate_PartialBody(t *testing.T) {
	repo := newNewsletterStub()
	now := time.Now()
	repo.data[1] = &entity.Newsletter{ID: 1, Title: "Old", Content: "Body", AuthorID: 7, CreatedAt: now}
	repo.nextID = 2
	mux := newMux(newService(repo, &stubPublisherRepo{}))

	body, _ := json.Marshal(map[string]any{"title": "New"})
	req := asUser(httptest.NewRequest(http.MethodPut, "/newsletters/1", bytes.NewReader(body)), 7, entity.RoleJournalist)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out newsletter.DTO
	_ = json.NewDecoder(rec.Body).Decode(&out)
	if out.Title != "New" || out.Content != "Body" {
		t.Errorf("out = %+v", out)
	}
}

func TestNoIdentity_Unauthorized(t *testing.T) {
	mux := newMux(newService(newNewsletterStub(), &stubPublisherRepo{}))

	req := httptest.NewRequest(http.MethodGet, "/newsletters", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
