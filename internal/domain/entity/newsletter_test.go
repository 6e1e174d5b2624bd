package entity_test

import (
	"errors"
	"testing"
	"time"

	"newsroom/internal/domain/entity"
)

func TestNewNewsletter_EditorRequiresPublisher(t *testing.T) {
	editor := &entity.User{ID: 3, Role: entity.RoleEditor}

	_, err := entity.NewNewsletter(editor, "weekly", "content", nil)
	var verr *entity.ValidationError
	if !errors.As(err, &verr) || verr.Field != "publisher" {
		t.Fatalf("want publisher validation error, got %v", err)
	}

	pub := int64(5)
	n, err := entity.NewNewsletter(editor, "weekly", "content", &pub)
	if err != nil {
		t.Fatalf("NewNewsletter: %v", err)
	}
	if n.AuthorID != 3 || n.PublisherID == nil || *n.PublisherID != 5 {
		t.Fatalf("unexpected newsletter: %+v", n)
	}
}

func TestNewNewsletter_JournalistIndependent(t *testing.T) {
	journalist := &entity.User{ID: 7, Role: entity.RoleJournalist}

	n, err := entity.NewNewsletter(journalist, "dispatch", "content", nil)
	if err != nil {
		t.Fatalf("NewNewsletter: %v", err)
	}
	if !n.Independent() {
		t.Fatal("journalist newsletter without publisher must be independent")
	}
	if n.IsPublished || n.PublishedAt != nil {
		t.Fatalf("new newsletter must be a draft: %+v", n)
	}
}

func TestNewNewsletter_JournalistRejectsPublisher(t *testing.T) {
	journalist := &entity.User{ID: 7, Role: entity.RoleJournalist}

	// A journalist draft under a publisher could never be published, so
	// construction refuses it outright.
	pub := int64(5)
	_, err := entity.NewNewsletter(journalist, "dispatch", "content", &pub)
	var verr *entity.ValidationError
	if !errors.As(err, &verr) || verr.Field != "publisher" {
		t.Fatalf("want publisher validation error, got %v", err)
	}
}

func TestNewsletterPublish_StampsOnce(t *testing.T) {
	n := &entity.Newsletter{Title: "t", Content: "c", AuthorID: 1}

	first := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	n.Publish(first)
	if !n.IsPublished || n.PublishedAt == nil || !n.PublishedAt.Equal(first) {
		t.Fatalf("publish: %+v", n)
	}

	n.Publish(first.Add(time.Hour))
	if !n.PublishedAt.Equal(first) {
		t.Fatalf("publishedAt moved on re-publish: %v", n.PublishedAt)
	}
}
