package entity_test

import (
	"errors"
	"testing"
	"time"

	"newsroom/internal/domain/entity"
)

func TestArticlePublish_StampsOnce(t *testing.T) {
	a := &entity.Article{Title: "t", Content: "c", AuthorID: 1}

	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	a.Publish(first)
	if !a.IsApproved {
		t.Fatal("article not approved after publish")
	}
	if a.PublishedAt == nil || !a.PublishedAt.Equal(first) {
		t.Fatalf("publishedAt = %v, want %v", a.PublishedAt, first)
	}

	later := first.Add(48 * time.Hour)
	a.Publish(later)
	if !a.PublishedAt.Equal(first) {
		t.Fatalf("publishedAt moved to %v on re-publish", a.PublishedAt)
	}
}

func TestArticleIndependent(t *testing.T) {
	a := &entity.Article{Title: "t", Content: "c", AuthorID: 1}
	if !a.Independent() {
		t.Fatal("article without publisher must be independent")
	}
	pub := int64(3)
	a.PublisherID = &pub
	if a.Independent() {
		t.Fatal("article with publisher must not be independent")
	}
}

func TestArticleValidate(t *testing.T) {
	cases := []struct {
		name    string
		article entity.Article
		field   string
	}{
		{"missing title", entity.Article{Content: "c", AuthorID: 1}, "title"},
		{"missing content", entity.Article{Title: "t", AuthorID: 1}, "content"},
		{"missing author", entity.Article{Title: "t", Content: "c"}, "authorID"},
		{"valid", entity.Article{Title: "t", Content: "c", AuthorID: 1}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.article.Validate()
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
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
