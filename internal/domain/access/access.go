// Package access implements the authorization core: pure capability
// predicates over users and content items. Every view-level permission
// decision in the system goes through this package, so the access rules
// are testable in isolation from persistence and HTTP.
package access

import "newsroom/internal/domain/entity"

// Capability enumerates the operations a user may hold on a content item.
type Capability int

const (
	// View allows reading the full item.
	View Capability = iota
	// Edit allows modifying title and content.
	Edit
	// Delete allows removing the item.
	Delete
	// Approve allows publishing a draft item under a publisher.
	Approve
)

// String returns the capability name for logging.
func (c Capability) String() string {
	switch c {
	case View:
		return "view"
	case Edit:
		return "edit"
	case Delete:
		return "delete"
	case Approve:
		return "approve"
	}
	return "unknown"
}

// Actor identifies the acting user. A zero Actor represents an
// unauthenticated caller and holds no capabilities beyond viewing
// published listings.
type Actor struct {
	UserID int64
	Role   entity.Role
}

// Authenticated reports whether the actor carries a known identity.
func (a Actor) Authenticated() bool {
	return a.UserID > 0 && a.Role.Valid()
}

// Item is the content-item view the predicates operate on. Articles and
// newsletters share the same shape: an author, an optional publisher, and
// a published flag.
type Item struct {
	AuthorID    int64
	PublisherID *int64
	Published   bool
}

// ItemOfArticle projects an article onto the predicate input.
func ItemOfArticle(a *entity.Article) Item {
	return Item{AuthorID: a.AuthorID, PublisherID: a.PublisherID, Published: a.IsApproved}
}

// ItemOfNewsletter projects a newsletter onto the predicate input.
func ItemOfNewsletter(n *entity.Newsletter) Item {
	return Item{AuthorID: n.AuthorID, PublisherID: n.PublisherID, Published: n.IsPublished}
}

// Relation captures the acting user's relationship to the item beyond role
// and authorship. The caller resolves both facts against the persistence
// layer before asking for a decision:
//
//   - EditorOf: the actor belongs to the editor set of the item's publisher.
//   - Subscribed: a matching subscription exists for the actor as a reader,
//     meaning a publisher subscription when the item has a publisher,
//     otherwise a journalist subscription on the item's author.
type Relation struct {
	EditorOf   bool
	Subscribed bool
}

// Decision holds the capability flags computed for one (actor, item) pair.
type Decision struct {
	CanView    bool
	CanEdit    bool
	CanDelete  bool
	CanApprove bool
}

// Decide computes all capability flags for the actor on the item.
//
// Rules, applied identically for articles and newsletters:
//   - Authorship grants edit and delete.
//   - An editor of the item's publisher gets edit and delete, plus approve
//     while the item is still a draft.
//   - A draft is visible only to editors of its publisher.
//   - A published item is visible to its author and to journalists and
//     editors; a reader sees it only with a matching subscription.
//
// There is no capability that moves a published item back to draft.
func Decide(actor Actor, item Item, rel Relation) Decision {
	isAuthor := actor.Authenticated() && actor.UserID == item.AuthorID
	editorOf := actor.Role == entity.RoleEditor && item.PublisherID != nil && rel.EditorOf

	d := Decision{}
	if isAuthor || editorOf {
		d.CanEdit = true
		d.CanDelete = true
	}
	if editorOf && !item.Published {
		d.CanApprove = true
	}

	if !item.Published {
		d.CanView = editorOf
		return d
	}

	switch actor.Role {
	case entity.RoleJournalist, entity.RoleEditor:
		d.CanView = true
	case entity.RoleReader:
		d.CanView = rel.Subscribed
	default:
		d.CanView = isAuthor
	}
	return d
}

// Allowed reports whether the actor holds a single capability on the item.
func Allowed(actor Actor, item Item, rel Relation, c Capability) bool {
	d := Decide(actor, item, rel)
	switch c {
	case View:
		return d.CanView
	case Edit:
		return d.CanEdit
	case Delete:
		return d.CanDelete
	case Approve:
		return d.CanApprove
	}
	return false
}
