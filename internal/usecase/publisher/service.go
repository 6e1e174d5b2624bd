package publisher

import (
	"context"
	"fmt"
	"time"

	"newsroom/internal/domain/access"
	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

// CreateInput represents the input parameters for creating a publisher.
type CreateInput struct {
	Name        string
	Description string
}

// UpdateInput represents the input parameters for updating a publisher.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID          int64
	Name        *string
	Description *string
}

// Service provides publisher management use cases.
// Mutations are restricted to editors; membership changes additionally
// require the acting editor to belong to the publisher's editor set.
type Service struct {
	Repo  repository.PublisherRepository
	Users repository.UserRepository
}

// Create creates a publisher and seeds its editor set with the creator.
// Only editors may create publishers.
func (s *Service) Create(ctx context.Context, actor access.Actor, in CreateInput) (*entity.Publisher, error) {
	if actor.Role != entity.RoleEditor {
		return nil, entity.ErrPermissionDenied
	}

	p := &entity.Publisher{
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create publisher: %w", err)
	}
	if err := s.Repo.AddEditor(ctx, p.ID, actor.UserID); err != nil {
		return nil, fmt.Errorf("add creating editor: %w", err)
	}
	p.EditorIDs = append(p.EditorIDs, actor.UserID)
	return p, nil
}

// Get retrieves a publisher with its member sets.
// Returns ErrInvalidPublisherID if the ID is not positive.
// Returns ErrPublisherNotFound if the publisher does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Publisher, error) {
	if id <= 0 {
		return nil, ErrInvalidPublisherID
	}
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get publisher: %w", err)
	}
	if p == nil {
		return nil, ErrPublisherNotFound
	}
	return p, nil
}

// List retrieves all publishers.
func (s *Service) List(ctx context.Context) ([]*entity.Publisher, error) {
	publishers, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}
	return publishers, nil
}

// Update modifies a publisher. The actor must belong to its editor set.
func (s *Service) Update(ctx context.Context, actor access.Actor, in UpdateInput) (*entity.Publisher, error) {
	p, err := s.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEditorOf(ctx, actor, p); err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, &entity.ValidationError{Field: "name", Message: "cannot be empty"}
		}
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}

	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update publisher: %w", err)
	}
	return p, nil
}

// Delete removes a publisher. The actor must belong to its editor set.
// Articles attached to the publisher keep existing as independent content
// is unaffected; the storage layer nulls their publisher reference.
func (s *Service) Delete(ctx context.Context, actor access.Actor, id int64) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireEditorOf(ctx, actor, p); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete publisher: %w", err)
	}
	return nil
}

// AddEditor adds a user to the publisher's editor set.
// The target must hold the editor role.
func (s *Service) AddEditor(ctx context.Context, actor access.Actor, publisherID, userID int64) error {
	return s.addMember(ctx, actor, publisherID, userID, entity.RoleEditor)
}

// AddJournalist adds a user to the publisher's journalist set.
// The target must hold the journalist role.
func (s *Service) AddJournalist(ctx context.Context, actor access.Actor, publisherID, userID int64) error {
	return s.addMember(ctx, actor, publisherID, userID, entity.RoleJournalist)
}

func (s *Service) addMember(ctx context.Context, actor access.Actor, publisherID, userID int64, want entity.Role) error {
	p, err := s.Get(ctx, publisherID)
	if err != nil {
		return err
	}
	if err := s.requireEditorOf(ctx, actor, p); err != nil {
		return err
	}

	u, err := s.Users.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get member user: %w", err)
	}
	if u == nil {
		return &entity.ValidationError{Field: "userID", Message: "user does not exist"}
	}
	if u.Role != want {
		return &entity.ValidationError{Field: "userID", Message: fmt.Sprintf("user must hold the %s role", want)}
	}

	switch want {
	case entity.RoleEditor:
		err = s.Repo.AddEditor(ctx, publisherID, userID)
	default:
		err = s.Repo.AddJournalist(ctx, publisherID, userID)
	}
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

// RemoveEditor removes a user from the publisher's editor set.
func (s *Service) RemoveEditor(ctx context.Context, actor access.Actor, publisherID, userID int64) error {
	p, err := s.Get(ctx, publisherID)
	if err != nil {
		return err
	}
	if err := s.requireEditorOf(ctx, actor, p); err != nil {
		return err
	}
	if err := s.Repo.RemoveEditor(ctx, publisherID, userID); err != nil {
		return fmt.Errorf("remove editor: %w", err)
	}
	return nil
}

// RemoveJournalist removes a user from the publisher's journalist set.
func (s *Service) RemoveJournalist(ctx context.Context, actor access.Actor, publisherID, userID int64) error {
	p, err := s.Get(ctx, publisherID)
	if err != nil {
		return err
	}
	if err := s.requireEditorOf(ctx, actor, p); err != nil {
		return err
	}
	if err := s.Repo.RemoveJournalist(ctx, publisherID, userID); err != nil {
		return fmt.Errorf("remove journalist: %w", err)
	}
	return nil
}

func (s *Service) requireEditorOf(ctx context.Context, actor access.Actor, p *entity.Publisher) error {
	if actor.Role != entity.RoleEditor || !p.HasEditor(actor.UserID) {
		return entity.ErrPermissionDenied
	}
	return nil
}
