package application

import (
	"context"
	"errors"
	"time"

	"bluebrain/internal/domain"
	"bluebrain/internal/domain/entities"
	"bluebrain/internal/ports/input"
	"bluebrain/internal/ports/output"
)

var _ input.TagUseCase = (*TagService)(nil)

type TagService struct {
	tagRepo output.TagRepository
	now     func() time.Time
}

func NewTagService(tagRepo output.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo, now: time.Now}
}

func (s *TagService) Show(ctx context.Context, guildID, name string) (*entities.Tag, []string, error) {
	if err := domain.ValidateTagName(name); err != nil {
		return nil, nil, err
	}
	tag, err := s.tagRepo.Get(ctx, guildID, name)
	if err == nil {
		return tag, nil, nil
	}
	if !errors.Is(err, domain.ErrTagNotFound) {
		return nil, nil, err
	}

	all, lerr := s.tagRepo.List(ctx, guildID)
	if lerr != nil {
		return nil, nil, lerr
	}
	var suggestions []string
	for _, t := range all {
		if t.Name[0] == name[0] {
			suggestions = append(suggestions, t.Name)
		}
	}
	return nil, suggestions, domain.ErrTagNotFound
}

func (s *TagService) Create(ctx context.Context, guildID, ownerID, name, content string) (*entities.Tag, error) {
	if err := domain.ValidateTagName(name); err != nil {
		return nil, err
	}
	if err := domain.ValidateTagContent(content); err != nil {
		return nil, err
	}
	if _, err := s.tagRepo.Get(ctx, guildID, name); err == nil {
		return nil, domain.ErrTagExists
	} else if !errors.Is(err, domain.ErrTagNotFound) {
		return nil, err
	}

	tag := &entities.Tag{
		ID:      domain.GenerateID(s.now()),
		GuildID: guildID,
		OwnerID: ownerID,
		Name:    name,
		Content: content,
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Edit(ctx context.Context, guildID, userID, name, content string) error {
	tag, err := s.owned(ctx, guildID, userID, name)
	if err != nil {
		return err
	}
	if err := domain.ValidateTagContent(content); err != nil {
		return err
	}
	if tag.Content == content {
		return domain.ErrTagUnchanged
	}
	return s.tagRepo.UpdateContent(ctx, guildID, name, content)
}

func (s *TagService) Delete(ctx context.Context, guildID, userID, name string) error {
	if _, err := s.owned(ctx, guildID, userID, name); err != nil {
		return err
	}
	deleted, err := s.tagRepo.Delete(ctx, guildID, name)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrTagNotFound
	}
	return nil
}

func (s *TagService) List(ctx context.Context, guildID string) ([]entities.Tag, error) {
	return s.tagRepo.List(ctx, guildID)
}

func (s *TagService) ListByOwner(ctx context.Context, guildID, ownerID string) ([]entities.Tag, error) {
	return s.tagRepo.ListByOwner(ctx, guildID, ownerID)
}

func (s *TagService) owned(ctx context.Context, guildID, userID, name string) (*entities.Tag, error) {
	if err := domain.ValidateTagName(name); err != nil {
		return nil, err
	}
	tag, err := s.tagRepo.Get(ctx, guildID, name)
	if err != nil {
		return nil, err
	}
	if tag.OwnerID != userID {
		return nil, domain.ErrNotTagOwner
	}
	return tag, nil
}
