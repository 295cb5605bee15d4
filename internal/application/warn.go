package application

import (
	"context"
	"fmt"
	"time"

	"bluebrain/internal/domain"
	"bluebrain/internal/domain/entities"
	"bluebrain/internal/ports/input"
	"bluebrain/internal/ports/output"
)

var _ input.WarnUseCase = (*WarnService)(nil)

type WarnService struct {
	warnRepo output.WarnRepository
	now      func() time.Time
}

func NewWarnService(warnRepo output.WarnRepository) *WarnService {
	return &WarnService{warnRepo: warnRepo, now: time.Now}
}

func (s *WarnService) Check(ctx context.Context, req input.WarnRequest) error {
	if err := domain.ValidateWarnType(req.Type); err != nil {
		return err
	}
	if req.Points != 0 {
		if err := domain.ValidatePoints(req.Points); err != nil {
			return err
		}
	}
	if err := domain.ValidateComment(req.Comment); err != nil {
		return err
	}
	_, err := s.typePoints(ctx, req.GuildID, req.Type)
	return err
}

// Warn records the warn, then totals the member's strikes for that type and
// their points to decide whether they must be banned.
func (s *WarnService) Warn(ctx context.Context, req input.WarnRequest) (*entities.WarnOutcome, error) {
	if err := s.Check(ctx, req); err != nil {
		return nil, err
	}
	points := req.Points
	if points == 0 {
		p, err := s.typePoints(ctx, req.GuildID, req.Type)
		if err != nil {
			return nil, err
		}
		points = p
	}

	warn := entities.Warn{
		ID:      domain.GenerateID(s.now()),
		GuildID: req.GuildID,
		UserID:  req.UserID,
		ModID:   req.ModID,
		Type:    req.Type,
		Points:  points,
		Comment: req.Comment,
	}
	if err := s.warnRepo.Create(ctx, &warn); err != nil {
		return nil, err
	}

	history, err := s.warnRepo.ListForUser(ctx, req.GuildID, req.UserID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.config(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}

	out := &entities.WarnOutcome{Warn: warn, MaxStrikes: cfg.MaxStrikes, MaxPoints: cfg.MaxPoints}
	for _, w := range history {
		if w.Type == req.Type {
			out.Strikes++
		}
		out.Points += w.Points
	}

	switch {
	case out.Strikes >= cfg.MaxStrikes:
		out.Ban = true
		out.ByStrikes = true
		out.BanReason = fmt.Sprintf("Received %s warning for %s.", domain.Ordinal(out.Strikes), req.Type)
	case out.Points >= cfg.MaxPoints:
		out.Ban = true
		out.BanReason = "Received equal to or more than the maximum allowed number of points."
	}
	return out, nil
}

func (s *WarnService) Remove(ctx context.Context, guildID, warnID string) error {
	deleted, err := s.warnRepo.Delete(ctx, guildID, warnID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrWarnNotFound
	}
	return nil
}

func (s *WarnService) Reset(ctx context.Context, guildID, userID string) error {
	n, err := s.warnRepo.DeleteForUser(ctx, guildID, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNoWarns
	}
	return nil
}

// List returns the member's warns, newest first, and their point total.
func (s *WarnService) List(ctx context.Context, guildID, userID string) ([]entities.Warn, int, error) {
	warns, err := s.warnRepo.ListForUser(ctx, guildID, userID)
	if err != nil {
		return nil, 0, err
	}
	total := 0
	for _, w := range warns {
		total += w.Points
	}
	return warns, total, nil
}

func (s *WarnService) Types(ctx context.Context, guildID string) ([]entities.WarnType, error) {
	return s.warnRepo.Types(ctx, guildID)
}

func (s *WarnService) CreateType(ctx context.Context, guildID, name string, points int) error {
	if err := domain.ValidateWarnType(name); err != nil {
		return err
	}
	if err := domain.ValidatePoints(points); err != nil {
		return err
	}
	types, err := s.warnRepo.Types(ctx, guildID)
	if err != nil {
		return err
	}
	if len(types) >= domain.MaxWarnTypes {
		return domain.ErrWarnTypeLimit
	}
	for _, t := range types {
		if t.Name == name {
			return domain.ErrWarnTypeExists
		}
	}
	return s.warnRepo.CreateType(ctx, &entities.WarnType{GuildID: guildID, Name: name, Points: points})
}

// EditType renames a type and/or changes its points. Zero values keep the
// current setting.
func (s *WarnService) EditType(ctx context.Context, guildID, name, newName string, newPoints int) error {
	if err := domain.ValidateWarnType(name); err != nil {
		return err
	}
	if newName == "" && newPoints == 0 {
		return domain.ErrWarnTypeUnchanged
	}
	if newPoints != 0 {
		if err := domain.ValidatePoints(newPoints); err != nil {
			return err
		}
	}
	if newName != "" {
		if err := domain.ValidateWarnType(newName); err != nil {
			return err
		}
		if newName == name {
			return domain.ErrWarnTypeExists
		}
	}

	types, err := s.warnRepo.Types(ctx, guildID)
	if err != nil {
		return err
	}
	var current *entities.WarnType
	for i := range types {
		switch types[i].Name {
		case name:
			current = &types[i]
		case newName:
			return domain.ErrWarnTypeExists
		}
	}
	if current == nil {
		return domain.ErrWarnTypeNotFound
	}

	updated := *current
	if newName != "" {
		updated.Name = newName
	}
	if newPoints != 0 {
		updated.Points = newPoints
	}
	cfg, err := s.config(ctx, guildID)
	if err != nil {
		return err
	}
	return s.warnRepo.UpdateType(ctx, guildID, name, updated, cfg.RetroUpdates)
}

func (s *WarnService) DeleteType(ctx context.Context, guildID, name string) error {
	if err := domain.ValidateWarnType(name); err != nil {
		return err
	}
	deleted, err := s.warnRepo.DeleteType(ctx, guildID, name)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrWarnTypeNotFound
	}
	return nil
}

func (s *WarnService) typePoints(ctx context.Context, guildID, name string) (int, error) {
	types, err := s.warnRepo.Types(ctx, guildID)
	if err != nil {
		return 0, err
	}
	for _, t := range types {
		if t.Name == name {
			return t.Points, nil
		}
	}
	return 0, domain.ErrWarnTypeNotFound
}

// config returns the guild's thresholds with unset values defaulted.
func (s *WarnService) config(ctx context.Context, guildID string) (*entities.WarnConfig, error) {
	cfg, err := s.warnRepo.Config(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if cfg.MaxPoints <= 0 {
		cfg.MaxPoints = domain.DefaultMaxPoints
	}
	if cfg.MaxStrikes <= 0 {
		cfg.MaxStrikes = domain.DefaultMaxStrikes
	}
	return cfg, nil
}
