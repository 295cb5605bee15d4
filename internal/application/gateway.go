package application

import (
	"context"
	"time"

	"bluebrain/internal/domain"
	"bluebrain/internal/domain/entities"
	"bluebrain/internal/ports/input"
	"bluebrain/internal/ports/output"
)

var _ input.GatewayUseCase = (*GatewayService)(nil)

type GatewayService struct {
	gatewayRepo output.GatewayRepository
	now         func() time.Time
}

func NewGatewayService(gatewayRepo output.GatewayRepository) *GatewayService {
	return &GatewayService{gatewayRepo: gatewayRepo, now: time.Now}
}

func (s *GatewayService) Get(ctx context.Context, guildID string) (*entities.Gateway, error) {
	return s.gatewayRepo.Get(ctx, guildID)
}

func (s *GatewayService) Activate(ctx context.Context, guildID string) (*entities.Gateway, error) {
	gw, err := s.gatewayRepo.Get(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if gw.Active {
		return nil, domain.ErrModuleActive
	}
	if gw.RulesChannelID == "" {
		return nil, domain.ErrRulesChannelUnset
	}
	if gw.BlockingRoleID == "" {
		return nil, domain.ErrBlockingRoleUnset
	}
	if gw.GateText == "" {
		gw.GateText = domain.DefaultGatewayText
	}
	return gw, nil
}

// SetGateMessage stores the posted gate message and switches the gateway on.
func (s *GatewayService) SetGateMessage(ctx context.Context, guildID, messageID string) error {
	gw, err := s.gatewayRepo.Get(ctx, guildID)
	if err != nil {
		return err
	}
	gw.GateMessageID = messageID
	gw.Active = true
	return s.gatewayRepo.Update(ctx, gw)
}

// Deactivate switches the gateway off and forgets pending entrants. The
// returned gateway still carries the old gate message id.
func (s *GatewayService) Deactivate(ctx context.Context, guildID string) (*entities.Gateway, error) {
	gw, err := s.gatewayRepo.Get(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if !gw.Active {
		return nil, domain.ErrModuleInactive
	}
	if err := s.gatewayRepo.ClearEntrants(ctx, guildID); err != nil {
		return nil, err
	}
	prior := *gw
	gw.Active = false
	gw.GateMessageID = ""
	if err := s.gatewayRepo.Update(ctx, gw); err != nil {
		return nil, err
	}
	return &prior, nil
}

// Admit records a new member as an entrant when the gateway is active.
func (s *GatewayService) Admit(ctx context.Context, guildID, userID string) (*entities.Gateway, bool, error) {
	gw, err := s.gatewayRepo.Get(ctx, guildID)
	if err != nil {
		return nil, false, err
	}
	if !gw.Active {
		return gw, false, nil
	}
	err = s.gatewayRepo.AddEntrant(ctx, &entities.Entrant{GuildID: guildID, UserID: userID, EntryTime: s.now()})
	if err != nil {
		return nil, false, err
	}
	return gw, true, nil
}

// Resolve handles an answer on a gate message. It reports false when the
// message is not an active gate or the user is not a pending entrant.
func (s *GatewayService) Resolve(ctx context.Context, messageID, userID string) (*entities.Gateway, bool, error) {
	gw, err := s.gatewayRepo.FindByGateMessageID(ctx, messageID)
	if err != nil {
		return nil, false, err
	}
	if !gw.Active {
		return gw, false, nil
	}
	removed, err := s.gatewayRepo.RemoveEntrant(ctx, gw.GuildID, userID)
	if err != nil {
		return nil, false, err
	}
	return gw, removed, nil
}
