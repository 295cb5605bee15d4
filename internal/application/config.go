package application

import (
	"context"
	"strconv"
	"strings"

	"bluebrain/internal/domain"
	"bluebrain/internal/ports/input"
	"bluebrain/internal/ports/output"
)

var _ input.ConfigUseCase = (*ConfigService)(nil)

// ConfigService reads and writes module attributes. Channel and role
// values are ids; callers resolve mentions first.
type ConfigService struct {
	guildRepo   output.GuildRepository
	warnRepo    output.WarnRepository
	gatewayRepo output.GatewayRepository
}

func NewConfigService(guildRepo output.GuildRepository, warnRepo output.WarnRepository, gatewayRepo output.GatewayRepository) *ConfigService {
	return &ConfigService{guildRepo: guildRepo, warnRepo: warnRepo, gatewayRepo: gatewayRepo}
}

func (s *ConfigService) Set(ctx context.Context, guildID, module, attribute, value string) error {
	m, a, err := domain.FindAttribute(module, attribute)
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if err := checkKind(a.Kind, value); err != nil {
		return err
	}

	switch m.Name {
	case "system":
		g, err := s.guildRepo.Get(ctx, guildID)
		if err != nil {
			return err
		}
		switch a.Name {
		case "prefix":
			if err := domain.ValidatePrefix(value); err != nil {
				return err
			}
			g.Prefix = value
		case "locale":
			g.Locale = strings.ToLower(value)
		case "logchannel":
			g.LogChannelID = value
		}
		return s.guildRepo.Update(ctx, g)

	case "warn":
		cfg, err := s.warnRepo.Config(ctx, guildID)
		if err != nil {
			return err
		}
		switch a.Name {
		case "maxpoints":
			n, _ := strconv.Atoi(value)
			if err := domain.ValidateMaxPoints(n); err != nil {
				return err
			}
			cfg.MaxPoints = n
		case "maxstrikes":
			n, _ := strconv.Atoi(value)
			if err := domain.ValidateMaxStrikes(n); err != nil {
				return err
			}
			cfg.MaxStrikes = n
		case "retroupdates":
			cfg.RetroUpdates, _ = parseToggle(value)
		}
		return s.warnRepo.UpdateConfig(ctx, cfg)

	case "gateway":
		gw, err := s.gatewayRepo.Get(ctx, guildID)
		if err != nil {
			return err
		}
		switch a.Name {
		case "ruleschannel":
			gw.RulesChannelID = value
		case "blockingrole":
			gw.BlockingRoleID = value
		case "gatetext":
			if err := domain.ValidateGateText(value); err != nil {
				return err
			}
			gw.GateText = value
		}
		return s.gatewayRepo.Update(ctx, gw)
	}
	return domain.ErrUnknownModule
}

// Get returns the stored value, "" when unset. Toggles read "on"/"off".
func (s *ConfigService) Get(ctx context.Context, guildID, module, attribute string) (string, error) {
	m, a, err := domain.FindAttribute(module, attribute)
	if err != nil {
		return "", err
	}

	switch m.Name {
	case "system":
		g, err := s.guildRepo.Get(ctx, guildID)
		if err != nil {
			return "", err
		}
		switch a.Name {
		case "prefix":
			return g.Prefix, nil
		case "locale":
			return g.Locale, nil
		case "logchannel":
			return g.LogChannelID, nil
		}
	case "warn":
		cfg, err := s.warnRepo.Config(ctx, guildID)
		if err != nil {
			return "", err
		}
		switch a.Name {
		case "maxpoints":
			return strconv.Itoa(cfg.MaxPoints), nil
		case "maxstrikes":
			return strconv.Itoa(cfg.MaxStrikes), nil
		case "retroupdates":
			if cfg.RetroUpdates {
				return "on", nil
			}
			return "off", nil
		}
	case "gateway":
		gw, err := s.gatewayRepo.Get(ctx, guildID)
		if err != nil {
			return "", err
		}
		switch a.Name {
		case "ruleschannel":
			return gw.RulesChannelID, nil
		case "blockingrole":
			return gw.BlockingRoleID, nil
		case "gatetext":
			return gw.GateText, nil
		}
	}
	return "", domain.ErrUnknownAttribute
}

func checkKind(kind domain.AttributeKind, value string) error {
	switch kind {
	case domain.KindText:
		if value == "" {
			return domain.ErrInvalidValue
		}
	case domain.KindNumber:
		if _, err := strconv.Atoi(value); err != nil {
			return domain.ErrInvalidValue
		}
	case domain.KindToggle:
		if _, ok := parseToggle(value); !ok {
			return domain.ErrInvalidValue
		}
	case domain.KindChannel, domain.KindRole:
		if !domain.IsSnowflake(value) {
			return domain.ErrInvalidValue
		}
	case domain.KindLocale:
		return domain.ValidateLocale(strings.ToLower(value))
	}
	return nil
}

func parseToggle(v string) (bool, bool) {
	switch strings.ToLower(v) {
	case "on", "true", "yes", "1", "enable", "enabled":
		return true, true
	case "off", "false", "no", "0", "disable", "disabled":
		return false, true
	}
	return false, false
}
