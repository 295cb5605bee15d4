package application

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"bluebrain/internal/domain"
	"bluebrain/internal/domain/entities"
)

type memStore struct {
	mu        sync.Mutex
	guilds    map[string]entities.Guild
	gateways  map[string]entities.Gateway
	entrants  map[[2]string]entities.Entrant
	configs   map[string]entities.WarnConfig
	warnTypes map[string][]entities.WarnType
	warns     []entities.Warn
	tags      map[[2]string]entities.Tag
	errors    map[string]entities.ErrorRecord
	clock     time.Time
}

func newMemStore() *memStore {
	return &memStore{
		guilds:    map[string]entities.Guild{},
		gateways:  map[string]entities.Gateway{},
		entrants:  map[[2]string]entities.Entrant{},
		configs:   map[string]entities.WarnConfig{},
		warnTypes: map[string][]entities.WarnType{},
		tags:      map[[2]string]entities.Tag{},
		errors:    map[string]entities.ErrorRecord{},
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing time so generated ids never collide.
func (m *memStore) tick() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

type memGuilds struct{ *memStore }

func (r memGuilds) Ensure(_ context.Context, g *entities.Guild) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.guilds[g.GuildID]; ok {
		return false, nil
	}
	r.guilds[g.GuildID] = *g
	r.gateways[g.GuildID] = entities.Gateway{GuildID: g.GuildID}
	r.configs[g.GuildID] = entities.WarnConfig{GuildID: g.GuildID, MaxPoints: domain.DefaultMaxPoints, MaxStrikes: domain.DefaultMaxStrikes}
	return true, nil
}

func (r memGuilds) Get(_ context.Context, id string) (*entities.Guild, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.guilds[id]
	if !ok {
		return nil, domain.ErrGuildNotFound
	}
	return &g, nil
}

func (r memGuilds) Update(_ context.Context, g *entities.Guild) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.guilds[g.GuildID]; !ok {
		return domain.ErrGuildNotFound
	}
	r.guilds[g.GuildID] = *g
	return nil
}

func (r memGuilds) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.guilds, id)
	delete(r.gateways, id)
	delete(r.configs, id)
	return nil
}

func (r memGuilds) ListIDs(context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.guilds))
	for id := range r.guilds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

type memGateways struct{ *memStore }

func (r memGateways) Get(_ context.Context, id string) (*entities.Gateway, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.gateways[id]
	if !ok {
		return nil, domain.ErrGuildNotFound
	}
	return &g, nil
}

func (r memGateways) FindByGateMessageID(_ context.Context, msgID string) (*entities.Gateway, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.gateways {
		if g.GateMessageID != "" && g.GateMessageID == msgID {
			return &g, nil
		}
	}
	return nil, domain.ErrGuildNotFound
}

func (r memGateways) Update(_ context.Context, g *entities.Gateway) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gateways[g.GuildID] = *g
	return nil
}

func (r memGateways) AddEntrant(_ context.Context, e *entities.Entrant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entrants[[2]string{e.GuildID, e.UserID}] = *e
	return nil
}

func (r memGateways) IsEntrant(_ context.Context, guildID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entrants[[2]string{guildID, userID}]
	return ok, nil
}

func (r memGateways) RemoveEntrant(_ context.Context, guildID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := [2]string{guildID, userID}
	_, ok := r.entrants[k]
	delete(r.entrants, k)
	return ok, nil
}

func (r memGateways) ClearEntrants(_ context.Context, guildID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.entrants {
		if k[0] == guildID {
			delete(r.entrants, k)
		}
	}
	return nil
}

type memTags struct{ *memStore }

func (r memTags) Create(_ context.Context, t *entities.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := [2]string{t.GuildID, t.Name}
	if _, ok := r.tags[k]; ok {
		return domain.ErrTagExists
	}
	t.CreatedAt = r.clock
	r.tags[k] = *t
	return nil
}

func (r memTags) Get(_ context.Context, guildID, name string) (*entities.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tags[[2]string{guildID, name}]
	if !ok {
		return nil, domain.ErrTagNotFound
	}
	return &t, nil
}

func (r memTags) list(guildID, owner string) []entities.Tag {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Tag
	for k, t := range r.tags {
		if k[0] == guildID && (owner == "" || t.OwnerID == owner) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b entities.Tag) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func (r memTags) List(_ context.Context, guildID string) ([]entities.Tag, error) {
	return r.list(guildID, ""), nil
}

func (r memTags) ListByOwner(_ context.Context, guildID, owner string) ([]entities.Tag, error) {
	return r.list(guildID, owner), nil
}

func (r memTags) UpdateContent(_ context.Context, guildID, name, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := [2]string{guildID, name}
	t, ok := r.tags[k]
	if !ok {
		return domain.ErrTagNotFound
	}
	t.Content = content
	r.tags[k] = t
	return nil
}

func (r memTags) Delete(_ context.Context, guildID, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := [2]string{guildID, name}
	_, ok := r.tags[k]
	delete(r.tags, k)
	return ok, nil
}

type memWarns struct{ *memStore }

func (r memWarns) Config(_ context.Context, guildID string) (*entities.WarnConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.configs[guildID]
	if !ok {
		return nil, domain.ErrGuildNotFound
	}
	return &c, nil
}

func (r memWarns) UpdateConfig(_ context.Context, c *entities.WarnConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[c.GuildID] = *c
	return nil
}

func (r memWarns) Types(_ context.Context, guildID string) ([]entities.WarnType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.warnTypes[guildID]), nil
}

func (r memWarns) CreateType(_ context.Context, wt *entities.WarnType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnTypes[wt.GuildID] = append(r.warnTypes[wt.GuildID], *wt)
	return nil
}

func (r memWarns) UpdateType(_ context.Context, guildID, name string, updated entities.WarnType, retro bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := r.warnTypes[guildID]
	for i, t := range types {
		if t.Name != name {
			continue
		}
		old := t.Points
		types[i] = updated
		for j, w := range r.warns {
			if w.GuildID != guildID || w.Type != name {
				continue
			}
			r.warns[j].Type = updated.Name
			if retro && w.Points == old {
				r.warns[j].Points = updated.Points
			}
		}
		return nil
	}
	return domain.ErrWarnTypeNotFound
}

func (r memWarns) DeleteType(_ context.Context, guildID, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := r.warnTypes[guildID]
	i := slices.IndexFunc(types, func(t entities.WarnType) bool { return t.Name == name })
	if i < 0 {
		return false, nil
	}
	r.warnTypes[guildID] = slices.Delete(types, i, i+1)
	r.warns = slices.DeleteFunc(r.warns, func(w entities.Warn) bool { return w.GuildID == guildID && w.Type == name })
	return true, nil
}

func (r memWarns) Create(_ context.Context, w *entities.Warn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w.Time = r.clock
	r.warns = append(r.warns, *w)
	return nil
}

func (r memWarns) Delete(_ context.Context, guildID, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.warns)
	r.warns = slices.DeleteFunc(r.warns, func(w entities.Warn) bool { return w.GuildID == guildID && w.ID == id })
	return len(r.warns) < n, nil
}

func (r memWarns) DeleteForUser(_ context.Context, guildID, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.warns)
	r.warns = slices.DeleteFunc(r.warns, func(w entities.Warn) bool { return w.GuildID == guildID && w.UserID == userID })
	return int64(n - len(r.warns)), nil
}

func (r memWarns) ListForUser(_ context.Context, guildID, userID string) ([]entities.Warn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Warn
	for i := len(r.warns) - 1; i >= 0; i-- {
		if w := r.warns[i]; w.GuildID == guildID && w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

type memErrors struct{ *memStore }

func (r memErrors) Create(_ context.Context, e *entities.ErrorRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.Time = r.clock
	r.errors[e.Ref] = *e
	return nil
}

func (r memErrors) Get(_ context.Context, ref string) (*entities.ErrorRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.errors[ref]
	if !ok {
		return nil, domain.ErrErrorNotFound
	}
	return &e, nil
}
