package menu

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"time"
)

const DefaultTimeout = 300 * time.Second

var errTimedOut = errors.New("menu: no response")

// SelectorOption configures any selector.
type SelectorOption func(*core)

// WithTimeout bounds each reaction await.
func WithTimeout(d time.Duration) SelectorOption {
	return func(c *core) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithAutoExit controls whether the exit control stops the menu.
func WithAutoExit(v bool) SelectorOption {
	return func(c *core) { c.autoExit = v }
}

// WithCheck replaces the predicate deciding which reactions count.
func WithCheck(fn func(Reaction) bool) SelectorOption {
	return func(c *core) { c.check = fn }
}

// core is the state shared by every selector: the base selection, the
// currently and previously rendered selections and the await guard.
type core struct {
	menu     *Menu
	base     []Control
	timeout  time.Duration
	autoExit bool
	check    func(Reaction) bool

	selection     []Control
	lastSelection []Control
	stale         bool
	awaiting      atomic.Bool
}

func (c *core) init(m *Menu, base []Control, opts []SelectorOption) {
	c.menu = m
	c.base = slices.Clone(base)
	c.timeout = DefaultTimeout
	c.autoExit = true
	for _, opt := range opts {
		opt(c)
	}
}

func (c *core) Timeout() time.Duration   { return c.timeout }
func (c *core) AutoExit() bool           { return c.autoExit }
func (c *core) Selection() []Control     { return slices.Clone(c.selection) }
func (c *core) LastSelection() []Control { return slices.Clone(c.lastSelection) }
func (c *core) BaseSelection() []Control { return slices.Clone(c.base) }

// qualifies is the default check: the live message, the invoking user
// and a control from the current selection.
func (c *core) qualifies(r Reaction) bool {
	if c.check != nil {
		return c.check(r)
	}
	msg := c.menu.Message()
	if msg == nil || r.MessageID != msg.ID {
		return false
	}
	if r.UserID != c.menu.Invocation().UserID {
		return false
	}
	return slices.Contains(c.selection, c.menu.Emoji().Identify(r))
}

func (c *core) begin() error {
	if c.menu.Stopped() {
		return ErrMenuStopped
	}
	if !c.awaiting.CompareAndSwap(false, true) {
		return ErrAwaitInProgress
	}
	return nil
}

func (c *core) end() { c.awaiting.Store(false) }

// present makes sure the message shows exactly want, touching reactions
// only when the selection changed. The selection is only committed once
// the reactions are on the message; after a failed serve the next call
// clears and serves again.
func (c *core) present(ctx context.Context, want []Control) error {
	if !c.stale && slices.Equal(want, c.selection) {
		c.lastSelection = c.selection
		return nil
	}
	if err := c.menu.serve(ctx, want, c.stale || len(c.selection) > 0); err != nil {
		c.stale = true
		return err
	}
	c.lastSelection, c.selection, c.stale = c.selection, want, false
	return nil
}

// await blocks until a qualifying reaction arrives or the timeout elapses.
// Reactions that do not qualify are ignored and do not extend the deadline.
func (c *core) await(ctx context.Context) (Control, error) {
	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-c.menu.done:
			return "", ErrMenuStopped
		case <-timer.C:
			return "", errTimedOut
		case r := <-c.menu.reactions:
			if c.qualifies(r) {
				return c.menu.Emoji().Identify(r), nil
			}
		}
	}
}

// round runs steps 3-5 of a selector round: await, then handle timeout and
// exit. done reports that the caller must return without a result.
func (c *core) round(ctx context.Context) (ctl Control, done bool, err error) {
	ctl, err = c.await(ctx)
	if errors.Is(err, errTimedOut) {
		return "", true, c.menu.Timeout(ctx, c.timeout)
	}
	if err != nil {
		return "", true, err
	}
	if ctl == Exit {
		if c.autoExit {
			return "", true, c.menu.Stop(ctx)
		}
		return "", true, nil
	}
	return ctl, false, nil
}

// Selector offers a fixed set of controls and resolves with the one the
// invoking user picked.
type Selector struct {
	core
}

// NewSelector creates a selector over base.
func NewSelector(m *Menu, base []Control, opts ...SelectorOption) *Selector {
	s := &Selector{}
	s.init(m, base, opts)
	return s
}

// Response runs one round. ok is false when the menu exited or timed out.
func (s *Selector) Response(ctx context.Context) (Control, bool, error) {
	if err := s.begin(); err != nil {
		return "", false, err
	}
	defer s.end()

	if err := s.present(ctx, s.base); err != nil {
		return "", false, err
	}
	ctl, done, err := s.round(ctx)
	if done {
		return "", false, err
	}
	return ctl, true, nil
}

// pager is page index state clamped into [0, maxPage-1].
type pager struct {
	page    int
	maxPage int
}

func (p *pager) Page() int    { return p.page }
func (p *pager) MaxPage() int { return p.maxPage }

// SetPage assigns the page index, clamping it into range.
func (p *pager) SetPage(v int) {
	p.page = max(0, min(v, p.maxPage-1))
}

// PageInfo renders "Page 1 of 3".
func (p *pager) PageInfo() string {
	return fmt.Sprintf("Page %d of %d", p.page+1, p.maxPage)
}

// navigation returns the controls that apply to the current page: none for
// a single page, first/previous off the first page, next/last off the last.
func (p *pager) navigation() []Control {
	if p.maxPage <= 1 {
		return nil
	}
	var nav []Control
	if p.page != 0 {
		nav = append(nav, StepBack, PageBack)
	}
	if p.page != p.maxPage-1 {
		nav = append(nav, PageNext, StepNext)
	}
	return nav
}

func (p *pager) navigate(c Control) {
	switch c {
	case StepBack:
		p.SetPage(0)
	case PageBack:
		p.SetPage(p.page - 1)
	case PageNext:
		p.SetPage(p.page + 1)
	case StepNext:
		p.SetPage(p.maxPage)
	}
}

// NumericalSelector pages items nine at a time and resolves with the item
// bound to the numbered option the user picked.
type NumericalSelector struct {
	core
	pager
	items []string
	pages [][]string
}

// NewNumericalSelector splits items into pages. An empty sequence still
// yields a single empty page.
func NewNumericalSelector(m *Menu, items []string, opts ...SelectorOption) *NumericalSelector {
	n := (len(items) + PageSize - 1) / PageSize
	if n == 0 {
		n = 1
	}
	pages := make([][]string, n)
	for i, item := range items {
		pages[i/PageSize] = append(pages[i/PageSize], item)
	}
	s := &NumericalSelector{
		pager: pager{maxPage: n},
		items: slices.Clone(items),
		pages: pages,
	}
	s.init(m, []Control{Exit}, opts)
	return s
}

// Pages returns the items of every page.
func (s *NumericalSelector) Pages() [][]string {
	out := make([][]string, len(s.pages))
	for i, p := range s.pages {
		out[i] = slices.Clone(p)
	}
	return out
}

// Options maps the current page's numbered controls to their items.
func (s *NumericalSelector) Options() map[Control]string {
	out := make(map[Control]string, PageSize)
	for i, item := range s.pages[s.page] {
		out[Option(i+1)] = item
	}
	return out
}

// Table renders the current page as "<emoji> item" lines.
func (s *NumericalSelector) Table() string {
	lines := make([]string, 0, PageSize)
	for i, item := range s.pages[s.page] {
		lines = append(lines, s.menu.Emoji().Emoji(Option(i+1)).Mention()+" "+item)
	}
	return strings.Join(lines, "\n")
}

func (s *NumericalSelector) desired() []Control {
	want := slices.Clone(s.base)
	want = append(want, s.navigation()...)
	for i := range s.pages[s.page] {
		want = append(want, Option(i+1))
	}
	return want
}

// Response runs rounds until an item is picked, the user exits or the
// await times out. ok is false in the latter two cases.
func (s *NumericalSelector) Response(ctx context.Context) (string, bool, error) {
	if err := s.begin(); err != nil {
		return "", false, err
	}
	defer s.end()

	for {
		if err := s.present(ctx, s.desired()); err != nil {
			return "", false, err
		}
		ctl, done, err := s.round(ctx)
		if done {
			return "", false, err
		}
		if isNavigation(ctl) {
			s.navigate(ctl)
			if err := s.menu.Switch(ctx); err != nil {
				return "", false, err
			}
			continue
		}
		if item, ok := s.Options()[ctl]; ok {
			return item, true, nil
		}
		return string(ctl), true, nil
	}
}

// PageControls navigates precomputed pages.
type PageControls struct {
	core
	pager
	pages []Page
}

// NewPageControls creates controls over pages.
func NewPageControls(m *Menu, pages []Page, opts ...SelectorOption) *PageControls {
	p := &PageControls{
		pager: pager{maxPage: max(len(pages), 1)},
		pages: slices.Clone(pages),
	}
	p.init(m, []Control{Exit}, opts)
	return p
}

// Current returns the page currently selected.
func (p *PageControls) Current() Page {
	if len(p.pages) == 0 {
		return Page{}
	}
	return p.pages[p.page]
}

// Response navigates until the user exits or the await times out. A base
// control other than exit resolves the call with that control.
func (p *PageControls) Response(ctx context.Context) (Control, bool, error) {
	if err := p.begin(); err != nil {
		return "", false, err
	}
	defer p.end()

	for {
		want := append(slices.Clone(p.base), p.navigation()...)
		if err := p.present(ctx, want); err != nil {
			return "", false, err
		}
		ctl, done, err := p.round(ctx)
		if done {
			return "", false, err
		}
		if isNavigation(ctl) {
			p.navigate(ctl)
			if err := p.menu.Switch(ctx); err != nil {
				return "", false, err
			}
			continue
		}
		return ctl, true, nil
	}
}
