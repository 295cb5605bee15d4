package menu

import (
	"context"
	"slices"

	pkgdiscord "bluebrain/pkg/discord"
)

// SelectionMenu shows one page and asks for one of a fixed set of
// controls, e.g. confirm/cancel.
type SelectionMenu struct {
	*Menu
	page     Page
	selector *Selector
}

func NewSelectionMenu(m *Menu, page Page, controls []Control, opts ...SelectorOption) *SelectionMenu {
	return &SelectionMenu{
		Menu:     m,
		page:     page,
		selector: NewSelector(m, controls, opts...),
	}
}

func (s *SelectionMenu) Selector() *Selector { return s.selector }

// Start sends the menu and waits for the first choice.
func (s *SelectionMenu) Start(ctx context.Context) (Control, bool, error) {
	if err := s.Open(ctx, s.page); err != nil {
		return "", false, err
	}
	return s.selector.Response(ctx)
}

// NumberedSelectionMenu lists items next to numbered reactions and resolves
// with the item picked.
type NumberedSelectionMenu struct {
	*Menu
	base     Page
	selector *NumericalSelector
}

func NewNumberedSelectionMenu(m *Menu, items []string, page Page, opts ...SelectorOption) *NumberedSelectionMenu {
	n := &NumberedSelectionMenu{
		Menu:     m,
		base:     page,
		selector: NewNumericalSelector(m, items, opts...),
	}
	m.render = n.current
	return n
}

func (n *NumberedSelectionMenu) Selector() *NumericalSelector { return n.selector }

func (n *NumberedSelectionMenu) current() Page {
	p := n.base
	p.Fields = slices.Clone(n.base.Fields)
	if table := n.selector.Table(); table != "" {
		p.Fields = append(p.Fields, pkgdiscord.Field{Name: n.selector.PageInfo(), Value: table})
	}
	return p
}

// Start sends the first page and waits for a pick. ok is false when the
// user exited or the menu timed out.
func (n *NumberedSelectionMenu) Start(ctx context.Context) (string, bool, error) {
	if err := n.Open(ctx, n.current()); err != nil {
		return "", false, err
	}
	return n.selector.Response(ctx)
}

// MultiPageMenu is a read-only paged display.
type MultiPageMenu struct {
	*Menu
	controls *PageControls
}

func NewMultiPageMenu(m *Menu, pages []Page, opts ...SelectorOption) *MultiPageMenu {
	mp := &MultiPageMenu{
		Menu:     m,
		controls: NewPageControls(m, pages, opts...),
	}
	m.render = mp.current
	return mp
}

func (mp *MultiPageMenu) Controls() *PageControls { return mp.controls }

func (mp *MultiPageMenu) current() Page {
	p := mp.controls.Current()
	if mp.controls.MaxPage() > 1 {
		p.Footer = mp.controls.PageInfo()
	}
	return p
}

// Start sends the first page and lets the user browse until exit or
// timeout.
func (mp *MultiPageMenu) Start(ctx context.Context) error {
	if len(mp.controls.pages) == 0 {
		return ErrNoPages
	}
	if err := mp.Open(ctx, mp.current()); err != nil {
		return err
	}
	_, _, err := mp.controls.Response(ctx)
	return err
}
