package menu

import "fmt"

// Control identifies a reaction option independently of the emoji that
// renders it.
type Control string

const (
	Exit     Control = "exit"
	StepBack Control = "stepback"
	PageBack Control = "pageback"
	PageNext Control = "pagenext"
	StepNext Control = "stepnext"
	Confirm  Control = "confirm"
	Cancel   Control = "cancel"
)

// PageSize is the number of numbered options on one page.
const PageSize = 9

// Option returns the control for the n-th (1-based) numbered option.
func Option(n int) Control {
	return Control(fmt.Sprintf("option%d", n))
}

// OptionIndex returns the 1-based index of a numbered option control.
func OptionIndex(c Control) (int, bool) {
	var n int
	if _, err := fmt.Sscanf(string(c), "option%d", &n); err != nil {
		return 0, false
	}
	if n < 1 || n > PageSize || Option(n) != c {
		return 0, false
	}
	return n, true
}

func isNavigation(c Control) bool {
	switch c {
	case StepBack, PageBack, PageNext, StepNext:
		return true
	}
	return false
}

// Emoji is how a control is rendered. ID is set for custom guild emoji.
type Emoji struct {
	Name string
	ID   string
}

// APIName is the form MessageReactionAdd expects.
func (e Emoji) APIName() string {
	if e.ID != "" {
		return e.Name + ":" + e.ID
	}
	return e.Name
}

// Mention is the form used inside message text.
func (e Emoji) Mention() string {
	if e.ID != "" {
		return "<:" + e.Name + ":" + e.ID + ">"
	}
	return e.Name
}

// EmojiSet maps controls to emoji.
type EmojiSet map[Control]Emoji

// DefaultEmoji renders every control with a unicode emoji.
func DefaultEmoji() EmojiSet {
	set := EmojiSet{
		Exit:     {Name: "⏹️"},
		StepBack: {Name: "⏮️"},
		PageBack: {Name: "◀️"},
		PageNext: {Name: "▶️"},
		StepNext: {Name: "⏭️"},
		Confirm:  {Name: "✅"},
		Cancel:   {Name: "❌"},
	}
	for i := 1; i <= PageSize; i++ {
		set[Option(i)] = Emoji{Name: fmt.Sprintf("%d️⃣", i)}
	}
	return set
}

// Emoji returns the emoji for c, falling back to the control name.
func (s EmojiSet) Emoji(c Control) Emoji {
	if e, ok := s[c]; ok {
		return e
	}
	return Emoji{Name: string(c)}
}

// Identify maps a reaction back to a control. Custom emoji match by id,
// unicode emoji by name. Unknown emoji yield "".
func (s EmojiSet) Identify(r Reaction) Control {
	for c, e := range s {
		if r.EmojiID != "" {
			if e.ID == r.EmojiID {
				return c
			}
			continue
		}
		if e.ID == "" && e.Name == r.EmojiName {
			return c
		}
	}
	return ""
}
