package domain

import "strings"

// AttributeKind tells how a configuration value is written and shown.
type AttributeKind int

const (
	KindText AttributeKind = iota
	KindNumber
	KindToggle
	KindChannel
	KindRole
	KindLocale
)

type Attribute struct {
	Name string
	Kind AttributeKind
	Doc  string
}

// Module is a configurable bot module.
type Module struct {
	Name        string
	Doc         string
	Activatable bool
	Attributes  []Attribute
}

// Modules lists every configurable module. Attribute names starting with
// an underscore are internal and cannot be set or retrieved.
var Modules = []Module{
	{
		Name: "system",
		Doc:  "Core settings of the bot in this server.",
		Attributes: []Attribute{
			{Name: "prefix", Kind: KindText, Doc: "The prefix used to invoke commands (1 to 5 characters, no spaces)."},
			{Name: "locale", Kind: KindLocale, Doc: "The language the bot answers in (en or fr)."},
			{Name: "logchannel", Kind: KindChannel, Doc: "The channel the bot reports module activity to."},
		},
	},
	{
		Name: "warn",
		Doc:  "Thresholds of the warning system.",
		Attributes: []Attribute{
			{Name: "maxpoints", Kind: KindNumber, Doc: "Points at which a member is banned (1 to 100, default 12)."},
			{Name: "maxstrikes", Kind: KindNumber, Doc: "Warnings of the same type at which a member is banned (1 to 10, default 3)."},
			{Name: "retroupdates", Kind: KindToggle, Doc: "Whether changing a warn type's points updates existing warns (on or off)."},
		},
	},
	{
		Name:        "gateway",
		Doc:         "Makes new members accept the rules before they can take part.",
		Activatable: true,
		Attributes: []Attribute{
			{Name: "ruleschannel", Kind: KindChannel, Doc: "The channel the gate message is posted in."},
			{Name: "blockingrole", Kind: KindRole, Doc: "The role given to new members until they accept the rules."},
			{Name: "gatetext", Kind: KindText, Doc: "The text of the gate message (up to 250 characters)."},
			{Name: "_gatemessage", Kind: KindText, Doc: "The id of the posted gate message."},
		},
	},
}

// FindModule looks a module up by name, case-insensitively.
func FindModule(name string) (Module, error) {
	for _, m := range Modules {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return Module{}, ErrUnknownModule
}

// FindAttribute looks a configurable attribute up.
func FindAttribute(module, attr string) (Module, Attribute, error) {
	m, err := FindModule(module)
	if err != nil {
		return Module{}, Attribute{}, err
	}
	if strings.HasPrefix(attr, "_") {
		return m, Attribute{}, ErrUnknownAttribute
	}
	for _, a := range m.Attributes {
		if strings.EqualFold(a.Name, attr) {
			return m, a, nil
		}
	}
	return m, Attribute{}, ErrUnknownAttribute
}

// Configurable returns the attributes a user may set.
func (m Module) Configurable() []Attribute {
	out := make([]Attribute, 0, len(m.Attributes))
	for _, a := range m.Attributes {
		if !strings.HasPrefix(a.Name, "_") {
			out = append(out, a)
		}
	}
	return out
}

// IsSnowflake reports whether s looks like a Discord id.
func IsSnowflake(s string) bool {
	if len(s) < 15 || len(s) > 21 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
