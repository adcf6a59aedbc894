package theme

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/tartampluch/go-calendar/internal/config"
)

// Role names a themeable color. Each role is published to the style sheet as
// a CSS custom property.
type Role string

const (
	Primary           Role = "primary"
	Secondary         Role = "secondary"
	Accent            Role = "accent"
	Background        Role = "background"
	Text              Role = "text"
	Border            Role = "border"
	HeaderBackground  Role = "header-background"
	HeaderText        Role = "header-text"
	WeekendBackground Role = "weekend-background"
	TodayBackground   Role = "today-background"
)

// Roles lists every role in the order they are written to CSS.
var Roles = []Role{
	Primary, Secondary, Accent, Background, Text,
	Border, HeaderBackground, HeaderText, WeekendBackground, TodayBackground,
}

var roleVars = map[Role]string{
	Primary:           "--primary-color",
	Secondary:         "--secondary-color",
	Accent:            "--accent-color",
	Background:        "--background-color",
	Text:              "--text-color",
	Border:            "--border-color",
	HeaderBackground:  "--header-bg",
	HeaderText:        "--header-text",
	WeekendBackground: "--weekend-bg",
	TodayBackground:   "--today-bg",
}

// Var returns the CSS custom property carrying the role.
func (r Role) Var() string {
	return roleVars[r]
}

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Override is an extra rule scoped to a theme, for example the dark day
// badges of the darkred theme.
type Override struct {
	Selector   string            `toml:"selector"`
	Properties map[string]string `toml:"properties"`
}

// Definition is a named color scheme.
type Definition struct {
	ID        string          `toml:"id"`
	Name      string          `toml:"name"`
	Colors    map[Role]string `toml:"colors"`
	Overrides []Override      `toml:"override"`
}

// Class returns the class put on the calendar container, empty for the
// default theme whose variables live on :root.
func (d Definition) Class() string {
	if d.ID == config.DefaultTheme {
		return ""
	}
	return config.ThemeClassPrefix + d.ID
}

func (d Definition) scope() string {
	if d.ID == config.DefaultTheme {
		return ":root"
	}
	return "." + d.Class()
}

// Validate checks the identifier and that every role has a value.
func (d Definition) Validate() error {
	if !idPattern.MatchString(d.ID) {
		return fmt.Errorf("%s: %q", config.ErrThemeID, d.ID)
	}
	for _, role := range Roles {
		if strings.TrimSpace(d.Colors[role]) == "" {
			return fmt.Errorf("%s %q: %s", config.ErrThemeRole, d.ID, role)
		}
	}
	for _, o := range d.Overrides {
		if strings.TrimSpace(o.Selector) == "" {
			return fmt.Errorf("%s %q", config.ErrThemeSelector, d.ID)
		}
	}
	return nil
}

// CSS returns the variable block of the theme followed by its overrides.
func (d Definition) CSS() string {
	var b strings.Builder
	scope := d.scope()

	fmt.Fprintf(&b, "%s {\n", scope)
	for _, role := range Roles {
		fmt.Fprintf(&b, "  %s: %s;\n", role.Var(), d.Colors[role])
	}
	b.WriteString("}\n")

	for _, o := range d.Overrides {
		fmt.Fprintf(&b, "%s %s {\n", scope, o.Selector)
		for _, prop := range slices.Sorted(maps.Keys(o.Properties)) {
			fmt.Fprintf(&b, "  %s: %s;\n", prop, o.Properties[prop])
		}
		b.WriteString("}\n")
	}
	return b.String()
}

func (d Definition) clone() Definition {
	out := Definition{ID: d.ID, Name: d.Name, Colors: maps.Clone(d.Colors)}
	for _, o := range d.Overrides {
		out.Overrides = append(out.Overrides, Override{Selector: o.Selector, Properties: maps.Clone(o.Properties)})
	}
	if out.Name == "" {
		out.Name = d.ID
	}
	return out
}
