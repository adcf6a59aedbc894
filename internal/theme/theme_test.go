package theme_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/theme"
)

func forest() theme.Definition {
	return theme.Definition{
		ID:   "forest",
		Name: "Forest",
		Colors: map[theme.Role]string{
			theme.Primary: "#2d6a4f", theme.Secondary: "#40916c", theme.Accent: "#d00000",
			theme.Background: "#ffffff", theme.Text: "#1b4332", theme.Border: "#95d5b2",
			theme.HeaderBackground: "#1b4332", theme.HeaderText: "#ffffff",
			theme.WeekendBackground: "#d8f3dc", theme.TodayBackground: "#fff3b0",
		},
	}
}

func TestBuiltin_Order(t *testing.T) {
	assert.Equal(t, []string{"default", "ocean", "sunset", "minimalist", "darkred"}, theme.Builtin().Names())
}

func TestGet_FallsBackToDefault(t *testing.T) {
	reg := theme.Builtin()

	assert.Equal(t, "ocean", reg.Get("ocean").ID)
	assert.Equal(t, "ocean", reg.Get(" Ocean ").ID, "Lookup tolerates case and padding")
	assert.Equal(t, "default", reg.Get("neon").ID)
	assert.Equal(t, "default", reg.Get("").ID)

	_, ok := reg.Lookup("neon")
	assert.False(t, ok)
}

func TestClass(t *testing.T) {
	reg := theme.Builtin()
	assert.Empty(t, reg.Get("default").Class())
	assert.Equal(t, "theme-darkred", reg.Get("darkred").Class())
}

func TestCombinedStyleSheet(t *testing.T) {
	css := theme.Builtin().CombinedStyleSheet()

	assert.Contains(t, css, ":root {\n  --primary-color: #2c3e50;")
	assert.Contains(t, css, ".theme-ocean {\n  --primary-color: #006994;")
	assert.Contains(t, css, ".theme-sunset {")
	assert.Contains(t, css, ".theme-minimalist {")
	assert.Contains(t, css, "--today-bg: #d4edda;")

	// Scenario: darkred ships badge overrides, including weekend variants.
	assert.Contains(t, css, ".theme-darkred .day-info {\n  background: #000000;\n  border-radius: 4px;\n  padding: 8px;\n}")
	assert.Contains(t, css, ".theme-darkred .day-card.weekend .day-name {\n  color: #FFB6C1;\n}")
	assert.Contains(t, css, ".theme-darkred .day-card.weekend .day-number {")

	assert.Less(t, strings.Index(css, ":root"), strings.Index(css, ".theme-darkred"), "Registration order is kept")
}

func TestCSS_EveryRoleEmitted(t *testing.T) {
	css := theme.Builtin().Get("sunset").CSS()
	for _, role := range theme.Roles {
		assert.Contains(t, css, role.Var()+": ", "role %s", role)
	}
}

func TestNewRegistry_Errors(t *testing.T) {
	incomplete := forest()
	delete(incomplete.Colors, theme.TodayBackground)

	badID := forest()
	badID.ID = "Forest Green"

	noSelector := forest()
	noSelector.Overrides = []theme.Override{{Selector: " "}}

	def := theme.Builtin().Get("default")

	tests := []struct {
		name string
		defs []theme.Definition
	}{
		{"Missing default", []theme.Definition{forest()}},
		{"Duplicate id", []theme.Definition{def, forest(), forest()}},
		{"Missing role", []theme.Definition{def, incomplete}},
		{"Invalid id", []theme.Definition{def, badID}},
		{"Empty override selector", []theme.Definition{def, noSelector}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := theme.NewRegistry(tt.defs...)
			assert.Error(t, err)
		})
	}
}

func TestWith_ReturnsNewRegistry(t *testing.T) {
	base := theme.Builtin()

	extended, err := base.With(forest())
	require.NoError(t, err)

	assert.Equal(t, []string{"default", "ocean", "sunset", "minimalist", "darkred", "forest"}, extended.Names())
	assert.Len(t, base.Names(), 5, "The original registry is immutable")
	assert.Contains(t, extended.CombinedStyleSheet(), ".theme-forest {")

	// Scenario: re-registering an id replaces the theme in place.
	recolored := forest()
	recolored.ID = "ocean"
	replaced, err := base.With(recolored)
	require.NoError(t, err)
	assert.Equal(t, base.Names(), replaced.Names())
	assert.Equal(t, "#2d6a4f", replaced.Get("ocean").Colors[theme.Primary])
	assert.Equal(t, "#006994", base.Get("ocean").Colors[theme.Primary])
}

func TestGet_ReturnsCopy(t *testing.T) {
	d := theme.Builtin().Get("ocean")
	d.Colors[theme.Primary] = "#000000"
	assert.Equal(t, "#006994", theme.Builtin().Get("ocean").Colors[theme.Primary])
}

func TestDecodeTOML(t *testing.T) {
	input := `
[[theme]]
id = "forest"
name = "Forest"

[theme.colors]
primary = "#2d6a4f"
secondary = "#40916c"
accent = "#d00000"
background = "#ffffff"
text = "#1b4332"
border = "#95d5b2"
header-background = "#1b4332"
header-text = "#ffffff"
weekend-background = "#d8f3dc"
today-background = "#fff3b0"

[[theme.override]]
selector = ".day-number"
properties = { color = "#1b4332", font-weight = "700" }
`
	defs, err := theme.DecodeTOML(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, defs, 1)

	d := defs[0]
	assert.Equal(t, "forest", d.ID)
	assert.Equal(t, "#fff3b0", d.Colors[theme.TodayBackground])
	require.Len(t, d.Overrides, 1)
	assert.Equal(t, "700", d.Overrides[0].Properties["font-weight"])

	reg, err := theme.Builtin().With(defs...)
	require.NoError(t, err)
	assert.Contains(t, reg.CombinedStyleSheet(), ".theme-forest .day-number {\n  color: #1b4332;\n  font-weight: 700;\n}")
}

func TestDecodeTOML_Invalid(t *testing.T) {
	_, err := theme.DecodeTOML(strings.NewReader(`[[theme]]
id = "half"
[theme.colors]
primary = "#000"
`))
	assert.Error(t, err, "Incomplete color sets are rejected")

	_, err = theme.DecodeTOML(strings.NewReader(`[[theme]`))
	assert.Error(t, err)
}
