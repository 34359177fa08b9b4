package webapp

import (
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/gofiber/fiber/v2"
)

// Theme is the light/dark preference, persisted in its own cookie,
// independent of the auth session. There is one writer (the toggle handler)
// and many readers (page and chart rendering).
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	themeCookie = "analytica_theme"
)

// ThemeFromRequest reads the persisted preference, defaulting to dark.
func ThemeFromRequest(c *fiber.Ctx) Theme {
	switch Theme(c.Cookies(themeCookie)) {
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	default:
		return ThemeDark
	}
}

// Toggle flips the preference and persists it.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ChartTheme maps the page theme onto an ECharts theme name.
func (t Theme) ChartTheme() string {
	if t == ThemeDark {
		return types.ThemeChalk
	}
	return types.ThemeWesteros
}

// CSSClass is the class applied to the document root.
func (t Theme) CSSClass() string {
	return "theme-" + string(t)
}

var themeTokens = map[Theme]map[string]string{
	ThemeLight: {
		"bg":      "#f4f5f7",
		"surface": "#ffffff",
		"border":  "#e5e7eb",
		"text":    "#111827",
		"muted":   "#6b7280",
		"accent":  "#f97316",
	},
	ThemeDark: {
		"bg":      "#0f172a",
		"surface": "#1e293b",
		"border":  "#334155",
		"text":    "#f1f5f9",
		"muted":   "#94a3b8",
		"accent":  "#f97316",
	},
}

// CSSVariables normalizes the theme tokens into CSS variable names.
func (t Theme) CSSVariables() map[string]string {
	tokens := themeTokens[t]
	if len(tokens) == 0 {
		tokens = themeTokens[ThemeDark]
	}
	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the variable map as a style attribute value.
func (t Theme) CSSVariablesInline() string {
	vars := t.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for _, key := range keys {
		value := vars[key]
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}
