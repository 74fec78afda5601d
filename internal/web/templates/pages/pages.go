package pages

import (
	"embed"
	"fmt"
	"html/template"
	"slices"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/sportfinder/internal/model"
)

//go:embed html/*.html
var files embed.FS

var funcs = template.FuncMap{
	"join": strings.Join,
	"has": func(list []string, v string) bool {
		return slices.Contains(list, v)
	},
	"distance": func(km *float64) string {
		if km == nil {
			return ""
		}
		return fmt.Sprintf("%.1f km away", *km)
	},
	"coord": func(v float64) string {
		return fmt.Sprintf("%.6f", v)
	},
	"price": func(v float64) string {
		return fmt.Sprintf("%.0f", v)
	},
	"fieldError": func(errs map[string]string, field string) string {
		return errs[field]
	},
}

var templates = map[string]*template.Template{}

func init() {
	for _, name := range []string{
		"home", "login", "register", "unauthorized", "message",
		"player_dashboard", "discover", "create_game", "my_games", "game_detail",
		"group_chat", "turfs", "turf_detail",
		"admin_dashboard", "owner_dashboard", "create_turf",
		"notifications", "profile",
	} {
		templates[name] = template.Must(
			template.New("layout.html").Funcs(funcs).ParseFS(files, "html/layout.html", "html/"+name+".html"),
		)
	}
}

func page(name string, data any) templ.Component {
	t, ok := templates[name]
	if !ok {
		panic("unknown page template: " + name)
	}
	return templ.FromGoHTML(t, data)
}

// RoleOption is one choice in a role selector
type RoleOption struct {
	Role        model.Role
	Title       string
	Description string
}

// RoleOptions lists the selectable roles in display order
func RoleOptions() []RoleOption {
	return []RoleOption{
		{Role: model.RolePlayer, Title: model.RolePlayer.Title(), Description: "Find and join games"},
		{Role: model.RoleTurfOwner, Title: model.RoleTurfOwner.Title(), Description: "Manage your venues"},
		{Role: model.RoleAdmin, Title: model.RoleAdmin.Title(), Description: "System management"},
	}
}
