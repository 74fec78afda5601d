package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case *model.User:
		o.printUser(v)
	case *backend.GameList:
		o.printGames(v.Posts)
	case *model.Game:
		o.printGame(v)
	case *backend.GroupList:
		o.printGroups(v)
	case *backend.MessageList:
		o.printMessages(v)
	case *backend.TurfList:
		o.printTurfs(v)
	case *model.Turf:
		o.printTurf(v)
	case *backend.NotificationList:
		o.printNotifications(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Session is what login, register and whoami report
type Session struct {
	Profile  string      `json:"profile"`
	User     *model.User `json:"user"`
	HomePath string      `json:"home_path"`
}

func newSession(profile model.SessionKey, u *model.User) Session {
	return Session{Profile: string(profile), User: u, HomePath: u.Role.HomePath()}
}

func (o *Output) printSession(s Session) {
	fmt.Fprintf(o.w, "Signed in as %s <%s> (%s)\n", s.User.Name, s.User.Email, s.User.Role.Title())
	fmt.Fprintf(o.w, "Profile: %s\n", s.Profile)
	fmt.Fprintf(o.w, "Home: %s\n", s.HomePath)
}

func (o *Output) printUser(u *model.User) {
	fmt.Fprintf(o.w, "Name: %s\n", u.Name)
	fmt.Fprintf(o.w, "Email: %s\n", u.Email)
	fmt.Fprintf(o.w, "Role: %s\n", u.Role.Title())
	if u.Phone != "" {
		fmt.Fprintf(o.w, "Phone: %s\n", u.Phone)
	}
	if u.SkillLevel != "" {
		fmt.Fprintf(o.w, "Skill level: %s\n", u.SkillLevel)
	}
	if u.Bio != "" {
		fmt.Fprintf(o.w, "Bio: %s\n", u.Bio)
	}
	if u.BusinessName != "" {
		fmt.Fprintf(o.w, "Business: %s\n", u.BusinessName)
	}
	if u.Stats != nil {
		fmt.Fprintf(o.w, "Games played: %d, organized: %d\n", u.Stats.GamesPlayed, u.Stats.GamesOrganized)
	}
}

func (o *Output) printGames(games []model.Game) {
	if len(games) == 0 {
		fmt.Fprintln(o.w, "No games found nearby.")
		return
	}
	for _, g := range games {
		line := fmt.Sprintf("%s  %s  %d/%d players  %s", g.ID, g.Sport, g.PlayerCount(), g.PlayersNeeded, g.Status)
		if g.DistanceKm != nil {
			line += fmt.Sprintf("  %.1f km away", *g.DistanceKm)
		}
		fmt.Fprintln(o.w, line)
	}
}

func (o *Output) printGame(g *model.Game) {
	fmt.Fprintf(o.w, "Game: %s (%s)\n", g.Sport, g.ID)
	if g.UserName != "" {
		fmt.Fprintf(o.w, "Organizer: %s\n", g.UserName)
	}
	fmt.Fprintf(o.w, "When: %s %s\n", g.Date, g.Time)
	fmt.Fprintf(o.w, "Where: %s\n", g.Location.Address)
	fmt.Fprintf(o.w, "Players: %d/%d\n", g.PlayerCount(), g.PlayersNeeded)
	if g.Status != "" {
		fmt.Fprintf(o.w, "Status: %s\n", g.Status)
	}
	if g.GroupID != "" {
		fmt.Fprintf(o.w, "Group: %s\n", g.GroupID)
	}
	if g.Description != "" {
		fmt.Fprintf(o.w, "\n%s\n", g.Description)
	}
}

func (o *Output) printGroups(l *backend.GroupList) {
	if len(l.Groups) == 0 {
		fmt.Fprintln(o.w, "You haven't joined any games yet.")
		return
	}
	for _, g := range l.Groups {
		fmt.Fprintf(o.w, "%s  %s  (%d members)\n", g.ID, g.Name, len(g.Members))
	}
}

func (o *Output) printMessages(l *backend.MessageList) {
	if len(l.Messages) == 0 {
		fmt.Fprintln(o.w, "No messages yet.")
		return
	}
	for _, m := range l.Messages {
		name := m.UserName
		if name == "" {
			name = m.UserID
		}
		fmt.Fprintf(o.w, "%s: %s\n", name, m.Message)
	}
}

func (o *Output) printTurfs(l *backend.TurfList) {
	if len(l.Turfs) == 0 {
		fmt.Fprintln(o.w, "No turfs found nearby.")
		return
	}
	for _, t := range l.Turfs {
		line := fmt.Sprintf("%s  %s  ₹%.0f/hour  %s", t.ID, t.Name, t.PricePerHour, strings.Join(t.Sports, ", "))
		if t.DistanceKm != nil {
			line += fmt.Sprintf("  %.1f km away", *t.DistanceKm)
		}
		fmt.Fprintln(o.w, line)
	}
}

func (o *Output) printTurf(t *model.Turf) {
	fmt.Fprintf(o.w, "Turf: %s (%s)\n", t.Name, t.ID)
	fmt.Fprintf(o.w, "Where: %s\n", t.Location.Address)
	fmt.Fprintf(o.w, "Sports: %s\n", strings.Join(t.Sports, ", "))
	fmt.Fprintf(o.w, "Price: ₹%.0f/hour\n", t.PricePerHour)
	if len(t.TimeSlots) > 0 {
		fmt.Fprintf(o.w, "Time slots: %s\n", strings.Join(t.TimeSlots, ", "))
	}
}

func (o *Output) printNotifications(l *backend.NotificationList) {
	if len(l.Notifications) == 0 {
		fmt.Fprintln(o.w, "No notifications.")
		return
	}
	for _, n := range l.Notifications {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Fprintf(o.w, "%s %s  %s: %s\n", marker, n.ID, n.Title, n.Message)
	}
}
