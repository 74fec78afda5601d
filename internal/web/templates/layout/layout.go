package layout

import "github.com/mcoot/sportfinder/internal/model"

// FlashMessage is a one-shot notice carried across a redirect
type FlashMessage struct {
	Type    string // success, error, info
	Message string
}

// PageData is the data every page shares with the layout
type PageData struct {
	Title string
	User  *model.User
	Flash *FlashMessage
}

// SignedIn reports whether the page is rendered for a signed-in user
func (p PageData) SignedIn() bool {
	return p.User != nil
}

// HomePath is where the brand link points for the current viewer
func (p PageData) HomePath() string {
	if p.User == nil {
		return "/"
	}
	return p.User.Role.HomePath()
}
