package handler

import (
	"log/slog"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/geo"
	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/web/templates/pages"
)

const defaultRadiusKm = 10

// locate asks the locator for the user's position. On failure the caller keeps
// the form usable and shows pages.LocationNotice.
func locate(r *http.Request, locator geo.Locator, logger *slog.Logger) (lat, lng string, ok bool) {
	pos, err := locator.Locate(r.Context())
	if err != nil {
		logger.Debug("location unavailable", slog.String("error", err.Error()))
		return "", "", false
	}
	logger.Debug("location resolved",
		slog.Float64("lat", pos.Lat),
		slog.Float64("lng", pos.Lng),
		slog.Float64("accuracy", pos.Accuracy),
	)
	return geo.FormatCoordinate(pos.Lat), geo.FormatCoordinate(pos.Lng), true
}

// nearbySearch is a parsed search form
type nearbySearch struct {
	Form      pages.SearchForm
	Query     backend.NearbyQuery
	Submitted bool
	Locate    bool
	Error     string
}

// parseNearbySearch reads lat, lng, radius and sport from the query string.
// A search runs only when both coordinates are present and parse.
func parseNearbySearch(r *http.Request) nearbySearch {
	q := r.URL.Query()
	s := nearbySearch{
		Form: pages.SearchForm{
			Lat:    strings.TrimSpace(q.Get("lat")),
			Lng:    strings.TrimSpace(q.Get("lng")),
			Radius: strings.TrimSpace(q.Get("radius")),
			Sport:  q.Get("sport"),
		},
		Locate: q.Get("locate") != "",
	}

	radius, err := strconv.ParseFloat(s.Form.Radius, 64)
	if err != nil || radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		radius = defaultRadiusKm
		s.Form.Radius = strconv.Itoa(defaultRadiusKm)
	}
	if !slices.Contains(model.Sports, s.Form.Sport) {
		s.Form.Sport = ""
	}

	if s.Locate || s.Form.Lat == "" || s.Form.Lng == "" {
		return s
	}

	lat, lng, err := geo.ParseCoordinates(s.Form.Lat, s.Form.Lng)
	if err != nil {
		s.Error = "Enter a valid latitude and longitude."
		return s
	}
	s.Submitted = true
	s.Query = backend.NearbyQuery{Lat: lat, Lng: lng, RadiusKm: radius, Sport: s.Form.Sport}
	return s
}

// fillLocation prefills empty coordinates, or overrides them when the user asked to locate
func fillLocation(r *http.Request, s *nearbySearch, locator geo.Locator, logger *slog.Logger) string {
	if !s.Locate && (s.Form.Lat != "" || s.Form.Lng != "") {
		return ""
	}
	lat, lng, ok := locate(r, locator, logger)
	if !ok {
		if s.Locate {
			s.Form.Lat, s.Form.Lng = "", ""
		}
		return pages.LocationNotice
	}
	s.Form.Lat, s.Form.Lng = lat, lng
	return ""
}
