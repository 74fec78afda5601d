package cli

import (
	"fmt"
	"math"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/model"
)

const defaultRadiusKm = 10

func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Pickup game commands",
	}

	cmd.AddCommand(newGamesSearchCmd())
	cmd.AddCommand(newGamesCreateCmd())
	cmd.AddCommand(newGamesShowCmd())
	cmd.AddCommand(newGamesMineCmd())
	cmd.AddCommand(newGamesMembershipCmd("join", "Join a game", "You joined the game!"))
	cmd.AddCommand(newGamesMembershipCmd("leave", "Leave a game", "You left the game."))
	cmd.AddCommand(newGamesDeleteCmd())

	return cmd
}

func validSport(sport string) error {
	if sport != "" && !slices.Contains(model.Sports, sport) {
		return fmt.Errorf("unknown sport %q", sport)
	}
	return nil
}

func newGamesSearchCmd() *cobra.Command {
	var lat, lng, sport string
	var radius float64

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find games near a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.RequireRole(cmd.Context(), model.RolePlayer); err != nil {
				return err
			}
			if err := validSport(sport); err != nil {
				return err
			}
			la, ln, err := client.Coordinates(cmd.Context(), lat, lng)
			if err != nil {
				return err
			}
			if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
				radius = defaultRadiusKm
			}

			list, err := client.API.SearchGames(cmd.Context(), backend.NearbyQuery{Lat: la, Lng: ln, RadiusKm: radius, Sport: sport})
			if err != nil {
				return apiFailure(err, "Failed to fetch games. Please try again.")
			}

			output(cmd).Print(list)
			return nil
		},
	}

	cmd.Flags().StringVar(&lat, "lat", "", "Latitude (default: configured location)")
	cmd.Flags().StringVar(&lng, "lng", "", "Longitude (default: configured location)")
	cmd.Flags().Float64Var(&radius, "radius", defaultRadiusKm, "Search radius in km")
	cmd.Flags().StringVar(&sport, "sport", "", "Only this sport")

	return cmd
}

func newGamesCreateCmd() *cobra.Command {
	var req backend.CreateGameRequest
	var lat, lng string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Post a new pickup game",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := client.RequireRole(cmd.Context(), model.RolePlayer)
			if err != nil {
				return err
			}

			if !slices.Contains(model.Sports, req.Sport) {
				return fmt.Errorf("unknown sport %q", req.Sport)
			}
			if req.PlayersNeeded < 1 || req.PlayersNeeded > 50 {
				return invalid("Players needed must be between 1 and 50")
			}
			if req.Location.Address == "" || req.Date == "" || req.Time == "" || req.Description == "" {
				return fmt.Errorf("--address, --date, --time, and --description are required")
			}
			req.Location.Lat, req.Location.Lng, err = client.Coordinates(cmd.Context(), lat, lng)
			if err != nil {
				return err
			}
			req.UserID = user.ID

			game, err := client.API.CreateGame(cmd.Context(), req)
			if err != nil {
				return apiFailure(err, "Failed to create game. Please try again.")
			}

			out := output(cmd)
			if cfg.Output == "json" {
				out.Print(game)
			} else {
				out.PrintMessage(fmt.Sprintf("Game created! (%s)", game.ID))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Sport, "sport", "Football", "Sport")
	cmd.Flags().IntVar(&req.PlayersNeeded, "players", 5, "Players needed (1-50)")
	cmd.Flags().StringVar(&req.Location.Address, "address", "", "Where to meet (required)")
	cmd.Flags().StringVar(&lat, "lat", "", "Latitude (default: configured location)")
	cmd.Flags().StringVar(&lng, "lng", "", "Longitude (default: configured location)")
	cmd.Flags().StringVar(&req.Description, "description", "", "Description (required)")
	cmd.Flags().StringVar(&req.Date, "date", "", "Date, e.g. 2025-03-12 (required)")
	cmd.Flags().StringVar(&req.Time, "time", "", "Start time, e.g. 18:00 (required)")

	return cmd
}

func newGamesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.RequireRole(cmd.Context(), model.RolePlayer); err != nil {
				return err
			}

			game, err := client.API.GetGame(cmd.Context(), args[0])
			if err != nil {
				return apiFailure(err, "Game not found.")
			}

			output(cmd).Print(game)
			return nil
		},
	}
}

func newGamesMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List the games you organise or have joined",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := client.RequireRole(cmd.Context(), model.RolePlayer)
			if err != nil {
				return err
			}

			list, err := client.API.ListGroups(cmd.Context(), user.ID)
			if err != nil {
				return apiFailure(err, "Failed to load your games. Please try again.")
			}

			output(cmd).Print(list)
			return nil
		},
	}
}

func newGamesMembershipCmd(action, short, fallback string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := client.RequireRole(cmd.Context(), model.RolePlayer)
			if err != nil {
				return err
			}

			call := client.API.JoinGame
			if action == "leave" {
				call = client.API.LeaveGame
			}
			result, err := call(cmd.Context(), args[0], user.ID)
			if err != nil {
				return apiFailure(err, fmt.Sprintf("Failed to %s the game. Please try again.", action))
			}

			msg := fallback
			if result != nil && result.Message != "" {
				msg = result.Message
			}
			output(cmd).PrintMessage(msg)
			return nil
		},
	}
}

func newGamesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game you organise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := client.RequireRole(cmd.Context(), model.RolePlayer)
			if err != nil {
				return err
			}

			result, err := client.API.DeleteGame(cmd.Context(), args[0], user.ID)
			if err != nil {
				return apiFailure(err, "Failed to delete the game. Please try again.")
			}

			msg := "Game deleted."
			if result != nil && result.Message != "" {
				msg = result.Message
			}
			output(cmd).PrintMessage(msg)
			return nil
		},
	}
}
