package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/model"
)

func newTurfsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "turfs",
		Short: "Turf search and booking",
	}

	cmd.AddCommand(newTurfsSearchCmd())
	cmd.AddCommand(newTurfsShowCmd())
	cmd.AddCommand(newTurfsBookCmd())

	return cmd
}

func newTurfsSearchCmd() *cobra.Command {
	var lat, lng, sport string
	var radius float64

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find turfs near a location",
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

			list, err := client.API.SearchTurfs(cmd.Context(), backend.NearbyQuery{Lat: la, Lng: ln, RadiusKm: radius, Sport: sport})
			if err != nil {
				return apiFailure(err, "Failed to fetch turfs. Please try again.")
			}

			output(cmd).Print(list)
			return nil
		},
	}

	cmd.Flags().StringVar(&lat, "lat", "", "Latitude (default: configured location)")
	cmd.Flags().StringVar(&lng, "lng", "", "Longitude (default: configured location)")
	cmd.Flags().Float64Var(&radius, "radius", defaultRadiusKm, "Search radius in km")
	cmd.Flags().StringVar(&sport, "sport", "", "Only turfs offering this sport")

	return cmd
}

func newTurfsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a turf and its time slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.RequireRole(cmd.Context(), model.RolePlayer); err != nil {
				return err
			}

			turf, err := client.API.GetTurf(cmd.Context(), args[0])
			if err != nil {
				return apiFailure(err, "Turf not found.")
			}

			output(cmd).Print(turf)
			return nil
		},
	}
}

func newTurfsBookCmd() *cobra.Command {
	var req backend.BookingRequest

	cmd := &cobra.Command{
		Use:   "book <id>",
		Short: "Book a turf time slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := client.RequireRole(cmd.Context(), model.RolePlayer)
			if err != nil {
				return err
			}
			if req.Date == "" {
				return invalid("Date is required")
			}
			if req.TimeSlot == "" {
				return invalid("Time slot is required")
			}
			req.UserID = user.ID

			result, err := client.API.BookTurf(cmd.Context(), args[0], req)
			if err != nil {
				return apiFailure(err, "Booking failed. Please try again.")
			}

			out := output(cmd)
			if cfg.Output == "json" {
				out.Print(result)
				return nil
			}
			msg := "Turf booked!"
			if result != nil && result.Message != "" {
				msg = result.Message
			}
			if result != nil && result.Booking != nil && result.Booking.ID != "" {
				msg = fmt.Sprintf("%s (%s)", msg, result.Booking.ID)
			}
			out.PrintMessage(msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Date, "date", "", "Date, e.g. 2025-03-12 (required)")
	cmd.Flags().StringVar(&req.TimeSlot, "slot", "", "Time slot, e.g. 18:00-19:00 (required)")
	cmd.Flags().StringVar(&req.GroupID, "group", "", "Book on behalf of a game group")

	return cmd
}
