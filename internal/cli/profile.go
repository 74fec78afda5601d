package cli

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/model"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := client.RequireRole(cmd.Context(), "")
			if err != nil {
				return err
			}
			output(cmd).Print(user)
			return nil
		},
	}

	cmd.AddCommand(newProfileUpdateCmd())
	cmd.AddCommand(newProfileOnboardCmd())

	return cmd
}

// saveProfile sends update and overwrites the profile's Session Record with the result
func saveProfile(ctx context.Context, current *model.User, update backend.ProfileUpdate, fallback string) (*model.User, error) {
	updated, err := client.API.UpdateProfile(ctx, current.ID, update)
	if err != nil {
		return nil, apiFailure(err, fallback)
	}
	if updated == nil || updated.ID == "" || !updated.Role.Valid() {
		updated = update.MergeInto(current)
	}
	if err := client.SignIn(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func newProfileUpdateCmd() *cobra.Command {
	var update backend.ProfileUpdate

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your name, bio, avatar or skill level",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := client.RequireRole(cmd.Context(), "")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") && strings.TrimSpace(update.Name) == "" {
				return invalid("Name is required")
			}
			if update.SkillLevel != "" && !slices.Contains(model.SkillLevels, update.SkillLevel) {
				return fmt.Errorf("unknown skill level %q", update.SkillLevel)
			}

			updated, err := saveProfile(cmd.Context(), user, update, "Failed to update profile. Please try again.")
			if err != nil {
				return err
			}

			out := output(cmd)
			if cfg.Output == "json" {
				out.Print(updated)
			} else {
				out.PrintMessage("Profile updated")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&update.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&update.Bio, "bio", "", "Short bio")
	cmd.Flags().StringVar(&update.Avatar, "avatar", "", "Avatar URL")
	cmd.Flags().StringVar(&update.SkillLevel, "skill-level", "", "Beginner, Intermediate or Advanced")

	return cmd
}

func newProfileOnboardCmd() *cobra.Command {
	var update backend.ProfileUpdate
	var turf backend.TurfListing
	var lat, lng string

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "List your business and turf (turf owners)",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := client.RequireRole(cmd.Context(), model.RoleTurfOwner)
			if err != nil {
				return err
			}

			if update.Phone == "" {
				update.Phone = user.Phone
			}
			if update.BusinessName == "" || update.Phone == "" || turf.Name == "" || turf.Location.Address == "" {
				return fmt.Errorf("--business-name, --phone, --turf-name, and --address are required")
			}
			if len(turf.Sports) == 0 {
				return invalid("Choose at least one sport")
			}
			for _, s := range turf.Sports {
				if err := validSport(s); err != nil {
					return err
				}
			}
			if turf.PricePerHour <= 0 || math.IsNaN(turf.PricePerHour) || math.IsInf(turf.PricePerHour, 0) {
				return invalid("Price per hour must be a positive number")
			}
			turf.Location.Lat, turf.Location.Lng, err = client.Coordinates(cmd.Context(), lat, lng)
			if err != nil {
				return err
			}
			update.Turf = &turf

			updated, err := saveProfile(cmd.Context(), user, update, "Failed to save your turf. Please try again.")
			if err != nil {
				return err
			}

			out := output(cmd)
			if cfg.Output == "json" {
				out.Print(updated)
			} else {
				out.PrintMessage("Your turf is listed!")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&update.BusinessName, "business-name", "", "Business name (required)")
	cmd.Flags().StringVar(&update.Phone, "phone", "", "Contact phone (default: profile phone)")
	cmd.Flags().StringVar(&turf.Name, "turf-name", "", "Turf name (required)")
	cmd.Flags().StringVar(&turf.Location.Address, "address", "", "Turf address (required)")
	cmd.Flags().StringVar(&lat, "lat", "", "Latitude (default: configured location)")
	cmd.Flags().StringVar(&lng, "lng", "", "Longitude (default: configured location)")
	cmd.Flags().StringSliceVar(&turf.Sports, "sports", nil, "Sports offered, comma separated")
	cmd.Flags().Float64Var(&turf.PricePerHour, "price", 0, "Price per hour")

	return cmd
}
