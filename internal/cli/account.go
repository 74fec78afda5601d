package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/model"
)

func newLoginCmd() *cobra.Command {
	var email, role string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with your email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			// The role only mirrors the sign-in screen's selector; the API decides the real one
			if _, err := model.ParseRole(role); err != nil {
				return err
			}

			user, err := client.API.Login(cmd.Context(), email)
			if err != nil {
				return apiFailure(err, "Login failed. Please check your email.")
			}
			if err := client.SignIn(cmd.Context(), user); err != nil {
				return err
			}

			output(cmd).Print(newSession(client.Key, user))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&role, "role", string(model.RolePlayer), "Account type: player, turf_owner, admin")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newRegisterCmd() *cobra.Command {
	var req backend.RegisterRequest
	var role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Name == "" || req.Email == "" || req.Phone == "" {
				return fmt.Errorf("--name, --email, and --phone are required")
			}
			r, err := model.ParseRole(role)
			if err != nil {
				return err
			}
			req.Role = r
			if req.SkillLevel != "" && !slices.Contains(model.SkillLevels, req.SkillLevel) {
				return fmt.Errorf("unknown skill level %q", req.SkillLevel)
			}

			user, err := client.API.Register(cmd.Context(), req)
			if err != nil {
				return apiFailure(err, "Registration failed. Please try again.")
			}
			if err := client.SignIn(cmd.Context(), user); err != nil {
				return err
			}

			output(cmd).Print(newSession(client.Key, user))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Full name (required)")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email (required)")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number (required)")
	cmd.Flags().StringVar(&role, "role", string(model.RolePlayer), "Account type: player, turf_owner, admin")
	cmd.Flags().StringVar(&req.Bio, "bio", "", "Short bio")
	cmd.Flags().StringVar(&req.SkillLevel, "skill-level", "", "Beginner, Intermediate or Advanced")
	cmd.Flags().StringVar(&req.Avatar, "avatar", "", "Avatar URL")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out of the current profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.SignOut(cmd.Context()); err != nil {
				return err
			}
			output(cmd).PrintMessage("You have been logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := client.RequireRole(cmd.Context(), "")
			if err != nil {
				return err
			}
			output(cmd).Print(newSession(client.Key, user))
			return nil
		},
	}
}
