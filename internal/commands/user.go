package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tdash/internal/models"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage the local user profile",
	Long:  "Set, show or clear the name and email shown on the dashboard",
}

var userSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the user profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer ws.Close()

		user, err := ws.session.GetUser(cmd.Context())
		if errors.Is(err, models.ErrNoUser) {
			user = models.User{ID: uuid.NewString()}
		} else if err != nil {
			return fmt.Errorf("error loading user profile: %w", err)
		}

		if cmd.Flags().Changed("name") {
			user.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("email") {
			user.Email, _ = cmd.Flags().GetString("email")
		}

		if err := ws.session.SaveUser(cmd.Context(), user); err != nil {
			return fmt.Errorf("error saving user profile: %w", err)
		}

		color.Green("Profile saved for %s", displayName(user))
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show current user information",
	RunE:  showUser,
}

var userShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the user profile",
	RunE:  showUser,
}

func showUser(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer ws.Close()

	user, err := ws.session.GetUser(cmd.Context())
	if errors.Is(err, models.ErrNoUser) {
		fmt.Println("No profile set. Use 'tdash user set --name <name>'")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error loading user profile: %w", err)
	}

	fmt.Printf("Name: %s\n", user.Name)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("User ID: %s\n", user.ID)
	return nil
}

var userClearCmd = &cobra.Command{
	Use:     "clear",
	Aliases: []string{"logout"},
	Short:   "Forget the user profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer ws.Close()

		if err := ws.session.ClearUser(cmd.Context()); err != nil {
			return fmt.Errorf("error clearing user profile: %w", err)
		}

		fmt.Println("Profile cleared")
		return nil
	},
}

func displayName(u models.User) string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Email != "":
		return u.Email
	}
	return u.ID
}

func init() {
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(whoamiCmd)

	userCmd.AddCommand(userSetCmd)
	userCmd.AddCommand(userShowCmd)
	userCmd.AddCommand(userClearCmd)

	userSetCmd.Flags().String("name", "", "Display name")
	userSetCmd.Flags().String("email", "", "Email address")
}
