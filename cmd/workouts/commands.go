package main

import (
	"fmt"

	"alcyxob/workout-tracker/internal/client"
	"alcyxob/workout-tracker/internal/domain"

	"github.com/spf13/cobra"
)

func (a *cli) registerCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.api.Register(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Account created. Run `workouts login` to get a token.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange credentials for a bearer token",
		Long:  "Prints the token on stdout so it can be exported as CLIENT_TOKEN.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the owner id carried by the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.token == "" {
				return client.ErrUnauthenticated
			}
			owner, err := client.OwnerFromToken(a.token)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, owner)
			return nil
		},
	}
}

func (a *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your workouts, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.signIn(cmd.Context())
			if err != nil {
				return err
			}
			a.printWorkouts(view.Workouts())
			return nil
		},
	}
}

func (a *cli) addCmd() *cobra.Command {
	var in client.NewWorkout
	var status string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.signIn(cmd.Context())
			if err != nil {
				return err
			}
			if status != "" {
				in.Status = domain.ParseWorkoutStatus(status)
			}
			if err := view.Create(cmd.Context(), in); err != nil {
				return a.viewError(view, err)
			}
			a.report(view)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "Workout name")
	cmd.Flags().StringVar(&in.Duration, "duration", "", `Duration, e.g. "30 mins"`)
	cmd.Flags().StringVar(&status, "status", "", "Initial status (default Pending)")
	return cmd
}

func (a *cli) updateCmd() *cobra.Command {
	var name, duration, status string
	var optimistic bool
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a workout's name, duration or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var changes client.WorkoutChanges
			if cmd.Flags().Changed("name") {
				changes.Name = &name
			}
			if cmd.Flags().Changed("duration") {
				changes.Duration = &duration
			}
			if cmd.Flags().Changed("status") {
				s := domain.ParseWorkoutStatus(status)
				changes.Status = &s
			}

			view, err := a.signIn(cmd.Context())
			if err != nil {
				return err
			}
			update := view.Update
			if optimistic {
				update = view.UpdateOptimistic
			}
			if err := update(cmd.Context(), args[0], changes); err != nil {
				return a.viewError(view, err)
			}
			a.report(view)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&duration, "duration", "", "New duration")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	cmd.Flags().BoolVar(&optimistic, "no-refresh", false, "Merge the returned record instead of reloading the list")
	return cmd
}

func (a *cli) completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a workout as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.signIn(cmd.Context())
			if err != nil {
				return err
			}
			if err := view.Complete(cmd.Context(), args[0]); err != nil {
				return a.viewError(view, err)
			}
			a.report(view)
			return nil
		},
	}
}

func (a *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a workout",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.signIn(cmd.Context())
			if err != nil {
				return err
			}
			if err := view.Delete(cmd.Context(), args[0]); err != nil {
				return a.viewError(view, err)
			}
			a.report(view)
			return nil
		},
	}
}
