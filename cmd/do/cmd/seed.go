package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/templui/habitkit/internal/db"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/service"
)

const seedDays = 60

// seedHabit completes every day except those for which skip returns true.
type seedHabit struct {
	name  string
	color string
	skip  func(daysAgo int) bool
}

var seedHabits = []seedHabit{
	{name: "Read 20 pages", color: "#2563eb", skip: func(d int) bool { return d%7 == 3 }},
	{name: "Morning run", color: "#16a34a", skip: func(d int) bool { return d%3 == 0 && d > 10 }},
	{name: "No sugar", color: "#dc2626", skip: func(d int) bool { return d > 20 && d < 25 }},
}

func SeedCmd() *cobra.Command {
	var flags dbFlags
	var email, password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo account with habits and two months of history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := flags.open()
			if err != nil {
				return err
			}
			defer conn.Close()

			err = db.Migrate(cmd.Context(), conn.DB, flags.driver)
			if err != nil {
				return err
			}

			users := repository.NewUserRepository(conn)
			profiles := repository.NewProfileRepository(conn)
			habits := repository.NewHabitRepository(conn)
			entries := repository.NewHabitEntryRepository(conn)

			mailer := service.NewEmailService("", "noreply@example.com", "http://localhost", "Habitkit", true)
			auth := service.NewAuthService(users, profiles, mailer, "seed", false, time.Hour)
			user, err := auth.Register(cmd.Context(), email, password, "Demo", "UTC")
			if errors.Is(err, service.ErrEmailAlreadyExists) {
				fmt.Printf("%s already exists, nothing to do\n", email)
				return nil
			}
			if err != nil {
				return err
			}

			now := time.Now()
			today := model.Today(now, time.UTC)
			created := now.AddDate(0, 0, -seedDays)

			for _, h := range seedHabits {
				habit := &model.Habit{
					ID:        uuid.New().String(),
					UserID:    user.ID,
					Name:      h.name,
					Color:     h.color,
					CreatedAt: created,
					UpdatedAt: created,
				}
				err = habits.Create(habit)
				if err != nil {
					return fmt.Errorf("failed to create habit %q: %w", h.name, err)
				}

				completed := 0
				for daysAgo := seedDays; daysAgo >= 0; daysAgo-- {
					if h.skip(daysAgo) {
						continue
					}
					entry, err := entries.GetOrCreate(habit.ID, today.AddDays(-daysAgo).String())
					if err != nil {
						return err
					}
					entry.Completed = true
					entry.UpdatedAt = now
					err = entries.Update(entry)
					if err != nil {
						return err
					}
					completed++
				}
				fmt.Printf("seeded %q with %d completions\n", h.name, completed)
			}

			fmt.Printf("login with %s / %s\n", email, password)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&email, "email", "demo@example.com", "demo account email")
	cmd.Flags().StringVar(&password, "password", "habitkit-demo-password", "demo account password")

	return cmd
}

