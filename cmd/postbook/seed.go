package main

import (
	"postbook/internal/seed"

	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	var (
		numUsers     int
		postsPerUser int
		clean        bool
		fakerSeed    int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with generated users and posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := seed.NewSeeder(a.db, seed.Options{Seed: fakerSeed})
			if clean {
				if err := s.ClearAll(cmd.Context()); err != nil {
					return err
				}
			}
			summary, err := s.Run(cmd.Context(), numUsers, postsPerUser)
			if err != nil {
				return err
			}
			return a.print(cmd, map[string]interface{}{
				"users":    summary.Users,
				"posts":    summary.Posts,
				"password": seed.DefaultPassword,
			})
		},
	}

	cmd.Flags().IntVar(&numUsers, "users", 10, "number of users to create")
	cmd.Flags().IntVar(&postsPerUser, "posts", 3, "number of posts per user")
	cmd.Flags().BoolVar(&clean, "clean", false, "delete all users and posts first")
	cmd.Flags().Int64Var(&fakerSeed, "seed", 0, "random seed for reproducible data (0 uses the clock)")
	return cmd
}
