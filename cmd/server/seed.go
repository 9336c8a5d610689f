package main

import (
	"fmt"

	"github.com/casual-cat/instamini-project/internal/filter"
	"github.com/casual-cat/instamini-project/internal/repositories"
	"github.com/casual-cat/instamini-project/internal/seed"
	"github.com/casual-cat/instamini-project/pkg/config"
	"github.com/spf13/cobra"
)

var seedOpts seed.Options

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with fake users and posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		db, err := config.InitDB(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.CloseDB()
		if err := db.Migrate(); err != nil {
			return err
		}

		s := seed.NewSeeder(
			repositories.NewPostgresUserRepository(db.Gorm),
			repositories.NewPostgresPostRepository(db.Gorm),
			repositories.NewPostgresLikeRepository(db.Gorm),
			repositories.NewPostgresCommentRepository(db.Gorm),
			filter.LoadFile(cfg.BadWordsFile, log),
			log,
		)
		res, err := s.Run(cmd.Context(), seedOpts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d posts, %d likes, %d comments (password %q)\n",
			res.Users, res.Posts, res.Likes, res.Comments, seed.DefaultPassword)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedOpts.Users, "users", 10, "number of users to create")
	seedCmd.Flags().IntVar(&seedOpts.PostsPerUser, "posts", 3, "posts per user")
}
