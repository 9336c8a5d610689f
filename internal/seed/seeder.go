// Package seed fills a development database with fake users and posts.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/casual-cat/instamini-project/internal/filter"
	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/casual-cat/instamini-project/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is given to every seeded account
const DefaultPassword = "password123"

// Options controls how much data Run creates
type Options struct {
	Users        int
	PostsPerUser int
	// bcrypt.MinCost keeps seeding fast; real signups use DefaultCost
	HashCost int
}

// Result counts what Run inserted
type Result struct {
	Users    int
	Posts    int
	Likes    int
	Comments int
}

// Seeder writes fake content through the repositories so the same rules apply as for real users
type Seeder struct {
	users    repositories.UserRepository
	posts    repositories.PostRepository
	likes    repositories.LikeRepository
	comments repositories.CommentRepository
	words    filter.WordSet
	log      *zap.Logger
}

func NewSeeder(
	users repositories.UserRepository,
	posts repositories.PostRepository,
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
	words filter.WordSet,
	log *zap.Logger,
) *Seeder {
	return &Seeder{users: users, posts: posts, likes: likes, comments: comments, words: words, log: log}
}

// Run creates opts.Users accounts, each with opts.PostsPerUser posts. Every
// post is liked and commented on by the author's successor in the batch.
func (s *Seeder) Run(ctx context.Context, opts Options) (Result, error) {
	var res Result
	if opts.Users <= 0 {
		return res, errors.New("seed: users must be positive")
	}
	cost := opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), cost)
	if err != nil {
		return res, fmt.Errorf("hash seed password: %w", err)
	}

	created := make([]*models.User, 0, opts.Users)
	for len(created) < opts.Users {
		username := strings.ToLower(gofakeit.Username()) + fmt.Sprint(gofakeit.Number(100, 999))
		if !models.ValidUsername(username) || filter.ContainsDisallowed(username, s.words) {
			continue
		}
		user := &models.User{
			Username:     username,
			PasswordHash: string(hash),
			Bio:          s.clean(gofakeit.HipsterSentence()),
		}
		err := s.users.CreateUser(ctx, user)
		if errors.Is(err, repositories.ErrDuplicate) {
			continue
		}
		if err != nil {
			return res, fmt.Errorf("create user %s: %w", username, err)
		}
		created = append(created, user)
		res.Users++
	}

	now := time.Now()
	for i, author := range created {
		fan := created[(i+1)%len(created)]
		for j := 0; j < opts.PostsPerUser; j++ {
			post := &models.Post{
				UserID:    author.ID,
				Content:   s.clean(gofakeit.HipsterSentence()),
				CreatedAt: gofakeit.DateRange(now.AddDate(0, 0, -30), now),
			}
			if err := s.posts.CreatePost(ctx, post); err != nil {
				return res, fmt.Errorf("create post: %w", err)
			}
			res.Posts++

			if _, err := s.likes.Toggle(ctx, post.ID, fan.ID); err != nil {
				return res, fmt.Errorf("like post %d: %w", post.ID, err)
			}
			res.Likes++

			comment := &models.Comment{PostID: post.ID, UserID: fan.ID, Content: s.clean(gofakeit.HipsterSentence())}
			if err := s.comments.CreateComment(ctx, comment); err != nil {
				return res, fmt.Errorf("comment on post %d: %w", post.ID, err)
			}
			res.Comments++
		}
	}

	s.log.Info("seed complete",
		zap.Int("users", res.Users),
		zap.Int("posts", res.Posts),
		zap.Int("likes", res.Likes),
		zap.Int("comments", res.Comments))
	return res, nil
}

// clean applies the word limit and the filter the handlers apply to user text
func (s *Seeder) clean(text string) string {
	fields := strings.Fields(text)
	if len(fields) > filter.MaxWords {
		text = strings.Join(fields[:filter.MaxWords], " ")
	}
	out, _ := filter.Redact(text, s.words)
	return out
}
