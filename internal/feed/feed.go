package feed

import (
	"context"
	"time"

	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/casual-cat/instamini-project/internal/repositories"
)

// StoryItem is an active story with its author's display identity
type StoryItem struct {
	ID            uint
	MediaFilename string
	CreatedAt     time.Time
	Author        models.UserCompact
}

// PostItem is a post with denormalised counts and the viewer's state
type PostItem struct {
	ID            uint
	UserID        uint
	Content       string
	MediaFilename string
	CreatedAt     time.Time
	Author        models.UserCompact
	LikeCount     int64
	UserHasLiked  bool
	UserHasSaved  bool
	Comments      []models.CommentView
}

// Feed is everything the feed page shows to one viewer
type Feed struct {
	Stories []StoryItem
	Posts   []PostItem
}

// Profile is a user's page: their posts and, for the owner view, what they saved
type Profile struct {
	User       *models.User
	Posts      []PostItem
	SavedPosts []PostItem
	PostCount  int
}

// Aggregator assembles feed and profile read models from the repositories.
// Per-post lookups are batched into one query per concern.
type Aggregator struct {
	users    repositories.UserRepository
	posts    repositories.PostRepository
	stories  repositories.StoryRepository
	likes    repositories.LikeRepository
	saved    repositories.SavedPostRepository
	comments repositories.CommentRepository
	now      func() time.Time
}

// NewAggregator creates a new Aggregator
func NewAggregator(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	storyRepo repositories.StoryRepository,
	likeRepo repositories.LikeRepository,
	savedRepo repositories.SavedPostRepository,
	commentRepo repositories.CommentRepository,
) *Aggregator {
	return &Aggregator{
		users:    userRepo,
		posts:    postRepo,
		stories:  storyRepo,
		likes:    likeRepo,
		saved:    savedRepo,
		comments: commentRepo,
		now:      time.Now,
	}
}

// Feed builds the global feed as seen by viewerID
func (a *Aggregator) Feed(ctx context.Context, viewerID uint) (*Feed, error) {
	stories, err := a.stories.GetActiveStories(ctx, models.ActiveSince(a.now()))
	if err != nil {
		return nil, err
	}

	posts, err := a.posts.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	ids := postIDs(posts)

	counts, err := a.likes.GetLikesCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	liked, err := a.likes.GetLikedPostIDs(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}
	saved, err := a.saved.GetSavedPostIDs(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}
	comments, err := a.comments.GetCommentsByPostIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	f := &Feed{
		Stories: make([]StoryItem, len(stories)),
		Posts:   make([]PostItem, len(posts)),
	}
	for i := range stories {
		s := &stories[i]
		f.Stories[i] = StoryItem{
			ID:            s.ID,
			MediaFilename: s.MediaFilename,
			CreatedAt:     s.CreatedAt,
			Author:        s.User.ToCompact(),
		}
	}
	for i := range posts {
		item := newPostItem(&posts[i], counts)
		item.UserHasLiked = liked[item.ID]
		item.UserHasSaved = saved[item.ID]
		item.Comments = commentViews(comments[item.ID])
		f.Posts[i] = item
	}
	return f, nil
}

// Profile builds the owner's profile page: own posts and saved posts, with like counts
func (a *Aggregator) Profile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := a.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	own, err := a.posts.GetPostsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	savedPosts, err := a.posts.GetSavedPostsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts, err := a.likes.GetLikesCounts(ctx, append(postIDs(own), postIDs(savedPosts)...))
	if err != nil {
		return nil, err
	}

	p := &Profile{
		User:       user,
		Posts:      postItems(own, counts),
		SavedPosts: postItems(savedPosts, counts),
		PostCount:  len(own),
	}
	return p, nil
}

// PublicProfile builds the read-only page for username without counts or saves
func (a *Aggregator) PublicProfile(ctx context.Context, username string) (*Profile, error) {
	user, err := a.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	own, err := a.posts.GetPostsByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		User:      user,
		Posts:     postItems(own, nil),
		PostCount: len(own),
	}, nil
}

func newPostItem(p *models.Post, counts map[uint]int64) PostItem {
	return PostItem{
		ID:            p.ID,
		UserID:        p.UserID,
		Content:       p.Content,
		MediaFilename: p.MediaFilename,
		CreatedAt:     p.CreatedAt,
		Author:        p.User.ToCompact(),
		LikeCount:     counts[p.ID],
	}
}

func postItems(posts []models.Post, counts map[uint]int64) []PostItem {
	items := make([]PostItem, len(posts))
	for i := range posts {
		items[i] = newPostItem(&posts[i], counts)
	}
	return items
}

func postIDs(posts []models.Post) []uint {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func commentViews(comments []models.Comment) []models.CommentView {
	views := make([]models.CommentView, len(comments))
	for i := range comments {
		views[i] = comments[i].ToView()
	}
	return views
}
