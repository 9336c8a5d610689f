package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Toggler flips a per-(post, user) marker row and reports whether it is now present
type Toggler interface {
	Toggle(ctx context.Context, postID, userID uint) (present bool, err error)
}

// checkThenActToggle reads the marker, then deletes or inserts it as a separate
// statement. Concurrent calls for the same pair can both insert.
type checkThenActToggle struct {
	db     *gorm.DB
	model  func() interface{}
	newRow func(postID, userID uint) interface{}
}

func (t *checkThenActToggle) Toggle(ctx context.Context, postID, userID uint) (bool, error) {
	db := t.db.WithContext(ctx)

	var ids []uint
	if err := db.Model(t.model()).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Limit(1).
		Pluck("id", &ids).Error; err != nil {
		return false, err
	}

	if len(ids) > 0 {
		if err := db.Delete(t.model(), ids[0]).Error; err != nil {
			return false, err
		}
		return false, nil
	}

	if err := db.Create(t.newRow(postID, userID)).Error; err != nil {
		return false, err
	}
	return true, nil
}

type postCount struct {
	PostID uint
	Count  int64
}

// markedPostIDs returns which of postIDs carry a marker row for userID
func markedPostIDs(ctx context.Context, db *gorm.DB, model interface{}, userID uint, postIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	err := forEachIDChunk(postIDs, func(chunk []uint) error {
		var marked []uint
		if err := db.WithContext(ctx).Model(model).
			Where("user_id = ? AND post_id IN ?", userID, chunk).
			Distinct().
			Pluck("post_id", &marked).Error; err != nil {
			return err
		}
		for _, id := range marked {
			result[id] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
