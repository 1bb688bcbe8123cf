package memdb

import (
	"context"
	"slices"
	"time"

	"github.com/2beens/bloghub/internal/blog"
	"github.com/2beens/bloghub/internal/query"
	"github.com/2beens/bloghub/pkg"
)

func (db *DB) SameDayTagPair(_ context.Context, tagA, tagB string) ([]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	tagA, tagB = blog.NormalizeTag(tagA), blog.NormalizeTag(tagB)
	return db.sortedUsernames(func(username string) bool {
		type dayTagged struct {
			withA, withB []int64
		}
		days := make(map[time.Time]*dayTagged)
		for _, id := range db.userBlogs[username] {
			b := db.blogs[id]
			day := pkg.DayStart(b.CreatedAt)
			if days[day] == nil {
				days[day] = &dayTagged{}
			}
			if b.Tags.Contains(tagA) {
				days[day].withA = append(days[day].withA, id)
			}
			if b.Tags.Contains(tagB) {
				days[day].withB = append(days[day].withB, id)
			}
		}
		for _, d := range days {
			if len(d.withA) == 0 || len(d.withB) == 0 {
				continue
			}
			// one blog carrying both tags is not a pair
			if len(d.withA) == 1 && len(d.withB) == 1 && d.withA[0] == d.withB[0] {
				continue
			}
			return true
		}
		return false
	}), nil
}

func (db *DB) MostBlogsBetween(_ context.Context, from, to time.Time) ([]query.UserCount, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	counts := make(map[string]int)
	maxCount := 0
	for username, ids := range db.userBlogs {
		for _, id := range ids {
			if inRange(db.blogs[id].CreatedAt, from, to) {
				counts[username]++
			}
		}
		maxCount = max(maxCount, counts[username])
	}

	result := make([]query.UserCount, 0)
	if maxCount == 0 {
		return result, nil
	}
	for username, count := range counts {
		if count == maxCount {
			result = append(result, query.UserCount{Username: username, Count: count})
		}
	}
	slices.SortFunc(result, func(a, b query.UserCount) int {
		switch {
		case a.Username < b.Username:
			return -1
		case a.Username > b.Username:
			return 1
		default:
			return 0
		}
	})
	return result, nil
}

func (db *DB) NeverPosted(_ context.Context) ([]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.sortedUsernames(func(username string) bool {
		return len(db.userBlogs[username]) == 0
	}), nil
}

func (db *DB) AllPositiveBlogs(_ context.Context, username string) ([]*blog.Blog, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	blogs := make([]*blog.Blog, 0)
	for _, id := range db.userBlogs[username] {
		cmtIDs := db.blogCmts[id]
		if len(cmtIDs) == 0 || db.anyNegative(cmtIDs) {
			continue
		}
		blogs = append(blogs, copyBlog(db.blogs[id]))
	}
	slices.SortFunc(blogs, func(a, b *blog.Blog) int {
		return cmpInt64(a.ID, b.ID)
	})
	return blogs, nil
}

func (db *DB) OnlyNegativeCommenters(_ context.Context) ([]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.sortedUsernames(func(username string) bool {
		cmtIDs := db.userCmts[username]
		if len(cmtIDs) == 0 {
			return false
		}
		for _, id := range cmtIDs {
			if db.comments[id].Sentiment != blog.SentimentNegative {
				return false
			}
		}
		return true
	}), nil
}

func (db *DB) BlogsNeverNegative(_ context.Context) ([]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.sortedUsernames(func(username string) bool {
		blogIDs := db.userBlogs[username]
		if len(blogIDs) == 0 {
			return false
		}
		for _, id := range blogIDs {
			if db.anyNegative(db.blogCmts[id]) {
				return false
			}
		}
		return true
	}), nil
}

func (db *DB) anyNegative(commentIDs []int64) bool {
	for _, id := range commentIDs {
		if db.comments[id].Sentiment == blog.SentimentNegative {
			return true
		}
	}
	return false
}
