// Package memdb is an in-memory relational store for users, follows,
// blogs and comments, used for local development and tests.
package memdb

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/2beens/bloghub/internal/blog"
	"github.com/2beens/bloghub/internal/errs"
	"github.com/2beens/bloghub/internal/query"
	"github.com/2beens/bloghub/internal/users"
)

var (
	_ blog.Store         = (*DB)(nil)
	_ query.Source       = (*DB)(nil)
	_ users.Directory    = (*DB)(nil)
	_ users.FollowReader = (*DB)(nil)
)

type commentKey struct {
	blogID   int64
	username string
}

type DB struct {
	mu sync.RWMutex

	users   map[string]users.User
	follows map[string]map[string]struct{}

	blogs      map[int64]*blog.Blog
	userBlogs  map[string][]int64
	tagBlogs   map[string][]int64
	comments   map[int64]*blog.Comment
	blogCmts   map[int64][]int64
	userCmts   map[string][]int64
	commentsOn map[commentKey]struct{}

	lastBlogID    atomic.Int64
	lastCommentID atomic.Int64

	userLocks *keyedMutex
}

func New() *DB {
	return &DB{
		users:      make(map[string]users.User),
		follows:    make(map[string]map[string]struct{}),
		blogs:      make(map[int64]*blog.Blog),
		userBlogs:  make(map[string][]int64),
		tagBlogs:   make(map[string][]int64),
		comments:   make(map[int64]*blog.Comment),
		blogCmts:   make(map[int64][]int64),
		userCmts:   make(map[string][]int64),
		commentsOn: make(map[commentKey]struct{}),
		userLocks:  newKeyedMutex(),
	}
}

// AddUser inserts the user, doing nothing if the username is taken.
func (db *DB) AddUser(_ context.Context, user users.User) error {
	if user.Username == "" {
		return errs.Validation("username", "must not be empty")
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.users[user.Username]; !ok {
		db.users[user.Username] = user
	}
	return nil
}

// AddFollow inserts the follow edge, doing nothing if it exists already.
func (db *DB) AddFollow(_ context.Context, follower, followee string) error {
	if follower == followee {
		return errs.Validation("followee", "users cannot follow themselves")
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if !db.hasUser(follower) || !db.hasUser(followee) {
		return errs.NotFoundf("user %s or %s", follower, followee)
	}
	if db.follows[follower] == nil {
		db.follows[follower] = make(map[string]struct{})
	}
	db.follows[follower][followee] = struct{}{}
	return nil
}

func (db *DB) UserExists(_ context.Context, username string) (bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.hasUser(username), nil
}

func (db *DB) Usernames(_ context.Context) ([]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.sortedUsernames(func(string) bool { return true }), nil
}

func (db *DB) Following(_ context.Context, username string) ([]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	following := make([]string, 0, len(db.follows[username]))
	for followee := range db.follows[username] {
		following = append(following, followee)
	}
	slices.Sort(following)
	return following, nil
}

func (db *DB) InUserTx(ctx context.Context, username string, fn func(tx blog.Tx) error) error {
	unlock, err := db.userLocks.Lock(ctx, username)
	if err != nil {
		return err
	}
	defer unlock()

	tx := &memTx{db: db}
	if err := fn(tx); err != nil {
		return err
	}
	return db.commit(tx)
}

func (db *DB) GetBlog(_ context.Context, id int64) (*blog.Blog, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	b, ok := db.blogs[id]
	if !ok {
		return nil, errs.NotFoundf("blog %d", id)
	}
	return copyBlog(b), nil
}

func (db *DB) CommentsForBlog(_ context.Context, blogID int64) ([]*blog.Comment, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	ids := db.blogCmts[blogID]
	comments := make([]*blog.Comment, 0, len(ids))
	for _, id := range ids {
		c := *db.comments[id]
		comments = append(comments, &c)
	}
	slices.SortFunc(comments, func(a, b *blog.Comment) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmpInt64(a.ID, b.ID)
	})
	return comments, nil
}

func (db *DB) SearchByTag(_ context.Context, tag string) ([]*blog.Blog, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.newestFirst(db.tagBlogs[blog.NormalizeTag(tag)]), nil
}

func (db *DB) BlogsByUser(_ context.Context, username string) ([]*blog.Blog, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.newestFirst(db.userBlogs[username]), nil
}

func (db *DB) commit(tx *memTx) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	// constraint checks first, so a failing commit changes nothing
	for _, b := range tx.blogs {
		if !db.hasUser(b.Username) {
			return errs.NotFoundf("user %s", b.Username)
		}
	}
	pendingKeys := make(map[commentKey]struct{}, len(tx.comments))
	for _, c := range tx.comments {
		if !db.hasUser(c.Username) {
			return errs.NotFoundf("user %s", c.Username)
		}
		if _, ok := db.blogs[c.BlogID]; !ok && !tx.hasBlog(c.BlogID) {
			return errs.NotFoundf("blog %d", c.BlogID)
		}
		key := commentKey{blogID: c.BlogID, username: c.Username}
		_, committed := db.commentsOn[key]
		_, pending := pendingKeys[key]
		if committed || pending {
			return blog.ErrDuplicate(c.BlogID)
		}
		pendingKeys[key] = struct{}{}
	}

	for _, b := range tx.blogs {
		db.blogs[b.ID] = b
		db.userBlogs[b.Username] = append(db.userBlogs[b.Username], b.ID)
		for _, tag := range b.Tags {
			db.tagBlogs[tag] = append(db.tagBlogs[tag], b.ID)
		}
	}
	for _, c := range tx.comments {
		db.comments[c.ID] = c
		db.blogCmts[c.BlogID] = append(db.blogCmts[c.BlogID], c.ID)
		db.userCmts[c.Username] = append(db.userCmts[c.Username], c.ID)
		db.commentsOn[commentKey{blogID: c.BlogID, username: c.Username}] = struct{}{}
	}

	return nil
}

func (db *DB) hasUser(username string) bool {
	_, ok := db.users[username]
	return ok
}

func (db *DB) sortedUsernames(include func(username string) bool) []string {
	usernames := make([]string, 0)
	for username := range db.users {
		if include(username) {
			usernames = append(usernames, username)
		}
	}
	slices.Sort(usernames)
	return usernames
}

func (db *DB) newestFirst(ids []int64) []*blog.Blog {
	blogs := make([]*blog.Blog, 0, len(ids))
	for _, id := range ids {
		blogs = append(blogs, copyBlog(db.blogs[id]))
	}
	slices.SortFunc(blogs, func(a, b *blog.Blog) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmpInt64(b.ID, a.ID)
	})
	return blogs
}

func copyBlog(b *blog.Blog) *blog.Blog {
	c := *b
	c.Tags = slices.Clone(b.Tags)
	return &c
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// memTx buffers the inserts of one critical section. Reads see the
// committed state plus the buffered rows.
type memTx struct {
	db       *DB
	blogs    []*blog.Blog
	comments []*blog.Comment
}

func (tx *memTx) CountBlogsBetween(_ context.Context, username string, from, to time.Time) (int, error) {
	tx.db.mu.RLock()
	defer tx.db.mu.RUnlock()

	count := 0
	for _, id := range tx.db.userBlogs[username] {
		if inRange(tx.db.blogs[id].CreatedAt, from, to) {
			count++
		}
	}
	for _, b := range tx.blogs {
		if b.Username == username && inRange(b.CreatedAt, from, to) {
			count++
		}
	}
	return count, nil
}

func (tx *memTx) CountCommentsBetween(_ context.Context, username string, from, to time.Time) (int, error) {
	tx.db.mu.RLock()
	defer tx.db.mu.RUnlock()

	count := 0
	for _, id := range tx.db.userCmts[username] {
		if inRange(tx.db.comments[id].CreatedAt, from, to) {
			count++
		}
	}
	for _, c := range tx.comments {
		if c.Username == username && inRange(c.CreatedAt, from, to) {
			count++
		}
	}
	return count, nil
}

func (tx *memTx) HasCommented(_ context.Context, username string, blogID int64) (bool, error) {
	tx.db.mu.RLock()
	defer tx.db.mu.RUnlock()

	if _, ok := tx.db.commentsOn[commentKey{blogID: blogID, username: username}]; ok {
		return true, nil
	}
	for _, c := range tx.comments {
		if c.Username == username && c.BlogID == blogID {
			return true, nil
		}
	}
	return false, nil
}

func (tx *memTx) BlogExists(_ context.Context, blogID int64) (bool, error) {
	tx.db.mu.RLock()
	defer tx.db.mu.RUnlock()

	_, ok := tx.db.blogs[blogID]
	return ok || tx.hasBlog(blogID), nil
}

func (tx *memTx) InsertBlog(_ context.Context, b *blog.Blog) error {
	b.ID = tx.db.lastBlogID.Add(1)
	tx.blogs = append(tx.blogs, copyBlog(b))
	return nil
}

func (tx *memTx) InsertComment(_ context.Context, c *blog.Comment) error {
	c.ID = tx.db.lastCommentID.Add(1)
	stored := *c
	tx.comments = append(tx.comments, &stored)
	return nil
}

func (tx *memTx) hasBlog(blogID int64) bool {
	for _, b := range tx.blogs {
		if b.ID == blogID {
			return true
		}
	}
	return false
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
