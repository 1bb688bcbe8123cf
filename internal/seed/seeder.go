// Package seed fills a store with fake users, follows, blogs and comments.
// Blogs and comments go through the write guard, so seeded data respects the
// same quotas as real traffic.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/bloghub/internal/blog"
	"github.com/2beens/bloghub/internal/errs"
	"github.com/2beens/bloghub/internal/users"

	"github.com/brianvoe/gofakeit/v6"
	log "github.com/sirupsen/logrus"
)

var DefaultTags = []string{
	"go", "rust", "backend", "databases", "devops",
	"frontend", "ml", "security", "testing", "career",
}

type People interface {
	AddUser(ctx context.Context, user users.User) error
	AddFollow(ctx context.Context, follower, followee string) error
}

// FollowMirror receives every seeded follow edge, e.g. the neo4j graph.
type FollowMirror interface {
	SyncFollow(ctx context.Context, follower, followee string) error
}

type Params struct {
	Users           int
	FollowsPerUser  int
	BlogsPerUser    int
	CommentsPerUser int
	Tags            []string
}

func DefaultParams(usersCount int) Params {
	return Params{
		Users:           usersCount,
		FollowsPerUser:  5,
		BlogsPerUser:    2,
		CommentsPerUser: 3,
		Tags:            DefaultTags,
	}
}

type Report struct {
	Usernames []string
	Follows   int
	Blogs     int
	Comments  int
	// Rejected counts writes refused by the guard (quota or duplicate).
	Rejected int
}

func (r *Report) String() string {
	return fmt.Sprintf(
		"users: %d, follows: %d, blogs: %d, comments: %d, rejected: %d",
		len(r.Usernames), r.Follows, r.Blogs, r.Comments, r.Rejected,
	)
}

type Seeder struct {
	people People
	guard  *blog.Guard
	mirror FollowMirror
	faker  *gofakeit.Faker
}

// NewSeeder creates a seeder. mirror may be nil. A zero seed gives a random
// data set, any other value a reproducible one.
func NewSeeder(people People, guard *blog.Guard, mirror FollowMirror, seed int64) *Seeder {
	return &Seeder{
		people: people,
		guard:  guard,
		mirror: mirror,
		faker:  gofakeit.New(seed),
	}
}

func (s *Seeder) Run(ctx context.Context, params Params) (*Report, error) {
	if params.Users <= 0 {
		return nil, errs.Validation("users", "must be a positive number")
	}
	if len(params.Tags) == 0 {
		params.Tags = DefaultTags
	}

	report := &Report{}
	if err := s.addUsers(ctx, params.Users, report); err != nil {
		return nil, err
	}
	if err := s.addFollows(ctx, params.FollowsPerUser, report); err != nil {
		return nil, err
	}

	var blogs []*blog.Blog
	for _, username := range report.Usernames {
		for i := 0; i < params.BlogsPerUser; i++ {
			b, err := s.guard.CreateBlog(ctx, username, s.subject(), s.description(), s.pickTags(params.Tags))
			if isRejection(err) {
				report.Rejected++
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("create blog for %s: %w", username, err)
			}
			blogs = append(blogs, b)
			report.Blogs++
		}
	}

	if len(blogs) == 0 {
		return report, nil
	}
	for _, username := range report.Usernames {
		for i := 0; i < params.CommentsPerUser; i++ {
			target := blogs[s.faker.IntRange(0, len(blogs)-1)]
			_, err := s.guard.CreateComment(ctx, username, target.ID, string(s.sentiment()), s.faker.Sentence(8))
			if isRejection(err) {
				report.Rejected++
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("create comment for %s on %d: %w", username, target.ID, err)
			}
			report.Comments++
		}
	}

	log.Debugf("seeding done: %s", report)
	return report, nil
}

func (s *Seeder) addUsers(ctx context.Context, count int, report *Report) error {
	taken := make(map[string]bool, count)
	for len(report.Usernames) < count {
		username := strings.ToLower(s.faker.Username())
		if taken[username] {
			continue
		}
		taken[username] = true

		user := users.User{
			Username:  username,
			FirstName: s.faker.FirstName(),
			LastName:  s.faker.LastName(),
			Email:     s.faker.Email(),
			Phone:     s.faker.Phone(),
		}
		if err := s.people.AddUser(ctx, user); err != nil {
			return fmt.Errorf("add user %s: %w", username, err)
		}
		report.Usernames = append(report.Usernames, username)
	}
	return nil
}

func (s *Seeder) addFollows(ctx context.Context, perUser int, report *Report) error {
	if len(report.Usernames) < 2 {
		return nil
	}
	perUser = min(perUser, len(report.Usernames)-1)

	for i, follower := range report.Usernames {
		others := make([]string, 0, len(report.Usernames)-1)
		others = append(others, report.Usernames[:i]...)
		others = append(others, report.Usernames[i+1:]...)
		s.faker.ShuffleStrings(others)

		for _, followee := range others[:perUser] {
			if err := s.people.AddFollow(ctx, follower, followee); err != nil {
				return fmt.Errorf("add follow %s -> %s: %w", follower, followee, err)
			}
			if s.mirror != nil {
				if err := s.mirror.SyncFollow(ctx, follower, followee); err != nil {
					return fmt.Errorf("mirror follow %s -> %s: %w", follower, followee, err)
				}
			}
			report.Follows++
		}
	}
	return nil
}

func (s *Seeder) subject() string {
	subject := strings.TrimSuffix(s.faker.Sentence(s.faker.IntRange(3, 8)), ".")
	if len(subject) > blog.MaxSubjectLength {
		subject = subject[:blog.MaxSubjectLength]
	}
	return subject
}

func (s *Seeder) description() string {
	return s.faker.Paragraph(2, 4, 12, "\n\n")
}

func (s *Seeder) pickTags(vocabulary []string) []string {
	count := s.faker.IntRange(1, min(3, len(vocabulary)))
	tags := make([]string, count)
	for i := range tags {
		tags[i] = s.faker.RandomString(vocabulary)
	}
	return tags
}

func (s *Seeder) sentiment() blog.Sentiment {
	// roughly two positive comments for every negative one
	if s.faker.IntRange(0, 2) == 0 {
		return blog.SentimentNegative
	}
	return blog.SentimentPositive
}

func isRejection(err error) bool {
	return errors.Is(err, errs.ErrQuotaExceeded) || errors.Is(err, errs.ErrDuplicateComment)
}
