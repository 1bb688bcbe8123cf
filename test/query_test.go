//go:build integration_test || all_tests

package test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/bloghub/internal/blog"
	"github.com/2beens/bloghub/internal/query"
)

func (s *IntegrationTestSuite) TestQueries() {
	tokens := s.addUsers("e2e_eve", "e2e_fay", "e2e_gus", "e2e_hal")
	s.addFollows("e2e_eve", "e2e_gus", "e2e_hal")
	s.addFollows("e2e_fay", "e2e_hal")

	create := func(username, tags string) int64 {
		status, body := s.doRequest(http.MethodPost, "/api/blog/create", tokens[username],
			fmt.Sprintf(`{"subject": "s", "description": "d", "tags": %q}`, tags))
		s.Require().Equal(http.StatusCreated, status, string(body))
		var created blog.Blog
		s.Require().NoError(json.Unmarshal(body, &created))
		return created.ID
	}
	comment := func(username string, blogID int64, sentiment string) {
		status, body := s.doRequest(http.MethodPost, fmt.Sprintf("/api/blog/%d/comment", blogID), tokens[username],
			fmt.Sprintf(`{"sentiment": %q, "description": "c"}`, sentiment))
		s.Require().Equal(http.StatusCreated, status, string(body))
	}

	eveBlog1 := create("e2e_eve", "e2e-x")
	eveBlog2 := create("e2e_eve", "e2e-y")
	fayBlog := create("e2e_fay", "e2e-x, e2e-y")
	comment("e2e_gus", eveBlog1, "Positive")
	comment("e2e_gus", eveBlog2, "Positive")
	comment("e2e_hal", fayBlog, "Negative")

	var sameDay []string
	s.getJSON("/api/query/same-day-tags?tag_a=e2e-x&tag_b=e2e-y", &sameDay)
	s.Equal([]string{"e2e_eve"}, sameDay)

	var bothFollow []string
	s.getJSON("/api/query/followed-by-both?user_x=e2e_eve&user_y=e2e_fay", &bothFollow)
	s.Equal([]string{"e2e_hal"}, bothFollow)

	status, _ := s.doRequest(http.MethodGet, "/api/query/followed-by-both?user_x=e2e_eve&user_y=e2e_nobody", "", "")
	s.Equal(http.StatusNotFound, status)

	var neverPosted []string
	s.getJSON("/api/query/never-posted", &neverPosted)
	s.Contains(neverPosted, "e2e_gus")
	s.Contains(neverPosted, "e2e_hal")
	s.NotContains(neverPosted, "e2e_eve")

	var allPositive []*blog.Blog
	s.getJSON("/api/query/all-positive-blogs?username=e2e_eve", &allPositive)
	s.Len(allPositive, 2)

	var onlyNegative []string
	s.getJSON("/api/query/only-negative-commenters", &onlyNegative)
	s.Contains(onlyNegative, "e2e_hal")
	s.NotContains(onlyNegative, "e2e_gus")

	var neverNegative []string
	s.getJSON("/api/query/never-negative", &neverNegative)
	s.Contains(neverNegative, "e2e_eve")
	s.NotContains(neverNegative, "e2e_fay")

	var mostBlogs query.MostBlogsResult
	s.getJSON("/api/query/most-blogs", &mostBlogs)
	s.Equal(time.Now().UTC().Format(time.DateOnly), mostBlogs.Date)
	s.Require().NotEmpty(mostBlogs.Users)
	for _, uc := range mostBlogs.Users {
		s.GreaterOrEqual(uc.Count, 2)
	}

	status, _ = s.doRequest(http.MethodGet, "/api/query/most-blogs?date=yesterday", "", "")
	s.Equal(http.StatusBadRequest, status)
}
