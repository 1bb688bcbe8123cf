//go:build integration_test || all_tests

package test

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2beens/bloghub/internal/blog"
)

func (s *IntegrationTestSuite) TestBlogs_CreateAndRead() {
	tokens := s.addUsers("e2e_ann", "e2e_ben")

	status, body := s.doRequest(http.MethodPost, "/api/blog/create", "", `{"subject": "s", "description": "d", "tags": "go"}`)
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("please log in first", errorMessage(body))

	status, body = s.doRequest(http.MethodPost, "/api/blog/create", tokens["e2e_ann"],
		`{"subject": "Postgres in practice", "description": "rows and locks", "tags": "e2e-db, e2e-go"}`)
	s.Require().Equal(http.StatusCreated, status, string(body))
	var created blog.Blog
	s.Require().NoError(json.Unmarshal(body, &created))
	s.Equal("e2e_ann", created.Username)
	s.Equal("Postgres in practice", created.Subject)
	s.ElementsMatch([]string{"e2e-db", "e2e-go"}, []string(created.Tags))

	status, body = s.doRequest(http.MethodPost, fmt.Sprintf("/api/blog/%d/comment", created.ID), tokens["e2e_ben"],
		`{"sentiment": "positive", "description": "nice"}`)
	s.Require().Equal(http.StatusCreated, status, string(body))
	var comment blog.Comment
	s.Require().NoError(json.Unmarshal(body, &comment))
	s.Equal(created.ID, comment.BlogID)
	s.Equal(blog.SentimentPositive, comment.Sentiment)

	var withComments blog.BlogWithComments
	s.getJSON(fmt.Sprintf("/api/blog/%d", created.ID), &withComments)
	s.Equal(created.ID, withComments.ID)
	s.Require().Len(withComments.Comments, 1)
	s.Equal("e2e_ben", withComments.Comments[0].Username)

	var found []*blog.Blog
	s.getJSON("/api/blog/search?tag=e2e-db", &found)
	s.Require().Len(found, 1)
	s.Equal(created.ID, found[0].ID)

	var byUser []*blog.Blog
	s.getJSON("/api/blog/user/e2e_ann", &byUser)
	s.Len(byUser, 1)

	status, body = s.doRequest(http.MethodGet, "/api/blog/my-blogs", tokens["e2e_ben"], "")
	s.Require().Equal(http.StatusOK, status)
	s.JSONEq(`[]`, string(body))

	status, _ = s.doRequest(http.MethodGet, "/api/blog/999999", "", "")
	s.Equal(http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestBlogs_Quotas() {
	tokens := s.addUsers("e2e_cid", "e2e_dot")

	blogIDs := make([]int64, 0, 2)
	for i := 0; i < 2; i++ {
		status, body := s.doRequest(http.MethodPost, "/api/blog/create", tokens["e2e_cid"],
			fmt.Sprintf(`{"subject": "post %d", "description": "d", "tags": ["e2e-quota"]}`, i))
		s.Require().Equal(http.StatusCreated, status, string(body))
		var created blog.Blog
		s.Require().NoError(json.Unmarshal(body, &created))
		blogIDs = append(blogIDs, created.ID)
	}

	status, body := s.doRequest(http.MethodPost, "/api/blog/create", tokens["e2e_cid"],
		`{"subject": "one too many", "description": "d", "tags": "e2e-quota"}`)
	s.Equal(http.StatusTooManyRequests, status)
	s.Equal("quota exceeded: at most 2 blogs per day", errorMessage(body))

	commentPath := fmt.Sprintf("/api/blog/%d/comment", blogIDs[0])
	status, body = s.doRequest(http.MethodPost, commentPath, tokens["e2e_dot"], `{"sentiment": "Negative", "description": "meh"}`)
	s.Require().Equal(http.StatusCreated, status, string(body))

	status, body = s.doRequest(http.MethodPost, commentPath, tokens["e2e_dot"], `{"sentiment": "Positive", "description": "changed my mind"}`)
	s.Equal(http.StatusConflict, status)
	s.Equal(fmt.Sprintf("duplicate comment: already commented on blog %d", blogIDs[0]), errorMessage(body))

	status, body = s.doRequest(http.MethodPost, commentPath, tokens["e2e_dot"], `{"sentiment": "neutral", "description": "x"}`)
	s.Equal(http.StatusBadRequest, status)
	s.Contains(errorMessage(body), "invalid sentiment")

	status, body = s.doRequest(http.MethodPost, "/api/blog/create", tokens["e2e_dot"], `{"subject": "", "description": "d", "tags": "go"}`)
	s.Equal(http.StatusBadRequest, status)
	s.Contains(errorMessage(body), "invalid subject")
}
