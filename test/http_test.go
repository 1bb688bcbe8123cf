//go:build integration_test || all_tests

package test

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/2beens/bloghub/internal/auth"
)

func (s *IntegrationTestSuite) doRequest(method, path, token, body string) (int, []byte) {
	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, serverEndpoint+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) getJSON(path string, target any) {
	status, body := s.doRequest(http.MethodGet, path, "", "")
	s.Require().Equal(http.StatusOK, status, string(body))
	s.Require().NoError(json.Unmarshal(body, target))
}

func errorMessage(body []byte) string {
	var resp struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &resp)
	return resp.Error
}
