package blog

import (
	"strings"
	"time"

	"github.com/2beens/bloghub/internal/errs"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
)

// ParseSentiment accepts the two sentiments case-insensitively and returns
// the canonical value.
func ParseSentiment(s string) (Sentiment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return SentimentPositive, nil
	case "negative":
		return SentimentNegative, nil
	default:
		return "", errs.Validation("sentiment", "must be Positive or Negative")
	}
}

func (s Sentiment) Valid() bool {
	return s == SentimentPositive || s == SentimentNegative
}

type Blog struct {
	ID          int64     `json:"blog_id"`
	Username    string    `json:"username"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Tags        Tags      `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

type Comment struct {
	ID          int64     `json:"comment_id"`
	BlogID      int64     `json:"blog_id"`
	Username    string    `json:"username"`
	Sentiment   Sentiment `json:"sentiment"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// BlogWithComments is a blog together with its comments, oldest first.
type BlogWithComments struct {
	*Blog
	Comments []*Comment `json:"comments"`
}
