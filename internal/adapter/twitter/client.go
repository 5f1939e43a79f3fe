// Package twitter adapts the Twitter v2 recent-search API into dashboard
// posts for batch ingestion.
package twitter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"

	"trendboard/internal/domain/dashboard"
)

// authorizer injects the bearer token into API requests.
type authorizer struct {
	token string
}

func (a authorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

// Client fetches recent posts for search terms.
type Client struct {
	api *twitter.Client
}

// NewClient creates a Twitter API client using bearer-token auth.
func NewClient(bearerToken string) *Client {
	return &Client{
		api: &twitter.Client{
			Authorizer: authorizer{token: bearerToken},
			Client: &http.Client{
				Timeout: 10 * time.Second,
			},
			Host: "https://api.twitter.com",
		},
	}
}

// SearchRecent returns posts matching the search term from the API's
// recent-search window (the last seven days). A tweet with an unparseable
// timestamp fails the whole batch rather than being silently coerced.
func (c *Client) SearchRecent(ctx context.Context, term string, maxResults int) ([]dashboard.Post, error) {
	opts := twitter.TweetRecentSearchOpts{
		MaxResults: maxResults,
		TweetFields: []twitter.TweetField{
			twitter.TweetFieldCreatedAt,
			twitter.TweetFieldPublicMetrics,
			twitter.TweetFieldReferencedTweets,
		},
	}

	resp, err := c.api.TweetRecentSearch(ctx, term, opts)
	if err != nil {
		return nil, fmt.Errorf("error searching tweets for %q: %w", term, err)
	}
	if resp.Raw == nil {
		return nil, nil
	}

	now := time.Now()
	var posts []dashboard.Post
	for _, tweet := range resp.Raw.Tweets {
		createdAt, err := time.Parse(time.RFC3339, tweet.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error parsing created_at for tweet %s: %w", tweet.ID, err)
		}

		statusURL := fmt.Sprintf("https://twitter.com/i/web/status/%s", tweet.ID)
		p := dashboard.Post{
			PostID:     tweet.ID,
			URL:        statusURL,
			TwitterURL: statusURL,
			Text:       tweet.Text,
			CreatedAt:  createdAt,
			SearchTerm: term,
			InsertedAt: now,
		}

		if tweet.PublicMetrics != nil {
			p.RetweetCount = tweet.PublicMetrics.Retweets
			p.ReplyCount = tweet.PublicMetrics.Replies
			p.LikeCount = tweet.PublicMetrics.Likes
			p.QuoteCount = tweet.PublicMetrics.Quotes
		}

		for _, ref := range tweet.ReferencedTweets {
			switch ref.Type {
			case "retweeted":
				p.IsRetweet = true
			case "quoted":
				p.IsQuote = true
			}
		}

		posts = append(posts, p)
	}

	return posts, nil
}
