package storage

import (
	"context"
	"fmt"

	"trendboard/internal/domain/dashboard"
)

// ListPosts returns all posts, newest first.
func (s *Store) ListPosts(ctx context.Context) ([]dashboard.Post, error) {
	query := `
		SELECT
			post_id, url, twitter_url, text, created_at, search_term,
			retweet_count, reply_count, like_count, quote_count, bookmark_count,
			is_retweet, is_quote, engagement_score, inserted_at
		FROM posts
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	var posts []dashboard.Post
	for rows.Next() {
		var p dashboard.Post
		var twitterURL *string

		err := rows.Scan(
			&p.PostID,
			&p.URL,
			&twitterURL,
			&p.Text,
			&p.CreatedAt,
			&p.SearchTerm,
			&p.RetweetCount,
			&p.ReplyCount,
			&p.LikeCount,
			&p.QuoteCount,
			&p.BookmarkCount,
			&p.IsRetweet,
			&p.IsQuote,
			&p.EngagementScore,
			&p.InsertedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning post: %w", err)
		}

		if twitterURL != nil {
			p.TwitterURL = *twitterURL
		}

		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, nil
}

// SavePosts upserts a batch of ingested posts.
func (s *Store) SavePosts(ctx context.Context, posts []dashboard.Post) error {
	query := `
		INSERT INTO posts (
			post_id, url, twitter_url, text, created_at, search_term,
			retweet_count, reply_count, like_count, quote_count, bookmark_count,
			is_retweet, is_quote, engagement_score, inserted_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15
		)
		ON CONFLICT (post_id) DO UPDATE
		SET
			retweet_count = $7,
			reply_count = $8,
			like_count = $9,
			quote_count = $10,
			bookmark_count = $11,
			engagement_score = $14
	`

	for _, p := range posts {
		_, err := s.db.Exec(
			ctx,
			query,
			p.PostID,
			p.URL,
			p.TwitterURL,
			p.Text,
			p.CreatedAt,
			p.SearchTerm,
			p.RetweetCount,
			p.ReplyCount,
			p.LikeCount,
			p.QuoteCount,
			p.BookmarkCount,
			p.IsRetweet,
			p.IsQuote,
			p.EngagementScore,
			p.InsertedAt,
		)
		if err != nil {
			return fmt.Errorf("error upserting post %s: %w", p.PostID, err)
		}
	}

	return nil
}
