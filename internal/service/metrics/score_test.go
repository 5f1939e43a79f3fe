package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trendboard/internal/domain/dashboard"
)

func TestEngagementScore(t *testing.T) {
	tests := []struct {
		name string
		post dashboard.Post
		want float64
	}{
		{
			name: "precomputed score is authoritative",
			post: dashboard.Post{
				EngagementScore: 1234,
				LikeCount:       500,
				RetweetCount:    500,
			},
			want: 1234,
		},
		{
			name: "derived from interaction counts",
			post: dashboard.Post{
				LikeCount:     10,
				RetweetCount:  5,
				ReplyCount:    2,
				BookmarkCount: 4,
			},
			want: 10*1 + 5*3 + 2*2 + 4*2.5,
		},
		{
			name: "zero counts score zero",
			post: dashboard.Post{},
			want: 0,
		},
		{
			name: "likes only",
			post: dashboard.Post{LikeCount: 7},
			want: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EngagementScore(tt.post))
		})
	}
}
