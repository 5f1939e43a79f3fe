package brief

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trendboard/internal/domain/dashboard"
)

func TestResolveBriefURL(t *testing.T) {
	base := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

	trend := dashboard.Trend{
		TrendID:  "t1",
		BriefURL: "https://example.com/stored.pdf",
	}

	t.Run("latest link wins", func(t *testing.T) {
		links := []dashboard.TrendLink{
			{TrendID: "t1", URL: "https://example.com/v1.pdf", CreatedAt: base},
			{TrendID: "t1", URL: "https://example.com/v2.pdf", CreatedAt: base.AddDate(0, 0, 2)},
			{TrendID: "t1", URL: "https://example.com/old.pdf", CreatedAt: base.AddDate(0, 0, 1)},
		}

		assert.Equal(t, "https://example.com/v2.pdf", ResolveBriefURL(trend, links))
	})

	t.Run("link beats trend brief URL", func(t *testing.T) {
		links := []dashboard.TrendLink{
			{TrendID: "t1", URL: "https://example.com/link.pdf", CreatedAt: base},
		}

		assert.Equal(t, "https://example.com/link.pdf", ResolveBriefURL(trend, links))
	})

	t.Run("other trends' links are ignored", func(t *testing.T) {
		links := []dashboard.TrendLink{
			{TrendID: "t2", URL: "https://example.com/other.pdf", CreatedAt: base},
		}

		assert.Equal(t, "https://example.com/stored.pdf", ResolveBriefURL(trend, links))
	})

	t.Run("empty link URLs are skipped", func(t *testing.T) {
		links := []dashboard.TrendLink{
			{TrendID: "t1", URL: "", CreatedAt: base.AddDate(0, 0, 5)},
			{TrendID: "t1", URL: "https://example.com/real.pdf", CreatedAt: base},
		}

		assert.Equal(t, "https://example.com/real.pdf", ResolveBriefURL(trend, links))
	})

	t.Run("no brief anywhere", func(t *testing.T) {
		assert.Empty(t, ResolveBriefURL(dashboard.Trend{TrendID: "t1"}, nil))
	})
}
