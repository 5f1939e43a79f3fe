package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trendboard/internal/domain/dashboard"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		prev    float64
		growth  float64
		want    dashboard.TrendStatus
	}{
		{
			name:    "emerging via high engagement rule",
			current: 6000, prev: 8000, growth: 0.35,
			want: dashboard.StatusEmerging,
		},
		{
			name:    "already huge stays stable",
			current: 6000, prev: 12000, growth: 0.35,
			want: dashboard.StatusStable,
		},
		{
			name:    "declining",
			current: 100, prev: 3000, growth: -0.25,
			want: dashboard.StatusDeclining,
		},
		{
			name:    "emerging via surge rule",
			current: 2500, prev: 500, growth: 0.55,
			want: dashboard.StatusEmerging,
		},
		{
			name:    "flat is stable",
			current: 100, prev: 100, growth: 0,
			want: dashboard.StatusStable,
		},
		{
			name:    "first rule wins over surge rule",
			current: 6000, prev: 500, growth: 0.55,
			want: dashboard.StatusEmerging,
		},
		{
			name:    "medium current engagement still declines",
			current: 2500, prev: 3500, growth: -0.25,
			want: dashboard.StatusDeclining,
		},
		{
			name:    "zero everything",
			current: 0, prev: 0, growth: 0,
			want: dashboard.StatusStable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStatus(tt.current, tt.prev, tt.growth))
		})
	}
}
