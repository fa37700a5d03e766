package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter_Column(t *testing.T) {
	assert.Equal(t, "views_count", CounterViews.Column())
	assert.Equal(t, "likes_count", CounterLikes.Column())
	assert.Equal(t, "shares_count", CounterShares.Column())
	assert.Equal(t, "download_count", CounterDownloads.Column())
}

func TestParseCounter(t *testing.T) {
	c, ok := ParseCounter("likes", CounterViews, CounterLikes)
	assert.True(t, ok)
	assert.Equal(t, CounterLikes, c)

	_, ok = ParseCounter("downloads", CounterViews, CounterLikes)
	assert.False(t, ok)

	_, ok = ParseCounter("views_count; DROP TABLE brands", CounterViews)
	assert.False(t, ok)
}

func TestAssetPath(t *testing.T) {
	assert.Equal(t, "/uploads/mtn.svg", AssetPath("/uploads/mtn.svg", "brands", "mtn"))
	assert.Equal(t, "/media/brands/mtn.png", AssetPath("", "brands", "mtn"))
	// derived from the slug only, so list order never changes it
	assert.Equal(t, AssetPath("", "blog", "q3-report"), AssetPath("", "blog", "q3-report"))
}
