package storefront

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/storefront/internal/model"
)

func TestFilter_Scenario(t *testing.T) {
	t.Parallel()

	got := Filter(sampleCatalog(), "watch")
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)

	assert.Empty(t, Filter(sampleCatalog(), "xyz-no-match"))
}

func TestFilter_BlankQueryKeepsOrder(t *testing.T) {
	t.Parallel()

	items := FallbackCatalog()
	for _, q := range []string{"", " ", "\t\n"} {
		got := Filter(items, q)
		if diff := cmp.Diff(items, got); diff != "" {
			t.Errorf("query %q (-want +got):\n%s", q, diff)
		}
	}
}

func TestFilter_DoesNotAlias(t *testing.T) {
	t.Parallel()

	items := sampleCatalog()
	got := Filter(items, "")
	got[0].Name = "changed"
	assert.Equal(t, "Wireless Headphones", items[0].Name)
}

func TestFilter_MatchesDescriptionCaseInsensitively(t *testing.T) {
	t.Parallel()

	got := Filter(sampleCatalog(), "NOISE")
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	got = Filter([]model.Product{{ID: 9, Name: "ÉCLAIR Lamp"}}, "éclair")
	assert.Len(t, got, 1)
}

func TestFilter_SubsetProperty(t *testing.T) {
	t.Parallel()

	items := FallbackCatalog()
	for _, q := range []string{"a", "pro", "SOUND", "usb", "°", "hd camera", "zzz"} {
		visible := Filter(items, q)
		inVisible := map[int64]bool{}
		for _, p := range visible {
			inVisible[p.ID] = true
			assert.True(t, containsFold(p, q), "query %q: %q should match", q, p.Name)
		}
		for _, p := range items {
			if !inVisible[p.ID] {
				assert.False(t, containsFold(p, q), "query %q: %q should not match", q, p.Name)
			}
		}
	}
}

func containsFold(p model.Product, q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}
