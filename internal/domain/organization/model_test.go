package organization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugFromName(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Acme GmbH", "acme-gmbh"},
		{"  Spaced   Out  ", "spaced-out"},
		{"Already-Sluggy", "already-sluggy"},
		{"Ümlauts & Co.", "mlauts-co"},
		{"123 Numbers", "123-numbers"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SlugFromName(tc.name), "name %q", tc.name)
	}
}
