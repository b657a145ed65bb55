package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Backend Engineer", "backend-engineer"},
		{"Senior Go Developer (Remote)", "senior-go-developer-remote"},
		{"  C++ / Rust Engineer  ", "c-rust-engineer"},
		{"Data-Scientist", "data-scientist"},
		{"ALL CAPS TITLE", "all-caps-title"},
		{"québec engineer", "québec-engineer"},
		{"---", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}
