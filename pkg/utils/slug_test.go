package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello, World! --foo_bar", "hello-world-foo-bar"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Missing constraint in ZK-EVM's MLOAD", "missing-constraint-in-zk-evms-mload"},
		{"---", ""},
		{"under_score__and--dash", "under-score-and-dash"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, GenerateSlug(tc.in))
		})
	}
}

func TestTitleSlug(t *testing.T) {
	assert.Equal(t, "underconstrained-range-check", TitleSlug("Underconstrained Range Check"))
	assert.Equal(t, "plonk-bug-v2", TitleSlug("PLONK bug (v2)!"))
	// 连续空格保留为连续连字符
	assert.Equal(t, "a--b", TitleSlug("a  b"))
}
