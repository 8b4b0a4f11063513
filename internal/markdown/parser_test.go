package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `---
title: Read 12 books
target_value: 12
---

# Heading

Some **bold** text.
`

func TestParse(t *testing.T) {
	p := NewParser()

	html, err := p.Parse([]byte("# Hello\n\nworld"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1")
	assert.Contains(t, string(html), "world")
}

func TestExtractFrontmatter(t *testing.T) {
	p := NewParser()

	meta := p.ExtractFrontmatter([]byte(doc))
	assert.Equal(t, "Read 12 books", meta["title"])
	assert.NotNil(t, meta["target_value"])

	// No frontmatter yields an empty map, not nil
	meta = p.ExtractFrontmatter([]byte("plain text"))
	assert.NotNil(t, meta)
	assert.Empty(t, meta)
}

func TestStripFrontmatter(t *testing.T) {
	body := string(StripFrontmatter([]byte(doc)))
	assert.NotContains(t, body, "title:")
	assert.Contains(t, body, "# Heading")

	// Documents without frontmatter pass through untouched
	plain := "just a paragraph"
	assert.Equal(t, plain, string(StripFrontmatter([]byte(plain))))
}
