package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFences(t *testing.T) {
	fenced := "```json\n{\"title\": \"Go Basics\"}\n```"
	assert.Equal(t, "{\"title\": \"Go Basics\"}", StripCodeFences(fenced))

	plain := "{\"title\": \"Go Basics\"}"
	assert.Equal(t, plain, StripCodeFences(plain))
}
