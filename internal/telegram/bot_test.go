package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", maxMessageLen))

	long := strings.Repeat("é", maxMessageLen+10)
	out := truncate(long, maxMessageLen)
	assert.Equal(t, maxMessageLen, utf8.RuneCountInString(out))
	assert.True(t, strings.HasSuffix(out, "…"))
}
