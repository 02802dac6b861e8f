package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type ctxKey string

func TestPersistentContextIgnoresCancellation(t *testing.T) {
	parent, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey("request_id"), "abc"))
	cancel()

	ctx := persistentContext(parent)
	assert.NoError(t, ctx.Err())
	assert.Equal(t, "abc", ctx.Value(ctxKey("request_id")))
}
