package log

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithFieldDoesNotShareBacking(t *testing.T) {
	req := require.New(t)
	base := Log().WithField("a", 1)
	l1 := base.WithField("b", 2)
	l2 := base.WithField("c", 3)
	req.Equal([]interface{}{"a", 1, "b", 2}, l1.fields)
	req.Equal([]interface{}{"a", 1, "c", 3}, l2.fields)
	req.Equal([]interface{}{"a", 1}, base.fields)
}

func TestSetLevel(t *testing.T) {
	req := require.New(t)
	req.NoError(SetLevel("debug"))
	req.Error(SetLevel("nope"))
	req.NoError(SetLevel("info"))
}
