package logx

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNoOpNeverPanics(t *testing.T) {
	l := NewNoOp()
	l.Debug("x")
	l.Info("x", zap.String("k", "v"))
	l.Warn("x")
	l.Error("x")
	child := l.With(zap.Int("n", 1)).WithFields(zap.Bool("b", true))
	child.Info("y")
	require.NoError(t, l.Sync())
}

func TestNewProducesUsableLogger(t *testing.T) {
	l := New(Options{Verbose: true})
	require.NotNil(t, l)
	l.Debug("debug visible at verbose")
	l.Info("hello", zap.String("component", "test"))
	_ = l.Sync()
}
