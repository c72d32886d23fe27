package sprig

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// loggerPtr stores the active logger. Accessed atomically so that SetLogger
// can be called while another goroutine renders.
var loggerPtr atomic.Pointer[log.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

func newNopLogger() *log.Logger {
	return log.New(io.Discard)
}

// SetLogger installs the logger used for debug output. By default sprig
// discards all log output. Pass nil to restore that.
//
// Levels used:
//   - Debug: per-frame stats, skipped primitives
//   - Warn: deep trees, wide nodes, non-finite transforms
func SetLogger(l *log.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *log.Logger {
	return loggerPtr.Load()
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last. Atomic because nodes may be
// built on other goroutines.
var globalDebug atomic.Bool

// frameStats holds per-frame timing and draw metrics.
// Only populated when Scene debug mode is on.
type frameStats struct {
	traverseTime time.Duration
	commands     int
	culled       int
	passes       int
}

func (s *Scene) debugLog(stats frameStats) {
	Logger().Debug("frame",
		"traverse", stats.traverseTime,
		"passes", stats.passes,
		"commands", stats.commands,
		"culled", stats.culled)
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	if depth := n.Depth() + 1; depth > debugMaxTreeDepth {
		Logger().Warn("tree depth exceeds threshold",
			"node", n.Name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		Logger().Warn("node has too many children",
			"node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}

// debugCheckTransform warns when a combined transform holds NaN or Inf.
func debugCheckTransform(n *Node, combined Transform) {
	if err := combined.Validate(); err != nil {
		Logger().Warn("non-finite transform", "node", n.Name, "err", err)
	}
}
