package engine

import "log/slog"

// DefaultChainWarn is the resolution-chain length above which the machine
// logs a warning.
const DefaultChainWarn = 64

// chainMonitor counts the steps of one resolution chain.
//
// Resolution has no step limit: a chain either reaches None or runs forever,
// exactly like the frame loop. The monitor only makes an unusually long chain
// visible, once per chain.
type chainMonitor struct {
	limit   int
	current int
	warned  bool
}

func newChainMonitor(limit int) *chainMonitor {
	return &chainMonitor{limit: limit}
}

// step records one resolved transition and warns the first time the chain
// exceeds the limit. A non-positive limit disables the warning.
func (c *chainMonitor) step(logger *slog.Logger, frame int64, t string) {
	c.current++
	if c.limit <= 0 || c.warned || c.current <= c.limit {
		return
	}
	c.warned = true
	logger.Warn("long resolution chain",
		"frame", frame,
		"steps", c.current,
		"limit", c.limit,
		"transition", t)
}

func (c *chainMonitor) reset() {
	c.current = 0
	c.warned = false
}
