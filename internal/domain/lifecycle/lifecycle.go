// Package lifecycle holds shared timing constants for fx start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of servers and storage clients.
const DefaultTimeout = 15 * time.Second
