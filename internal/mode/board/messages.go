package board

import "time"

// TickMsg is the periodic wake-up. Every tick runs the loop-restart poll
// and drains the directory watcher; nothing else in the program polls.
type TickMsg time.Time

// copiedMsg reports the outcome of an asynchronous clipboard copy.
type copiedMsg struct {
	err error
}
