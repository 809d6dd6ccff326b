package goroutine

import (
	"runtime/debug"

	"github.com/x-xyz/launchpad/base/log"
)

var (
	logger = log.Named("goroutine")
)

type PanicEvent struct {
	Panic interface{}
	Stack []byte
}

// RecoverableGo runs f in a goroutine. The returned channel receives the panic if f panics,
// otherwise it is closed when f returns.
func RecoverableGo(f func()) <-chan *PanicEvent {
	panicChan := make(chan *PanicEvent, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				stack := debug.Stack()
				logger.WithFields(log.Fields{
					"err":   p,
					"stack": string(stack),
				}).Error("panic")
				panicChan <- &PanicEvent{p, stack}
			}
			close(panicChan)
		}()
		f()
	}()
	return panicChan
}
