package rworker

import "sync"

// Job runs fn on its own goroutine while holding a slot in rate, so the
// channel capacity bounds the number of jobs in flight. Errors are reported
// to errCh without blocking; extra errors are dropped.
func Job(wg *sync.WaitGroup, fn func() error, rate chan struct{}, errCh chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		rate <- struct{}{}
		if err := fn(); err != nil {
			select {
			case errCh <- err:
			default:
			}
		}
		<-rate
	}()
}
