package sessions

import "time"

// Scheduler abstracts timer arming so tests can simulate time. After
// fires fn once after d; Every fires fn on every tick of d until the
// returned stop function is called.
type Scheduler interface {
	After(d time.Duration, fn func())
	Every(d time.Duration, fn func()) (stop func())
}

type timerScheduler struct{}

// NewTimerScheduler returns the production Scheduler backed by
// time.AfterFunc and time.Ticker.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

func (timerScheduler) Every(d time.Duration, fn func()) (stop func()) {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
	}
}
