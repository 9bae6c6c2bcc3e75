package application

import "time"

// Recorder receives pipeline measurements. Implemented by *metrics.Metrics.
type Recorder interface {
	ApplicationProcessed(outcome string)
	FileReceived(role string)
	ObserveDispatch(d time.Duration, err error)
	CleanupFailed()
}

type nopRecorder struct{}

func (nopRecorder) ApplicationProcessed(string)          {}
func (nopRecorder) FileReceived(string)                  {}
func (nopRecorder) ObserveDispatch(time.Duration, error) {}
func (nopRecorder) CleanupFailed()                       {}
