package user

import "time"

// PacingPolicy throttles a batch to stay under the directory's request
// quota: after every Every-th processed record the batch pauses for Pause.
// It is a fixed, non-adaptive backoff. Sleep is overridable so tests can
// observe pauses without waiting them out.
type PacingPolicy struct {
	Every int
	Pause time.Duration
	Sleep func(time.Duration)
}

// DefaultPacing pauses one second after every tenth record.
func DefaultPacing() PacingPolicy {
	return PacingPolicy{Every: 10, Pause: time.Second}
}

func (p PacingPolicy) pause(index int) {
	if p.Every <= 0 || index <= 0 || index%p.Every != 0 {
		return
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(p.Pause)
}
