package core

import "time"

// ProcessFunc is the body of a scheduled process. It runs once per elapsed
// interval.
type ProcessFunc func()

// Process is a named periodic task driven by a Scheduler.
type Process struct {
	Name     string
	Interval time.Duration
	Run      ProcessFunc

	elapsed time.Duration
	stopped bool
}

// Scheduler advances a fixed, ordered set of named processes by simulated
// time. Processes never run concurrently: within one Advance call they run in
// registration order, each as many times as its interval fits into the
// accumulated time.
type Scheduler struct {
	procs []*Process
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Add registers a process. Intervals below one nanosecond are raised to it.
// The returned handle can stop and restart the process.
func (s *Scheduler) Add(name string, interval time.Duration, run ProcessFunc) *Process {
	p := &Process{
		Name:     name,
		Interval: max(interval, 1),
		Run:      run,
	}
	s.procs = append(s.procs, p)
	return p
}

// Lookup returns the process registered under name, or nil.
func (s *Scheduler) Lookup(name string) *Process {
	for _, p := range s.procs {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Names returns the process names in execution order.
func (s *Scheduler) Names() []string {
	names := make([]string, len(s.procs))
	for i, p := range s.procs {
		names[i] = p.Name
	}
	return names
}

// Advance moves simulated time forward by dt and runs every process whose
// interval has elapsed.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	for _, p := range s.procs {
		if p.stopped {
			continue
		}
		p.elapsed += dt
		for p.elapsed >= p.Interval && !p.stopped {
			p.elapsed -= p.Interval
			p.Run()
		}
	}
}

// Stop suspends the process and discards its accumulated time.
func (p *Process) Stop() {
	p.stopped = true
	p.elapsed = 0
}

// Restart re-arms the process so it next runs one full interval from now.
func (p *Process) Restart() {
	p.stopped = false
	p.elapsed = 0
}

// Running reports whether the process is armed.
func (p *Process) Running() bool {
	return !p.stopped
}

// Remaining returns the time until the next run, or zero when stopped.
func (p *Process) Remaining() time.Duration {
	if p.stopped {
		return 0
	}
	return p.Interval - p.elapsed
}
