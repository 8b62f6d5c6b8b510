package core

import (
	"reflect"
	"testing"
	"time"
)

func TestSchedulerRunsInRegistrationOrder(t *testing.T) {
	var trace []string
	s := NewScheduler()
	s.Add("main", 30*time.Millisecond, func() { trace = append(trace, "main") })
	s.Add("enemy-move", 30*time.Millisecond, func() { trace = append(trace, "enemy-move") })
	s.Add("enemy-fire", 90*time.Millisecond, func() { trace = append(trace, "enemy-fire") })

	for i := 0; i < 3; i++ {
		s.Advance(30 * time.Millisecond)
	}

	want := []string{
		"main", "enemy-move",
		"main", "enemy-move",
		"main", "enemy-move", "enemy-fire",
	}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("trace = %v, expected %v", trace, want)
	}
	if !reflect.DeepEqual(s.Names(), []string{"main", "enemy-move", "enemy-fire"}) {
		t.Errorf("Names() = %v", s.Names())
	}
}

func TestSchedulerCatchesUpOnLongFrames(t *testing.T) {
	runs := 0
	s := NewScheduler()
	s.Add("main", 30*time.Millisecond, func() { runs++ })

	s.Advance(100 * time.Millisecond)
	if runs != 3 {
		t.Fatalf("runs = %d, expected 3", runs)
	}
	s.Advance(20 * time.Millisecond)
	if runs != 4 {
		t.Errorf("leftover time should carry over, runs = %d", runs)
	}
	s.Advance(0)
	s.Advance(-time.Second)
	if runs != 4 {
		t.Errorf("non-positive frames must not run processes, runs = %d", runs)
	}
}

func TestProcessStopAndRestart(t *testing.T) {
	fired := 0
	s := NewScheduler()
	var p *Process
	p = s.Add("cooldown", 50*time.Millisecond, func() {
		fired++
		p.Stop()
	})

	s.Advance(200 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("one-shot process fired %d times", fired)
	}
	if p.Running() || p.Remaining() != 0 {
		t.Error("stopped process should report not running")
	}

	s.Advance(30 * time.Millisecond)
	p.Restart()
	s.Advance(30 * time.Millisecond)
	if fired != 1 {
		t.Error("restart should wait a full interval")
	}
	if p.Remaining() != 20*time.Millisecond {
		t.Errorf("Remaining() = %v, expected 20ms", p.Remaining())
	}
	s.Advance(20 * time.Millisecond)
	if fired != 2 {
		t.Errorf("fired = %d after restart, expected 2", fired)
	}

	if s.Lookup("cooldown") != p || s.Lookup("missing") != nil {
		t.Error("Lookup returned the wrong process")
	}
}
