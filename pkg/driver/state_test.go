package driver

import (
	"errors"
	"testing"
)

var noop = func() error { return nil }

func TestUpdate1(t *testing.T) {
	s := StateClosed
	s.Update(StateOpened, noop)

	if s != StateOpened {
		t.Fatalf("expected %s, got %s", StateOpened, s)
	}

	s.Update(StateClosed, noop)

	if s != StateClosed {
		t.Fatalf("expected %s, got %s", StateClosed, s)
	}

	s.Update(StateOpened, noop)

	if s != StateOpened {
		t.Fatalf("expected %s, got %s", StateOpened, s)
	}
}

func TestUpdateInvalidTransitions(t *testing.T) {
	cases := map[string]struct {
		from, to State
	}{
		"OpenTwice":          {StateOpened, StateOpened},
		"RunWhileClosed":     {StateClosed, StateRunning},
		"RunWhileRunning":    {StateRunning, StateRunning},
		"OpenWhileRunning":   {StateRunning, StateOpened},
		"UnknownTargetState": {StateOpened, State("paused")},
	}

	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			s := c.from
			var called bool
			err := s.Update(c.to, func() error {
				called = true
				return nil
			})
			if err == nil {
				t.Fatal("expected an error")
			}
			if called {
				t.Error("f must not run on an invalid transition")
			}
			if s != c.from {
				t.Errorf("state must stay %s, got %s", c.from, s)
			}
		})
	}
}

func TestUpdateFailureKeepsState(t *testing.T) {
	s := StateClosed
	if err := s.Update(StateOpened, func() error { return errors.New("boom") }); err == nil {
		t.Fatal("expected an error")
	}
	if s != StateClosed {
		t.Fatalf("expected %s, got %s", StateClosed, s)
	}
}
