package rate

import (
	"testing"
	"time"
)

func TestLimiterAllowsWithinLimit(t *testing.T) {
	l := NewLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !l.Allow("a@example.com") {
			t.Fatalf("hit %d was denied", i+1)
		}
	}
	if l.Allow("a@example.com") {
		t.Fatalf("hit above the limit was allowed")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := NewLimiter(1, time.Minute)
	if !l.Allow("a@example.com") {
		t.Fatalf("first key denied")
	}
	if !l.Allow("b@example.com") {
		t.Fatalf("second key denied")
	}
}

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		if !l.Allow("a@example.com") {
			t.Fatalf("disabled limiter denied a hit")
		}
	}
}

func TestLimiterWindowExpires(t *testing.T) {
	l := NewLimiter(1, 20*time.Millisecond)
	if !l.Allow("a@example.com") {
		t.Fatalf("first hit denied")
	}
	if l.Allow("a@example.com") {
		t.Fatalf("second hit inside window allowed")
	}
	time.Sleep(40 * time.Millisecond)
	if !l.Allow("a@example.com") {
		t.Fatalf("hit after window expiry denied")
	}
}
