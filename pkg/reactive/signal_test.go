package reactive

import (
	"sync"
	"testing"
)

type countingListener struct {
	id    uint64
	mu    sync.Mutex
	dirty int
}

func newCountingListener() *countingListener {
	return &countingListener{id: nextID()}
}

func (l *countingListener) MarkDirty() {
	l.mu.Lock()
	l.dirty++
	l.mu.Unlock()
}

func (l *countingListener) ID() uint64 { return l.id }

func (l *countingListener) dirtyCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dirty
}

func TestSignal_GetSet(t *testing.T) {
	s := NewSignal("idle")

	if got := s.Get(); got != "idle" {
		t.Errorf("initial value = %q, want %q", got, "idle")
	}

	s.Set("uploading")
	if got := s.Get(); got != "uploading" {
		t.Errorf("after Set, value = %q, want %q", got, "uploading")
	}
}

func TestSignal_NotifiesTrackedListener(t *testing.T) {
	s := NewSignal(0)
	l := newCountingListener()

	prev := setCurrentListener(l)
	_ = s.Get()
	setCurrentListener(prev)

	s.Set(1)
	if got := l.dirtyCount(); got != 1 {
		t.Errorf("dirty count = %d, want 1", got)
	}
}

func TestSignal_NoNotifyWhenUnchanged(t *testing.T) {
	s := NewSignal(42)
	l := newCountingListener()

	prev := setCurrentListener(l)
	_ = s.Get()
	setCurrentListener(prev)

	s.Set(42)
	if got := l.dirtyCount(); got != 0 {
		t.Errorf("dirty count = %d, want 0 for unchanged value", got)
	}
}

func TestSignal_PeekDoesNotSubscribe(t *testing.T) {
	s := NewSignal(0)
	l := newCountingListener()

	prev := setCurrentListener(l)
	_ = s.Peek()
	setCurrentListener(prev)

	s.Set(1)
	if got := l.dirtyCount(); got != 0 {
		t.Errorf("Peek subscribed the listener: dirty count = %d", got)
	}
}

func TestSignal_UntrackSuppressesSubscription(t *testing.T) {
	s := NewSignal(0)
	l := newCountingListener()

	prev := setCurrentListener(l)
	Untrack(func() { _ = s.Get() })
	setCurrentListener(prev)

	s.Set(1)
	if got := l.dirtyCount(); got != 0 {
		t.Errorf("Untrack leaked a subscription: dirty count = %d", got)
	}
}

func TestSignal_Update(t *testing.T) {
	s := NewIntSignal(10)
	s.Update(func(n int) int { return n * 2 })

	if got := s.Peek(); got != 20 {
		t.Errorf("after Update, value = %d, want 20", got)
	}
}

func TestSignal_SubscribeDeduplicates(t *testing.T) {
	s := NewSignal(0)
	l := newCountingListener()

	prev := setCurrentListener(l)
	_ = s.Get()
	_ = s.Get()
	setCurrentListener(prev)

	s.Set(1)
	if got := l.dirtyCount(); got != 1 {
		t.Errorf("duplicate subscription: dirty count = %d, want 1", got)
	}
}

func TestBoolSignal_Toggle(t *testing.T) {
	s := NewBoolSignal(false)
	s.Toggle()
	if !s.Peek() {
		t.Error("Toggle should flip false to true")
	}
	s.SetFalse()
	if s.Peek() {
		t.Error("SetFalse should set false")
	}
}

func TestStringSignal_Clear(t *testing.T) {
	s := NewStringSignal("Too big")
	s.Clear()
	if got := s.Peek(); got != "" {
		t.Errorf("after Clear, value = %q, want empty", got)
	}
}

func TestSignal_ConcurrentSetAndGet(t *testing.T) {
	s := NewIntSignal(0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Inc()
				_ = s.Peek()
			}
		}()
	}
	wg.Wait()

	if got := s.Peek(); got != 800 {
		t.Errorf("concurrent increments lost updates: got %d, want 800", got)
	}
}
