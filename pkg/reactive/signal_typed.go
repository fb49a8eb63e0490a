package reactive

// BoolSignal wraps Signal[bool] with convenience methods.
type BoolSignal struct {
	*Signal[bool]
}

// NewBoolSignal creates a new BoolSignal with the given initial value.
func NewBoolSignal(initial bool) *BoolSignal {
	return &BoolSignal{NewSignal(initial)}
}

// Toggle inverts the boolean value.
func (s *BoolSignal) Toggle() {
	s.Update(func(b bool) bool { return !b })
}

// SetTrue sets the value to true.
func (s *BoolSignal) SetTrue() {
	s.Set(true)
}

// SetFalse sets the value to false.
func (s *BoolSignal) SetFalse() {
	s.Set(false)
}

// IntSignal wraps Signal[int] with convenience methods.
type IntSignal struct {
	*Signal[int]
}

// NewIntSignal creates a new IntSignal with the given initial value.
func NewIntSignal(initial int) *IntSignal {
	return &IntSignal{NewSignal(initial)}
}

// Inc increments the value by 1.
func (s *IntSignal) Inc() {
	s.Update(func(n int) int { return n + 1 })
}

// Dec decrements the value by 1.
func (s *IntSignal) Dec() {
	s.Update(func(n int) int { return n - 1 })
}

// Add adds the given value.
func (s *IntSignal) Add(n int) {
	s.Update(func(v int) int { return v + n })
}

// StringSignal wraps Signal[string] with convenience methods.
type StringSignal struct {
	*Signal[string]
}

// NewStringSignal creates a new StringSignal with the given initial value.
func NewStringSignal(initial string) *StringSignal {
	return &StringSignal{NewSignal(initial)}
}

// Clear resets the value to the empty string.
func (s *StringSignal) Clear() {
	s.Set("")
}

// IsEmpty reports whether the current value is the empty string.
// Subscribes the current listener, like Get.
func (s *StringSignal) IsEmpty() bool {
	return s.Get() == ""
}
