package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu     sync.Mutex
	values []string
	at     []time.Time
}

func (r *recorder) emit(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
	r.at = append(r.at, time.Now())
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestBurstEmitsLastValueOnce(t *testing.T) {
	const delay = 60 * time.Millisecond

	var rec recorder
	d := New(delay, rec.emit)
	defer d.Stop()

	var last time.Time
	for _, v := range []string{"b", "bi", "bit", "bitc", "bitcoin"} {
		d.Push(v)
		last = time.Now()
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(2 * delay)
	assert.Equal(t, []string{"bitcoin"}, rec.snapshot())

	rec.mu.Lock()
	quiet := rec.at[0].Sub(last)
	rec.mu.Unlock()
	assert.GreaterOrEqual(t, int64(quiet), int64(delay))
}

func TestSeparatedValuesEmitEach(t *testing.T) {
	const delay = 20 * time.Millisecond

	var rec recorder
	d := New(delay, rec.emit)
	defer d.Stop()

	d.Push("a")
	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	d.Push("b")
	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"a", "b"}, rec.snapshot())
}

func TestCancelAndStop(t *testing.T) {
	const delay = 20 * time.Millisecond

	var rec recorder
	d := New(delay, rec.emit)

	d.Push("dropped")
	assert.True(t, d.Pending())
	d.Cancel()
	assert.False(t, d.Pending())

	d.Push("kept")
	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)

	d.Stop()
	d.Push("ignored")
	time.Sleep(3 * delay)

	assert.Equal(t, []string{"kept"}, rec.snapshot())
}
