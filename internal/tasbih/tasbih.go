// Package tasbih implements the persisted dhikr counter.
package tasbih

import "strconv"

const counterKey = "tasbihCount"

// CycleLength is one round of the physical 33-bead tasbih.
const CycleLength = 33

// KV is the same storage port the history store uses.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Counter is a per-chat dhikr counter.
type Counter struct {
	kv KV
}

// NewCounter returns a counter over the given KV port.
func NewCounter(kv KV) *Counter {
	return &Counter{kv: kv}
}

// Count reads the current value; missing or malformed state reads as zero.
func (c *Counter) Count() int {
	raw, err := c.kv.Get(counterKey)
	if err != nil || raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Increment bumps the counter and returns the new value.
func (c *Counter) Increment() (int, error) {
	n := c.Count() + 1
	return n, c.kv.Set(counterKey, strconv.Itoa(n))
}

// Reset zeroes the counter.
func (c *Counter) Reset() error {
	return c.kv.Set(counterKey, "0")
}

// CycleComplete reports whether the count just closed a 33-bead round.
func CycleComplete(count int) bool {
	return count > 0 && count%CycleLength == 0
}

var phrases = [3]string{
	"سُبْحَانَ اللَّهِ (SubhanAllah)",
	"الْحَمْدُ لِلَّهِ (Alhamdulillah)",
	"اللَّهُ أَكْبَرُ (Allahu Akbar)",
}

// Phrase returns the dhikr for the 33-round the count is in, following the
// traditional SubhanAllah / Alhamdulillah / Allahu Akbar sequence.
func Phrase(count int) string {
	if count <= 0 {
		return phrases[0]
	}
	return phrases[(count-1)/CycleLength%3]
}
