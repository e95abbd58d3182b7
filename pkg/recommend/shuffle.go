package recommend

import (
	"time"

	"github.com/ShadyRoll/bookserve/pkg/catalog"
)

var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// DaySeed returns the number of whole calendar days between 2000-01-01 and
// now. Every request made on the same day shuffles identically; the order
// rolls over at midnight.
func DaySeed(now time.Time) uint64 {
	y, m, d := now.Date()
	cur := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return uint64(cur.Sub(epoch) / (24 * time.Hour))
}

// splitmix64 is a tiny deterministic PRNG. The stream depends only on the
// seed, so shuffle order is reproducible across runs and platforms.
type splitmix64 struct {
	state uint64
}

func (r *splitmix64) next() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func (r *splitmix64) intn(n int) int {
	return int(r.next() % uint64(n))
}

// Shuffle permutes books in place with a Fisher-Yates pass driven by a
// splitmix64 stream keyed on seed.
func Shuffle(books []catalog.Book, seed uint64) {
	r := &splitmix64{state: seed}
	for i := len(books) - 1; i > 0; i-- {
		j := r.intn(i + 1)
		books[i], books[j] = books[j], books[i]
	}
}
