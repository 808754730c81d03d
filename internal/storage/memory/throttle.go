package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pribylovaa/vocal-site/internal/storage"
)

// Throttle - счётчик с фиксированным окном в памяти процесса.
// Используется, когда Redis не настроен.
type Throttle struct {
	mu      sync.Mutex
	max     int64
	window  time.Duration
	now     func() time.Time
	windows map[string]*window
	// gcAt - размер карты, при котором пойдёт следующая уборка.
	gcAt int
}

// minGC - нижняя граница порога уборки.
const minGC = 1024

type window struct {
	count   int64
	resetAt time.Time
}

var _ storage.Throttle = (*Throttle)(nil)

// NewThrottle создаёт счётчик: не больше max событий на ключ за window.
func NewThrottle(max int64, win time.Duration) *Throttle {
	return &Throttle{
		max:     max,
		window:  win,
		now:     time.Now,
		windows: make(map[string]*window),
		gcAt:    minGC,
	}
}

func (t *Throttle) Allow(_ context.Context, key string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()

	w, ok := t.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(t.window)}
		t.windows[key] = w
		if len(t.windows) >= t.gcAt {
			t.gc(now)
		}
	}

	w.count++

	return w.count <= t.max, nil
}

// gc выкидывает истёкшие окна и поднимает порог до удвоенного остатка,
// так что на одну вставку приходится O(1) работы в среднем.
func (t *Throttle) gc(now time.Time) {
	for k, w := range t.windows {
		if !now.Before(w.resetAt) {
			delete(t.windows, k)
		}
	}

	t.gcAt = max(2*len(t.windows), minGC)
}

