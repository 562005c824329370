package telegram

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// минимальное время простоя, после которого пользователь забывается
const limiterIdle = 10 * time.Minute

type limiterEntry struct {
	lim    *rate.Limiter
	seen   time.Time
	warned bool
}

// Limiter: token bucket на каждого пользователя.
// nil или perSecond <= 0 означает «без ограничений».
// Записи пользователей, молчавших дольше idle, удаляются.
type Limiter struct {
	mu        sync.Mutex
	perSecond float64
	burst     int
	idle      time.Duration
	lastSweep time.Time
	users     map[int64]*limiterEntry
	now       func() time.Time
}

func NewLimiter(perSecond float64, burst int) *Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	// idle не меньше времени полного наполнения ведра
	idle := time.Duration(float64(burst) / perSecond * float64(time.Second))
	if idle < limiterIdle {
		idle = limiterIdle
	}
	return &Limiter{
		perSecond: perSecond,
		burst:     burst,
		idle:      idle,
		users:     make(map[int64]*limiterEntry),
		now:       time.Now,
	}
}

// WithClock подменяет часы (для тестов)
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	l.lastSweep = now()
	return l
}

func (l *Limiter) Allow(userID int64) bool {
	ok, _ := l.Take(userID)
	return ok
}

// Take как Allow, но ещё сообщает, первый ли это отказ подряд:
// предупреждать пользователя стоит один раз, а не на каждое сообщение.
func (l *Limiter) Take(userID int64) (allowed, firstDrop bool) {
	if l == nil {
		return true, false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}
	e, ok := l.users[userID]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(rate.Limit(l.perSecond), l.burst)}
		l.users[userID] = e
	}
	e.seen = now
	if e.lim.AllowN(now, 1) {
		e.warned = false
		return true, false
	}
	firstDrop = !e.warned
	e.warned = true
	return false, firstDrop
}

func (l *Limiter) sweep(now time.Time) {
	for id, e := range l.users {
		if now.Sub(e.seen) >= l.idle {
			delete(l.users, id)
		}
	}
	l.lastSweep = now
}

// Len число отслеживаемых пользователей
func (l *Limiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.users)
}
