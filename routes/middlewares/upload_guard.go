package middlewares

import "context"

type guardOp int

const (
	guardAcquire guardOp = iota
	guardRelease
	guardQuery
)

type guardCheck struct {
	op     guardOp
	key    string
	result chan<- bool
}

// UploadGuard lets a session run one upload at a time. A single goroutine
// owns the set of busy sessions.
type UploadGuard struct {
	checks chan guardCheck
}

func NewUploadGuard(ctx context.Context) *UploadGuard {
	g := &UploadGuard{checks: make(chan guardCheck)}
	go func() {
		busy := make(map[string]bool)

		for {
			select {
			case <-ctx.Done():
				return
			case req := <-g.checks:
				switch req.op {
				case guardAcquire:
					req.result <- !busy[req.key]
					busy[req.key] = true
				case guardQuery:
					req.result <- busy[req.key]
				case guardRelease:
					delete(busy, req.key)
				}
			}
		}
	}()
	return g
}

func (g *UploadGuard) ask(op guardOp, key string) bool {
	result := make(chan bool, 1)
	g.checks <- guardCheck{op, key, result}
	return <-result
}

// Acquire reports whether key was free and marks it busy.
func (g *UploadGuard) Acquire(key string) bool {
	return g.ask(guardAcquire, key)
}

func (g *UploadGuard) Busy(key string) bool {
	return g.ask(guardQuery, key)
}

func (g *UploadGuard) Release(key string) {
	g.checks <- guardCheck{op: guardRelease, key: key}
}
