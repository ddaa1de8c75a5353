package internal

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

func GenerateId() string {
	return uuid.Must(uuid.NewRandom()).String()
}

// EnvsFromOs converts the process environment into the map consumed by
// each component's Configure
func EnvsFromOs() map[string]string {
	envs := make(map[string]string)
	for _, env := range os.Environ() {
		if s := strings.Split(env, "="); len(s) > 1 {
			envs[s[0]] = strings.Join(s[1:], "=")
		}
	}
	return envs
}

// LaunchContext returns a context that's cancelled once a signal is received
// on osSignal (or cancel is called); the goroutine watching for the signal is
// tracked by wg
func LaunchContext(wg *sync.WaitGroup, osSignal chan os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()

		close(started)
		select {
		case <-ctx.Done():
		case <-osSignal:
		}
	}()
	<-started
	return ctx, cancel
}
