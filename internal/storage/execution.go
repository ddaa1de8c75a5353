package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/antonio-alexander/go-employee-store/internal/utilities"

	"github.com/cenkalti/backoff/v5"
)

const (
	defaultTimeout         time.Duration = 10 * time.Second
	defaultConnectMaxTries uint          = 5
)

// connectConfig is shared by the backends that have to reach a server
type connectConfig struct {
	timeout         time.Duration
	connectMaxTries uint
}

func (c *connectConfig) configure(envs map[string]string) {
	c.timeout, c.connectMaxTries = defaultTimeout, defaultConnectMaxTries
	if s, ok := envs["STORAGE_TIMEOUT"]; ok {
		if i, err := strconv.Atoi(s); err == nil && i > 0 {
			c.timeout = time.Duration(i) * time.Second
		}
	}
	if s, ok := envs["STORAGE_CONNECT_MAX_TRIES"]; ok {
		if i, err := strconv.ParseUint(s, 10, 32); err == nil && i > 0 {
			c.connectMaxTries = uint(i)
		}
	}
}

// connect retries pingFx with an exponential backoff until it succeeds, the
// number of tries is exhausted or ctx is done
func connect(ctx context.Context, logger utilities.Logger, name string, maxTries uint, pingFx func(ctx context.Context) error) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if err := pingFx(ctx); err != nil {
			logger.Debug(ctx, "unable to reach %s: %s", name, err)
			return struct{}{}, err
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(maxTries),
	)
	return err
}
