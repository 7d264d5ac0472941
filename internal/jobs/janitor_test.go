package jobs

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/logging"
)

type fakePurger struct {
	calls atomic.Int32
	n     int64
	err   error
}

func (f *fakePurger) PurgeExpired(context.Context) (int64, error) {
	f.calls.Add(1)
	return f.n, f.err
}

func TestJanitor_PurgeLogs(t *testing.T) {
	var buf bytes.Buffer
	p := &fakePurger{n: 3}
	j := &Janitor{Sessions: p, Logger: logging.NewWithWriter(&buf, "info")}

	j.purge()
	assert.EqualValues(t, 1, p.calls.Load())
	assert.Contains(t, buf.String(), `"deleted":3`)

	buf.Reset()
	p.err = errors.New("db gone")
	j.purge()
	assert.Contains(t, buf.String(), "session_purge_failed")
}

func TestJanitor_RunsOnSchedule(t *testing.T) {
	p := &fakePurger{}
	j := &Janitor{Sessions: p, Interval: 20 * time.Millisecond, Logger: logging.NewWithWriter(&bytes.Buffer{}, "error")}

	require.NoError(t, j.Start())
	assert.Eventually(t, func() bool { return p.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, j.Stop())
}

func TestJanitor_StopWithoutStart(t *testing.T) {
	assert.NoError(t, (&Janitor{}).Stop())
}
