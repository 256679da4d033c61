package health

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// freePort grabs an ephemeral port and keeps the listener open so the
// server under test has to walk past it.
func freePort(t *testing.T) (int, net.Listener) {
	t.Helper()
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	return l.Addr().(*net.TCPAddr).Port, l
}

func TestServerServesLiveness(t *testing.T) {
	port, blocker := freePort(t)
	blocker.Close()

	s, err := New(port, testLogger())
	require.NoError(t, err)
	go s.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	}()

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/healthz", s.Port))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Bot is running", string(body))
}

func TestServerWalksPastBusyPort(t *testing.T) {
	port, blocker := freePort(t)
	defer blocker.Close()

	s, err := New(port, testLogger())
	require.NoError(t, err)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	}()

	assert.Greater(t, s.Port, port)
}
