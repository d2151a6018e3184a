// Package testutil provides testing utilities for lifespan tests.
package testutil

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/Iron-Ham/lifespan/internal/remote"
	"github.com/Iron-Ham/lifespan/internal/server"
	"github.com/Iron-Ham/lifespan/internal/server/store"
)

// TestBaseURL is the base URL clients use against StartServer. The host is
// never resolved; requests go over the in-memory listener.
const TestBaseURL = "http://lifespan.test/api/"

// Harness is a reference service running on an in-memory listener.
type Harness struct {
	Server *server.Server
	Store  store.Store
	ln     *fasthttputil.InmemoryListener
}

// StartServer runs the reference service over an in-memory store and listener.
// It is stopped automatically when the test completes.
func StartServer(t *testing.T) *Harness {
	t.Helper()
	return StartServerWithStore(t, store.NewMemory())
}

// StartServerWithStore runs the reference service over st.
func StartServerWithStore(t *testing.T, st store.Store) *Harness {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	srv := server.New(st)

	go func() {
		_ = srv.Serve(ln)
	}()

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
		_ = ln.Close()
	})

	return &Harness{Server: srv, Store: st, ln: ln}
}

// Dial connects to the harness. It matches fasthttp.DialFunc.
func (h *Harness) Dial(string) (net.Conn, error) {
	return h.ln.Dial()
}

// Client returns a remote client wired to the harness.
func (h *Harness) Client(opts ...remote.ClientOption) *remote.Client {
	opts = append([]remote.ClientOption{remote.WithDial(h.Dial)}, opts...)
	return remote.NewClient(TestBaseURL, opts...)
}
