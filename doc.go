// Package hydrogen is a Linux-only, edge-triggered TCP server engine.
//
// # Architecture
//
// A [Server] accepts connections on a single listening socket, decodes
// bytes into application messages through an embedder-supplied [Stream],
// and dispatches decoded messages to an embedder-supplied [Handler]. The
// core is three dedicated goroutines plus a fixed worker pool:
//
//   - the acceptor accepts connections and stages them;
//   - the event loop promotes staged connections, waits on epoll, and
//     classifies readiness events into I/O work items;
//   - the I/O sentinel drains the work queue on a fixed cadence and
//     dispatches items into the worker pool;
//   - the worker pool performs the actual read/write syscalls and
//     re-arms readiness on completion.
//
// # Platform support
//
// I/O readiness is epoll-only (edge-triggered, one-shot). There is no
// cross-platform fallback; this package only builds on linux.
//
// # Usage
//
//	srv, err := hydrogen.New(handler,
//	    hydrogen.WithAddr("0.0.0.0"),
//	    hydrogen.WithPort(9000),
//	    hydrogen.WithMaxThreads(8),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.ListenAndServe(); err != nil {
//	    log.Fatal(err)
//	}
package hydrogen
