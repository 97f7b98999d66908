package hydrogen

// Handler is the embedder capability the engine delivers messages and
// lifecycle notifications to. Implementations must be safe for
// concurrent use: OnDataReceived may be invoked concurrently for
// distinct connections, and OnConnectionRemoved is always dispatched
// asynchronously onto the worker pool.
type Handler interface {
	// OnServerCreated is invoked once after bind, before accept, to let
	// the embedder tune socket options on the raw listening descriptor.
	OnServerCreated(listenFD int)

	// OnNewConnection constructs and returns the Stream for a freshly
	// accepted descriptor.
	OnNewConnection(fd int) (Stream, error)

	// OnDataReceived is invoked once per decoded message. It may call
	// socket.Send re-entrantly; that send completes before the read
	// pass continues to the next decoded message.
	OnDataReceived(socket *Socket, message any)

	// OnConnectionRemoved is invoked once per Connection after reaping,
	// carrying the latched error that condemned it.
	OnConnectionRemoved(fd int, err error)
}
