package hydrogen

// rearmFunc is the function-pointer-shaped escape hatch from a Socket
// back to the event loop's re-arm primitive. Passing a function rather
// than an interface reference to the EventLoop avoids a cyclic
// Socket<->EventLoop reference.
type rearmFunc func(c *Connection, extraBits uint32)
