package server

// Server is the lifecycle contract of the transport layer. [RunServer]
// blocks until a stop signal arrives; [Shutdown] drains in-flight requests
// and releases resources.
type Server interface {
	RunServer()
	Shutdown()
}
