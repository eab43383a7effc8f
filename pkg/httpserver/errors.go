package httpserver

import "errors"

var (
	ErrListen         = errors.New("httpserver.listen_failed")
	ErrServe          = errors.New("httpserver.serve_failed")
	ErrShutdown       = errors.New("httpserver.shutdown_failed")
	ErrAlreadyRunning = errors.New("httpserver.already_running")
)
