// Package httpserver runs an http.Handler with graceful shutdown,
// configurable timeouts and health-check handlers.
//
// Run blocks until the context is canceled, then calls Shutdown. Shutdown
// stops the listener, waits for in-flight requests and runs the functions
// registered with WithDrain, all within the shutdown timeout. The beacon proxy registers the dispatcher's
// Wait there so beacons fired by the last requests are still delivered.
//
//	srv := httpserver.New(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithDrain(dispatcher.Wait),
//	)
//	r.Get("/healthz", httpserver.HealthCheckHandler(log,
//		httpserver.Check{Name: "redis", Fn: store.Ping},
//	))
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// # Errors
//
// Listen failures are joined with ErrListen and serve failures with
// ErrServe. Shutdown joins request and drain errors with ErrShutdown, and Run
// returns that error when it was stopped by its context.
package httpserver
