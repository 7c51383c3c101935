package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/modforge/debuglog"
	"github.com/modforge/debuglog/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	// Create and configure the logging service
	cfg, err := debuglog.NewConfigFromDefaults(map[string]any{
		"root_directory": "./Debug/Logs",
		"log_level":      "Debug",
	})
	if err != nil {
		panic(err)
	}

	service, err := debuglog.NewService(cfg)
	if err != nil {
		panic(err)
	}
	defer service.Shutdown()

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		service.Sink("FastHTTP", "example"),
		compat.WithDefaultLevel(debuglog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	// Configure fasthttp server
	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		// Other server settings
		Name:              "ExampleServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	// Start server
	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) debuglog.Level {
	// Custom logic to detect log levels
	// Can inspect specific fasthttp message patterns

	if strings.Contains(msg, "connection cannot be served") {
		return debuglog.LevelWarning
	}
	if strings.Contains(msg, "error when serving connection") {
		return debuglog.LevelError
	}

	// Use default detection
	return compat.DetectLogLevel(msg)
}
