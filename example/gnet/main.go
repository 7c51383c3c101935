package main

import (
	"github.com/modforge/debuglog"
	"github.com/modforge/debuglog/compat"
	"github.com/panjf2000/gnet/v2"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	cfg, err := debuglog.NewConfigFromDefaults(map[string]any{
		"root_directory": "./Debug/Logs",
		"log_level":      "Debug",
		"write_groups":   true,
	})
	if err != nil {
		panic(err)
	}

	service, err := debuglog.NewService(cfg)
	if err != nil {
		panic(err)
	}
	defer service.Shutdown()

	gnetAdapter := compat.NewGnetAdapter(service, service.Sink("Gnet", "example"))

	// Configure gnet server with the logger
	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
