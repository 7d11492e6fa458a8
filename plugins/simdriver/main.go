// Command simdriver is an external sensor driver that mirrors the builtin
// simulator. It exists to exercise the driver protocol end to end and as a
// template for real hardware drivers.
package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/hashicorp/go-plugin"

	driverrpc "senscal/internal/modules/driver/adapter/out/rpc"
)

type server struct {
	rng *rand.Rand
}

func (s *server) GetInfo(context.Context, *driverrpc.Empty) (*driverrpc.Info, error) {
	return &driverrpc.Info{
		Name:     "simdriver",
		Version:  "1.0.0",
		GridSize: 64,
	}, nil
}

func (s *server) ReadFrame(_ context.Context, in *driverrpc.ReadFrameRequest) (*driverrpc.ReadFrameResponse, error) {
	noise := (s.rng.Float64()*2 - 1) * 50
	pressure := 1000*(1+0.01*in.Distance) + noise
	return &driverrpc.ReadFrameResponse{Pressure: pressure}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: driverrpc.HandshakeConfig,
		Plugins: driverrpc.DriverMap(&server{
			rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		}),
		GRPCServer: plugin.DefaultGRPCServer,
	})
}
