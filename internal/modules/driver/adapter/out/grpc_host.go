package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	driverrpc "senscal/internal/modules/driver/adapter/out/rpc"
	"senscal/internal/modules/driver/domain"
	driverout "senscal/internal/modules/driver/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

type GRPCHost struct{}

func NewGRPCHost() driverout.Host {
	return &GRPCHost{}
}

func (h *GRPCHost) Probe(ctx context.Context, manifest domain.Manifest) error {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	if _, err := client.GetInfo(callCtx); err != nil {
		return fmt.Errorf("get driver info: %w", err)
	}
	return nil
}

func (h *GRPCHost) Info(ctx context.Context, manifest domain.Manifest) (domain.Info, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Info{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	info, err := client.GetInfo(callCtx)
	if err != nil {
		return domain.Info{}, fmt.Errorf("get driver info: %w", err)
	}
	return domain.Info{Name: info.Name, Version: info.Version, GridSize: int(info.GridSize)}, nil
}

func (h *GRPCHost) ReadFrame(ctx context.Context, manifest domain.Manifest, req domain.ReadRequest) (float64, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return 0, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.ReadFrame(callCtx, &driverrpc.ReadFrameRequest{
		X:        int32(req.X),
		Y:        int32(req.Y),
		Distance: req.Distance,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return 0, fmt.Errorf("%w: read at (%d,%d)", domain.ErrDriverTimeout, req.X, req.Y)
		}
		return 0, fmt.Errorf("read frame: %w", err)
	}
	return response.Pressure, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest, startTimeout time.Duration) (driverrpc.SensorDriverClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  driverrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          driverrpc.DriverMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start driver client: %w", err)
	}
	raw, err := rpcClient.Dispense(driverrpc.DriverMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense driver: %w", err)
	}
	typed, ok := raw.(driverrpc.SensorDriverClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("driver rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
