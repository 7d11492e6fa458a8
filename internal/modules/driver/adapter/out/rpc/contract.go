package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	DriverMapKey    = "senscal"
	serviceName     = "senscal.driver.v1.SensorDriver"
	jsonCodecName   = "json"
	methodGetInfo   = "/" + serviceName + "/GetInfo"
	methodReadFrame = "/" + serviceName + "/ReadFrame"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "SENSCAL_DRIVER",
	MagicCookieValue: "senscal",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Info struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	GridSize int32  `json:"grid_size"`
}

type ReadFrameRequest struct {
	X        int32   `json:"x"`
	Y        int32   `json:"y"`
	Distance float64 `json:"distance"`
}

type ReadFrameResponse struct {
	Pressure float64 `json:"pressure"`
}

type SensorDriverServer interface {
	GetInfo(ctx context.Context, in *Empty) (*Info, error)
	ReadFrame(ctx context.Context, in *ReadFrameRequest) (*ReadFrameResponse, error)
}

type SensorDriverClient interface {
	GetInfo(ctx context.Context) (*Info, error)
	ReadFrame(ctx context.Context, in *ReadFrameRequest) (*ReadFrameResponse, error)
}

type sensorDriverClient struct {
	conn *grpc.ClientConn
}

func NewSensorDriverClient(conn *grpc.ClientConn) SensorDriverClient {
	return &sensorDriverClient{conn: conn}
}

func (c *sensorDriverClient) GetInfo(ctx context.Context) (*Info, error) {
	out := &Info{}
	if err := c.conn.Invoke(ctx, methodGetInfo, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sensorDriverClient) ReadFrame(ctx context.Context, in *ReadFrameRequest) (*ReadFrameResponse, error) {
	out := &ReadFrameResponse{}
	if err := c.conn.Invoke(ctx, methodReadFrame, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterSensorDriverServer(server grpc.ServiceRegistrar, impl SensorDriverServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*SensorDriverServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetInfo",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetInfo(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetInfo}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetInfo(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "ReadFrame",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &ReadFrameRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ReadFrame(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodReadFrame}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*ReadFrameRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ReadFrame(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/driver-rpc-v1.proto",
	}, impl)
}

type GRPCDriver struct {
	plugin.NetRPCUnsupportedPlugin
	Impl SensorDriverServer
}

func (p *GRPCDriver) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterSensorDriverServer(server, p.Impl)
	return nil
}

func (p *GRPCDriver) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewSensorDriverClient(conn), nil
}

func DriverMap(impl SensorDriverServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		DriverMapKey: &GRPCDriver{Impl: impl},
	}
}
