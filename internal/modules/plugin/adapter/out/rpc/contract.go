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
	PluginMapKey      = "eductl"
	serviceName       = "eductl.plugin.v1.Exporter"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodListFormats = "/" + serviceName + "/ListFormats"
	methodExport      = "/" + serviceName + "/Export"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "EDUCTL_PLUGIN",
	MagicCookieValue: "eductl",
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

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type FormatDescriptor struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Extension   string `json:"extension"`
	TimeoutMS   int32  `json:"timeout_ms"`
}

type ListFormatsResponse struct {
	Formats []FormatDescriptor `json:"formats"`
}

type ExportContext struct {
	BaseURL string            `json:"base_url"`
	Env     map[string]string `json:"env"`
}

type ExportRequest struct {
	FormatID   string        `json:"format_id"`
	EntityType string        `json:"entity_type"`
	ItemsJSON  string        `json:"items_json"`
	Context    ExportContext `json:"context"`
}

type ExportResponse struct {
	Payload string `json:"payload"`
	Records int32  `json:"records"`
	Warning string `json:"warning"`
}

type ExporterServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	ListFormats(ctx context.Context, in *Empty) (*ListFormatsResponse, error)
	Export(ctx context.Context, in *ExportRequest) (*ExportResponse, error)
}

type ExporterClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	ListFormats(ctx context.Context) (*ListFormatsResponse, error)
	Export(ctx context.Context, in *ExportRequest) (*ExportResponse, error)
}

type exporterClient struct {
	conn *grpc.ClientConn
}

func NewExporterClient(conn *grpc.ClientConn) ExporterClient {
	return &exporterClient{conn: conn}
}

func (c *exporterClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *exporterClient) ListFormats(ctx context.Context) (*ListFormatsResponse, error) {
	out := &ListFormatsResponse{}
	if err := c.conn.Invoke(ctx, methodListFormats, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *exporterClient) Export(ctx context.Context, in *ExportRequest) (*ExportResponse, error) {
	out := &ExportResponse{}
	if err := c.conn.Invoke(ctx, methodExport, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterExporterServer(server grpc.ServiceRegistrar, impl ExporterServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*ExporterServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "ListFormats",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ListFormats(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodListFormats}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ListFormats(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Export",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &ExportRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Export(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodExport}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*ExportRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Export(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/exporter-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl ExporterServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterExporterServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewExporterClient(conn), nil
}

func PluginMap(impl ExporterServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
