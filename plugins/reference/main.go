package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	pluginrpc "eductl/internal/modules/plugin/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"export"},
	}, nil
}

func (s *server) ListFormats(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.ListFormatsResponse, error) {
	return &pluginrpc.ListFormatsResponse{Formats: []pluginrpc.FormatDescriptor{
		{ID: "csv", Title: "CSV", Description: "Comma-separated values with a header row", Extension: "csv", TimeoutMS: 5000},
		{ID: "jsonl", Title: "JSON Lines", Description: "One JSON object per line", Extension: "jsonl", TimeoutMS: 5000},
	}}, nil
}

func (s *server) Export(_ context.Context, in *pluginrpc.ExportRequest) (*pluginrpc.ExportResponse, error) {
	var records []map[string]any
	if err := json.Unmarshal([]byte(in.ItemsJSON), &records); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	switch in.FormatID {
	case "csv":
		payload, err := renderCSV(records)
		if err != nil {
			return nil, err
		}
		return &pluginrpc.ExportResponse{Payload: payload, Records: int32(len(records))}, nil
	case "jsonl":
		var b strings.Builder
		for _, record := range records {
			line, err := json.Marshal(record)
			if err != nil {
				return nil, fmt.Errorf("encode record: %w", err)
			}
			b.Write(line)
			b.WriteByte('\n')
		}
		return &pluginrpc.ExportResponse{Payload: b.String(), Records: int32(len(records))}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", in.FormatID)
	}
}

// renderCSV uses the union of all record keys, sorted, as the header so
// sparse records still line up.
func renderCSV(records []map[string]any) (string, error) {
	keys := map[string]struct{}{}
	for _, record := range records {
		for key := range record {
			keys[key] = struct{}{}
		}
	}
	header := make([]string, 0, len(keys))
	for key := range keys {
		header = append(header, key)
	}
	sort.Strings(header)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, record := range records {
		row := make([]string, len(header))
		for i, key := range header {
			if value, ok := record[key]; ok && value != nil {
				row[i] = fmt.Sprint(value)
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
