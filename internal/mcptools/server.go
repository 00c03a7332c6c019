// Package mcptools exposes retrieval and answering as MCP tools so a
// voice or chat agent can call them over the model context protocol.
package mcptools

import (
	"net/http"

	"docvoice/internal/rag"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "1.0.0"

// Server wraps the retrieval service behind MCP tool handlers.
type Server struct {
	ragService rag.Service
	server     *mcp.Server
}

func NewServer(ragService rag.Service) *Server {
	impl := &mcp.Implementation{
		Name:    "docvoice",
		Version: Version,
	}

	s := &Server{
		ragService: ragService,
		server:     mcp.NewServer(impl, nil),
	}
	s.registerTools()
	return s
}

// HTTPHandler returns the streamable HTTP handler to mount on the main
// router.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}
