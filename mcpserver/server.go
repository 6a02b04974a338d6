package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sjzsdu/uiforge/share"
	"github.com/sjzsdu/uiforge/workspace"
)

type toolHandler = func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// Server 面向助手的 MCP 服务，所有工具都作用于同一个会话
type Server struct {
	*server.MCPServer
	session  *workspace.Session
	handlers map[string]toolHandler
}

// NewServer 创建 MCP 服务并注册全部工具
func NewServer(session *workspace.Session) *Server {
	s := &Server{
		MCPServer: server.NewMCPServer(
			share.MCP_SERVER_NAME,
			share.VERSION,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		session:  session,
		handlers: make(map[string]toolHandler),
	}
	s.registerEditorTools()
	s.registerPreviewTools()
	return s
}

func (s *Server) addTool(tool mcp.Tool, handler toolHandler) {
	s.AddTool(tool, handler)
	s.handlers[tool.Name] = handler
}

// Handler 返回已注册的工具处理函数
func (s *Server) Handler(name string) (toolHandler, bool) {
	h, ok := s.handlers[name]
	return h, ok
}

// ToolNames 返回已注册的工具名
func (s *Server) ToolNames() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	return names
}
