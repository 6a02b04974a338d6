package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sjzsdu/uiforge/config"
	"github.com/sjzsdu/uiforge/lang"
	"github.com/sjzsdu/uiforge/logging"
	"github.com/sjzsdu/uiforge/mcpserver"
	"github.com/sjzsdu/uiforge/preview"
	"github.com/sjzsdu/uiforge/share"
	"github.com/sjzsdu/uiforge/workspace"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: lang.T("Start preview and MCP server"),
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveTransport, "transport", "stdio", lang.T("MCP transport (stdio, http, sse)"))
	serveCmd.Flags().IntVar(&servePort, "port", 0, lang.T("Preview server port"))
	serveCmd.Flags().BoolVar(&watchMode, "watch", false, lang.T("Watch the work directory for changes"))
}

// newPreviewHandler 预览页面、快照导出与 HTTP 形式的 MCP 传输共用一个路由
func newPreviewHandler(session *workspace.Session, mcpSrv *mcpserver.Server, transport string, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		writeHTML(w, preview.HostPage(share.BUILDNAME, "/preview", "/version", session.Version()))
	})
	mux.HandleFunc("/preview", func(w http.ResponseWriter, r *http.Request) {
		writeHTML(w, session.Latest().Document)
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]uint64{"version": session.Version()})
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		p := session.Latest()
		writeJSON(w, map[string]any{
			"version":      p.Version,
			"entry":        p.Entry,
			"errors":       p.Output.Errors,
			"placeholders": p.Output.Placeholders,
		})
	})
	mux.HandleFunc("/snapshot", func(w http.ResponseWriter, r *http.Request) {
		data, err := session.MarshalSnapshot()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	switch transport {
	case "http":
		mux.Handle("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer))
	case "sse":
		sseServer := server.NewSSEServer(mcpSrv.MCPServer)
		mux.Handle("/sse", sseServer.SSEHandler())
		mux.Handle("/message", sseServer.MessageHandler())
	}

	return logging.Middleware(logger, mux)
}

func writeHTML(w http.ResponseWriter, document string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	fmt.Fprint(w, document)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	json.NewEncoder(w).Encode(v)
}

// resolvePort 命令行参数优先，其次是配置
func resolvePort() int {
	if servePort > 0 {
		return servePort
	}
	if port, err := strconv.Atoi(config.Get(config.KeyPort)); err == nil && port > 0 {
		return port
	}
	return share.SERVER_PORT
}

func runServe(cmd *cobra.Command, args []string) error {
	switch serveTransport {
	case "stdio", "http", "sse":
	default:
		return fmt.Errorf("unknown transport %q", serveTransport)
	}

	logger := logging.L()
	session, err := openSession()
	if err != nil {
		return err
	}
	mcpSrv := mcpserver.NewServer(session)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchMode {
		if workDir == "" {
			return fmt.Errorf("--watch requires --directory")
		}
		watcher, err := workspace.NewWatcher(session, workDir, func() {
			p := session.Latest()
			logger.Info("workspace changed",
				zap.Uint64("version", p.Version),
				zap.Int("errors", len(p.Output.Errors)))
		})
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		defer watcher.Stop()
	}

	addr := ":" + strconv.Itoa(resolvePort())
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           newPreviewHandler(session, mcpSrv, serveTransport, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// stdout 留给 stdio 传输，提示信息一律写到 stderr
	fmt.Fprintf(os.Stderr, "Preview: http://localhost%s\n", addr)
	switch serveTransport {
	case "http":
		fmt.Fprintf(os.Stderr, "MCP (streamable http): http://localhost%s/mcp\n", addr)
	case "sse":
		fmt.Fprintf(os.Stderr, "MCP (sse): http://localhost%s/sse\n", addr)
	default:
		fmt.Fprintln(os.Stderr, "MCP: stdio")
	}

	errCh := make(chan error, 2)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("preview server: %w", err)
		}
	}()

	if serveTransport == "stdio" {
		go func() {
			if err := server.ServeStdio(mcpSrv.MCPServer); err != nil {
				errCh <- fmt.Errorf("stdio server: %w", err)
				return
			}
			// 客户端关闭了 stdin
			stop()
		}()
	}

	select {
	case <-ctx.Done():
		err = nil
	case err = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Warn("preview server shutdown", zap.Error(shutdownErr))
	}

	if saveErr := saveSession(session); saveErr != nil {
		logger.Error("save snapshot", zap.Error(saveErr))
	}
	logger.Info(lang.T("Session terminated"), zap.String("session", session.ID))
	return err
}
