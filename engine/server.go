package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oklog/ulid/v2"

	"github.com/drummonds/printdesk/config"
	"github.com/drummonds/printdesk/routes"
	"github.com/drummonds/printdesk/webapp"
)

// Logger is global since we will need it everywhere
var Logger = slog.Default()

// Version is set at build time via ldflags
var Version = "dev"

const maxStartAttempts = 5

// ErrNoFreePort is returned when every port tried was already in use
var ErrNoFreePort = errors.New("no free port found")

// ServerHandler will inject the variables needed into routes
type ServerHandler struct {
	Echo         *echo.Echo
	ServerConfig config.ServerConfig
	Table        routes.Table
	App          http.Handler
}

// NewServerHandler builds the go-app handler and the echo server for serverConfig
func NewServerHandler(serverConfig config.ServerConfig) (*ServerHandler, error) {
	appHandler, err := webapp.Handler(webapp.Options{
		Name:        serverConfig.AppName,
		Title:       serverConfig.Title,
		Description: serverConfig.Description,
		Shell:       serverConfig.Shell,
		Version:     appVersion(),
	})
	if err != nil {
		return nil, fmt.Errorf("setting up web app: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	serverHandler := &ServerHandler{
		Echo:         e,
		ServerConfig: serverConfig,
		Table:        webapp.Routes(serverConfig.Shell),
		App:          appHandler,
	}
	serverHandler.Setup()
	return serverHandler, nil
}

// appVersion leaves go-app to derive its own cache version for dev builds
func appVersion() string {
	if Version == "dev" {
		return ""
	}
	return Version
}

// Setup registers middleware, the API and the web app on the echo server
func (serverHandler *ServerHandler) Setup() {
	e := serverHandler.Echo
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return ulid.Make().String() },
	}))
	e.Use(requestLogger())
	e.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))

	e.GET("/api/health", serverHandler.GetHealth)
	e.GET("/api/routes", serverHandler.GetRoutes)
	e.GET("/api/about", serverHandler.GetAboutInfo)

	// Register go-app specific resources
	appHandler := echo.WrapHandler(serverHandler.App)
	e.GET("/wasm_exec.js", appHandler)
	e.GET("/app.js", appHandler)
	e.GET("/app.css", appHandler)
	e.GET("/app-worker.js", appHandler)
	e.GET("/manifest.webmanifest", appHandler)

	// Serve static assets, app.wasm lives in the web dir
	e.Static("/web", serverHandler.ServerConfig.WebDir)
	e.Static("/webapp", serverHandler.ServerConfig.StylesDir)

	// History routing: every other path is served the app page (must be last)
	e.Any("/*", appHandler)
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				Logger.Error("Request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			Logger.Debug("Request", attrs...)
			return nil
		},
	})
}

// Start binds the server, trying the next port when the configured one is
// in use, and blocks until ctx is cancelled or the server fails
func (serverHandler *ServerHandler) Start(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			Logger.Info("Shutting down HTTP server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := serverHandler.Echo.Shutdown(shutdownCtx); err != nil {
				Logger.Error("Failed to shut down server cleanly", "error", err)
			}
		case <-done:
		}
	}()

	if serverHandler.ServerConfig.ListenAddrIP == "" {
		Logger.Info("No Ip Addr set, binding on ALL addresses")
	}
	startPort := serverHandler.ServerConfig.ListenAddrPort
	port := startPort
	for attempt := 0; attempt < maxStartAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil
		}
		addr := net.JoinHostPort(serverHandler.ServerConfig.ListenAddrIP, port)
		Logger.Info("Attempting to start server", "address", addr, "attempt", attempt+1)
		if port != startPort {
			Logger.Warn("Server starting on alternative port due to conflicts",
				"requested_port", startPort,
				"port", port)
		}

		err := serverHandler.Echo.Start(addr)
		switch {
		case err == nil, errors.Is(err, http.ErrServerClosed):
			return nil
		case isAddressInUse(err):
			Logger.Warn("Port already in use, trying next port",
				"port", port,
				"attempt", attempt+1,
				"max_attempts", maxStartAttempts)
			port, err = nextPort(port)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("starting server on %s: %w", addr, err)
		}
	}
	Logger.Error("Failed to find available port after maximum retries",
		"start_port", startPort,
		"max_retries", maxStartAttempts)
	return ErrNoFreePort
}

func nextPort(port string) (string, error) {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", fmt.Errorf("invalid port %q: %w", port, err)
	}
	return strconv.Itoa(portNum + 1), nil
}

// isAddressInUse checks if the error is due to address already in use
func isAddressInUse(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "address already in use")
}
