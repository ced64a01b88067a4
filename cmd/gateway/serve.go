package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"patreon-gateway/internal/handlers"
	"patreon-gateway/internal/httpserver"
	mcptool "patreon-gateway/internal/mcp"
)

const portFlag = "port"

func makeServeCMD() cli.Command {
	return cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serves /posts, /healthz and /mcp over HTTP",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  portFlag,
				Usage: "listen port (overrides PORT)",
			},
		},
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if p := c.String(portFlag); p != "" {
		cfg.Port = p
	}

	gw := newGateway(cfg)
	opts := httpserver.Options{Port: cfg.Port}
	if cfg.MCPEnabled {
		opts.MCP = mcptool.NewHTTPHandler(mcptool.NewServer(gw.RecentPosts), "/mcp")
	}
	srv := httpserver.NewServer(opts, handlers.PostsHandler{Posts: gw.RecentPosts})

	return run(srv)
}

// run serves until SIGINT or SIGTERM, then shuts down gracefully.
func run(srv *http.Server) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Infof("patreon-gateway listening on %s", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server error")
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown")
}
