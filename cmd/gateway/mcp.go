package main

import (
	"net/http"
	"time"

	"github.com/urfave/cli"

	mcptool "patreon-gateway/internal/mcp"
)

func makeMCPCMD() cli.Command {
	return cli.Command{
		Name:  "mcp",
		Usage: "Serves only the MCP endpoint",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  portFlag,
				Usage: "listen port",
				Value: "8081",
			},
		},
		Action: serveMCP,
	}
}

func serveMCP(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gw := newGateway(cfg)
	s := mcptool.NewServer(gw.RecentPosts)

	srv := &http.Server{
		Addr:              ":" + c.String(portFlag),
		Handler:           mcptool.NewHTTPHandler(s, "/mcp"),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return run(srv)
}
