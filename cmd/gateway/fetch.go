package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	mcptool "patreon-gateway/internal/mcp"
)

const (
	mcpURLFlag  = "mcp-url"
	timeoutFlag = "timeout"
)

func makeFetchCMD() cli.Command {
	return cli.Command{
		Name:  "fetch",
		Usage: "Fetches recent posts once and prints the JSON envelope",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  mcpURLFlag,
				Usage: "ask a running gateway over MCP instead of calling Patreon directly (e.g. http://localhost:8080/mcp)",
			},
			cli.DurationFlag{
				Name:  timeoutFlag,
				Usage: "overall timeout",
				Value: 45 * time.Second,
			},
		},
		Action: fetch,
	}
}

func fetch(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.Duration(timeoutFlag))
	defer cancel()

	if u := c.String(mcpURLFlag); u != "" {
		out, err := mcptool.Call(ctx, u, mcptool.RecentPostsTool, nil)
		if err != nil {
			return errors.Wrap(err, "mcp call")
		}
		fmt.Println(out)
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(newGateway(cfg).RecentPosts(ctx))
}
