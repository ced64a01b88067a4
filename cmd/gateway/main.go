package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"patreon-gateway/internal/config"
	"patreon-gateway/internal/gateway"
	"patreon-gateway/internal/patreon"
)

func main() {
	app := cli.NewApp()
	app.Name = "patreon-gateway"
	app.Usage = "Serves a creator's recent Patreon posts"
	app.Version = "0.1.0"
	configure(app)
	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("failed to run app")
	}
}

func configure(app *cli.App) {
	app.Commands = []cli.Command{makeServeCMD(), makeMCPCMD(), makeFetchCMD()}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.ConfigureLogging(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newGateway(cfg *config.Config) *gateway.Gateway {
	client := patreon.NewClient(patreon.Options{
		BaseURL:      cfg.PatreonBaseURL,
		Timeout:      cfg.PatreonTimeout,
		RetryMax:     cfg.PatreonRetryMax,
		RetryWaitMin: cfg.PatreonRetryWaitMin,
		RetryWaitMax: cfg.PatreonRetryWaitMax,
		Logger:       log.WithField("component", "patreon"),
	})
	return gateway.New(cfg.Tokens(), client)
}
