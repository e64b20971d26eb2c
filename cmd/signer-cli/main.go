package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-signer/internal/config"
	"github.com/tdex-network/tdex-signer/internal/core/application"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
)

func main() {
	app := cli.NewApp()

	app.Version = version
	app.Name = "signer CLI"
	app.Usage = "Command line interface to manage the wallets of the signer and inspect the connected device"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "network",
			Usage: "the network of the wallets, overrides SIGNER_NETWORK",
		},
	}
	app.Before = setup
	app.Commands = append(
		app.Commands,
		&wallets,
		&deviceCmd,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func setup(ctx *cli.Context) error {
	if err := config.InitConfig(); err != nil {
		return err
	}
	if network := ctx.String("network"); network != "" {
		config.Set(config.NetworkKey, network)
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
	return nil
}

// getAppConfig returns the application config of the local components,
// together with its cleanup func.
func getAppConfig() (*application.Config, func(), error) {
	appConfig := config.GetAppConfig()
	if err := appConfig.ValidateLocal(); err != nil {
		return nil, nil, err
	}
	cleanup := func() { appConfig.RepoManager().Close() }
	return appConfig, cleanup, nil
}

func printJSON(resp interface{}) {
	buf, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to encode response: ", err)
		return
	}
	fmt.Println(string(buf))
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[signer] %v\n", err)
	}
	os.Exit(1)
}
