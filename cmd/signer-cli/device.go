package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/tdex-network/tdex-signer/internal/config"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/infrastructure/device/ledger"
	"github.com/urfave/cli/v2"
)

var (
	deviceCmd = cli.Command{
		Name:  "device",
		Usage: "inspect the connected hardware wallet",
		Subcommands: []*cli.Command{
			deviceStatusCmd, deviceAppsCmd,
		},
	}

	deviceStatusCmd = &cli.Command{
		Name:   "status",
		Usage:  "open the coin app of the network and print its version and public key",
		Action: deviceStatusAction,
	}
	deviceAppsCmd = &cli.Command{
		Name:   "apps",
		Usage:  "list the coins whose device app is supported",
		Action: deviceAppsAction,
	}
)

func deviceStatusAction(ctx *cli.Context) error {
	coin, err := domain.CoinFromNetwork(config.GetString(config.NetworkKey))
	if err != nil {
		return err
	}

	appConfig, cleanup, err := getAppConfig()
	if err != nil {
		return err
	}
	defer cleanup()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("open the app on the device and confirm if asked")
	status, err := appConfig.RetryDriver().Status(sigCtx, coin)
	if err != nil {
		return err
	}

	printJSON(status)
	return nil
}

func deviceAppsAction(ctx *cli.Context) error {
	coins := ledger.Coins()
	sort.Strings(coins)
	fmt.Println(strings.Join(coins, "\n"))
	return nil
}
