package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tdex-network/tdex-signer/internal/config"
)

var (
	restoreCmd = &cobra.Command{
		Use:   "restore",
		Short: "sync the signer state of the stored wallets of the network",
		RunE:  restoreAction,
	}

	allFlag bool
)

func init() {
	restoreCmd.Flags().BoolVar(&allFlag, "all", false, "sync the wallets of every network in background mode")
}

func restoreAction(cmd *cobra.Command, args []string) error {
	appConfig, ctx, stop, err := start()
	if err != nil {
		return err
	}
	defer stop()

	svc := appConfig.RestoreService()
	if allFlag {
		return svc.SyncAll(ctx)
	}

	network := config.GetString(config.NetworkKey)
	results, err := svc.RestoreNetwork(ctx, network)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
			failed++
		}
		fmt.Printf("%s\t%s\t%s\n", r.Alias, r.Address, status)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d wallet(s) failed to sync", failed, len(results))
	}
	return nil
}
