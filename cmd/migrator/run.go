package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tdex-network/tdex-signer/internal/config"
	"github.com/tdex-network/tdex-signer/internal/core/application/migration"
	"github.com/tdex-network/tdex-signer/internal/core/application/transaction"
	"github.com/tdex-network/tdex-signer/pkg/stats"
)

var (
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "migrate the wallets listed in a plan, one transaction at a time",
		RunE:  runAction,
	}

	planFlag     string
	passwordFlag string
	dryRunFlag   bool
)

func init() {
	runCmd.Flags().StringVarP(&planFlag, "plan", "p", "", "path of the migration plan json file")
	runCmd.Flags().StringVar(&passwordFlag, "password", "", "password of the software wallets of the plan")
	runCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "print fees and amounts without broadcasting")
}

func runAction(cmd *cobra.Command, args []string) error {
	if planFlag == "" {
		return fmt.Errorf("missing plan")
	}
	p, err := readPlan(planFlag)
	if err != nil {
		return err
	}

	appConfig, ctx, stop, err := start()
	if err != nil {
		return err
	}
	defer stop()

	network := config.GetString(config.NetworkKey)
	migrator, err := appConfig.NewMigrator(network)
	if err != nil {
		return err
	}

	if err := migrator.CreateTransactions(ctx, p.requests()); err != nil {
		return err
	}

	opts := transaction.BuildOpts{Password: passwordFlag}
	for i := 0; ; i++ {
		tx := migrator.NextTransaction()
		if tx == nil {
			break
		}
		if err := prepare(ctx, tx, p, p.Transactions[i]); err != nil {
			return fmt.Errorf("%s: %w", tx.SenderAddress(), err)
		}
		if dryRunFlag {
			continue
		}
		if err := broadcast(ctx, tx, network, opts); err != nil {
			return fmt.Errorf("%s: %w", tx.SenderAddress(), err)
		}
	}

	printTransactions(migrator.Transactions())

	if !dryRunFlag && !migrator.IsMigrationComplete() {
		return fmt.Errorf("migration not completed")
	}
	return nil
}

func prepare(
	ctx context.Context, tx *migration.Transaction, p *plan, entry planEntry,
) error {
	if err := tx.CalculateFees(ctx); err != nil {
		return err
	}
	if err := tx.SelectFee(p.FeeTier); err != nil {
		return err
	}
	if entry.Amount != nil {
		return tx.SetAmount(*entry.Amount)
	}
	return tx.SetSenderMaxAmount(ctx)
}

func broadcast(
	ctx context.Context, tx *migration.Transaction, network string,
	opts transaction.BuildOpts,
) error {
	if err := tx.SetIsPending(true); err != nil {
		return err
	}

	txid, err := tx.SignAndBroadcast(ctx, opts)
	stats.RecordBroadcast(network, err)
	if err != nil {
		//nolint
		tx.SetIsPending(false)
		return err
	}

	log.Infof("%s -> %s: %s", tx.SenderAddress(), tx.RecipientAddress(), txid)
	return nil
}

func printTransactions(txs []*migration.Transaction) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SENDER\tRECIPIENT\tAMOUNT\tFEE\tTXID")
	for _, tx := range txs {
		snapshot := tx.Snapshot()
		amount, fee := "-", "-"
		if snapshot.Amount != nil {
			amount = snapshot.Amount.String()
		}
		if snapshot.SelectedFee != nil {
			fee = snapshot.SelectedFee.String()
		}
		txid := snapshot.TxID
		if txid == "" {
			txid = "-"
		}
		fmt.Fprintf(
			w, "%s\t%s\t%s\t%s\t%s\n",
			snapshot.SenderAddress, snapshot.RecipientAddress, amount, fee, txid,
		)
	}
	//nolint
	w.Flush()
}
