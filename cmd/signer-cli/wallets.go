package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tdex-network/tdex-signer/internal/config"
	"github.com/tdex-network/tdex-signer/internal/core/application/wallet"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var (
	wallets = cli.Command{
		Name:  "wallets",
		Usage: "manage the stored wallets",
		Subcommands: []*cli.Command{
			walletsListCmd, walletsImportCmd, walletsRenameCmd, walletsRemoveCmd,
			walletsExportCmd, walletsRestoreCmd,
		},
	}

	walletsListCmd = &cli.Command{
		Name:  "list",
		Usage: "list the wallets of the network",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "list the wallets of every network",
			},
		},
		Action: walletsListAction,
	}
	walletsImportCmd = &cli.Command{
		Name:  "import",
		Usage: "import a wallet of the network",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "alias",
				Usage:    "the wallet name, unique within the network",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "address",
				Usage:    "the wallet address",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "auth-mode",
				Usage:    "one of mnemonic, secret, encrypted-mnemonic, encrypted-secret, wif, multi-signature, ledger",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "public-key",
				Usage: "the hex compressed public key of the wallet",
			},
			&cli.StringFlag{
				Name:  "secret",
				Usage: "the mnemonic or WIF of software wallets",
			},
			&cli.StringFlag{
				Name:  "password",
				Usage: "the password sealing the secret of encrypted wallets",
			},
			&cli.StringFlag{
				Name:  "derivation-path",
				Usage: "the derivation path of ledger wallets",
			},
			&cli.IntFlag{
				Name:  "min-signatures",
				Usage: "the min number of signatures of multi-signature wallets",
			},
			&cli.StringSliceFlag{
				Name:  "signer-keys",
				Usage: "the public keys of multi-signature wallets",
			},
		},
		Action: walletsImportAction,
	}
	walletsRenameCmd = &cli.Command{
		Name:      "rename",
		Usage:     "change the alias of a wallet",
		ArgsUsage: "<id> <alias>",
		Action:    walletsRenameAction,
	}
	walletsRemoveCmd = &cli.Command{
		Name:      "remove",
		Usage:     "forget a wallet",
		ArgsUsage: "<id>",
		Action:    walletsRemoveAction,
	}
	walletsExportCmd = &cli.Command{
		Name:  "export",
		Usage: "dump all the wallets to a json file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "out",
				Usage:    "the path of the dump file",
				Required: true,
			},
		},
		Action: walletsExportAction,
	}
	walletsRestoreCmd = &cli.Command{
		Name:  "restore",
		Usage: "replace all the wallets with those of a json dump",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "in",
				Usage:    "the path of the dump file",
				Required: true,
			},
		},
		Action: walletsRestoreAction,
	}
)

func walletsListAction(ctx *cli.Context) error {
	appConfig, cleanup, err := getAppConfig()
	if err != nil {
		return err
	}
	defer cleanup()

	network := config.GetString(config.NetworkKey)
	if ctx.Bool("all") {
		network = ""
	}
	list, err := appConfig.WalletService().List(context.Background(), network)
	if err != nil {
		return err
	}

	printJSON(list)
	return nil
}

func walletsImportAction(ctx *cli.Context) error {
	appConfig, cleanup, err := getAppConfig()
	if err != nil {
		return err
	}
	defer cleanup()

	args := wallet.ImportArgs{
		Alias:          ctx.String("alias"),
		Address:        ctx.String("address"),
		Network:        config.GetString(config.NetworkKey),
		PublicKey:      ctx.String("public-key"),
		AuthMode:       domain.AuthMode(ctx.String("auth-mode")),
		Secret:         ctx.String("secret"),
		Password:       ctx.String("password"),
		DerivationPath: ctx.String("derivation-path"),
	}
	if keys := ctx.StringSlice("signer-keys"); len(keys) > 0 {
		args.MultiSignature = &domain.MultiSignatureAsset{
			Min:        ctx.Int("min-signatures"),
			PublicKeys: keys,
		}
	}

	w, err := appConfig.WalletService().Import(context.Background(), args)
	if err != nil {
		return err
	}

	printJSON(w)
	return nil
}

func walletsRenameAction(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	appConfig, cleanup, err := getAppConfig()
	if err != nil {
		return err
	}
	defer cleanup()

	id, alias := ctx.Args().Get(0), ctx.Args().Get(1)
	if err := appConfig.WalletService().Rename(
		context.Background(), id, alias,
	); err != nil {
		return err
	}

	fmt.Println("wallet renamed")
	return nil
}

func walletsRemoveAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	appConfig, cleanup, err := getAppConfig()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := appConfig.WalletService().Remove(
		context.Background(), ctx.Args().First(),
	); err != nil {
		return err
	}

	fmt.Println("wallet removed")
	return nil
}

func walletsExportAction(ctx *cli.Context) error {
	appConfig, cleanup, err := getAppConfig()
	if err != nil {
		return err
	}
	defer cleanup()

	dump, err := appConfig.WalletService().Export(context.Background())
	if err != nil {
		return err
	}

	buf, err := json.MarshalIndent(dump, "", "\t")
	if err != nil {
		return err
	}
	if err := os.WriteFile(ctx.String("out"), buf, 0600); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}

	fmt.Printf("%d wallet(s) exported\n", len(dump))
	return nil
}

func walletsRestoreAction(ctx *cli.Context) error {
	buf, err := os.ReadFile(ctx.String("in"))
	if err != nil {
		return fmt.Errorf("reading dump: %w", err)
	}
	dump := make(map[string]domain.Wallet)
	if err := json.Unmarshal(buf, &dump); err != nil {
		return fmt.Errorf("decoding dump: %w", err)
	}

	appConfig, cleanup, err := getAppConfig()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := appConfig.WalletService().Restore(
		context.Background(), dump,
	); err != nil {
		return err
	}

	fmt.Printf("%d wallet(s) restored\n", len(dump))
	return nil
}
