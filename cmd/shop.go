package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taazafoods/taaza-cli/internal/api"
	"github.com/taazafoods/taaza-cli/internal/db"
	"github.com/taazafoods/taaza-cli/internal/history"
	"github.com/taazafoods/taaza-cli/internal/shop"
	"github.com/taazafoods/taaza-cli/internal/spinner"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Start an interactive shopping session",
	Long: `Registers you with the Taaza backend, then walks you through browsing
categories, filling a cart and checking out. Placed orders are recorded
locally (see "taaza history").`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := api.New(cfg.BaseURL, cfg.Timeout())

		var recorder shop.OrderRecorder
		if cfg.HistoryPath != "" {
			database, err := db.Open(cfg.HistoryPath)
			if err != nil {
				// A broken local store never blocks shopping.
				if verbose {
					fmt.Fprintf(os.Stderr, "order history disabled: %v\n", err)
				}
			} else {
				defer database.Close()
				recorder = historyRecorder{store: history.NewStore(database)}
			}
		}

		ctrl := shop.NewController(client, os.Stdout, shop.Options{
			CountryCode:   cfg.CountryCode,
			CurrencyLabel: cfg.CurrencyLabel,
			Verbose:       verbose,
			Recorder:      recorder,
			Spinner:       spinner.New(),
		})
		return shop.NewFlow(ctrl).Run(cmd.Context())
	},
}

// historyRecorder adapts the history store to the controller's recorder.
type historyRecorder struct {
	store *history.Store
}

func (h historyRecorder) RecordOrder(ctx context.Context, o shop.PlacedOrder) error {
	lines := make([]history.Line, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = history.Line{Name: l.Name, Qty: l.Qty, Subtotal: l.Subtotal}
	}
	_, err := h.store.Record(ctx, history.Order{
		CustomerName:  o.CustomerName,
		Mobile:        o.Mobile,
		Address:       o.Address,
		PaymentMethod: o.PaymentMethod,
		Total:         o.Total,
		Lines:         lines,
	})
	return err
}

func init() {
	rootCmd.AddCommand(shopCmd)
}
