package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taazafoods/taaza-cli/internal/db"
	"github.com/taazafoods/taaza-cli/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show locally recorded orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.HistoryPath == "" {
			return fmt.Errorf("order history is disabled (history_path is empty)")
		}

		database, err := db.Open(cfg.HistoryPath)
		if err != nil {
			return fmt.Errorf("opening order history: %w", err)
		}
		defer database.Close()

		orders, err := history.NewStore(database).List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			fmt.Println("No orders recorded yet.")
			return nil
		}

		for _, o := range orders {
			total := strconv.FormatFloat(o.Total, 'f', -1, 64)
			fmt.Printf("%s  %s  %s %s  (%s)\n",
				o.PlacedAt.Local().Format("2006-01-02 15:04"),
				o.CustomerName, total, cfg.CurrencyLabel, o.PaymentMethod)
			for _, l := range o.Lines {
				fmt.Printf("    %s x%d  %s %s\n",
					l.Name, l.Qty, strconv.FormatFloat(l.Subtotal, 'f', -1, 64), cfg.CurrencyLabel)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum orders to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
