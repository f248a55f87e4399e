// Package cli provides the Cobra-based CLI for retailstore.
package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"retailstore/domain"
	"retailstore/errlog"
	"retailstore/store"
	"retailstore/util"
)

var (
	rootCmd = &cobra.Command{
		Use:           "retailstore",
		Short:         "A product store with stock, discounts and income tracking",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// tests inject their own store
			if productStore != nil {
				return nil
			}

			if cfg := viper.GetString("config"); cfg != "" {
				viper.SetConfigFile(cfg)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}

			lvl := slog.LevelInfo
			switch strings.ToLower(viper.GetString("log-level")) {
			case "debug":
				lvl = slog.LevelDebug
			case "warn", "warning":
				lvl = slog.LevelWarn
			case "error":
				lvl = slog.LevelError
			}
			slog.SetDefault(slog.New(
				slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
			))

			sink, err := errlog.NewSink(
				viper.GetString("error-log-kind"),
				viper.GetString("error-log"),
			)
			if err != nil {
				return err
			}
			errorLog = sink
			productStore = store.NewProductStore(
				store.WithErrorLog(sink),
				store.WithLogger(slog.Default()),
			)

			var seed []store.StockItem
			if err := viper.UnmarshalKey("stock", &seed); err != nil {
				return fmt.Errorf("reading stock from config: %w", err)
			}
			if len(seed) > 0 {
				if err := productStore.Import(seed); err != nil {
					return fmt.Errorf("seeding stock: %w", err)
				}
				slog.Debug("stock seeded from config", "items", len(seed))
			}
			return nil
		},
	}

	productStore *store.ProductStore
	errorLog     errlog.Sink = errlog.Discard
)

// resetFlags puts every flag below c back to its default so one shell line
// does not leak values into the next.
func resetFlags(c *cobra.Command) {
	for _, sub := range c.Commands() {
		sub.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
		resetFlags(sub)
	}
}

func printJSON(cmd *cobra.Command, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func init() {
	// shell
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			for {
				fmt.Fprint(out, "store> ")
				line, err := r.ReadString('\n')
				if err != nil && line == "" {
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}
				rootCmd.SetArgs(strings.Fields(line))
				if err := rootCmd.Execute(); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
				rootCmd.SetArgs(nil)
				resetFlags(rootCmd)
			}
		},
	}
	rootCmd.AddCommand(shellCmd)

	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")
	rootCmd.PersistentFlags().String("error-log", errlog.DefaultPath, "error log path")
	rootCmd.PersistentFlags().String("error-log-kind", "file", "error log backend: file|memory|none")
	rootCmd.PersistentFlags().String("output", "table", "default list format: table|json|yaml")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("error-log", rootCmd.PersistentFlags().Lookup("error-log"))
	viper.BindPFlag("error-log-kind", rootCmd.PersistentFlags().Lookup("error-log-kind"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.SetEnvPrefix("RETAIL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// add
	var aType, aName string
	var aPrice float64
	var aAmount int
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Stock units of a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			opID := util.NewOperationID()
			p, err := domain.NewProduct(aType, aName, aPrice)
			if err != nil {
				slog.Error("add failed", "op_id", opID, "error", err)
				return errlog.Raise(errorLog, err)
			}
			start := time.Now()
			if err := productStore.Add(p, aAmount); err != nil {
				slog.Error("add failed", "op_id", opID, "name", aName, "error", err)
				return err
			}
			slog.Info("product stocked", "op_id", opID, "name", aName, "amount", aAmount,
				"duration_ms", time.Since(start).Milliseconds())
			e, _ := productStore.Entry(aName)
			printJSON(cmd, e.Summary())
			return nil
		},
	}
	addCmd.Flags().StringVar(&aType, "type", "", "product type")
	addCmd.Flags().StringVar(&aName, "name", "", "product name")
	addCmd.Flags().Float64Var(&aPrice, "price", 0, "base price")
	addCmd.Flags().IntVar(&aAmount, "amount", 0, "units to add")
	rootCmd.AddCommand(addCmd)

	// discount
	var dPercent float64
	var dBy string
	discountCmd := &cobra.Command{
		Use:   "discount <identifier>",
		Short: "Set a discount by product name or type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opID := util.NewOperationID()
			by, err := domain.ParseIdentifierType(dBy)
			if err != nil {
				slog.Error("discount failed", "op_id", opID, "error", err)
				return errlog.Raise(errorLog, err)
			}
			if err := productStore.SetDiscount(args[0], dPercent, by); err != nil {
				slog.Error("discount failed", "op_id", opID, "identifier", args[0], "error", err)
				return err
			}
			slog.Info("discount set", "op_id", opID, "identifier", args[0], "by", dBy, "percent", dPercent)
			fmt.Fprintf(cmd.OutOrStdout(), "discount %.2f%% set on %s %q\n", dPercent, by, args[0])
			return nil
		},
	}
	discountCmd.Flags().Float64Var(&dPercent, "percent", 0, "discount percent (0-100)")
	discountCmd.Flags().StringVar(&dBy, "by", string(domain.ByName), "match on: name|type")
	rootCmd.AddCommand(discountCmd)

	// sell
	var sAmount int
	sellCmd := &cobra.Command{
		Use:   "sell <name>",
		Short: "Sell units of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opID := util.NewOperationID()
			before := productStore.Income()
			start := time.Now()
			if err := productStore.Sell(args[0], sAmount); err != nil {
				slog.Error("sell failed", "op_id", opID, "name", args[0], "error", err)
				return err
			}
			revenue := productStore.Income() - before
			slog.Info("sale booked", "op_id", opID, "name", args[0], "amount", sAmount,
				"revenue", revenue, "duration_ms", time.Since(start).Milliseconds())
			fmt.Fprintf(cmd.OutOrStdout(), "sold %d x %s for %.2f\n", sAmount, args[0], revenue)
			return nil
		},
	}
	sellCmd.Flags().IntVar(&sAmount, "amount", 1, "units to sell")
	rootCmd.AddCommand(sellCmd)

	// income
	incomeCmd := &cobra.Command{
		Use:   "income",
		Short: "Show total income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", productStore.Income())
			return nil
		},
	}
	rootCmd.AddCommand(incomeCmd)

	// info
	infoCmd := &cobra.Command{
		Use:   "info <name>",
		Short: "Show quantity on hand for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, qty, err := productStore.ProductInfo(args[0])
			if err != nil {
				return err
			}
			printJSON(cmd, map[string]any{"name": name, "amount": qty})
			return nil
		},
	}
	rootCmd.AddCommand(infoCmd)

	// list
	var lOutput string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List products with current unit prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := lOutput
			if !cmd.Flags().Changed("output") {
				format = viper.GetString("output")
			}
			return writeSummaries(cmd.OutOrStdout(), format, productStore.AllProducts())
		},
	}
	listCmd.Flags().StringVarP(&lOutput, "output", "o", "table", "output format: table|json|yaml")
	rootCmd.AddCommand(listCmd)

	// import
	var importFile string
	importCmd := &cobra.Command{
		Use:   "import --file <file>",
		Short: "Stock products from a JSON, NDJSON or YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if importFile == "" {
				return errors.New("--file required")
			}
			b, err := os.ReadFile(importFile)
			if err != nil {
				return err
			}
			items, err := store.ParseStock(b)
			if err != nil {
				return err
			}
			start := time.Now()
			if err := productStore.Import(items); err != nil {
				slog.Error("import failed", "file", importFile, "error", err)
				return err
			}
			slog.Info("stock imported", "file", importFile, "items", len(items),
				"duration_ms", time.Since(start).Milliseconds())
			return nil
		},
	}
	importCmd.Flags().StringVar(&importFile, "file", "", "input file")
	rootCmd.AddCommand(importCmd)

	// export
	var exportFile string
	exportCmd := &cobra.Command{
		Use:   "export --file <file>",
		Short: "Export stock in import format (JSON or YAML); sold-out products are skipped",
		RunE: func(cmd *cobra.Command, args []string) error {
			if exportFile == "" {
				return errors.New("--file required")
			}
			out := productStore.Stock()
			var b []byte
			var err error
			switch strings.ToLower(filepath.Ext(exportFile)) {
			case ".yaml", ".yml":
				b, err = yaml.Marshal(out)
			default:
				b, err = json.MarshalIndent(out, "", "  ")
			}
			if err != nil {
				return err
			}
			return os.WriteFile(exportFile, b, 0o644)
		},
	}
	exportCmd.Flags().StringVar(&exportFile, "file", "", "output file")
	rootCmd.AddCommand(exportCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
