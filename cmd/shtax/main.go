package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shtax/salary-calculator/internal/calculation"
	"github.com/shtax/salary-calculator/internal/config"
	"github.com/shtax/salary-calculator/internal/domain"
	"github.com/shtax/salary-calculator/internal/output"
	"github.com/shtax/salary-calculator/internal/web"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "shtax",
	Short: "Shanghai salary and tax calculator CLI",
	Long:  "Computes social-insurance, housing-fund and individual income tax withholdings for Shanghai salaried employees",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "shtax %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

// loadRules returns the rule set selected by the --rules flag, or the
// built-in Shanghai rules when no file is given.
func loadRules(cmd *cobra.Command) *domain.RuleSet {
	rulesFile, _ := cmd.Flags().GetString("rules")
	if rulesFile == "" {
		return domain.ShanghaiRules()
	}

	parser := config.NewRulesParser()
	rules, err := parser.LoadFromFile(rulesFile)
	if err != nil {
		log.Fatal(err)
	}
	return rules
}

// parseSalary converts a CLI argument into a non-negative decimal amount.
func parseSalary(raw string) decimal.Decimal {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("invalid salary amount %q: %v", raw, err)
	}
	if amount.LessThan(decimal.Zero) {
		log.Fatalf("salary amount cannot be negative, got %s", amount)
	}
	return amount
}

var monthlyCmd = &cobra.Command{
	Use:   "monthly <amount>",
	Short: "Compute one standalone month of withholdings",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		roundInt, _ := cmd.Flags().GetBool("round-int")
		calc := calculation.NewReportCalculatorWithConfig(loadRules(cmd))

		rec, err := calc.MonthlyReport(parseSalary(args[0]), roundInt)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(output.FormatMonthlyRecord(rec))
	},
}

var annualCmd = &cobra.Command{
	Use:   "annual <amount>",
	Short: "Compute a full year of withholdings from an annual salary",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		roundInt, _ := cmd.Flags().GetBool("round-int")
		calc := calculation.NewReportCalculatorWithConfig(loadRules(cmd))

		summary, err := calc.AnnualReport(parseSalary(args[0]), roundInt)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(output.FormatAnnualSummary(summary))
	},
}

var detailsCmd = &cobra.Command{
	Use:   "details <amount>",
	Short: "Compute a twelve-month cumulative withholding detail",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		roundInt, _ := cmd.Flags().GetBool("round-int")
		calc := calculation.NewReportCalculatorWithConfig(loadRules(cmd))

		report, err := calc.DetailReport(parseSalary(args[0]), roundInt)
		if err != nil {
			log.Fatal(err)
		}

		if exportName, _ := cmd.Flags().GetString("export"); exportName != "" {
			outputDir, _ := cmd.Flags().GetString("output-dir")
			monthlyPath, totalsPath, err := output.WriteDetailCSV(report, outputDir, exportName)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("CSV saved to %s and %s\n", monthlyPath, totalsPath)
			return
		}

		formatName, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(formatName)
		if f == nil {
			log.Fatalf("unsupported format: %s (valid: %v)", formatName, output.FormatterNames())
		}
		data, err := f.Format(report)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(string(data))
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		logLevel, _ := cmd.Flags().GetString("log-level")
		logFormat, _ := cmd.Flags().GetString("log-format")

		logger, err := initializeLogger(logLevel, logFormat)
		if err != nil {
			log.Fatal(err)
		}
		defer func() { _ = logger.Sync() }()

		server := web.NewServer(loadRules(cmd), logger)
		logger.Info("starting web dashboard", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, server.Mux()); err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	},
}

// initializeLogger creates a zap logger from the serve command's flags.
func initializeLogger(level, format string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info", "":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json", "":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	return cfg.Build()
}

func init() {
	rootCmd.PersistentFlags().Bool("round-int", false, "Round all monetary outputs to the nearest whole yuan")
	rootCmd.PersistentFlags().String("rules", "", "Path to a rule-set YAML file (default: built-in Shanghai rules)")

	detailsCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json, html)")
	detailsCmd.Flags().String("export", "", "Export CSV files under the output directory with this name prefix")
	detailsCmd.Flags().String("output-dir", "output", "Directory for exported CSV files")

	serveCmd.Flags().String("addr", ":8080", "Listen address for the web dashboard")
	serveCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().String("log-format", "console", "Log format (console, json)")

	rootCmd.AddCommand(monthlyCmd)
	rootCmd.AddCommand(annualCmd)
	rootCmd.AddCommand(detailsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
