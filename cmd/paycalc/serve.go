package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/paycalc/internal/config"
	"github.com/rgehrsitz/paycalc/internal/logging"
	"github.com/rgehrsitz/paycalc/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Long: `Start the JSON HTTP API. Settings come from --config and PAYCALC_* environment
variables, for example PAYCALC_SERVER_ADDR=:9090.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			regulatory, err := config.LoadRegulatory(a.regulatoryPath(cmd))
			if err != nil {
				return err
			}

			srv := a.settings.Server
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				srv.Addr = addr
			}

			level := a.settings.LogLevel
			if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
				level = "debug"
			}
			logger := logging.New(cmd.ErrOrStderr(), level, "json")

			api := server.NewWebAPI(logger, server.Config{
				Addr:            srv.Addr,
				ReadTimeout:     srv.ReadTimeout,
				WriteTimeout:    srv.WriteTimeout,
				ShutdownTimeout: srv.ShutdownTimeout,
				Dependencies: server.Dependencies{
					Regulatory: regulatory,
					CalcLogger: a.calcLogger(cmd),
				},
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return api.Start(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default: server.addr setting)")
	return cmd
}

func systemsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "systems",
		Short: "List the available tax systems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			regulatory, err := config.LoadRegulatory(a.regulatoryPath(cmd))
			if err != nil {
				return err
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			out := cmd.OutOrStdout()

			switch strings.ToLower(outputFormat) {
			case "json":
				data, err := json.MarshalIndent(regulatory.Systems, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			case "table", "console", "":
				fmt.Fprintf(out, "%-12s %-32s %-8s %s\n", "CODE", "NAME", "YEAR", "BRACKETS")
				for _, code := range regulatory.Codes() {
					s, _ := regulatory.System(code)
					marker := ""
					if s.Code == regulatory.DefaultSystem {
						marker = "(default)"
					}
					year := s.FinancialYear
					if year == "" {
						year = "-"
					}
					fmt.Fprintf(out, "%-12s %-32s %-8s %-8d %s\n", s.Code, s.Name, year, len(s.Brackets), marker)
				}
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}
