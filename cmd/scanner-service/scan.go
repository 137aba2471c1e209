package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang-stock-scanner/internal/entity"
	"golang-stock-scanner/internal/scanner/delivery/cli"
	"golang-stock-scanner/internal/scanner/service"
	"golang-stock-scanner/pkg/logger"
	"golang-stock-scanner/pkg/telegram"
	"golang-stock-scanner/pkg/utils"

	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var (
		profile string
		tickers []string
		notify  bool
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Runs one scan and prints the ranked candidates",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := loadConfig()
			a, err := newApp(cfg, notify)
			if err != nil {
				log.Fatalf("Failed to initialize scanner: %v", err)
			}
			defer a.Close()

			opts := service.RunOptions{Profile: profile, Tickers: splitTickers(tickers)}
			if !quiet {
				opts.Progress = cli.ProgressPrinter(os.Stderr)
			}

			run, err := a.scanService.Run(ctx, opts)
			if run == nil {
				a.log.Fatal("Scan failed", logger.ErrorField(err))
			}
			if err != nil {
				a.log.Error("Scan did not complete", logger.ErrorField(err), logger.StringField("status", string(run.Status)))
			}

			now := utils.TimeNowIn(cfg.App.TimeZone)
			if err := cli.RenderResults(os.Stdout, run, now); err != nil {
				a.log.Error("Failed to render results", logger.ErrorField(err))
			}
			if err := cli.RenderFailures(os.Stderr, run); err != nil {
				a.log.Error("Failed to render failures", logger.ErrorField(err))
			}

			if notify && err == nil {
				sendResults(a, run, now)
			}
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "Screening profile (defaults to scanner.profile)")
	cmd.Flags().StringSliceVarP(&tickers, "tickers", "t", nil, "Comma separated tickers to scan instead of the universe")
	cmd.Flags().BoolVar(&notify, "notify", false, "Send the results to Telegram")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print progress")
	return cmd
}

func splitTickers(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, t := range strings.Fields(strings.ReplaceAll(r, ",", " ")) {
			out = append(out, t)
		}
	}
	return out
}

func sendResults(a *app, run *entity.ScanRun, now time.Time) {
	if a.notifier == nil {
		a.log.Warn("Telegram is not configured, skipping notification")
		return
	}
	messages := telegram.FormatScanResultsForTelegram(run, a.cfg.Schedule.Limit(), now)
	if err := telegram.SendMessages(a.notifier, messages); err != nil {
		a.log.Error("Failed to send scan results to Telegram", logger.ErrorField(err))
	}
}
