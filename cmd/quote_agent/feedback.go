package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/renovation-quoter/internal/observability"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Record quote outcomes and inspect the margin they produce",
}

var feedbackRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record whether a quote was accepted",
	RunE:  runFeedbackRecord,
}

var feedbackStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the win rate and the margin the next quote will use",
	RunE:  runFeedbackStats,
}

var (
	feedbackQuoteID  string
	feedbackAccepted bool
	feedbackRejected bool
	feedbackJSON     bool
)

func init() {
	feedbackRecordCmd.Flags().StringVar(&feedbackQuoteID, "quote-id", "", "Quote id (required)")
	feedbackRecordCmd.Flags().BoolVar(&feedbackAccepted, "accepted", false, "The client accepted the quote")
	feedbackRecordCmd.Flags().BoolVar(&feedbackRejected, "rejected", false, "The client rejected the quote")
	_ = feedbackRecordCmd.MarkFlagRequired("quote-id")
	feedbackRecordCmd.MarkFlagsMutuallyExclusive("accepted", "rejected")
	feedbackRecordCmd.MarkFlagsOneRequired("accepted", "rejected")

	feedbackStatsCmd.Flags().BoolVar(&feedbackJSON, "json", false, "Print the statistics as JSON")

	feedbackCmd.AddCommand(feedbackRecordCmd, feedbackStatsCmd)
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedbackRecord(cmd *cobra.Command, _ []string) error {
	svc, _, _, err := openServices(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Feedback.Record(cmd.Context(), feedbackQuoteID, feedbackAccepted); err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}

	outcome := "rejected"
	if feedbackAccepted {
		outcome = "accepted"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Recorded quote %s as %s\n", feedbackQuoteID, outcome)
	return nil
}

func runFeedbackStats(cmd *cobra.Command, _ []string) error {
	svc, _, _, err := openServices(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	summary, err := svc.Feedback.Summary(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read feedback: %w", err)
	}
	margin := svc.Feedback.Margin(cmd.Context(), svc.BaseMargin)

	if feedbackJSON {
		data, err := json.MarshalIndent(map[string]any{
			"summary":        summary,
			"base_margin":    svc.BaseMargin,
			"current_margin": margin,
		}, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintFeedbackSummary(summary, svc.BaseMargin, margin)
	return nil
}
