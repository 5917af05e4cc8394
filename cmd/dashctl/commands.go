package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/chat"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/dashboard"
	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/report"
	"github.com/spf13/cobra"
)

func runStats(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	svc, err := newServices(cmd)
	if err != nil {
		return err
	}
	view, err := svc.dashboard.View(ctx, date, dashboard.ViewQuery{})
	if err != nil {
		return err
	}

	out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(out, "Date\t%s\n", view.Date)
	fmt.Fprintf(out, "Total Present\t%d\n", view.Stats.TotalPresent)
	fmt.Fprintf(out, "Late Stay\t%d\n", view.Stats.LateStayCount)
	fmt.Fprintf(out, "Women Late Stay\t%d\n", view.Stats.WomenLateStay)
	fmt.Fprintf(out, "WFO Compliance\t%s (%s)\n", view.Stats.WFOCompliance, view.Stats.ComplianceStatus)
	for _, p := range view.Projects {
		fmt.Fprintf(out, "Project %s\t%s, %s late-night frequency\n", p.ProjectID, p.AverageWorkHours, p.LateNightFrequency)
	}
	return out.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	svc, err := newServices(cmd)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	result, err := svc.report.Export(ctx, report.ExportRequest{Date: date, Format: report.Format(exportFormat)}, &buf)
	if err != nil {
		return err
	}

	target := exportOut
	switch target {
	case "-":
		_, err = buf.WriteTo(cmd.OutOrStdout())
		return err
	case "":
		target = result.Filename
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d bytes)\n", target, result.Bytes)
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	svc, err := newServices(cmd)
	if err != nil {
		return err
	}
	// an upstream failure still lets the chat answer help and fallback questions
	if _, err := svc.dashboard.Load(ctx, date); err != nil {
		appLogger.Warn("dashboard not loaded", "error", err)
	}

	answer, err := svc.chat.Ask(ctx, chat.AskRequest{Question: strings.Join(args, " ")})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), answer.Answer)
	return nil
}

func runQuestions(cmd *cobra.Command, args []string) error {
	svc, err := newServices(cmd)
	if err != nil {
		return err
	}

	out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, intent := range svc.chat.Questions() {
		fmt.Fprintf(out, "%s\t%s\n", intent.ID, intent.Question)
	}
	return out.Flush()
}
