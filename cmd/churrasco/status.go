package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/churrascode/churrasco/internal/event"
	"github.com/churrascode/churrasco/internal/payments"
	"github.com/churrascode/churrasco/internal/state"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the countdown, totals and payment roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			ev, err := env.Config.Event()
			if err != nil {
				return err
			}

			snap := env.Loader().Refresh(cmd.Context())
			if snap.LastError != nil {
				return snap.LastError
			}

			printStatus(cmd.OutOrStdout(), statusReport{
				event:  ev,
				now:    time.Now(),
				months: env.Source.Months(),
				fee:    env.Config.PaymentValue,
				snap:   snap,
			})
			return nil
		},
	}
}

type statusReport struct {
	event  event.Event
	now    time.Time
	months []string
	fee    payments.Cents
	snap   state.Snapshot
}

func printStatus(w io.Writer, r statusReport) {
	bold := color.New(color.Bold)
	faint := color.New(color.FgHiBlack)

	fin := payments.Summarize(r.snap.Roster, len(r.months), r.fee)
	extras := r.snap.Document.ExtraGuestsTotal()

	bold.Fprintf(w, "ChurrasCode  ⏱ %s\n", r.event.Countdown(r.now))
	faint.Fprintf(w, "%s\n\n", r.event.At.Format("02/01/2006 15:04 MST"))

	fmt.Fprintf(w, "Total devido:      %s\n", payments.FormatBRL(fin.TotalDue))
	fmt.Fprintf(w, "Arrecadado:        %s (%.1f%%)\n", payments.FormatBRL(fin.TotalCollected), fin.PercentPaid)
	fmt.Fprintf(w, "Colaboradores:     %d\n", fin.Collaborators)
	fmt.Fprintf(w, "Itens cadastrados: %d\n", len(r.snap.Document.Items))
	fmt.Fprintf(w, "Pessoas extras:    %d\n", extras)
	fmt.Fprintf(w, "Público estimado:  %d\n\n", fin.Collaborators+extras)

	if len(r.snap.Roster) == 0 {
		color.New(color.FgYellow).Fprintln(w, "⚠ Nenhum dado encontrado na tabela de pagamentos")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"Colaborador"}
	for _, m := range r.months {
		header = append(header, payments.MonthLabel(m))
	}
	header = append(header, "Pago")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range r.snap.Roster {
		cells := []string{row.Name}
		for i, m := range r.months {
			paid := i < len(row.Paid) && row.Paid[i]
			cells = append(cells, statusCell(payments.StatusMessage(paid, m, r.now)))
		}
		cells = append(cells, payments.FormatBRL(row.PaidAmount(r.fee)))
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

// statusCell colors a roster cell. Every cell gets a color so escape codes
// have the same length in each column.
func statusCell(message string) string {
	switch message {
	case payments.MessagePaid:
		return color.New(color.FgGreen).Sprint("✔ pago")
	case payments.MessageUpcoming:
		return color.New(color.FgYellow).Sprint("… a vencer")
	default:
		return color.New(color.FgRed).Sprint("✘ pendente")
	}
}
