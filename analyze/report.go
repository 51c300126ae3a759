package analyze

import (
	"fmt"
	"io"
)

// WriteSummary renders the operator-facing report.
func WriteSummary(w io.Writer, s Summary) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Returns")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Initial Capital: %.2f\n", s.InitialCapital)
	fmt.Fprintf(w, "Final Equity:    %.2f\n", s.FinalEquity)
	fmt.Fprintf(w, "Total Return:    %+.2f%%\n", s.TotalReturnPct)
	fmt.Fprintf(w, "Max Drawdown:    %.2f%%\n", s.MaxDrawdownPct)
	fmt.Fprintf(w, "Sharpe Ratio:    %.2f\n", s.SharpeRatio)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:          %d\n", s.TotalTrades)
	fmt.Fprintf(w, "Wins:            %d (%.1f%%)\n", s.Wins, s.WinRate)
	fmt.Fprintf(w, "Losses:          %d\n", s.Losses)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Profit & Loss")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Net P/L:         %+.2f\n", s.TotalPnL)
	fmt.Fprintf(w, "Average Win:     %+.2f\n", s.AvgWin)
	fmt.Fprintf(w, "Average Loss:    %+.2f\n", s.AvgLoss)
	if s.HasPayoffRatio {
		fmt.Fprintf(w, "Payoff Ratio:    %.2f\n", s.PayoffRatio)
	} else {
		fmt.Fprintln(w, "Payoff Ratio:    n/a (no losing trades)")
	}
	if s.HasProfitFactor {
		fmt.Fprintf(w, "Profit Factor:   %.2f\n", s.ProfitFactor)
	}

	if len(s.ByReason) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Exit Reasons")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, rc := range s.ByReason {
			fmt.Fprintf(w, "%-12s %d\n", rc.Reason, rc.Count)
		}
	}

	fmt.Fprintln(w)
}
