package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hormonya/hormonya/internal/app"
	"github.com/hormonya/hormonya/internal/calendar"
	"github.com/hormonya/hormonya/internal/cycle"
	"github.com/hormonya/hormonya/internal/session"
)

func newCalendarCmd(opts *options) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month with your cycle start and the predicted next one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var shown *calendar.Month
			if month != "" {
				m, err := parseMonth(month)
				if err != nil {
					return err
				}
				shown = &m
			}

			tracker, gate, err := opts.tracker()
			if err != nil {
				return err
			}

			if gate.State() == session.LoggedIn {
				if _, err := tracker.Sync(cmd.Context()); err != nil {
					return err
				}
			}
			view := tracker.Do(func(s *app.State) {
				if shown != nil {
					s.ShowMonth(*shown)
				}
			})

			out := cmd.OutOrStdout()
			fmt.Fprint(out, newStyles(out).month(view))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month to show, as YYYY-MM")
	return cmd
}

func newTrackCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "track YYYY-MM-DD",
		Short: "Record the first day of your period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := cycle.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
			}

			tracker, _, err := opts.tracker()
			if err != nil {
				return err
			}

			if _, err := tracker.PickDate(cmd.Context(), start); err != nil {
				return err
			}
			view := tracker.Do(func(s *app.State) { s.ShowMonth(calendar.MonthOf(start)) })

			out := cmd.OutOrStdout()
			st := newStyles(out)
			fmt.Fprintln(out, "Cycle saved!")
			fmt.Fprint(out, st.month(view))
			if view.Predicted != nil {
				fmt.Fprintf(out, "Next period predicted: %s\n", st.date(*view.Predicted))
			}
			return nil
		},
	}
}

func newPredictCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "predict YYYY-MM-DD",
		Short: "Predict the next period from a start date without saving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := cycle.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
			}

			p := cycle.Predict(start)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Next period predicted: %s (%d-day cycle)\n",
				newStyles(out).date(p.PredictedStart), p.CycleLength)
			return nil
		},
	}
}

// tracker wires the calendar state to the cached session and the server.
func (o *options) tracker() (*app.Tracker, *session.Gate, error) {
	gate, c, err := o.gate()
	if err != nil {
		return nil, nil, err
	}
	return app.NewTracker(app.NewState(o.today()), gate, c), gate, nil
}

func parseMonth(s string) (calendar.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return calendar.Month{}, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return calendar.Month{Year: t.Year(), Month: t.Month()}, nil
}
