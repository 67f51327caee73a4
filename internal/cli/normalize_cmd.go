package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tanish-jain-225/SilverCare-AI/internal/temporal"
)

// newNormalizeCmd exposes the date and time normalizers for debugging
// reminder phrasing without calling the model.
func newNormalizeCmd(a *App) *cobra.Command {
	var ref referenceTime

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Show how reminder dates and times are interpreted",
	}
	cmd.PersistentFlags().Var(&ref, "now", "Reference time (RFC3339 or \"YYYY-MM-DD HH:MM\"), default current time")

	reference := func() (time.Time, error) {
		if !ref.set {
			return a.now(), nil
		}
		return ref.t, nil
	}

	dateCmd := &cobra.Command{
		Use:   `date "<raw>"`,
		Short: "Normalize a date phrase to YYYY-MM-DD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := reference()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), temporal.NormalizeDate(args[0], now))
			return nil
		},
	}

	timeCmd := &cobra.Command{
		Use:   `time "<raw>"`,
		Short: "Normalize a time phrase to H:MM AM|PM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := reference()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), temporal.NormalizeTime(args[0], now))
			return nil
		},
	}

	contextCmd := &cobra.Command{
		Use:   "context",
		Short: "Print the temporal context block given to the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := reference()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), temporal.Build(now).PromptBlock())
			return nil
		},
	}

	defaultsCmd := &cobra.Command{
		Use:   `defaults "<title>"`,
		Short: "Show the date and time inferred for a reminder title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := reference()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "date: %s (rule: %s)\n", temporal.DefaultDate(args[0], now), temporal.MatchedDateRule(args[0]))
			fmt.Fprintf(out, "time: %s (rule: %s)\n", temporal.DefaultTime(args[0], now), temporal.MatchedTimeRule(args[0]))
			return nil
		},
	}

	cmd.AddCommand(dateCmd, timeCmd, contextCmd, defaultsCmd)
	return cmd
}

// referenceTime is the --now flag. Parsing happens when the flag is set so
// a bad value is reported before any command runs.
type referenceTime struct {
	t   time.Time
	set bool
}

var _ pflag.Value = (*referenceTime)(nil)

func (r *referenceTime) String() string {
	if !r.set {
		return ""
	}
	return r.t.Format(time.RFC3339)
}

func (r *referenceTime) Set(s string) error {
	t, err := parseReferenceTime(s)
	if err != nil {
		return err
	}
	r.t, r.set = t, true
	return nil
}

func (r *referenceTime) Type() string { return "time" }

func parseReferenceTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid --now %q: use RFC3339 or \"YYYY-MM-DD HH:MM\"", s)
}
