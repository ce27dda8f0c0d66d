package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/agrisense/agrisense/internal/nav"
)

type walkOptions struct {
	zoneID string
	result string
	wait   bool
	strict bool
	delay  time.Duration
}

func newWalkCmd(c *cli) *cobra.Command {
	var opts walkOptions
	cmd := &cobra.Command{
		Use:   "walk <screen>...",
		Short: "Replay a sequence of screens through the router and print each state",
		Long: `Replays navigation without a terminal UI. Screens use their wire names:
welcome, dashboard, map, zoneDetails, imageUpload, aiProcessing, aiResult,
recommendations, notifications, profile.

Example:
  agrisense walk dashboard map zoneDetails imageUpload aiProcessing --zone A-12 --wait`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWalk(cmd, args, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.zoneID, "zone", "", "zone id carried by the first step")
	f.StringVar(&opts.result, "result", "", "AI result variant carried by the first step (confirmed|false)")
	f.BoolVar(&opts.wait, "wait", false, "wait for a pending aiProcessing auto-advance after the last step")
	f.BoolVar(&opts.strict, "strict", false, "reject steps that are not in the transition table")
	f.DurationVar(&opts.delay, "delay", 0, "override ui.processing_delay")
	return cmd
}

func (c *cli) runWalk(cmd *cobra.Command, args []string, opts walkOptions) error {
	ctx := cmd.Context()
	targets := make([]nav.Screen, 0, len(args))
	for _, a := range args {
		s, err := nav.ParseScreen(a)
		if err != nil {
			return err
		}
		targets = append(targets, s)
	}

	var first []nav.NavOption
	if opts.result != "" {
		r, err := nav.ParseResult(opts.result)
		if err != nil {
			return err
		}
		first = append(first, nav.WithResult(r))
	}

	s, err := openSession(ctx, c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer s.Close()
	if opts.delay > 0 {
		s.cfg.UI.ProcessingDelay = opts.delay
	}
	if opts.zoneID != "" {
		z, err := s.zones.Get(ctx, opts.zoneID)
		if err != nil {
			return err
		}
		first = append(first, nav.WithZone(z))
	}

	router := s.newRouter(nil)
	defer router.Close()

	out := cmd.OutOrStdout()
	printState(out, "start", router.State())
	for i, target := range targets {
		from := router.State().Screen
		if opts.strict && !nav.Allowed(from, target) {
			return fmt.Errorf("step %d: %s -> %s is not a transition", i+1, from, target)
		}
		var st nav.State
		if i == 0 {
			st = router.Navigate(target, first...)
		} else {
			st = router.Navigate(target)
		}
		label := fmt.Sprintf("%s -> %s", from, target)
		if st.Screen != target {
			label += " (redirected)"
		}
		printState(out, label, st)
	}

	if !opts.wait {
		return nil
	}
	p := router.Pending()
	if p == nil {
		return nil
	}
	adv, ok := p.Await(ctx)
	if !ok {
		return ctx.Err()
	}
	if router.Apply(adv) {
		printState(out, fmt.Sprintf("after %s", router.Delay()), router.State())
	}
	return nil
}

func printState(w io.Writer, label string, st nav.State) {
	zoneID := st.ZoneID()
	if zoneID == "" {
		zoneID = "-"
	}
	fmt.Fprintf(w, "%-40s screen=%s zone=%s result=%s\n", label, st.Screen, zoneID, st.Result)
}
