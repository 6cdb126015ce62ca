package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"airtime/internal/bootstrap"
	sessiondto "airtime/internal/modules/session/dto"
	"airtime/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "airtime",
		Short:         "Meeting cost and room oxygen meter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/airtime/config.yaml)")

	root.AddCommand(newTUICmd(&configPath))
	root.AddCommand(newCalcCmd(&configPath))
	root.AddCommand(newExportCmd(&configPath))
	root.AddCommand(newHistoryCmd(&configPath))
	return root
}

func loadApp(configPath string) (*bootstrap.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(configPath *string) *cobra.Command {
	var statusAddr string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the live meeting meter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()
			addr := app.Config.StatusAddr
			if cmd.Flags().Changed("status-addr") {
				addr = statusAddr
			}
			return bootstrap.RunTUI(app, addr)
		},
	}
	cmd.Flags().StringVar(&statusAddr, "status-addr", "", "serve GET /status and /notes on this address, e.g. :8089")
	return cmd
}

// meetingFlags are the inputs shared by calc and export. Unset flags fall back
// to the configured defaults.
type meetingFlags struct {
	onsite   float64
	remote   float64
	area     float64
	ceiling  float64
	rate     float64
	currency string
	o2       float64
	elapsed  time.Duration
}

func (f *meetingFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.onsite, "onsite", 0, "people in the room")
	cmd.Flags().Float64Var(&f.remote, "remote", 0, "people dialled in")
	cmd.Flags().Float64Var(&f.area, "area", 0, "room floor area in m²")
	cmd.Flags().Float64Var(&f.ceiling, "ceiling", 0, "ceiling height in m")
	cmd.Flags().Float64Var(&f.rate, "rate", 0, "hourly cost per person")
	cmd.Flags().StringVar(&f.currency, "currency", "", "ISO 4217 currency code")
	cmd.Flags().Float64Var(&f.o2, "o2", 0, "oxygen consumption per person in l/min")
	cmd.Flags().DurationVar(&f.elapsed, "elapsed", 0, "meeting length, e.g. 45m")
}

func (f meetingFlags) input(cmd *cobra.Command, d config.Defaults) sessiondto.CalculateInput {
	pick := func(name string, v, fallback float64) float64 {
		if cmd.Flags().Changed(name) {
			return v
		}
		return fallback
	}
	currency := d.Currency
	if cmd.Flags().Changed("currency") {
		currency = f.currency
	}
	return sessiondto.CalculateInput{
		OnsitePeople:        pick("onsite", f.onsite, d.OnsitePeople),
		RemotePeople:        pick("remote", f.remote, d.RemotePeople),
		RoomAreaM2:          pick("area", f.area, d.RoomAreaM2),
		CeilingHeightM:      pick("ceiling", f.ceiling, d.CeilingHeightM),
		HourlyCostPerPerson: pick("rate", f.rate, d.HourlyCostPerPerson),
		Currency:            currency,
		O2ConsumptionLpm:    pick("o2", f.o2, d.O2ConsumptionLpm),
		Elapsed:             f.elapsed,
	}
}

func newCalcCmd(configPath *string) *cobra.Command {
	var flags meetingFlags
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute cost and oxygen figures for a meeting without running the clock",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()
			snap := app.SessionCLI.Calculate(flags.input(cmd, app.Config.Defaults))
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}
			printSnapshot(cmd.OutOrStdout(), snap)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	return cmd
}

func printSnapshot(w io.Writer, s sessiondto.Snapshot) {
	_, _ = fmt.Fprintf(w, "duration:  %s\n", s.ElapsedClock)
	_, _ = fmt.Fprintf(w, "people:    %d onsite, %d remote\n", s.OnsitePeople, s.RemotePeople)
	_, _ = fmt.Fprintf(w, "cost:      %s\n", s.FormattedCost)
	_, _ = fmt.Fprintf(w, "room:      %.0f m³\n", s.RoomVolumeM3)
	_, _ = fmt.Fprintf(w, "oxygen:    %.2f%% (%.1f l consumed)\n", s.OxygenPercent, s.ConsumedLiters)
	deadZone := ""
	if s.DeadZone {
		deadZone = " (dead zone)"
	}
	_, _ = fmt.Fprintf(w, "altitude:  %.0f m%s\n", s.AltitudeMeters, deadZone)
}

func newExportCmd(configPath *string) *cobra.Command {
	var flags meetingFlags
	var title string
	var notes []string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a markdown meeting report for the given inputs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SessionCLI.Export(context.Background(), title, flags.input(cmd, app.Config.Defaults), notes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "report %s written to %s\n", out.ReportID, out.Path)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&title, "title", "", "report title")
	cmd.Flags().StringArrayVar(&notes, "note", nil, `note as "topic | text" (repeatable)`)
	return cmd
}

func newHistoryCmd(configPath *string) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Archived meetings"}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List archived meetings, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()
			entries, err := app.SessionCLI.ListArchived(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no archived meetings")
				return nil
			}
			for _, e := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%d+%d people\n",
					e.ID, e.ArchivedAt.Local().Format("2006-01-02 15:04"), e.ElapsedClock, e.FormattedCost, e.OnsitePeople, e.RemotePeople)
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "maximum number of meetings")

	var id string
	show := &cobra.Command{
		Use:   "show",
		Short: "Show one archived meeting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()
			e, err := app.SessionCLI.GetArchived(context.Background(), id)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "id:        %s\n", e.ID)
			_, _ = fmt.Fprintf(w, "archived:  %s\n", e.ArchivedAt.Local().Format(time.RFC3339))
			_, _ = fmt.Fprintf(w, "duration:  %s\n", e.ElapsedClock)
			_, _ = fmt.Fprintf(w, "people:    %d onsite, %d remote\n", e.OnsitePeople, e.RemotePeople)
			_, _ = fmt.Fprintf(w, "cost:      %s\n", e.FormattedCost)
			_, _ = fmt.Fprintf(w, "oxygen:    %.2f%%\n", e.OxygenPercent)
			_, _ = fmt.Fprintf(w, "altitude:  %.0f m\n", e.AltitudeMeters)
			_, _ = fmt.Fprintf(w, "notes:     %d\n", e.NoteCount)
			return nil
		},
	}
	show.Flags().StringVar(&id, "id", "", "meeting id")
	_ = show.MarkFlagRequired("id")

	history.AddCommand(list, show)
	return history
}
