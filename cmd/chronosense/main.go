package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/hrygo/chronosense/engine"
	"github.com/hrygo/chronosense/engine/tzdata"
	"github.com/hrygo/chronosense/internal/profile"
	"github.com/hrygo/chronosense/plugin/narrator"
	"github.com/hrygo/chronosense/server"
)

const version = "0.4.0"

var (
	rootCmd = &cobra.Command{
		Use:   "chronosense",
		Short: "A deterministic interpreter for human-written time references",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServer()
		},
	}

	resolveCmd = &cobra.Command{
		Use:   "resolve [input...]",
		Short: "Interpret time references and print the results as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			anchorFlag, _ := cmd.Flags().GetString("anchor")
			zoneFlag, _ := cmd.Flags().GetString("zone")
			allFlag, _ := cmd.Flags().GetBool("all")
			return runResolve(args, anchorFlag, zoneFlag, allFlag)
		},
	}

	zonesCmd = &cobra.Command{
		Use:   "zones [abbreviation]",
		Short: "List known timezone abbreviations, or explain one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runZones(args)
		},
	}
)

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("addr", "")
	viper.SetDefault("port", 8230)

	rootCmd.PersistentFlags().String("mode", "dev", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8230, "port of server")

	if err := viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("addr", rootCmd.PersistentFlags().Lookup("addr")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port")); err != nil {
		panic(err)
	}

	viper.SetEnvPrefix("chronosense")
	viper.AutomaticEnv()

	resolveCmd.Flags().String("anchor", "", "RFC 3339 anchor instant for relative dates (default: now)")
	resolveCmd.Flags().String("zone", "", "anchor zone abbreviation (default: configured default)")
	resolveCmd.Flags().Bool("all", false, "resolve every expression in each input, not just the first")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(zonesCmd)
}

func loadProfile() (*profile.Profile, error) {
	p := &profile.Profile{
		Mode:    viper.GetString("mode"),
		Addr:    viper.GetString("addr"),
		Port:    viper.GetInt("port"),
		Version: version,
	}
	p.FromEnv()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func newEngine(p *profile.Profile) *engine.Engine {
	cfg := engine.DefaultConfig()
	if p.NextDayPolicy == "week_after" {
		cfg.NextDay = engine.NextDayWeekAfter
	}
	return engine.NewWithConfig(cfg, tzdata.DefaultTable())
}

func runServer() error {
	p, err := loadProfile()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if p.IsDev() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}

	var narratorService narrator.Service
	if p.IsNarratorEnabled() {
		narratorService, err = narrator.NewService(narrator.NewConfigFromProfile(p))
		if err != nil {
			logger.Warn("narrator disabled", slog.String("error", err.Error()))
		}
	}

	srv := server.NewServer(p, newEngine(p), narratorService, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}

func runResolve(inputs []string, anchorFlag, zoneFlag string, all bool) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}

	anchor := time.Now().UTC()
	if anchorFlag != "" {
		anchor, err = time.Parse(time.RFC3339, anchorFlag)
		if err != nil {
			return fmt.Errorf("invalid anchor instant %q: %w", anchorFlag, err)
		}
	}
	zone := p.DefaultAnchorZone
	if zoneFlag != "" {
		zone = zoneFlag
	}
	ref := engine.Context{AnchorInstant: anchor, AnchorZone: zone}
	eng := newEngine(p)

	// Each goroutine writes only its own slot, so no lock is needed.
	results := make([][]*engine.Interpretation, len(inputs))
	var g errgroup.Group
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			var out []*engine.Interpretation
			var rerr error
			if all {
				out, rerr = eng.ResolveAll(input, ref)
			} else {
				var one *engine.Interpretation
				one, rerr = eng.Resolve(input, ref)
				if one != nil {
					out = []*engine.Interpretation{one}
				}
			}
			if rerr != nil {
				return rerr
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, group := range results {
		for _, interp := range group {
			if err := enc.Encode(interp); err != nil {
				return err
			}
		}
	}
	return nil
}

func runZones(args []string) error {
	table := tzdata.DefaultTable()

	if len(args) == 1 {
		entry, ok := table.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown abbreviation %q", args[0])
		}
		fmt.Println(entry.Abbr)
		for _, m := range entry.Meanings {
			fmt.Printf("  %-40s %s  dst=%s  region=%s\n",
				m.Name, tzdata.FormatOffset(m.OffsetMinutes), m.Behavior, m.Region)
		}
		return nil
	}

	abbrs := table.Abbreviations()
	sort.Strings(abbrs)
	for _, abbr := range abbrs {
		entry, _ := table.Lookup(abbr)
		marker := " "
		if entry.Ambiguous() {
			marker = "*"
		}
		m := entry.Default()
		fmt.Printf("%s %-6s %s  %s\n", marker, abbr, tzdata.FormatOffset(m.OffsetMinutes), m.Name)
	}
	fmt.Println("\n* ambiguous abbreviation; run `chronosense zones <abbr>` for all meanings")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
