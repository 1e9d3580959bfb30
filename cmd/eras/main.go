package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/eras/internal/catalog"
	"github.com/napolitain/eras/internal/config"
	"github.com/napolitain/eras/internal/game"
	"github.com/napolitain/eras/internal/save"
	"github.com/napolitain/eras/internal/tui"
)

var (
	dataDir    string
	configFile string
	savePath   string
	loadPath   string

	runSeconds float64
	runSpeed   float64
	runBuys    []string
	quiet      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "eras",
		Short: "Eras incremental strategy engine",
		Long: `An incremental game of industrial-age development: resources
accumulate over simulated years and unlock trees of upgrades.`,
	}
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "data", "Path to data directory")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "data/config.json", "Path to JSON config file")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play interactively in the terminal",
		Run:   runPlay,
	}
	playCmd.Flags().StringVarP(&savePath, "save", "s", "eras_save.json", "Path for save files")
	playCmd.Flags().StringVarP(&loadPath, "load", "l", "", "Save file to resume from")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a headless simulation and print a report",
		Run:   runHeadless,
	}
	runCmd.Flags().Float64VarP(&runSeconds, "seconds", "t", 60, "Simulated wall-clock seconds")
	runCmd.Flags().Float64Var(&runSpeed, "speed", 0, "Speed multiplier (0 keeps the configured default)")
	runCmd.Flags().StringSliceVarP(&runBuys, "buy", "b", nil, "Upgrade ids to buy as soon as they become purchasable")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the data directory for catalog errors",
		Run:   runValidate,
	}

	rootCmd.AddCommand(playCmd, runCmd, validateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSession() *game.Session {
	cat, err := catalog.Load(dataDir)
	if err != nil {
		color.Red("Error loading catalog: %v", err)
		os.Exit(1)
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		color.Red("Error loading config: %v", err)
		os.Exit(1)
	}
	return game.NewSession(cat, cfg)
}

func runPlay(cmd *cobra.Command, args []string) {
	session := newSession()

	if loadPath != "" {
		if err := save.Read(loadPath, session); err != nil {
			color.Red("Error loading save: %v", err)
			os.Exit(1)
		}
	}

	app := &tui.App{Session: session, SavePath: savePath}
	if err := app.Run(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func runHeadless(cmd *cobra.Command, args []string) {
	titleColor := color.New(color.FgCyan, color.Bold)
	infoColor := color.New(color.FgYellow)
	successColor := color.New(color.FgGreen, color.Bold)

	session := newSession()

	// Reject unknown buy targets up front, with a typo suggestion when one
	// is close enough.
	for _, id := range runBuys {
		if _, ok := session.Catalog.Upgrade(id); !ok {
			color.Red("Unknown upgrade %q", id)
			if hint := session.Catalog.SuggestUpgrade(id); hint != "" {
				infoColor.Printf("Did you mean %q?\n", hint)
			}
			os.Exit(1)
		}
	}

	if runSpeed > 0 {
		session.Clock.SetSpeed(runSpeed)
	}

	if !quiet {
		titleColor.Println("\n╭───────────────────────────╮")
		titleColor.Println("│  Eras                     │")
		titleColor.Println("│  Headless Simulation      │")
		titleColor.Println("╰───────────────────────────╯")
		fmt.Println()
		infoColor.Printf("📦 Loaded %d resources, %d upgrades, %d events\n",
			len(session.Catalog.Resources), len(session.Catalog.Upgrades), len(session.Catalog.Events))
		infoColor.Printf("⏱  Simulating %.0fs at %.2gx speed\n\n", runSeconds, session.Clock.Multiplier)
	}

	type purchaseRecord struct {
		id     string
		year   int
		second float64
	}
	var purchases []purchaseRecord
	pendingBuys := append([]string(nil), runBuys...)

	// The clock bounds each step, so large dt values are safe; 0.1s keeps
	// purchase timing reasonably tight.
	const dt = 0.1
	for elapsed := 0.0; elapsed < runSeconds; elapsed += dt {
		session.Tick(dt)

		if ev := session.Events.Pending(); ev != nil {
			resolveHeadlessEvent(session, ev)
		}

		remaining := pendingBuys[:0]
		for _, id := range pendingBuys {
			if err := session.Purchase(id); err != nil {
				remaining = append(remaining, id)
				continue
			}
			purchases = append(purchases, purchaseRecord{id: id, year: session.State.CurrentYear, second: elapsed})
		}
		pendingBuys = remaining
	}

	if !quiet && len(purchases) > 0 {
		fmt.Println("🛒 Purchases:")
		for _, p := range purchases {
			u, _ := session.Catalog.Upgrade(p.id)
			fmt.Printf("   • %-24s year %d (t=%.1fs)\n", u.Name, p.year, p.second)
		}
		fmt.Println()
	}
	for _, id := range pendingBuys {
		u, _ := session.Catalog.Upgrade(id)
		st := game.Status(session.Catalog, session.State, session.Ledger, id)
		color.Yellow("⚠ Never purchasable in this run: %s (%s)", u.Name, st)
	}

	printResourceTable(session)
	printStats(session)

	successColor.Printf("\n✓ Reached year %d with %d/%d upgrades\n",
		session.State.CurrentYear, len(session.State.OwnedIDs()), len(session.Catalog.Upgrades))
}

// resolveHeadlessEvent picks the first affordable choice whose
// requirements are met, or dismisses the event when none qualifies.
func resolveHeadlessEvent(s *game.Session, ev *catalog.Event) {
	for _, choice := range ev.Choices {
		if err := s.ResolveEvent(choice.ID); err == nil {
			if !quiet {
				fmt.Printf("⚡ %s → %s\n", ev.Title, choice.Text)
			}
			return
		}
	}
	s.Events.Dismiss()
	if !quiet {
		fmt.Printf("⚡ %s → dismissed\n", ev.Title)
	}
}

func printResourceTable(s *game.Session) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Resource", "Value", "Rate/s"}),
	)
	for _, id := range s.Ledger.ResourceIDs() {
		st, _ := s.Ledger.State(id)
		_ = table.Append([]string{st.Definition.Name, fmt.Sprintf("%.1f", st.Value), fmt.Sprintf("%+.2f", st.Rate())})
	}
	_ = table.Render()
}

func printStats(s *game.Session) {
	stats := game.Stats(s.Catalog, s.State)

	fmt.Printf("\n📊 Progress: %.0f%% complete, %d purchasable now\n",
		stats.CompletionPercentage, stats.AvailableUpgrades)
	for _, treeID := range s.Catalog.TreeIDs() {
		ts := stats.TreeStatistics[treeID]
		fmt.Printf("   • %-10s %d/%d (%.0f%%)\n", s.Catalog.Trees[treeID].Name, ts.Owned, ts.Total, ts.Percentage)
	}
	if stats.HasNextUnlock {
		fmt.Printf("   Next unlock in year %d\n", stats.NextUnlockYear)
	}
}

func runValidate(cmd *cobra.Command, args []string) {
	cat, err := catalog.Load(dataDir)
	if err != nil {
		color.Red("✗ %v", err)
		os.Exit(1)
	}

	var groups []string
	seen := map[string]bool{}
	for _, u := range cat.Upgrades {
		if u.ExclusiveGroup != "" && !seen[u.ExclusiveGroup] {
			seen[u.ExclusiveGroup] = true
			groups = append(groups, u.ExclusiveGroup)
		}
	}

	color.Green("✓ Catalog OK: %d resources, %d trees, %d upgrades, %d events",
		len(cat.Resources), len(cat.Trees), len(cat.Upgrades), len(cat.Events))
	if len(groups) > 0 {
		fmt.Printf("  Exclusive groups: %s\n", strings.Join(groups, ", "))
	}
}
