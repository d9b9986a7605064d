package cmd

import (
	"fmt"
	"io"

	"riftrewind/pkg/matchstats"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Print the overview, highlights, champion and role tables.
func printSummary(w io.Writer, s *matchstats.Summary) error {
	fmt.Fprintf(w, "  Games         : %d (%dW %dL, %.2f%%)\n", s.TotalGames, s.Wins, s.Losses, s.WinRatePercent)
	fmt.Fprintf(w, "  K/D/A         : %.2f / %.2f / %.2f (KDA %.2f)\n", s.AvgKillsPerGame, s.AvgDeathsPerGame, s.AvgAssistsPerGame, s.AvgKDA)
	fmt.Fprintf(w, "  CS            : %.2f per game, %.2f per min\n", s.AvgCSPerGame, s.AvgCSPerMin)
	fmt.Fprintf(w, "  Hours played  : %.2f\n", s.HoursPlayed)
	fmt.Fprintf(w, "  Pentakills    : %d\n", s.TotalPentakills)

	if s.TotalGames == 0 {
		fmt.Fprintln(w, "\nNo games found for this player.")
		return nil
	}

	fmt.Fprintf(w, "\n--- Highlights ---\n\n")
	ht := newTable(w)
	ht.Header("HIGHLIGHT", "NAME", "GAMES", "WIN%")
	appendHighlight(ht, "Most played", s.MostPlayedChampion)
	appendHighlight(ht, "Best win rate", s.BestChampionByWinrate)
	appendHighlight(ht, "Hidden gem", s.HiddenGem)
	appendHighlight(ht, "Favorite role", s.FavoriteRole)
	if s.BestMonth != nil {
		ht.Append("Best month", s.BestMonth.Label, fmt.Sprintf("%d", s.BestMonth.Games), fmt.Sprintf("%.2f%%", s.BestMonth.WinRatePercent))
	}
	if s.PeakPlayTime != nil {
		ht.Append("Peak play time", s.PeakPlayTime.Time, fmt.Sprintf("%d", s.PeakPlayTime.Games), "-")
	}
	if err := ht.Render(); err != nil {
		return err
	}

	if len(s.ChampionRanking) > 0 {
		fmt.Fprintf(w, "\n--- Champions ---\n\n")
		ct := newTable(w)
		ct.Header("#", "CHAMPION", "GAMES", "W", "L", "WIN%", "KDA", "DPM", "GPM", "CS")
		for i, name := range s.ChampionRanking {
			c := s.ChampionStats[name]
			ct.Append(
				fmt.Sprintf("%d", i+1),
				name,
				fmt.Sprintf("%d", c.GamesPlayed),
				fmt.Sprintf("%d", c.Wins),
				fmt.Sprintf("%d", c.Losses),
				fmt.Sprintf("%.2f%%", c.WinRatePercent),
				fmt.Sprintf("%.2f", c.KDA),
				fmt.Sprintf("%.0f", c.DamagePerMinute),
				fmt.Sprintf("%.0f", c.GoldPerMinute),
				fmt.Sprintf("%.1f", c.TotalMinionsKilled+c.NeutralMinionsKilled),
			)
		}
		if err := ct.Render(); err != nil {
			return err
		}
	}

	if len(s.RoleStats) > 0 {
		fmt.Fprintf(w, "\n--- Roles ---\n\n")
		rt := newTable(w)
		rt.Header("ROLE", "GAMES", "W", "L", "WIN%", "KDA", "VISION")
		for _, role := range []string{"TOP", "JUNGLE", "MIDDLE", "BOTTOM", "UTILITY"} {
			r, ok := s.RoleStats[role]
			if !ok {
				continue
			}
			rt.Append(
				role,
				fmt.Sprintf("%d", r.GamesPlayed),
				fmt.Sprintf("%d", r.Wins),
				fmt.Sprintf("%d", r.Losses),
				fmt.Sprintf("%.2f%%", r.WinRatePercent),
				fmt.Sprintf("%.2f", r.KDA),
				fmt.Sprintf("%.1f", r.VisionScore),
			)
		}
		if err := rt.Render(); err != nil {
			return err
		}
	}

	return nil
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

func appendHighlight(t *tablewriter.Table, label string, h *matchstats.Highlight) {
	if h == nil {
		return
	}
	t.Append(label, h.Name, fmt.Sprintf("%d", h.Games), fmt.Sprintf("%.2f%%", h.WinRatePercent))
}
