package matchstats

import "sort"

// Hidden gems are champions played less than this, with a winning record.
const hiddenGemMaxGames = 20

// Items listed per champion on the summary.
const mostBuiltItems = 3

// Highlight is a champion or role singled out on the summary.
type Highlight struct {
	Name           string  `json:"name"`
	Games          int     `json:"games"`
	Wins           int     `json:"wins"`
	WinRatePercent float64 `json:"win_rate_percent"`
}

// ChampionStats is the per-game view of a champion kept on the summary.
type ChampionStats struct {
	Champion                    string  `json:"champion"`
	GamesPlayed                 int     `json:"games_played"`
	Wins                        int     `json:"wins"`
	Losses                      int     `json:"losses"`
	WinRatePercent              float64 `json:"win_rate_percent"`
	KDA                         float64 `json:"kda_avg_per_game"`
	KillParticipation           float64 `json:"killParticipation_avg_per_game"`
	TotalDamageDealtToChampions float64 `json:"totalDamageDealtToChampions_avg_per_game"`
	DamagePerMinute             float64 `json:"damagePerMinute_avg_per_game"`
	TotalDamageTaken            float64 `json:"totalDamageTaken_avg_per_game"`
	TeamDamagePercentage        float64 `json:"teamDamagePercentage_avg_per_game"`
	GoldPerMinute               float64 `json:"goldPerMinute_avg_per_game"`
	VisionScorePerMinute        float64 `json:"visionScorePerMinute_avg_per_game"`
	Multikills                  float64 `json:"multikills_avg_per_game"`
	QuadraKills                 float64 `json:"quadraKills_avg_per_game"`
	PentaKills                  float64 `json:"pentaKills_avg_per_game"`
	TurretTakedowns             float64 `json:"turretTakedowns_avg_per_game"`
	DamageDealtToTurrets        float64 `json:"damageDealtToTurrets_avg_per_game"`
	TotalMinionsKilled          float64 `json:"totalMinionsKilled_avg_per_game"`
	NeutralMinionsKilled        float64 `json:"neutralMinionsKilled_avg_per_game"`

	MostBuiltItems []ItemCount `json:"most_built_items,omitempty"`
}

// RoleStats is the per-game view of a role kept on the summary.
type RoleStats struct {
	Role                        string  `json:"role"`
	GamesPlayed                 int     `json:"games_played"`
	Wins                        int     `json:"wins"`
	Losses                      int     `json:"losses"`
	WinRatePercent              float64 `json:"win_rate_percent"`
	KDA                         float64 `json:"kda_avg_per_game"`
	KillParticipation           float64 `json:"killParticipation_avg_per_game"`
	TotalDamageDealtToChampions float64 `json:"totalDamageDealtToChampions_avg_per_game"`
	GoldPerMinute               float64 `json:"goldPerMinute_avg_per_game"`
	DamagePerMinute             float64 `json:"damagePerMinute_avg_per_game"`
	VisionScore                 float64 `json:"visionScore_avg_per_game"`
	TeamDamagePercentage        float64 `json:"teamDamagePercentage_avg_per_game"`
}

// Summary is the reduced view of the aggregated history.
type Summary struct {
	TotalGames                  int     `json:"total_games"`
	Wins                        int     `json:"wins"`
	Losses                      int     `json:"losses"`
	WinRatePercent              float64 `json:"win_rate_percent"`
	AvgKillsPerGame             float64 `json:"avg_kills_per_game"`
	AvgDeathsPerGame            float64 `json:"avg_deaths_per_game"`
	AvgAssistsPerGame           float64 `json:"avg_assists_per_game"`
	AvgKDA                      float64 `json:"avg_kda"`
	AvgDamageToChampionsPerGame float64 `json:"avg_damage_to_champions_per_game"`
	AvgCSPerGame                float64 `json:"avg_cs_per_game"`
	AvgCSPerMin                 float64 `json:"avg_cs_per_min"`
	AvgVisionScorePerGame       float64 `json:"avg_vision_score_per_game"`
	AvgMultikillsPerGame        float64 `json:"avg_multikills_per_game"`
	TotalPentakills             int     `json:"total_pentakills"`
	HoursPlayed                 float64 `json:"hours_played"`

	MostPlayedChampion    *Highlight `json:"most_played_champion,omitempty"`
	BestChampionByWinrate *Highlight `json:"best_champion_by_winrate,omitempty"`
	HiddenGem             *Highlight `json:"hidden_gem,omitempty"`
	FavoriteRole          *Highlight `json:"favorite_role,omitempty"`

	BestMonth    *BestMonth    `json:"best_month,omitempty"`
	PeakPlayTime *PeakPlayTime `json:"peak_play_time,omitempty"`

	AllStatsAvgPerGame map[string]float64       `json:"all_stats_avg_per_game"`
	ChampionRanking    []string                 `json:"champion_ranking"`
	ChampionStats      map[string]ChampionStats `json:"champion_stats"`
	RoleStats          map[string]RoleStats     `json:"role_stats"`
}

// Summarize reduces the running sums into the summary.
// Doesn't change the aggregator, calling it twice without adding records returns the same summary.
func (a *Aggregator) Summarize() Summary {
	overall := a.overall.average()
	champions := a.Champions()
	roles := a.Roles()

	kills := overall.Avg(MetricKills)
	deaths := overall.Avg(MetricDeaths)
	assists := overall.Avg(MetricAssists)

	summary := Summary{
		TotalGames:                  overall.GamesPlayed,
		Wins:                        overall.Wins,
		Losses:                      overall.Losses,
		WinRatePercent:              overall.WinRatePercent,
		AvgKillsPerGame:             kills,
		AvgDeathsPerGame:            deaths,
		AvgAssistsPerGame:           assists,
		AvgKDA:                      kda(kills, deaths, assists),
		AvgDamageToChampionsPerGame: overall.Avg(MetricTotalDamageDealtToChampions),
		AvgCSPerGame:                overall.Avg(MetricTotalMinionsKilled),
		AvgCSPerMin:                 overall.Avg(MetricCSPerMin),
		AvgVisionScorePerGame:       overall.Avg(MetricVisionScore),
		AvgMultikillsPerGame:        overall.Avg(MetricMultikills),
		TotalPentakills:             int(a.overall.sums[MetricPentaKills]),
		HoursPlayed:                 round2(float64(a.totalSeconds) / 3600),

		MostPlayedChampion:    mostPlayed(champions, func(NamedAverages) bool { return true }),
		BestChampionByWinrate: bestWinRate(champions, a.qualifies),
		HiddenGem:             bestWinRate(champions, a.hiddenGem),
		FavoriteRole:          mostPlayed(roles, func(role NamedAverages) bool { return role.Name != "" }),

		BestMonth:    a.timeline.bestMonth(),
		PeakPlayTime: a.timeline.peakPlayTime(a.timezoneLabel),

		AllStatsAvgPerGame: overall.Flatten(),
		ChampionRanking:    []string{},
		ChampionStats:      make(map[string]ChampionStats),
		RoleStats:          make(map[string]RoleStats),
	}

	for _, champion := range a.topChampions(champions) {
		summary.ChampionRanking = append(summary.ChampionRanking, champion.Name)
		summary.ChampionStats[champion.Name] = projectChampion(champion)
	}

	for _, role := range roles {
		if role.Name == "" {
			continue
		}
		summary.RoleStats[role.Name] = projectRole(role)
	}

	return summary
}

// KDA from the per-game averages, deaths floored at one.
func kda(kills, deaths, assists float64) float64 {
	if deaths < 1 {
		deaths = 1
	}
	return round2((kills + assists) / deaths)
}

// Whether the champion has enough games to be ranked.
func (a *Aggregator) qualifies(champion NamedAverages) bool {
	return champion.GamesPlayed >= a.minGames
}

// Whether the champion is a rarely played one with a winning record.
func (a *Aggregator) hiddenGem(champion NamedAverages) bool {
	return a.qualifies(champion) &&
		champion.GamesPlayed < hiddenGemMaxGames &&
		champion.Wins*2 > champion.GamesPlayed
}

// Filter the qualified champions, rank them by games played and keep the top N.
// Ties keep the order the champions were first played.
func (a *Aggregator) topChampions(champions []NamedAverages) []NamedAverages {
	qualified := make([]NamedAverages, 0, len(champions))
	for _, champion := range champions {
		if a.qualifies(champion) {
			qualified = append(qualified, champion)
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].GamesPlayed > qualified[j].GamesPlayed
	})

	if len(qualified) > a.topN {
		qualified = qualified[:a.topN]
	}
	return qualified
}

// Most played entry among the accepted ones, first seen wins ties.
func mostPlayed(entries []NamedAverages, accept func(NamedAverages) bool) *Highlight {
	var best *NamedAverages
	for i := range entries {
		entry := &entries[i]
		if !accept(*entry) {
			continue
		}
		if best == nil || entry.GamesPlayed > best.GamesPlayed {
			best = entry
		}
	}
	return highlight(best)
}

// Best win rate among the accepted entries, first seen wins ties.
func bestWinRate(entries []NamedAverages, accept func(NamedAverages) bool) *Highlight {
	var best *NamedAverages
	for i := range entries {
		entry := &entries[i]
		if entry.GamesPlayed == 0 || !accept(*entry) {
			continue
		}

		// Compare wins/games ratios without dividing.
		if best == nil || entry.Wins*best.GamesPlayed > best.Wins*entry.GamesPlayed {
			best = entry
		}
	}
	return highlight(best)
}

func highlight(entry *NamedAverages) *Highlight {
	if entry == nil {
		return nil
	}

	return &Highlight{
		Name:           entry.Name,
		Games:          entry.GamesPlayed,
		Wins:           entry.Wins,
		WinRatePercent: entry.WinRatePercent,
	}
}

// Keep only the champion fields exposed on the summary.
func projectChampion(champion NamedAverages) ChampionStats {
	return ChampionStats{
		Champion:                    champion.Name,
		GamesPlayed:                 champion.GamesPlayed,
		Wins:                        champion.Wins,
		Losses:                      champion.Losses,
		WinRatePercent:              champion.WinRatePercent,
		KDA:                         champion.Avg(MetricKDA),
		KillParticipation:           champion.Avg(MetricKillParticipation),
		TotalDamageDealtToChampions: champion.Avg(MetricTotalDamageDealtToChampions),
		DamagePerMinute:             champion.Avg(MetricDamagePerMinute),
		TotalDamageTaken:            champion.Avg(MetricTotalDamageTaken),
		TeamDamagePercentage:        champion.Avg(MetricTeamDamagePercentage),
		GoldPerMinute:               champion.Avg(MetricGoldPerMinute),
		VisionScorePerMinute:        champion.Avg(MetricVisionScorePerMinute),
		Multikills:                  champion.Avg(MetricMultikills),
		QuadraKills:                 champion.Avg(MetricQuadraKills),
		PentaKills:                  champion.Avg(MetricPentaKills),
		TurretTakedowns:             champion.Avg(MetricTurretTakedowns),
		DamageDealtToTurrets:        champion.Avg(MetricDamageDealtToTurrets),
		TotalMinionsKilled:          champion.Avg(MetricTotalMinionsKilled),
		NeutralMinionsKilled:        champion.Avg(MetricNeutralMinionsKilled),
		MostBuiltItems:              mostBuilt(champion.Items),
	}
}

// First items of a list already sorted by games.
func mostBuilt(items []ItemCount) []ItemCount {
	if len(items) > mostBuiltItems {
		items = items[:mostBuiltItems]
	}
	if len(items) == 0 {
		return nil
	}
	return append([]ItemCount(nil), items...)
}

// Keep only the role fields exposed on the summary.
func projectRole(role NamedAverages) RoleStats {
	return RoleStats{
		Role:                        role.Name,
		GamesPlayed:                 role.GamesPlayed,
		Wins:                        role.Wins,
		Losses:                      role.Losses,
		WinRatePercent:              role.WinRatePercent,
		KDA:                         role.Avg(MetricKDA),
		KillParticipation:           role.Avg(MetricKillParticipation),
		TotalDamageDealtToChampions: role.Avg(MetricTotalDamageDealtToChampions),
		GoldPerMinute:               role.Avg(MetricGoldPerMinute),
		DamagePerMinute:             role.Avg(MetricDamagePerMinute),
		VisionScore:                 role.Avg(MetricVisionScore),
		TeamDamagePercentage:        role.Avg(MetricTeamDamagePercentage),
	}
}
