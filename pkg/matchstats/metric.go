package matchstats

// Metric is the name of a per-match numeric measurement, as it appears on the match-v5 payload.
type Metric string

// Metrics read by name when building the summary.
const (
	MetricAssists                     Metric = "assists"
	MetricCSPerMin                    Metric = "cs_per_min"
	MetricDamageDealtToTurrets        Metric = "damageDealtToTurrets"
	MetricDamagePerMinute             Metric = "damagePerMinute"
	MetricDeaths                      Metric = "deaths"
	MetricEnemySurrendered            Metric = "enemySurrendered"
	MetricGoldPerMinute               Metric = "goldPerMinute"
	MetricKDA                         Metric = "kda"
	MetricKillParticipation           Metric = "killParticipation"
	MetricKills                       Metric = "kills"
	MetricMultikills                  Metric = "multikills"
	MetricNeutralMinionsKilled        Metric = "neutralMinionsKilled"
	MetricPentaKills                  Metric = "pentaKills"
	MetricQuadraKills                 Metric = "quadraKills"
	MetricSurrendered                 Metric = "surrendered"
	MetricTeamDamagePercentage        Metric = "teamDamagePercentage"
	MetricTotalDamageDealtToChampions Metric = "totalDamageDealtToChampions"
	MetricTotalDamageTaken            Metric = "totalDamageTaken"
	MetricTotalMinionsKilled          Metric = "totalMinionsKilled"
	MetricTurretTakedowns             Metric = "turretTakedowns"
	MetricVisionScore                 Metric = "visionScore"
	MetricVisionScorePerMinute        Metric = "visionScorePerMinute"
	MetricWin                         Metric = "win"
)

// Suffix appended to a metric once its running sum has been divided by the games played.
const avgSuffix = "_avg_per_game"

// AvgKey returns the key used for the metric per-game average on the summary.
func (m Metric) AvgKey() string {
	return string(m) + avgSuffix
}

// Ignored reports whether the metric is excluded from the running sums.
func (m Metric) Ignored() bool {
	_, ok := ignoredMetrics[m]
	return ok
}

// ignoredMetrics holds identifiers, cosmetic fields, game mode specific counters and
// other values that are meaningless once summed across matches.
var ignoredMetrics = metricSet(
	// Match identity and timing.
	"gameCreation",
	"gameDuration",
	"gameEndTimestamp",
	"gameId",
	"gameName",
	"gameStartTimestamp",
	"gameType",
	"gameVersion",
	"mapId",
	"platformId",
	"queueId",
	"tournamentCode",
	"endOfGameResult",
	"gameMode",

	// Participant identity.
	"participantId",
	"profileIcon",
	"puuid",
	"riotIdGameName",
	"riotIdTagline",
	"summonerId",
	"summonerName",
	"summonerLevel",
	"championId",
	"championName",
	"championTransform",
	"summoner1Id",
	"summoner2Id",
	"teamId",
	"placement",
	"subteamPlacement",
	"playerSubteamId",
	"eligibleForProgression",
	string(MetricWin),

	// Inventory slots are item ids.
	"item0",
	"item1",
	"item2",
	"item3",
	"item4",
	"item5",
	"item6",

	// Arena augments are ids too.
	"playerAugment1",
	"playerAugment2",
	"playerAugment3",
	"playerAugment4",
	"playerAugment5",
	"playerAugment6",

	// Swarm mode counters.
	"SWARM_DefeatAatrox",
	"SWARM_DefeatBriar",
	"SWARM_DefeatMiniBosses",
	"SWARM_EvolveWeapon",
	"SWARM_Have3Passives",
	"SWARM_KillEnemy",
	"SWARM_PickupGold",
	"SWARM_ReachLevel50",
	"SWARM_Survive15Min",
	"SWARM_WinWith5EvolvedWeapons",

	// Mission scores.
	"PlayerScore0",
	"PlayerScore1",
	"PlayerScore2",
	"PlayerScore3",
	"PlayerScore4",
	"PlayerScore5",
	"PlayerScore6",
	"PlayerScore7",
	"PlayerScore8",
	"PlayerScore9",
	"PlayerScore10",
	"PlayerScore11",
	"playerScore0",
	"playerScore1",
	"playerScore2",
	"playerScore3",
	"playerScore4",
	"playerScore5",
	"playerScore6",
	"playerScore7",
	"playerScore8",
	"playerScore9",
	"playerScore10",
	"playerScore11",

	// Pings.
	"allInPings",
	"assistMePings",
	"basicPings",
	"commandPings",
	"dangerPings",
	"enemyMissingPings",
	"enemyVisionPings",
	"getBackPings",
	"holdPings",
	"needVisionPings",
	"onMyWayPings",
	"pushPings",
	"retreatPings",
	"visionClearedPings",

	// Low value noise.
	"12AssistStreakCount",
	"HealFromMapSources",
	"InfernalScalePickup",
	"acesBefore15Minutes",
	"consumablesPurchased",
	"controlWardTimeCoverageInRiverOrEnemyHalf",
	"dancedWithRiftHerald",
	"deathsByEnemyChamps",
	"detectorWardsPlaced",
	"doubleAces",
	"fistBumpParticipation",
	"flawlessAces",
	"fullTeamTakedown",
	"inhibitorKills",
	"inhibitorTakedowns",
	"inhibitorsLost",
	"initialBuffCount",
	"initialCrabCount",
	"itemsPurchased",
	"kTurretsDestroyedBeforePlatesFall",
	"killedChampTookFullTeamDamageSurvived",
	"killingSprees",
	"killsOnRecentlyHealedByAramPack",
	"landSkillShotsEarlyGame",
	"largestCriticalStrike",
	"largestKillingSpree",
	"legendaryCount",
	"lostAnInhibitor",
	"moreEnemyJungleThanOpponent",
	"multiKillOneSpell",
	"multiTurretRiftHeraldCount",
	"nexusKills",
	"nexusLost",
	"objectivesStolenAssists",
	"outerTurretExecutesBefore10Minutes",
	"outnumberedNexusKill",
	"perfectDragonSoulsTaken",
	"perfectGame",
	"playedChampSelectPosition",
	"poroExplosions",
	"quickCleanse",
	"quickFirstTurret",
	"saveAllyFromDeath",
	"scuttleCrabKills",
	"sightWardsBoughtInGame",
	"skillshotsHit",
	"snowballsHit",
	"soloBaronKills",
	"spell1Casts",
	"spell2Casts",
	"spell3Casts",
	"spell4Casts",
	"summoner1Casts",
	"summoner2Casts",
	"survivedThreeImmobilizesInFight",
	"takedownOnFirstTurret",
	"takedownsInAlcove",
	"takedownsInEnemyFountain",
	"totalHealsOnTeammates",
	"totalUnitsHealed",
	"turretKills",
	"turretsTakenWithRiftHerald",
	"twentyMinionsIn3SecondsCount",
	"twoWardsOneSweeperCount",
	"unrealKills",
	"unseenRecalls",
	"wardsGuarded",
)

// Keys of the fields nested inside the participant that never reach the metric mapping.
var droppedParticipantKeys = []string{
	"perks",
	"missions",
	"legendaryItemUsed",
	"objectives",
	"teams",
}

// Build a lookup set from a list of names.
func metricSet(names ...string) map[Metric]struct{} {
	set := make(map[Metric]struct{}, len(names))
	for _, name := range names {
		set[Metric(name)] = struct{}{}
	}
	return set
}
