package matchstats

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrParticipantNotFound = errors.New("participant not found in match")
	ErrMalformedMatch      = errors.New("malformed match payload")
)

// Number of inventory slots on a match-v5 participant, trinket included.
const inventorySlots = 7

// ItemNamer resolves an item id into its display name.
type ItemNamer interface {
	Name(id int) string
}

// Normalizer turns raw match-v5 payloads into performance records.
type Normalizer struct {
	logger Logger
	items  ItemNamer
}

// Raw shape of the match-v5 endpoint, the info object is kept open-ended.
type rawMatch struct {
	Metadata struct {
		MatchID string `json:"matchId"`
	} `json:"metadata"`
	Info map[string]any `json:"info"`
}

// NewNormalizer creates a normalizer.
// Both arguments are optional.
func NewNormalizer(logger Logger, items ItemNamer) *Normalizer {
	if logger == nil {
		logger = nopLogger{}
	}

	return &Normalizer{
		logger: logger,
		items:  items,
	}
}

// Normalize returns the performance record of the given player on the match.
// Returns false if the player didn't take part in the match or if the payload couldn't be read,
// the latter is logged since the caller only decides whether to skip it.
func (n *Normalizer) Normalize(payload []byte, puuid string) (*PerformanceRecord, bool) {
	record, err := n.Parse(payload, puuid)
	if err != nil {
		if !errors.Is(err, ErrParticipantNotFound) {
			n.logger.Errorf("Couldn't normalize match for %s: %v", puuid, err)
		}
		return nil, false
	}

	return record, true
}

// Parse is the error returning version of Normalize.
func (n *Normalizer) Parse(payload []byte, puuid string) (*PerformanceRecord, error) {
	var match rawMatch
	if err := json.Unmarshal(payload, &match); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMatch, err)
	}

	if match.Info == nil {
		return nil, fmt.Errorf("%w: missing info", ErrMalformedMatch)
	}

	participants, ok := match.Info["participants"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing participants", ErrMalformedMatch)
	}

	participant := findParticipant(participants, puuid)
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	return n.buildRecord(match.Metadata.MatchID, match.Info, participant)
}

// Find the participant with the given puuid.
func findParticipant(participants []any, puuid string) map[string]any {
	for _, entry := range participants {
		participant, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		if id, _ := participant["puuid"].(string); id == puuid {
			return participant
		}
	}
	return nil
}

// Flatten the game info, participant and challenges into a single record.
func (n *Normalizer) buildRecord(matchID string, info map[string]any, participant map[string]any) (*PerformanceRecord, error) {
	champion, ok := participant["championName"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing championName", ErrMalformedMatch)
	}

	win, ok := participant["win"].(bool)
	if !ok {
		return nil, fmt.Errorf("%w: missing win", ErrMalformedMatch)
	}

	minions, ok := participant[string(MetricTotalMinionsKilled)].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing totalMinionsKilled", ErrMalformedMatch)
	}

	neutral, ok := participant[string(MetricNeutralMinionsKilled)].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing neutralMinionsKilled", ErrMalformedMatch)
	}

	// Game info first, so participant values take precedence on shared keys.
	fields := make(map[string]any, len(info)+len(participant))
	for key, value := range info {
		if key == "participants" || key == "teams" {
			continue
		}
		fields[key] = value
	}
	for key, value := range participant {
		fields[key] = value
	}
	for _, key := range droppedParticipantKeys {
		delete(fields, key)
	}

	// Challenges are flattened into the top level.
	if challenges, ok := fields["challenges"].(map[string]any); ok {
		for key, value := range challenges {
			fields[key] = value
		}
	}
	delete(fields, "challenges")

	duration := numberOrZero(info["gameDuration"])
	surrender, _ := participant["gameEndedInSurrender"].(bool)

	fields[string(MetricCSPerMin)] = csPerMinute(minions+neutral, duration)
	fields[string(MetricEnemySurrendered)] = win && surrender
	fields[string(MetricSurrendered)] = !win && surrender

	gameStart := numberOrZero(info["gameStartTimestamp"])
	if gameStart == 0 {
		gameStart = numberOrZero(info["gameCreation"])
	}

	role, _ := participant["teamPosition"].(string)
	if champion == "" {
		champion = UnknownChampion
	}

	return &PerformanceRecord{
		MatchID:      matchID,
		Champion:     champion,
		Role:         role,
		Win:          win,
		GameStart:    int64(gameStart),
		GameDuration: int64(duration),
		Metrics:      numericMetrics(fields),
		Items:        n.itemNames(participant),
	}, nil
}

// Keep only the numeric and boolean values.
func numericMetrics(fields map[string]any) map[Metric]float64 {
	metrics := make(map[Metric]float64, len(fields))
	for key, value := range fields {
		switch v := value.(type) {
		case float64:
			metrics[Metric(key)] = v
		case bool:
			if v {
				metrics[Metric(key)] = 1
			} else {
				metrics[Metric(key)] = 0
			}
		}
	}
	return metrics
}

// Resolve the final inventory names, empty slots are skipped.
func (n *Normalizer) itemNames(participant map[string]any) []string {
	if n.items == nil {
		return nil
	}

	var names []string
	for slot := 0; slot < inventorySlots; slot++ {
		id := int(numberOrZero(participant[fmt.Sprintf("item%d", slot)]))
		if id == 0 {
			continue
		}

		if name := n.items.Name(id); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Creep score per minute, zero for games without duration.
func csPerMinute(cs float64, durationSeconds float64) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return cs / (durationSeconds / 60)
}

// Return the number if it's available, else returns zero.
func numberOrZero(value any) float64 {
	if number, ok := value.(float64); ok {
		return number
	}
	return 0
}
