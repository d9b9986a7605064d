package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"riftrewind/api/dto"
	recapservice "riftrewind/api/services/recap"
	"riftrewind/pkg/matchstats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPuuid = "player-puuid"

// Write a minimal match-v5 payload to the directory.
func writePayload(t *testing.T, dir string, name string, puuid string, champion string, win bool) {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"metadata": map[string]any{"matchId": name},
		"info": map[string]any{
			"gameDuration":       1800,
			"gameStartTimestamp": 1709251200000,
			"participants": []any{
				map[string]any{
					"puuid":                puuid,
					"championName":         champion,
					"teamPosition":         "MIDDLE",
					"win":                  win,
					"kills":                4,
					"deaths":               2,
					"assists":              6,
					"totalMinionsKilled":   180,
					"neutralMinionsKilled": 12,
				},
			},
		},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), payload, 0o644))
}

func setupPayloadDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writePayload(t, dir, "NA1_1", testPuuid, "Ahri", true)
	writePayload(t, dir, "NA1_2", testPuuid, "Ahri", false)
	writePayload(t, dir, "NA1_3", testPuuid, "Lux", true)
	writePayload(t, dir, "NA1_4", "someone-else", "Zed", true)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644))

	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestSummarizeJSON(t *testing.T) {
	dir := setupPayloadDir(t)

	out, err := execute(t, "summarize", dir, "--puuid", testPuuid, "--min-games", "1", "--json")
	require.NoError(t, err)

	var summary matchstats.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 3, summary.TotalGames)
	assert.Equal(t, 2, summary.Wins)
	assert.Equal(t, []string{"Ahri", "Lux"}, summary.ChampionRanking)
	require.NotNil(t, summary.MostPlayedChampion)
	assert.Equal(t, "Ahri", summary.MostPlayedChampion.Name)
}

func TestSummarizeTable(t *testing.T) {
	dir := setupPayloadDir(t)

	out, err := execute(t, "summarize", dir, "--puuid", testPuuid, "--min-games", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Recap of "+testPuuid)
	assert.Contains(t, out, "Files read    : 5")
	assert.Contains(t, out, "Skipped       : 2")
	assert.Contains(t, out, "Ahri")
	assert.Contains(t, out, "MIDDLE")
}

func TestSummarizeUnreadableFile(t *testing.T) {
	dir := setupPayloadDir(t)
	if err := os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "NA1_0.json")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	var out, errOut bytes.Buffer
	opts := &summarizeOptions{
		puuid:         testPuuid,
		minGames:      1,
		top:           10,
		timezone:      "America/New_York",
		timezoneLabel: "ET",
	}
	require.NoError(t, runSummarize(&out, &errOut, dir, opts))

	assert.Contains(t, out.String(), "Files read    : 6")
	assert.Contains(t, out.String(), "Skipped       : 3")
	assert.Contains(t, out.String(), "Ahri")
	assert.Contains(t, errOut.String(), "NA1_0.json")
}

func TestSummarizeNoGames(t *testing.T) {
	dir := setupPayloadDir(t)

	out, err := execute(t, "summarize", dir, "--puuid", "unknown")
	require.NoError(t, err)
	assert.Contains(t, out, "No games found")
}

func TestSummarizeErrors(t *testing.T) {
	dir := setupPayloadDir(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing puuid", args: []string{"summarize", dir}},
		{name: "missing directory", args: []string{"summarize", filepath.Join(dir, "nope"), "--puuid", testPuuid}},
		{name: "invalid min games", args: []string{"summarize", dir, "--puuid", testPuuid, "--min-games", "0"}},
		{name: "invalid timezone", args: []string{"summarize", dir, "--puuid", testPuuid, "--timezone", "Mars/Olympus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

type mockRecapClient struct {
	mock.Mock
}

func (m *mockRecapClient) GetRecap(ctx context.Context, region string, gameName string, gameTag string) (*dto.Recap, error) {
	args := m.Called(ctx, region, gameName, gameTag)
	recap, _ := args.Get(0).(*dto.Recap)
	return recap, args.Error(1)
}

func TestRunRemote(t *testing.T) {
	client := new(mockRecapClient)
	client.On("GetRecap", mock.Anything, "kr", "Faker", "KR1").Return(&dto.Recap{
		GameName:    "Faker",
		TagLine:     "KR1",
		Region:      "kr",
		GeneratedAt: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Summary:     &matchstats.Summary{},
	}, nil).Once()

	var out bytes.Buffer
	err := runRemote(context.Background(), &out, client, []string{"kr", "Faker", "KR1"}, &remoteOptions{timeout: time.Second})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Recap of Faker#KR1 (kr)")
	assert.Contains(t, out.String(), "2024-12-31T00:00:00Z")
	client.AssertExpectations(t)
}

func TestRunRemoteError(t *testing.T) {
	client := new(mockRecapClient)
	client.On("GetRecap", mock.Anything, "kr", "Faker", "KR1").Return(nil, recapservice.ErrRecapInProgress).Once()

	var out bytes.Buffer
	err := runRemote(context.Background(), &out, client, []string{"kr", "Faker", "KR1"}, &remoteOptions{timeout: time.Second})
	assert.ErrorIs(t, err, recapservice.ErrRecapInProgress)
	assert.Empty(t, out.String())
}
