package sheets

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/r2db/catalog/internal/config"
)

func TestExportURL(t *testing.T) {
	u, err := ExportURL("https://docs.google.com/spreadsheets/d/abc123/edit#gid=0")
	require.NoError(t, err)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc123/export?format=csv", u)

	u, err = ExportURL("https://docs.google.com/spreadsheets/d/abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc123/export?format=csv", u)

	_, err = ExportURL("https://example.com/no-document-here")
	assert.Error(t, err)

	_, err = ExportURL("https://docs.google.com/spreadsheets/d//edit")
	assert.Error(t, err)
}

func TestParseTableAndLookup(t *testing.T) {
	csvBody := "MClass,MName,Note\n1,Обычный,\n29,Босс,раид\n"

	table, err := parseTable(strings.NewReader(csvBody))
	require.NoError(t, err)
	require.False(t, table.Empty())

	assert.Equal(t, "Обычный", table.Lookup("MClass", "1", "MName"))
	assert.Equal(t, "Босс", table.Lookup("MClass", "29", "MName"))
	assert.Equal(t, "", table.Lookup("MClass", "99", "MName"))
	assert.Equal(t, "", table.Lookup("NoSuchColumn", "1", "MName"))
	assert.Equal(t, "", table.Lookup("MClass", "1", "NoSuchColumn"))
}

func TestParseTableRaggedRows(t *testing.T) {
	// Published sheets often truncate trailing empty cells.
	table, err := parseTable(strings.NewReader("a,b,c\n1\n2,два,три\n"))
	require.NoError(t, err)

	assert.Equal(t, "три", table.Lookup("a", "2", "c"))
	assert.Equal(t, "", table.Lookup("a", "1", "c"))
}

func TestParseTableEmpty(t *testing.T) {
	table, err := parseTable(strings.NewReader(""))
	require.NoError(t, err)
	assert.True(t, table.Empty())
	assert.Equal(t, "", table.Lookup("a", "1", "b"))
}

func TestTableMatches(t *testing.T) {
	table, err := parseTable(strings.NewReader(
		"MID,mPlaceNmRus,mMapNmRus\n7,Лес,1 этаж\n9,Поле,\n7,Пещера\n"))
	require.NoError(t, err)

	got := table.Matches("MID", "7", "mPlaceNmRus", "mMapNmRus")
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Лес", "1 этаж"}, got[0])
	assert.Equal(t, []string{"Пещера", ""}, got[1])

	assert.Nil(t, table.Matches("MID", "404", "mPlaceNmRus"))
	assert.Nil(t, table.Matches("NoSuchColumn", "7", "mPlaceNmRus"))
	assert.Equal(t, [][]string{{""}}, table.Matches("MID", "9", "NoSuchColumn"))
}

func TestFetchDegradesToEmptyTable(t *testing.T) {
	c := NewClient(time.Second, time.Minute, zap.NewNop())

	// Unset and malformed URLs never error, they just blank the labels.
	assert.True(t, c.Fetch(context.Background(), "").Empty())
	assert.True(t, c.Fetch(context.Background(), "not a sheet url").Empty())
}

func TestFetchServesFromCache(t *testing.T) {
	c := NewClient(time.Second, time.Minute, zap.NewNop())

	seeded, err := parseTable(strings.NewReader("MClass,MName\n1,Обычный\n"))
	require.NoError(t, err)

	shareURL := "https://docs.google.com/spreadsheets/d/cached/edit"
	c.cache.Set(shareURL, seeded)

	got := c.Fetch(context.Background(), shareURL)
	assert.Equal(t, "Обычный", got.Lookup("MClass", "1", "MName"))
}

func TestNamesMonsterReferenceData(t *testing.T) {
	c := NewClient(time.Second, time.Minute, zap.NewNop())

	raceURL := "https://docs.google.com/spreadsheets/d/races/edit"
	race, err := parseTable(strings.NewReader("MRaceType,mName,mDesc\n9,demon,Демоны\n"))
	require.NoError(t, err)
	c.cache.Set(raceURL, race)

	locURL := "https://docs.google.com/spreadsheets/d/locations/edit"
	loc, err := parseTable(strings.NewReader(
		"MID,mPlaceNmRus,mMapNmRus\n4242,Долина драконов,70+\n1,Город,\n4242,Глубокие пещеры\n"))
	require.NoError(t, err)
	c.cache.Set(locURL, loc)

	n := NewNames(c, config.SheetsConfig{MonsterRaceURL: raceURL, MonsterLocationURL: locURL})
	ctx := context.Background()

	// The description column carries the display text, not the short name.
	assert.Equal(t, "Демоны", n.MonsterRace(ctx, 9))
	assert.Equal(t, "", n.MonsterRace(ctx, 99))

	locs := n.MonsterLocations(ctx, 4242)
	require.Len(t, locs, 2)
	assert.Equal(t, "Долина драконов", locs[0].Location)
	require.NotNil(t, locs[0].Level)
	assert.Equal(t, "70+", *locs[0].Level)
	assert.Equal(t, "Глубокие пещеры", locs[1].Location)
	assert.Nil(t, locs[1].Level)

	assert.Empty(t, n.MonsterLocations(ctx, 777))
}
