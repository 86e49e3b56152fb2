package chest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	scripts map[int]string
	err     error

	savedMID    int
	savedScript string
	savedDialog string
	saveErr     error
}

func (f *fakeStore) Script(_ context.Context, mid int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.scripts[mid], nil
}

func (f *fakeStore) ReplaceScript(_ context.Context, mid int, script, dialog string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedMID = mid
	f.savedScript = script
	f.savedDialog = dialog
	return nil
}

type fakeItems struct {
	names map[int]string
}

func (f *fakeItems) Info(_ context.Context, id int) (string, string, error) {
	name, ok := f.names[id]
	if !ok {
		return "", "", errors.New("no such item")
	}
	return name, "icons/i.png", nil
}

type fakeChests struct{}

func (fakeChests) Name(_ context.Context, mid int) (string, error) {
	if mid == 929 {
		return "Золотой сундук", nil
	}
	return "", errors.New("no such monster")
}

func (fakeChests) Portrait(mid int) string { return "monster/929.png" }

func newTestService(store *fakeStore) *Service {
	return NewService(store,
		&fakeItems{names: map[int]string{40308: "Руна", 1622: "Адена"}},
		fakeChests{},
		Config{MIDs: []int{929, 930}, BoxItemID: 41985, KeyItemID: 41986, ConsolationID: 40318, ConsolationCount: 3},
		zap.NewNop())
}

func TestAnalyze(t *testing.T) {
	store := &fakeStore{scripts: map[int]string{
		929: GenerateScript([]LootItem{
			{ItemID: 1622, DropChance: 50, Count: 100, Status: 1},
			{ItemID: 40308, DropChance: 80, Count: 1, Status: 1},
		}, 41985, 41986, 40318, 3),
	}}
	svc := newTestService(store)

	items, err := svc.Analyze(context.Background(), 929)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Sorted by chance, highest first.
	assert.Equal(t, 40308, items[0].ItemID)
	assert.Equal(t, "Руна", items[0].ItemName)
	assert.Equal(t, 80.0, items[0].DropChance)
	assert.Equal(t, 1622, items[1].ItemID)
	assert.Equal(t, 50.0, items[1].DropChance)
	assert.Equal(t, 100, items[1].Count)

	for _, it := range items {
		assert.Equal(t, "Золотой сундук", it.ChestName)
		assert.Equal(t, "monster/929.png", it.ChestPic)
	}
}

func TestAnalyzeUnconfiguredChest(t *testing.T) {
	svc := newTestService(&fakeStore{scripts: map[int]string{}})

	items, err := svc.Analyze(context.Background(), 930)
	require.NoError(t, err)
	assert.Equal(t, []LootItem{}, items)
}

func TestAnalyzeUnknownItemKeptWithEmptyName(t *testing.T) {
	store := &fakeStore{scripts: map[int]string{
		929: GenerateScript([]LootItem{{ItemID: 77777, DropChance: 10, Count: 1, Status: 1}}, 41985, 41986, 40318, 3),
	}}
	svc := newTestService(store)

	items, err := svc.Analyze(context.Background(), 929)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 77777, items[0].ItemID)
	assert.Empty(t, items[0].ItemName)
}

func TestAnalyzeStoreError(t *testing.T) {
	svc := newTestService(&fakeStore{err: errors.New("db down")})

	_, err := svc.Analyze(context.Background(), 929)
	assert.Error(t, err)
}

func TestSaveNormalizesAndRegeneratesBoth(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	err := svc.Save(context.Background(), 929, []LootItem{
		{ItemID: 40308, DropChance: 80, Count: 0, Status: 0},
	})
	require.NoError(t, err)

	assert.Equal(t, 929, store.savedMID)
	// Count and status default to 1.
	assert.Contains(t, store.savedScript, "pushitem2(40308,1,18,1)")
	assert.Contains(t, store.savedScript, "rand <= 8000")
	assert.Contains(t, store.savedDialog, "<GUIText ver=2>")
	assert.Contains(t, store.savedDialog, "value=10040308")
}

func TestSaveStoreError(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("tx failed")}
	svc := newTestService(store)

	err := svc.Save(context.Background(), 929, nil)
	assert.Error(t, err)
}

func TestListChests(t *testing.T) {
	store := &fakeStore{scripts: map[int]string{
		929: GenerateScript([]LootItem{{ItemID: 1622, DropChance: 25, Count: 5, Status: 1}}, 41985, 41986, 40318, 3),
	}}
	svc := newTestService(store)

	chests, err := svc.ListChests(context.Background())
	require.NoError(t, err)
	require.Len(t, chests, 2)

	assert.Equal(t, 929, chests[0].MID)
	assert.Equal(t, "Золотой сундук", chests[0].Name)
	require.Len(t, chests[0].Items, 1)
	assert.Equal(t, 25.0, chests[0].Items[0].DropChance)

	// The second chest has no script and a failing name lookup: empty, not an error.
	assert.Equal(t, 930, chests[1].MID)
	assert.Empty(t, chests[1].Name)
	assert.Equal(t, []LootItem{}, chests[1].Items)
}
