package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/r2db/catalog/internal/catalog"
	"github.com/r2db/catalog/internal/chest"
	"github.com/r2db/catalog/internal/config"
	"github.com/r2db/catalog/internal/persist"
)

type fakeItems struct {
	items []catalog.Item
	icons map[int]string
	err   error
}

func (f *fakeItems) List(_ context.Context, types []int, search string) ([]catalog.Item, map[int]string, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	want := make(map[int]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	var out []catalog.Item
	for _, it := range f.items {
		if !want[it.IType] {
			continue
		}
		if search != "" && !strings.Contains(it.IName, search) {
			continue
		}
		out = append(out, it)
	}
	return out, f.icons, nil
}

func (f *fakeItems) Detail(_ context.Context, id int) (*catalog.ItemDetail, error) {
	for _, it := range f.items {
		if it.IID == id {
			return &catalog.ItemDetail{Item: it}, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeItems) Info(_ context.Context, id int) (string, string, error) {
	for _, it := range f.items {
		if it.IID == id {
			return it.IName, "cdn/icon.png", nil
		}
	}
	return "", "", catalog.ErrNotFound
}

type fakeMonsters struct {
	monsters  []catalog.Monster
	portraits map[int]string
}

func (f *fakeMonsters) List(_ context.Context, classes []int, search string) ([]catalog.Monster, map[int]string, error) {
	want := make(map[int]bool, len(classes))
	for _, c := range classes {
		want[c] = true
	}
	var out []catalog.Monster
	for _, m := range f.monsters {
		if want[m.MClass] {
			out = append(out, m)
		}
	}
	return out, f.portraits, nil
}

func (f *fakeMonsters) Detail(_ context.Context, id int) (*catalog.MonsterDetail, error) {
	for _, m := range f.monsters {
		if m.MID == id {
			return &catalog.MonsterDetail{Monster: m}, nil
		}
	}
	return nil, catalog.ErrNotFound
}

type fakeSkills struct{ entries []catalog.SkillListEntry }

func (f *fakeSkills) List(_ context.Context) ([]catalog.SkillListEntry, error) {
	return f.entries, nil
}

func (f *fakeSkills) Detail(_ context.Context, id int) (*catalog.SkillDetail, error) {
	return nil, catalog.ErrNotFound
}

type fakeAbnormals struct{ entries []catalog.AbnormalListEntry }

func (f *fakeAbnormals) List(_ context.Context) ([]catalog.AbnormalListEntry, error) {
	return f.entries, nil
}

func (f *fakeAbnormals) Detail(_ context.Context, aid int) (*catalog.AbnormalDetail, error) {
	return nil, catalog.ErrNotFound
}

type fakeMerchants struct {
	rows  []catalog.MerchantRow
	calls int
	err   error
}

func (f *fakeMerchants) SellList(_ context.Context) ([]catalog.MerchantRow, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeMerchants) ItemsOfMerchant(_ context.Context, merchantID int) ([]catalog.MerchantItem, error) {
	if merchantID == 100 {
		return []catalog.MerchantItem{{ItemID: 1622, ItemName: "Адена", Price: 10}}, nil
	}
	return nil, nil
}

type fakeQuests struct{ quests []catalog.Quest }

func (f *fakeQuests) List(_ context.Context) ([]catalog.Quest, error) { return f.quests, nil }

type fakeChests struct {
	loot     map[int][]chest.LootItem
	savedMID int
	saved    []chest.LootItem
	saveErr  error
}

func (f *fakeChests) Analyze(_ context.Context, mid int) ([]chest.LootItem, error) {
	items, ok := f.loot[mid]
	if !ok {
		return []chest.LootItem{}, nil
	}
	return items, nil
}

func (f *fakeChests) Save(_ context.Context, mid int, items []chest.LootItem) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedMID = mid
	f.saved = items
	return nil
}

func (f *fakeChests) ListChests(_ context.Context) ([]chest.ChestLoot, error) {
	out := make([]chest.ChestLoot, 0, len(f.loot))
	for mid, items := range f.loot {
		out = append(out, chest.ChestLoot{MID: mid, Items: items})
	}
	return out, nil
}

func newTestServer(t *testing.T, deps Deps) *Server {
	t.Helper()
	if deps.Items == nil {
		deps.Items = &fakeItems{}
	}
	if deps.Monsters == nil {
		deps.Monsters = &fakeMonsters{}
	}
	if deps.Skills == nil {
		deps.Skills = &fakeSkills{}
	}
	if deps.Abnormals == nil {
		deps.Abnormals = &fakeAbnormals{}
	}
	if deps.Merchants == nil {
		deps.Merchants = &fakeMerchants{}
	}
	if deps.Quests == nil {
		deps.Quests = &fakeQuests{}
	}
	if deps.Chests == nil {
		deps.Chests = &fakeChests{}
	}
	return NewServer(config.ServerConfig{BindAddress: ":0"}, deps, zap.NewNop())
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload map[string]json.RawMessage
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}
	return rec, payload
}

func testServerItems() []catalog.Item {
	return []catalog.Item{
		{IID: 1, IName: "Кинжал ученика", IType: 1, ILevel: 1},
		{IID: 2, IName: "Меч рыцаря", IType: 1, ILevel: 40},
		{IID: 3, IName: "Кожаный доспех", IType: 3, ILevel: 10},
	}
}

func TestItemListEnvelope(t *testing.T) {
	srv := newTestServer(t, Deps{Items: &fakeItems{
		items: testServerItems(),
		icons: map[int]string{1: "cdn/1.png", 2: "cdn/2.png", 3: "cdn/3.png"},
	}})

	rec, payload := doJSON(t, srv.Handler(), http.MethodGet, "/api/items/weapon", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var items []catalog.Item
	require.NoError(t, json.Unmarshal(payload["items"], &items))
	require.Len(t, items, 2)

	var total, pages int
	require.NoError(t, json.Unmarshal(payload["total"], &total))
	require.NoError(t, json.Unmarshal(payload["pages"], &pages))
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, pages)

	// Resources carry only the icons of the returned page.
	var resources map[int]string
	require.NoError(t, json.Unmarshal(payload["resources"], &resources))
	assert.Equal(t, map[int]string{1: "cdn/1.png", 2: "cdn/2.png"}, resources)
}

func TestItemListUnknownGroup(t *testing.T) {
	srv := newTestServer(t, Deps{})
	rec, payload := doJSON(t, srv.Handler(), http.MethodGet, "/api/items/nonsuch", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `"not found"`, string(payload["error"]))
}

func TestItemListFiltersAndPagination(t *testing.T) {
	srv := newTestServer(t, Deps{Items: &fakeItems{items: testServerItems()}})

	rec, payload := doJSON(t, srv.Handler(), http.MethodGet, "/api/items/weapon?levelMin=20", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []catalog.Item
	require.NoError(t, json.Unmarshal(payload["items"], &items))
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].IID)

	rec, payload = doJSON(t, srv.Handler(), http.MethodGet, "/api/items/weapon?page=2&per_page=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(payload["items"], &items))
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].IID)

	var pages int
	require.NoError(t, json.Unmarshal(payload["pages"], &pages))
	assert.Equal(t, 2, pages)
}

func TestItemListSearch(t *testing.T) {
	srv := newTestServer(t, Deps{Items: &fakeItems{items: testServerItems()}})

	_, payload := doJSON(t, srv.Handler(), http.MethodGet, "/api/items/weapon?search=рыцаря", "")
	var items []catalog.Item
	require.NoError(t, json.Unmarshal(payload["items"], &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Меч рыцаря", items[0].IName)
}

func TestItemDetail(t *testing.T) {
	srv := newTestServer(t, Deps{Items: &fakeItems{items: testServerItems()}})

	rec, payload := doJSON(t, srv.Handler(), http.MethodGet, "/api/item/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detailItem catalog.Item
	require.NoError(t, json.Unmarshal(payload["item"], &detailItem))
	assert.Equal(t, "Меч рыцаря", detailItem.IName)

	rec, _ = doJSON(t, srv.Handler(), http.MethodGet, "/api/item/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, srv.Handler(), http.MethodGet, "/api/item/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItemListDataAccessError(t *testing.T) {
	srv := newTestServer(t, Deps{Items: &fakeItems{
		err: &persist.DataAccessError{Stmt: "select", Err: errors.New("connection refused")},
	}})

	rec, payload := doJSON(t, srv.Handler(), http.MethodGet, "/api/items/weapon", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Driver details never reach the client.
	assert.JSONEq(t, `"internal error"`, string(payload["error"]))
}

func TestMonsterList(t *testing.T) {
	srv := newTestServer(t, Deps{Monsters: &fakeMonsters{
		monsters: []catalog.Monster{
			{MID: 1, MName: "Волк", MClass: 1, MLevel: 5},
			{MID: 2, MName: "Барлог", MClass: 29, MLevel: 70},
		},
		portraits: map[int]string{1: "cdn/1.png", 2: "cdn/2.png"},
	}})

	rec, payload := doJSON(t, srv.Handler(), http.MethodGet, "/api/monsters/boss", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var monsters []catalog.Monster
	require.NoError(t, json.Unmarshal(payload["items"], &monsters))
	require.Len(t, monsters, 1)
	assert.Equal(t, "Барлог", monsters[0].MName)

	rec, _ = doJSON(t, srv.Handler(), http.MethodGet, "/api/monsters/bogus", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSkillAndAbnormalLists(t *testing.T) {
	srv := newTestServer(t, Deps{
		Skills:    &fakeSkills{entries: []catalog.SkillListEntry{{SID: 10, SName: "Удар"}}},
		Abnormals: &fakeAbnormals{entries: []catalog.AbnormalListEntry{{AID: 5, AName: "Яд"}}},
	})

	rec, payload := doJSON(t, srv.Handler(), http.MethodGet, "/api/skills", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var total int
	require.NoError(t, json.Unmarshal(payload["total"], &total))
	assert.Equal(t, 1, total)

	rec, payload = doJSON(t, srv.Handler(), http.MethodGet, "/api/abnormals", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []catalog.AbnormalListEntry
	require.NoError(t, json.Unmarshal(payload["items"], &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Яд", entries[0].AName)
}

func TestMerchantListCached(t *testing.T) {
	merchants := &fakeMerchants{rows: []catalog.MerchantRow{{MID: 100, MName: "Торговец"}}}
	srv := newTestServer(t, Deps{Merchants: merchants})

	rec, _ := doJSON(t, srv.Handler(), http.MethodGet, "/api/merchants", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec, payload := doJSON(t, srv.Handler(), http.MethodGet, "/api/merchants", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// The second request is served from the cache.
	assert.Equal(t, 1, merchants.calls)
	var rows []catalog.MerchantRow
	require.NoError(t, json.Unmarshal(payload["items"], &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Торговец", rows[0].MName)
}

func TestMerchantItems(t *testing.T) {
	srv := newTestServer(t, Deps{})

	rec, payload := doJSON(t, srv.Handler(), http.MethodGet, "/api/merchant/100", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []catalog.MerchantItem
	require.NoError(t, json.Unmarshal(payload["items"], &items))
	require.Len(t, items, 1)
	assert.Equal(t, 1622, items[0].ItemID)

	// A merchant without goods answers with an empty list, not null.
	_, payload = doJSON(t, srv.Handler(), http.MethodGet, "/api/merchant/200", "")
	assert.JSONEq(t, `[]`, string(payload["items"]))
}

func TestQuestList(t *testing.T) {
	srv := newTestServer(t, Deps{Quests: &fakeQuests{quests: []catalog.Quest{
		{QuestNo: 7, QuestName: "Письмо стражника", Level: "L10-L15"},
	}}})

	rec, payload := doJSON(t, srv.Handler(), http.MethodGet, "/api/quests", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var quests []catalog.Quest
	require.NoError(t, json.Unmarshal(payload["quests"], &quests))
	require.Len(t, quests, 1)
	assert.Equal(t, "Письмо стражника", quests[0].QuestName)
}

func TestChestEndpoints(t *testing.T) {
	chests := &fakeChests{loot: map[int][]chest.LootItem{
		929: {{ItemID: 40308, ItemName: "Руна", DropChance: 80, Count: 1, Status: 1}},
	}}
	srv := newTestServer(t, Deps{Chests: chests})

	rec, payload := doJSON(t, srv.Handler(), http.MethodGet, "/api/chests", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var loot []chest.ChestLoot
	require.NoError(t, json.Unmarshal(payload["chests"], &loot))
	require.Len(t, loot, 1)
	assert.Equal(t, 929, loot[0].MID)

	rec, payload = doJSON(t, srv.Handler(), http.MethodGet, "/api/chest-loot/929", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []chest.LootItem
	require.NoError(t, json.Unmarshal(payload["items"], &items))
	require.Len(t, items, 1)
	assert.Equal(t, 80.0, items[0].DropChance)

	// Unconfigured chest answers with an empty list.
	_, payload = doJSON(t, srv.Handler(), http.MethodGet, "/api/chest-loot/930", "")
	assert.JSONEq(t, `[]`, string(payload["items"]))

	rec, _ = doJSON(t, srv.Handler(), http.MethodGet, "/api/chest-loot/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveChestLoot(t *testing.T) {
	chests := &fakeChests{}
	srv := newTestServer(t, Deps{Chests: chests})

	body := `{"mid":929,"items":[{"itemId":40308,"dropChance":80,"count":2,"status":1}]}`
	rec, payload := doJSON(t, srv.Handler(), http.MethodPost, "/api/save-chest-loot", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"success"`, string(payload["status"]))

	assert.Equal(t, 929, chests.savedMID)
	require.Len(t, chests.saved, 1)
	assert.Equal(t, 40308, chests.saved[0].ItemID)
	assert.Equal(t, 2, chests.saved[0].Count)
}

func TestSaveChestLootBadRequests(t *testing.T) {
	srv := newTestServer(t, Deps{})

	rec, _ := doJSON(t, srv.Handler(), http.MethodPost, "/api/save-chest-loot", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, srv.Handler(), http.MethodPost, "/api/save-chest-loot", `{"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItemInfo(t *testing.T) {
	srv := newTestServer(t, Deps{Items: &fakeItems{items: testServerItems()}})

	rec, payload := doJSON(t, srv.Handler(), http.MethodGet, "/api/item-info/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"Кинжал ученика"`, string(payload["itemName"]))
	assert.JSONEq(t, `"cdn/icon.png"`, string(payload["itemPic"]))

	rec, _ = doJSON(t, srv.Handler(), http.MethodGet, "/api/item-info/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPanicRecovery(t *testing.T) {
	srv := newTestServer(t, Deps{})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	h := accessLog(srv.log, recoverPanics(srv.log, mux))
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
