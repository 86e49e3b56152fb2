package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/r2db/catalog/internal/catalog"
	"github.com/r2db/catalog/internal/chest"
)

func pathInt(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(r.PathValue(name))
	return v, err == nil
}

func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 1 {
		return def
	}
	return v
}

// queryParams flattens the query string to first values, the shape the
// filter stages consume.
func queryParams(r *http.Request) map[string]string {
	out := map[string]string{}
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}

type listEnvelope struct {
	Items     any            `json:"items"`
	Resources map[int]string `json:"resources,omitempty"`
	Total     int            `json:"total"`
	Pages     int            `json:"pages"`
}

func (s *Server) handleItemList(w http.ResponseWriter, r *http.Request) {
	types, ok := itemGroups[r.PathValue("group")]
	if !ok {
		writeError(w, s.log, catalog.ErrNotFound)
		return
	}

	items, icons, err := s.items.List(r.Context(), types, r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, s.log, err)
		return
	}

	filtered := catalog.NewItemFilters(queryParams(r)).Apply(items)

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", catalog.DefaultPerPage)
	pageItems, total, pages := catalog.Paginate(filtered, page, perPage)

	resources := make(map[int]string, len(pageItems))
	for _, it := range pageItems {
		if icon, ok := icons[it.IID]; ok {
			resources[it.IID] = icon
		}
	}
	writeJSON(w, http.StatusOK, listEnvelope{
		Items: pageItems, Resources: resources, Total: total, Pages: pages,
	})
}

func (s *Server) handleItemDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeError(w, s.log, &catalog.ValidationError{Field: "id", Value: r.PathValue("id")})
		return
	}
	detail, err := s.items.Detail(r.Context(), id)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleMonsterList(w http.ResponseWriter, r *http.Request) {
	classes, ok := monsterGroups[r.PathValue("group")]
	if !ok {
		writeError(w, s.log, catalog.ErrNotFound)
		return
	}

	monsters, portraits, err := s.monsters.List(r.Context(), classes, r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, s.log, err)
		return
	}

	filtered := catalog.NewMonsterFilters(queryParams(r)).Apply(monsters)

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", catalog.DefaultPerPage)
	pageItems, total, pages := catalog.Paginate(filtered, page, perPage)

	resources := make(map[int]string, len(pageItems))
	for _, m := range pageItems {
		if pic, ok := portraits[m.MID]; ok {
			resources[m.MID] = pic
		}
	}
	writeJSON(w, http.StatusOK, listEnvelope{
		Items: pageItems, Resources: resources, Total: total, Pages: pages,
	})
}

func (s *Server) handleMonsterDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeError(w, s.log, &catalog.ValidationError{Field: "id", Value: r.PathValue("id")})
		return
	}
	detail, err := s.monsters.Detail(r.Context(), id)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleSkillList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.skills.List(r.Context())
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", catalog.DefaultPerPage)
	pageItems, total, pages := catalog.Paginate(entries, page, perPage)
	writeJSON(w, http.StatusOK, listEnvelope{Items: pageItems, Total: total, Pages: pages})
}

func (s *Server) handleSkillDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeError(w, s.log, &catalog.ValidationError{Field: "id", Value: r.PathValue("id")})
		return
	}
	detail, err := s.skills.Detail(r.Context(), id)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleAbnormalList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.abnormals.List(r.Context())
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", catalog.DefaultPerPage)
	pageItems, total, pages := catalog.Paginate(entries, page, perPage)
	writeJSON(w, http.StatusOK, listEnvelope{Items: pageItems, Total: total, Pages: pages})
}

func (s *Server) handleAbnormalDetail(w http.ResponseWriter, r *http.Request) {
	aid, ok := pathInt(r, "id")
	if !ok {
		writeError(w, s.log, &catalog.ValidationError{Field: "id", Value: r.PathValue("id")})
		return
	}
	detail, err := s.abnormals.Detail(r.Context(), aid)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

const sellListKey = "selllist"

func (s *Server) handleMerchantList(w http.ResponseWriter, r *http.Request) {
	rows, ok := s.sellCache.Get(sellListKey)
	if !ok {
		var err error
		rows, err = s.merchants.SellList(r.Context())
		if err != nil {
			writeError(w, s.log, err)
			return
		}
		s.sellCache.Set(sellListKey, rows)
	}
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", catalog.DefaultPerPage)
	pageItems, total, pages := catalog.Paginate(rows, page, perPage)
	writeJSON(w, http.StatusOK, listEnvelope{Items: pageItems, Total: total, Pages: pages})
}

func (s *Server) handleMerchantItems(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeError(w, s.log, &catalog.ValidationError{Field: "id", Value: r.PathValue("id")})
		return
	}
	items, err := s.merchants.ItemsOfMerchant(r.Context(), id)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	if items == nil {
		items = []catalog.MerchantItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleQuestList(w http.ResponseWriter, r *http.Request) {
	quests, err := s.quests.List(r.Context())
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	if quests == nil {
		quests = []catalog.Quest{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"quests": quests})
}

func (s *Server) handleChestList(w http.ResponseWriter, r *http.Request) {
	chests, err := s.chests.ListChests(r.Context())
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"chests": chests})
}

func (s *Server) handleChestLoot(w http.ResponseWriter, r *http.Request) {
	mid, ok := pathInt(r, "mid")
	if !ok {
		writeError(w, s.log, &catalog.ValidationError{Field: "mid", Value: r.PathValue("mid")})
		return
	}
	items, err := s.chests.Analyze(r.Context(), mid)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

type saveChestRequest struct {
	MID   int              `json:"mid"`
	Items []chest.LootItem `json:"items"`
}

func (s *Server) handleSaveChestLoot(w http.ResponseWriter, r *http.Request) {
	var req saveChestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, s.log, &catalog.ValidationError{Field: "body", Value: err.Error()})
		return
	}
	if req.MID == 0 {
		writeError(w, s.log, &catalog.ValidationError{Field: "mid", Value: "0"})
		return
	}
	if err := s.chests.Save(r.Context(), req.MID, req.Items); err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) handleItemInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeError(w, s.log, &catalog.ValidationError{Field: "id", Value: r.PathValue("id")})
		return
	}
	name, pic, err := s.items.Info(r.Context(), id)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"itemName": name, "itemPic": pic})
}
