package catalog

import (
	"strconv"
)

// statKeys is the fixed order the numeric range stages run in.
var statKeys = []string{
	"IDHIT", "IDDD", "IRHIT", "IRDD", "IMHIT", "IMDD",
	"IHPPlus", "IMPPlus", "ISTR", "IDEX", "IINT",
	"IHPRegen", "IMPRegen", "IAttackRate", "IMoveRate", "ICritical",
}

// boolKeys maps request filter names to item flag keys, in stage order.
var boolKeys = [][2]string{
	{"eventItemFilter", "IIsEvent"},
	{"testItemFilter", "IIsTest"},
	{"indictFilter", "IIsIndict"},
	{"chargeFilter", "IIsCharge"},
	{"partyDropFilter", "IIsPartyDrop"},
}

// ItemFilters applies the list filters in a fixed stage order: type, level
// range, stackability, boolean flags, the sixteen numeric stat ranges,
// weight range, then quest number. Each restricting stage short-circuits on
// an empty result. Empty or blank parameters are ignored.
type ItemFilters struct {
	params map[string]string

	// Trace, when set, is called once per executed stage.
	Trace func(stage string)
}

// NewItemFilters copies the non-empty entries of params.
func NewItemFilters(params map[string]string) *ItemFilters {
	clean := make(map[string]string, len(params))
	for k, v := range params {
		if k != "" && v != "" {
			clean[k] = v
		}
	}
	return &ItemFilters{params: clean}
}

func (f *ItemFilters) trace(stage string) {
	if f.Trace != nil {
		f.Trace(stage)
	}
}

// Apply runs the filter stages over items and returns the survivors. A nil
// or empty parameter set returns the input unchanged.
func (f *ItemFilters) Apply(items []Item) []Item {
	if len(items) == 0 || len(f.params) == 0 {
		return items
	}

	out := items

	if v, ok := f.params["typeFilter"]; ok {
		f.trace("typeFilter")
		want, err := strconv.Atoi(v)
		if err == nil {
			out = keep(out, func(it *Item) bool { return it.IType == want })
			if len(out) == 0 {
				return nil
			}
		}
	}

	if f.params["levelMin"] != "" || f.params["levelMax"] != "" {
		f.trace("level")
		min := atoiDefault(f.params["levelMin"], 0)
		max := atoiDefault(f.params["levelMax"], 999999)
		out = keep(out, func(it *Item) bool { return it.ILevel >= min && it.ILevel <= max })
		if len(out) == 0 {
			return nil
		}
	}

	if v, ok := f.params["stackableFilter"]; ok {
		// Only the literal 0/1 values select; anything else is ignored,
		// matching the upstream contract.
		if v == "0" || v == "1" {
			f.trace("stackableFilter")
			want, _ := strconv.Atoi(v)
			out = keep(out, func(it *Item) bool { return it.IMaxStack == want })
			if len(out) == 0 {
				return nil
			}
		}
	}

	for _, pair := range boolKeys {
		v, ok := f.params[pair[0]]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		f.trace(pair[0])
		flag := pair[1]
		want := n != 0
		out = keep(out, func(it *Item) bool { return it.Flag(flag) == want })
		if len(out) == 0 {
			return nil
		}
	}

	for _, key := range statKeys {
		if v, ok := f.params[key+"Min"]; ok {
			min, err := strconv.ParseFloat(v, 64)
			if err == nil {
				f.trace(key + "Min")
				k := key
				out = keep(out, func(it *Item) bool { return it.Stat(k) >= min })
				if len(out) == 0 {
					return nil
				}
			}
		}
		if v, ok := f.params[key+"Max"]; ok {
			max, err := strconv.ParseFloat(v, 64)
			if err == nil {
				f.trace(key + "Max")
				k := key
				out = keep(out, func(it *Item) bool { return it.Stat(k) <= max })
				if len(out) == 0 {
					return nil
				}
			}
		}
	}

	if f.params["weightMin"] != "" || f.params["weightMax"] != "" {
		f.trace("weight")
		min := atofDefault(f.params["weightMin"], 0)
		max := atofDefault(f.params["weightMax"], 999999)
		out = keep(out, func(it *Item) bool { return it.IWeight >= min && it.IWeight <= max })
	}

	if v, ok := f.params["questNoFilter"]; ok {
		want, err := strconv.Atoi(v)
		if err == nil {
			f.trace("questNoFilter")
			out = keep(out, func(it *Item) bool { return it.IQuestNo == want })
		}
	}

	return out
}

// MonsterFilters applies the monster list filters: level and experience
// ranges, class, race and attack type equality, then the event/test/show-hp
// flag selectors which only engage on the literal value "1".
type MonsterFilters struct {
	params map[string]string
}

// NewMonsterFilters copies the non-empty entries of params.
func NewMonsterFilters(params map[string]string) *MonsterFilters {
	clean := make(map[string]string, len(params))
	for k, v := range params {
		if k != "" && v != "" {
			clean[k] = v
		}
	}
	return &MonsterFilters{params: clean}
}

// Apply runs the monster filter stages. Unparsable values are skipped.
func (f *MonsterFilters) Apply(monsters []Monster) []Monster {
	if len(monsters) == 0 || len(f.params) == 0 {
		return monsters
	}

	out := monsters

	if n, ok := intParam(f.params, "mLevelMin"); ok {
		out = keepMon(out, func(m *Monster) bool { return m.MLevel >= n })
	}
	if n, ok := intParam(f.params, "mLevelMax"); ok {
		out = keepMon(out, func(m *Monster) bool { return m.MLevel <= n })
	}
	if n, ok := intParam(f.params, "MExpMin"); ok {
		out = keepMon(out, func(m *Monster) bool { return m.MExp >= n })
	}
	if n, ok := intParam(f.params, "MExpMax"); ok {
		out = keepMon(out, func(m *Monster) bool { return m.MExp <= n })
	}
	if n, ok := intParam(f.params, "classFilter"); ok {
		out = keepMon(out, func(m *Monster) bool { return m.MClass == n })
	}
	if n, ok := intParam(f.params, "raceFilter"); ok {
		out = keepMon(out, func(m *Monster) bool { return m.MRaceType == n })
	}
	if n, ok := intParam(f.params, "attackTypeFilter"); ok {
		out = keepMon(out, func(m *Monster) bool { return m.MAttackType == n })
	}
	if f.params["eventMonsterFilter"] == "1" {
		out = keepMon(out, func(m *Monster) bool { return m.MIsEvent })
	}
	if f.params["testMonsterFilter"] == "1" {
		out = keepMon(out, func(m *Monster) bool { return m.MIsTest })
	}
	if f.params["showHpFilter"] == "1" {
		out = keepMon(out, func(m *Monster) bool { return m.MIsShowHp })
	}

	return out
}

func keep(items []Item, pred func(*Item) bool) []Item {
	out := make([]Item, 0, len(items))
	for i := range items {
		if pred(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

func keepMon(monsters []Monster, pred func(*Monster) bool) []Monster {
	out := make([]Monster, 0, len(monsters))
	for i := range monsters {
		if pred(&monsters[i]) {
			out = append(out, monsters[i])
		}
	}
	return out
}

func intParam(params map[string]string, key string) (int, bool) {
	v, ok := params[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func atofDefault(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}
