package sheets

import (
	"context"
	"strconv"

	"github.com/r2db/catalog/internal/catalog"
	"github.com/r2db/catalog/internal/config"
)

// Names resolves display names of game enums from the reference sheets.
// It satisfies the catalog's AttributeNames and ClassNames interfaces; a
// sheet that cannot be fetched resolves every code to "".
type Names struct {
	client *Client
	cfg    config.SheetsConfig
}

func NewNames(client *Client, cfg config.SheetsConfig) *Names {
	return &Names{client: client, cfg: cfg}
}

// WeaponAttribute returns the name of an attack attribute type.
func (n *Names) WeaponAttribute(ctx context.Context, atype int) string {
	t := n.client.Fetch(ctx, n.cfg.AttributeWeaponURL)
	return t.Lookup("AType", strconv.Itoa(atype), "AName")
}

// ArmorAttribute returns the name of a defense attribute type.
func (n *Names) ArmorAttribute(ctx context.Context, atype int) string {
	t := n.client.Fetch(ctx, n.cfg.AttributeArmorURL)
	return t.Lookup("AType", strconv.Itoa(atype), "AName")
}

// MonsterClass returns the name of a monster class code.
func (n *Names) MonsterClass(ctx context.Context, class int) string {
	t := n.client.Fetch(ctx, n.cfg.MonsterClassURL)
	return t.Lookup("MClass", strconv.Itoa(class), "MName")
}

// MonsterRace returns the description text of a monster race code.
func (n *Names) MonsterRace(ctx context.Context, race int) string {
	t := n.client.Fetch(ctx, n.cfg.MonsterRaceURL)
	return t.Lookup("MRaceType", strconv.Itoa(race), "mDesc")
}

// MonsterLocations returns the spawn places of one monster, in sheet
// order. A row without a map name carries a nil level.
func (n *Names) MonsterLocations(ctx context.Context, mid int) []catalog.MonsterLocation {
	t := n.client.Fetch(ctx, n.cfg.MonsterLocationURL)

	var out []catalog.MonsterLocation
	for _, row := range t.Matches("MID", strconv.Itoa(mid), "mPlaceNmRus", "mMapNmRus") {
		loc := catalog.MonsterLocation{Location: row[0]}
		if row[1] != "" {
			level := row[1]
			loc.Level = &level
		}
		out = append(out, loc)
	}
	return out
}
