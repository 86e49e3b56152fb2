package persist

import (
	"context"

	"github.com/r2db/catalog/internal/catalog"
)

// CraftRepo serves the refine recipes producing and consuming items.
type CraftRepo struct {
	db *DB
}

func NewCraftRepo(db *DB) *CraftRepo {
	return &CraftRepo{db: db}
}

// RecipeFor returns the material lines of the recipe producing an item,
// de-duplicated by material.
func (r *CraftRepo) RecipeFor(ctx context.Context, id int) ([]catalog.CraftEntry, error) {
	const stmt = `
		SELECT
			a.rid, a.ritemid0, COALESCE(i0.iname, ''),
			b.ritemid, COALESCE(i1.iname, ''),
			ROUND(a.rsuccess::numeric, 1)::float8, a.riscreatecnt, b.rorderno,
			COALESCE(res.rfilename, ''), COALESCE(res.rposx, 0), COALESCE(res.rposy, 0)
		FROM dt_refine a
		INNER JOIN dt_refinematerial b ON a.rid = b.rid
		LEFT JOIN dt_item i0 ON a.ritemid0 = i0.iid
		LEFT JOIN dt_item i1 ON b.ritemid = i1.iid
		LEFT JOIN dt_itemresource res ON res.rownerid = b.ritemid AND res.rtype = 2
		WHERE a.ritemid0 = $1
		ORDER BY b.rorderno`
	rows, err := r.db.Query(ctx, stmt, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		out  []catalog.CraftEntry
		seen = map[int]bool{}
	)
	for rows.Next() {
		var e catalog.CraftEntry
		err := rows.Scan(
			&e.RecipeID, &e.ResultID, &e.ResultName,
			&e.MaterialID, &e.MaterialName,
			&e.Success, &e.CreateCnt, &e.OrderNo,
			&e.IconFile, &e.IconX, &e.IconY,
		)
		if err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		if seen[e.MaterialID] {
			continue
		}
		seen[e.MaterialID] = true
		out = append(out, e)
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}

// UsedIn returns the recipes consuming an item as a material,
// de-duplicated by result.
func (r *CraftRepo) UsedIn(ctx context.Context, id int) ([]catalog.CraftUse, error) {
	const stmt = `
		SELECT
			a.rid, a.ritemid0, COALESCE(i0.iname, ''),
			ROUND(a.rsuccess::numeric, 1)::float8, a.riscreatecnt,
			COALESCE(res.rfilename, ''), COALESCE(res.rposx, 0), COALESCE(res.rposy, 0)
		FROM dt_refine a
		INNER JOIN dt_refinematerial b ON a.rid = b.rid
		LEFT JOIN dt_item i0 ON a.ritemid0 = i0.iid
		LEFT JOIN dt_itemresource res ON res.rownerid = a.ritemid0 AND res.rtype = 2
		WHERE b.ritemid = $1
		ORDER BY a.ritemid0`
	rows, err := r.db.Query(ctx, stmt, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		out  []catalog.CraftUse
		seen = map[int]bool{}
	)
	for rows.Next() {
		var u catalog.CraftUse
		err := rows.Scan(
			&u.RecipeID, &u.ResultID, &u.ResultName,
			&u.Success, &u.CreateCnt,
			&u.IconFile, &u.IconX, &u.IconY,
		)
		if err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		if seen[u.ResultID] {
			continue
		}
		seen[u.ResultID] = true
		out = append(out, u)
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}
