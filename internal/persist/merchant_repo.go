package persist

import (
	"context"

	"github.com/r2db/catalog/internal/catalog"
)

// MerchantRepo serves the merchant sell lists. A sell list belongs to a
// merchant name record, which a monster row points at through its sell
// merchant id.
type MerchantRepo struct {
	db *DB
}

func NewMerchantRepo(db *DB) *MerchantRepo {
	return &MerchantRepo{db: db}
}

// SellList returns every sell line joined to the merchant NPC carrying it.
func (r *MerchantRepo) SellList(ctx context.Context) ([]catalog.MerchantRow, error) {
	const stmt = `
		SELECT
			a.listid, COALESCE(c.mid, 0), COALESCE(c.mname, ''), COALESCE(c.mclass, 0),
			a.miid, COALESCE(d.iname, ''), a.mprice, a.mpaymenttype
		FROM tblmerchantselllist a
		LEFT JOIN tblmerchantname b ON a.listid = b.mid
		LEFT JOIN dt_monster c ON b.mid = c.msellmerchanid
		LEFT JOIN dt_item d ON a.miid = d.iid
		ORDER BY c.mname DESC`
	rows, err := r.db.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.MerchantRow
	for rows.Next() {
		var m catalog.MerchantRow
		err := rows.Scan(
			&m.ListID, &m.MID, &m.MName, &m.MClass,
			&m.ItemID, &m.ItemName, &m.Price, &m.PaymentType,
		)
		if err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		out = append(out, m)
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}

// MerchantSellersOf returns the merchant NPCs selling one item. Sell lines
// not attached to a live NPC are skipped.
func (r *MerchantRepo) MerchantSellersOf(ctx context.Context, itemID int) ([]catalog.MerchantOffer, error) {
	const stmt = `
		SELECT c.mid, c.mname, a.mprice, a.mpaymenttype
		FROM tblmerchantselllist a
		LEFT JOIN tblmerchantname b ON a.listid = b.mid
		INNER JOIN dt_monster c ON b.mid = c.msellmerchanid
		WHERE a.miid = $1
		ORDER BY c.mid`
	rows, err := r.db.Query(ctx, stmt, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.MerchantOffer
	for rows.Next() {
		var o catalog.MerchantOffer
		if err := rows.Scan(&o.MerchantID, &o.MerchantName, &o.Price, &o.PaymentCode); err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		out = append(out, o)
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}

// MerchantItems returns the inventory of one merchant NPC.
func (r *MerchantRepo) MerchantItems(ctx context.Context, merchantID int) ([]catalog.MerchantItem, error) {
	const stmt = `
		SELECT
			a.listid, a.miid, COALESCE(d.iname, ''), a.mprice, a.mpaymenttype,
			COALESCE(res.rfilename, ''), COALESCE(res.rposx, 0), COALESCE(res.rposy, 0)
		FROM tblmerchantselllist a
		INNER JOIN tblmerchantname b ON a.listid = b.mid
		INNER JOIN dt_monster c ON b.mid = c.msellmerchanid
		LEFT JOIN dt_item d ON a.miid = d.iid
		LEFT JOIN dt_itemresource res ON res.rownerid = a.miid AND res.rtype = 2
		WHERE c.mid = $1
		ORDER BY a.miid`
	rows, err := r.db.Query(ctx, stmt, merchantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.MerchantItem
	for rows.Next() {
		var it catalog.MerchantItem
		err := rows.Scan(
			&it.ListID, &it.ItemID, &it.ItemName, &it.Price, &it.PaymentCode,
			&it.IconFile, &it.IconX, &it.IconY,
		)
		if err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		out = append(out, it)
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}
