package persist

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/r2db/catalog/internal/catalog"
)

const monsterColumns = `
	mid, mname, mlevel, mclass, mexp,
	mhit, mmind, mmaxd,
	mattackrateorg, mmoverateorg, mattackratenew, mmoveratenew,
	mhp, mmp, mmoverange, mgbjtype, mracetype, maitype,
	mcastingdelay, mchaotic,
	msamerace1, msamerace2, msamerace3, msamerace4,
	msightrange, mattackrange, mskillrange, mbodysize,
	mdetecttransf, mdetecttransp, mdetectchao, maiex, mscale,
	misresisttransf <> 0, misevent <> 0, mistest <> 0,
	mhpnew, mmpnew,
	mbuymerchanid, msellmerchanid, mchargemerchanid,
	mtransformweight, mnationop, mhpregen, mmpregen, icontentslv,
	miseventtest <> 0, misshowhp <> 0,
	msupporttype, mvolitionofhonor, mwmapicontype,
	misampliabletermofvalidity <> 0,
	mattacktype, mtranstype,
	mdpv, mmpv, mrpv, mddv, mmdv, mrdv,
	msubddwhencritical, menemysubcriticalhit,
	meventquest <> 0, mescale`

// MonsterRepo serves dt_monster rows, their drop tables and the spawn
// timing data.
type MonsterRepo struct {
	db *DB
}

func NewMonsterRepo(db *DB) *MonsterRepo {
	return &MonsterRepo{db: db}
}

func scanMonster(row pgx.Row) (catalog.Monster, error) {
	var m catalog.Monster
	err := row.Scan(
		&m.MID, &m.MName, &m.MLevel, &m.MClass, &m.MExp,
		&m.MHIT, &m.MMinD, &m.MMaxD,
		&m.MAttackRateOrg, &m.MMoveRateOrg, &m.MAttackRateNew, &m.MMoveRateNew,
		&m.MHP, &m.MMP, &m.MMoveRange, &m.MGbjType, &m.MRaceType, &m.MAiType,
		&m.MCastingDelay, &m.MChaotic,
		&m.MSameRace1, &m.MSameRace2, &m.MSameRace3, &m.MSameRace4,
		&m.MSightRange, &m.MAttackRange, &m.MSkillRange, &m.MBodySize,
		&m.MDetectTransF, &m.MDetectTransP, &m.MDetectChao, &m.MAiEx, &m.MScale,
		&m.MIsResistTransF, &m.MIsEvent, &m.MIsTest,
		&m.MHPNew, &m.MMPNew,
		&m.MBuyMerchanID, &m.MSellMerchanID, &m.MChargeMerchanID,
		&m.MTransformWeight, &m.MNationOp, &m.MHPRegen, &m.MMPRegen, &m.IContentsLv,
		&m.MIsEventTest, &m.MIsShowHp,
		&m.MSupportType, &m.MVolitionOfHonor, &m.MWMapIconType,
		&m.MIsAmpliableTermOfValidity,
		&m.MAttackType, &m.MTransType,
		&m.MDPV, &m.MMPV, &m.MRPV, &m.MDDV, &m.MMDV, &m.MRDV,
		&m.MSubDDWhenCritical, &m.MEnemySubCriticalHit,
		&m.MEventQuest, &m.MEScale,
	)
	if err != nil {
		return m, err
	}
	m.MName = catalog.CleanName(m.MName)
	return m, nil
}

// MonstersByClass returns the monsters of the given classes matching the
// search term, which may be a name fragment or an exact id.
func (r *MonsterRepo) MonstersByClass(ctx context.Context, classes []int, search string) ([]catalog.Monster, error) {
	stmt := `SELECT ` + monsterColumns + `
		FROM dt_monster
		WHERE mclass = ANY($1) AND (mname ILIKE $2 OR mid::text = $3)
		ORDER BY mid`
	rows, err := r.db.Query(ctx, stmt, classes, "%"+search+"%", search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Monster
	for rows.Next() {
		m, err := scanMonster(rows)
		if err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		out = append(out, m)
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}

// MonsterByID fetches one full monster row, nil when absent.
func (r *MonsterRepo) MonsterByID(ctx context.Context, id int) (*catalog.Monster, error) {
	stmt := `SELECT ` + monsterColumns + ` FROM dt_monster WHERE mid = $1`
	m, err := scanMonster(r.db.QueryRow(ctx, stmt, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.db.ScanErr(stmt, err)
	}
	return &m, nil
}

// MonsterName returns the display name of one monster.
func (r *MonsterRepo) MonsterName(ctx context.Context, id int) (string, error) {
	const stmt = `SELECT mname FROM dt_monster WHERE mid = $1`
	var name string
	err := r.db.QueryRow(ctx, stmt, id).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", catalog.ErrNotFound
	}
	if err != nil {
		return "", r.db.ScanErr(stmt, err)
	}
	return name, nil
}

// MonsterModelNo returns the numeric world-model file of a monster, nil
// when the monster has no resource row or the stored name is not numeric.
func (r *MonsterRepo) MonsterModelNo(ctx context.Context, id int) (*int, error) {
	const stmt = `SELECT rfilename FROM dt_monsterresource WHERE rownerid = $1`
	var fileName string
	err := r.db.QueryRow(ctx, stmt, id).Scan(&fileName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.db.ScanErr(stmt, err)
	}
	fileNo, err := strconv.Atoi(strings.TrimSpace(fileName))
	if err != nil {
		return nil, nil
	}
	return &fileNo, nil
}

const dropJoin = `
	FROM dt_monster a
	INNER JOIN dt_monsterdrop b ON a.mid = b.mid
	INNER JOIN tp_dropgroup c ON b.dgroup = c.dgroup
	INNER JOIN dt_dropgroup d ON c.dgroup = d.dgroup
	INNER JOIN dt_dropitem e ON d.ddrop = e.ddrop
	INNER JOIN dt_item f ON e.ditem = f.iid AND f.iisevent = 0
	LEFT JOIN dt_itemresource g ON g.rownerid = f.iid AND g.rtype = 2`

// MonsterDrops returns the drop lines of one monster, de-duplicated by
// item. Duplicate lines raise the count and sum the quantity.
func (r *MonsterRepo) MonsterDrops(ctx context.Context, id int) ([]catalog.MonsterDrop, error) {
	stmt := `
		SELECT
			a.mid, a.mname, a.mclass,
			b.ddroptype, c.dpercent::float8, c.dgroup, COALESCE(c.dname, ''),
			d.ddrop, e.dpercent::float8, e.ditem, f.iname, e.dnumber,
			COALESCE(g.rfilename, ''), COALESCE(g.rposx, 0), COALESCE(g.rposy, 0)` +
		dropJoin + `
		WHERE a.mid = $1
		ORDER BY e.ditem`
	rows, err := r.db.Query(ctx, stmt, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		out   []catalog.MonsterDrop
		index = map[int]int{}
	)
	for rows.Next() {
		var (
			d            catalog.MonsterDrop
			mclass       int
			file         string
			posX, posY   int
		)
		err := rows.Scan(
			&d.MID, &d.MName, &mclass,
			&d.DropType, &d.GroupChance, &d.DropGroup, &d.GroupName,
			&d.DropID, &d.ItemChance, &d.ItemID, &d.ItemName, &d.Quantity,
			&file, &posX, &posY,
		)
		if err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		if i, ok := index[d.ItemID]; ok {
			out[i].Count++
			out[i].Quantity += d.Quantity
			continue
		}
		d.MClassCode = mclass
		d.IconFile, d.IconX, d.IconY = file, posX, posY
		d.Count = 1
		index[d.ItemID] = len(out)
		out = append(out, d)
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}

// DropSourcesByItem returns the monsters dropping one item, de-duplicated
// by (monster, drop group). Duplicate lines only raise the count.
func (r *MonsterRepo) DropSourcesByItem(ctx context.Context, itemID int) ([]catalog.DropSource, error) {
	stmt := `
		SELECT
			a.mid, a.mname, a.mclass,
			b.ddroptype, c.dpercent::float8, c.dgroup, COALESCE(c.dname, ''),
			d.ddrop, e.dpercent::float8, e.ditem, f.iname, e.dnumber` +
		dropJoin + `
		WHERE e.ditem = $1
		ORDER BY a.mid`
	rows, err := r.db.Query(ctx, stmt, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type srcKey struct{ mid, group int }
	var (
		out   []catalog.DropSource
		index = map[srcKey]int{}
	)
	for rows.Next() {
		var (
			d      catalog.DropSource
			mclass int
		)
		err := rows.Scan(
			&d.MID, &d.MName, &mclass,
			&d.DropType, &d.GroupChance, &d.DropGroup, &d.GroupName,
			&d.DropID, &d.ItemChance, &d.ItemID, &d.ItemName, &d.Quantity,
		)
		if err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		key := srcKey{d.MID, d.DropGroup}
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		d.MClassCode = mclass
		d.Count = 1
		index[key] = len(out)
		out = append(out, d)
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}

// RespawnTick returns the spawn timer of a monster spot, zeroes when the
// monster has no spot row.
func (r *MonsterRepo) RespawnTick(ctx context.Context, id int, isEvent bool) (tick, varTick int, err error) {
	const stmt = `SELECT mtick, mvarrespawntick FROM tblmonsterspot WHERE mmid = $1 AND misevent = $2`
	event := 0
	if isEvent {
		event = 1
	}
	err = r.db.QueryRow(ctx, stmt, id, event).Scan(&tick, &varTick)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, r.db.ScanErr(stmt, err)
	}
	return tick, varTick, nil
}

// MonsterAbnormalResists returns the abnormal effects a monster resists.
func (r *MonsterRepo) MonsterAbnormalResists(ctx context.Context, id int) ([]catalog.AbnormalResist, error) {
	const stmt = `
		SELECT DISTINCT
			a.mid, COALESCE(b.mname, ''), a.aid,
			COALESCE(c.adesc, ''), COALESCE(c1.atype, 0), COALESCE(c1.aname, ''),
			COALESCE(d1.sid, 0), COALESCE(d1.sname, ''),
			COALESCE(v1.mspid, 0), COALESCE(v1.mname, ''), COALESCE(v1.mdesc, ''),
			COALESCE(v1.mspritefile, ''), v1.mspritex, v1.mspritey
		FROM dt_monsterabnormalresist a
		LEFT JOIN dt_monster b ON b.mid = a.mid
		LEFT JOIN dt_abnormal c ON c.aid = a.aid
		LEFT JOIN tp_abnormaltype c1 ON c1.atype = c.atype
		LEFT JOIN dt_skillabnormal d ON c.aid = d.abnormalid
		LEFT JOIN dt_skill d1 ON d.sid = d1.sid
		LEFT JOIN dt_skillpackskill v ON d1.sid = v.msid
		LEFT JOIN dt_skillpack v1 ON v.mspid = v1.mspid
		WHERE a.mid = $1
		ORDER BY a.mid`
	rows, err := r.db.Query(ctx, stmt, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.AbnormalResist
	for rows.Next() {
		var ar catalog.AbnormalResist
		err := rows.Scan(
			&ar.OwnerID, &ar.OwnerName, &ar.AID,
			&ar.ADesc, &ar.AType, &ar.ATypeDesc,
			&ar.SID, &ar.SName,
			&ar.SPID, &ar.SkillPackName, &ar.SkillPackDesc,
			&ar.SpriteFile, &ar.SpriteX, &ar.SpriteY,
		)
		if err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		ar.ADesc = catalog.CleanDescription(ar.ADesc)
		ar.ATypeDesc = catalog.CleanDescription(ar.ATypeDesc)
		ar.SkillPackDesc = catalog.CleanDescription(ar.SkillPackDesc)
		out = append(out, ar)
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}

// MonsterAttributeAdd returns the elemental attack of a monster, nil when
// none.
func (r *MonsterRepo) MonsterAttributeAdd(ctx context.Context, id int) (*catalog.AttributeEffect, error) {
	const stmt = `
		SELECT a.aid, b.atype, b.alevel, b.adicedamage, b.adamage
		FROM dt_monsterattributeadd a
		INNER JOIN dt_attributeadd b ON a.aid = b.aid
		WHERE a.mid = $1`
	return r.scanAttribute(ctx, stmt, id)
}

// MonsterAttributeResist returns the elemental defense of a monster, nil
// when none.
func (r *MonsterRepo) MonsterAttributeResist(ctx context.Context, id int) (*catalog.AttributeEffect, error) {
	const stmt = `
		SELECT a.aid, b.atype, b.alevel, b.adicedamage, b.adamage
		FROM dt_monsterattributeresist a
		INNER JOIN dt_attributeresist b ON a.aid = b.aid
		WHERE a.mid = $1`
	return r.scanAttribute(ctx, stmt, id)
}

func (r *MonsterRepo) scanAttribute(ctx context.Context, stmt string, id int) (*catalog.AttributeEffect, error) {
	var a catalog.AttributeEffect
	err := r.db.QueryRow(ctx, stmt, id).Scan(&a.AID, &a.AType, &a.ALevel, &a.DiceDamage, &a.Damage)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.db.ScanErr(stmt, err)
	}
	return &a, nil
}

// MonsterProtect returns the slain protection of a monster, nil when none.
func (r *MonsterRepo) MonsterProtect(ctx context.Context, id int) (*catalog.Protect, error) {
	const stmt = `
		SELECT a.pid, c.sid, e.sname, c.slevel,
		       c.sdpv, c.smpv, c.srpv, c.sddv, c.smdv, c.srdv
		FROM dt_monsterprotect a
		INNER JOIN dt_protect c ON a.pid = c.sid
		INNER JOIN tp_slaintype e ON c.stype = e.stype
		WHERE a.mid = $1`
	var p catalog.Protect
	err := r.db.QueryRow(ctx, stmt, id).Scan(
		&p.PID, &p.SID, &p.SName, &p.SLevel,
		&p.SDPV, &p.SMPV, &p.SRPV, &p.SDDV, &p.SMDV, &p.SRDV,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.db.ScanErr(stmt, err)
	}
	return &p, nil
}

// MonsterSlain returns the slain attack bonus of a monster, nil when none.
func (r *MonsterRepo) MonsterSlain(ctx context.Context, id int) (*catalog.Slain, error) {
	const stmt = `
		SELECT a.sid, b.stype, c.sname, b.slevel,
		       b.shitplus, b.sddplus, b.srhitplus, b.srddplus
		FROM dt_monsterslain a
		INNER JOIN dt_slain b ON a.sid = b.sid
		INNER JOIN tp_slaintype c ON b.stype = c.stype
		WHERE a.mid = $1`
	var s catalog.Slain
	err := r.db.QueryRow(ctx, stmt, id).Scan(
		&s.SID, &s.SType, &s.SName, &s.SLevel,
		&s.HitPlus, &s.DDPlus, &s.RHitPlus, &s.RDDPlus,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.db.ScanErr(stmt, err)
	}
	return &s, nil
}
