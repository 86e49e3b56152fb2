package persist

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/r2db/catalog/internal/catalog"
)

// itemColumns is the full projection of dt_item. Smallint flags are
// compared against zero so they scan straight into bools, and numerics
// that the API exposes as floats are cast explicitly.
const itemColumns = `
	iid, iname, itype, ilevel,
	idhit, iddd, irhit, irdd, imhit, imdd,
	ihpplus, impplus, istr, idex, iint,
	imaxstack, iweight::float8, iusetype, iusenum, irecycle,
	ihpregen, impregen, iattackrate, imoverate, icritical,
	itermofvalidity, itermofvaliditymi, COALESCE(idesc, ''), istatus,
	ifakeid, COALESCE(ifakename, ''), COALESCE(iusemsg, ''), irange,
	COALESCE(iuseclass, ''), idropeffect, iuselevel,
	iuseeternal <> 0, iusedelay, iuseinattack <> 0,
	iisevent <> 0, iisindict <> 0, iaddweight::float8, isubtype,
	iischarge <> 0, inationop, ipshopitemtype, iquestno, iistest <> 0,
	iquestneedcnt, icontentslv, iisconfirm <> 0, iissealable <> 0,
	iaddddwhencritical, msealremovalneedcnt,
	mispracticalperiod <> 0, misreceivetown <> 0, iisreinforcedestroy <> 0,
	iaddpotionrestore,
	iaddmaxhpwhentransform, iaddmaxmpwhentransform,
	iaddattackratewhentransform, iaddmoveratewhentransform,
	isupporttype, itermofvaliditylv, misuseableutgwsvr <> 0,
	iaddshortattackrange, iaddlongattackrange, iweaponpoisontype,
	idpv, impv, irpv, iddv, imdv, irdv,
	ihdpv, ihmpv, ihrpv, ihddv, ihmdv, ihrdv,
	isubddwhencritical, igetitemfeedback, ienemysubcriticalhit,
	iispartydrop <> 0, imaxbeadholecount, isubtypeoption,
	misdeletearenasvr <> 0`

// ItemRepo serves the dt_item projection and the side tables hanging off
// an item detail page.
type ItemRepo struct {
	db     *DB
	labels catalog.BeadLabels
}

func NewItemRepo(db *DB, labels catalog.BeadLabels) *ItemRepo {
	return &ItemRepo{db: db, labels: labels}
}

func scanItem(row pgx.Row) (catalog.Item, error) {
	var it catalog.Item
	err := row.Scan(
		&it.IID, &it.IName, &it.IType, &it.ILevel,
		&it.IDHIT, &it.IDDD, &it.IRHIT, &it.IRDD, &it.IMHIT, &it.IMDD,
		&it.IHPPlus, &it.IMPPlus, &it.ISTR, &it.IDEX, &it.IINT,
		&it.IMaxStack, &it.IWeight, &it.IUseType, &it.IUseNum, &it.IRecycle,
		&it.IHPRegen, &it.IMPRegen, &it.IAttackRate, &it.IMoveRate, &it.ICritical,
		&it.ITermOfValidity, &it.ITermOfValidityMi, &it.IDesc, &it.IStatus,
		&it.IFakeID, &it.IFakeName, &it.IUseMsg, &it.IRange,
		&it.IUseClass, &it.IDropEffect, &it.IUseLevel,
		&it.IUseEternal, &it.IUseDelay, &it.IUseInAttack,
		&it.IIsEvent, &it.IIsIndict, &it.IAddWeight, &it.ISubType,
		&it.IIsCharge, &it.INationOp, &it.IPShopItemType, &it.IQuestNo, &it.IIsTest,
		&it.IQuestNeedCnt, &it.IContentsLv, &it.IIsConfirm, &it.IIsSealable,
		&it.IAddDDWhenCritical, &it.MSealRemovalNeedCnt,
		&it.MIsPracticalPeriod, &it.MIsReceiveTown, &it.IIsReinforceDestroy,
		&it.IAddPotionRestore,
		&it.IAddMaxHpWhenTransform, &it.IAddMaxMpWhenTransform,
		&it.IAddAttackRateWhenTransform, &it.IAddMoveRateWhenTransform,
		&it.ISupportType, &it.ITermOfValidityLv, &it.MIsUseableUTGWSvr,
		&it.IAddShortAttackRange, &it.IAddLongAttackRange, &it.IWeaponPoisonType,
		&it.IDPV, &it.IMPV, &it.IRPV, &it.IDDV, &it.IMDV, &it.IRDV,
		&it.IHDPV, &it.IHMPV, &it.IHRPV, &it.IHDDV, &it.IHMDV, &it.IHRDV,
		&it.ISubDDWhenCritical, &it.IGetItemFeedback, &it.IEnemySubCriticalHit,
		&it.IIsPartyDrop, &it.IMaxBeadHoleCount, &it.ISubTypeOption,
		&it.MIsDeleteArenaSvr,
	)
	if err != nil {
		return it, err
	}
	it.IDesc = catalog.CleanDescription(it.IDesc)
	return it, nil
}

// ItemIDsByType returns the ids of items of the given types whose name
// matches search, ordered by id.
func (r *ItemRepo) ItemIDsByType(ctx context.Context, types []int, search string) ([]int, error) {
	const stmt = `
		SELECT iid FROM dt_item
		WHERE itype = ANY($1) AND iname ILIKE $2
		ORDER BY iid`
	rows, err := r.db.Query(ctx, stmt, types, "%"+search+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		ids = append(ids, id)
	}
	return ids, r.db.ScanErr(stmt, rows.Err())
}

// ItemsByID fetches the full rows of the given ids, preserving id order.
func (r *ItemRepo) ItemsByID(ctx context.Context, ids []int) ([]catalog.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	stmt := `SELECT ` + itemColumns + ` FROM dt_item WHERE iid = ANY($1)`
	rows, err := r.db.Query(ctx, stmt, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int]catalog.Item, len(ids))
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		byID[it.IID] = it
	}
	if err := rows.Err(); err != nil {
		return nil, r.db.ScanErr(stmt, err)
	}

	items := make([]catalog.Item, 0, len(byID))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			items = append(items, it)
		}
	}
	return items, nil
}

// ItemName returns the display name of one item.
func (r *ItemRepo) ItemName(ctx context.Context, id int) (string, error) {
	const stmt = `SELECT iname FROM dt_item WHERE iid = $1`
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

// IconResources returns the inventory-icon sprite refs (rtype 2) of the
// given items, keyed by owner id.
func (r *ItemRepo) IconResources(ctx context.Context, ids []int) (map[int]catalog.SpriteRef, error) {
	if len(ids) == 0 {
		return map[int]catalog.SpriteRef{}, nil
	}
	const stmt = `
		SELECT rownerid, rfilename, rposx, rposy
		FROM dt_itemresource
		WHERE rownerid = ANY($1) AND rtype = 2`
	rows, err := r.db.Query(ctx, stmt, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]catalog.SpriteRef)
	for rows.Next() {
		var ref catalog.SpriteRef
		if err := rows.Scan(&ref.OwnerID, &ref.FileName, &ref.PosX, &ref.PosY); err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		out[ref.OwnerID] = ref
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}

// ModelResource returns the world-model sprite ref (rtype 0) of one item,
// nil when there is none.
func (r *ItemRepo) ModelResource(ctx context.Context, id int) (*catalog.SpriteRef, error) {
	const stmt = `
		SELECT rownerid, rfilename, rposx, rposy
		FROM dt_itemresource
		WHERE rownerid = $1 AND rtype = 0`
	var ref catalog.SpriteRef
	err := r.db.QueryRow(ctx, stmt, id).Scan(&ref.OwnerID, &ref.FileName, &ref.PosX, &ref.PosY)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.db.ScanErr(stmt, err)
	}
	return &ref, nil
}

// SpecificProc returns the special on-use behavior of an item, nil when
// there is none.
func (r *ItemRepo) SpecificProc(ctx context.Context, id int) (*catalog.SpecificProc, error) {
	const stmt = `
		SELECT
			a.miid, COALESCE(c.iname, ''), a.mprocno, COALESCE(b.mprocdesc, ''),
			a.maparam, COALESCE(b.maparamdesc, ''),
			a.mbparam, COALESCE(b.mbparamdesc, ''),
			a.mcparam, COALESCE(b.mcparamdesc, ''),
			a.mdparam, COALESCE(b.mdparamdesc, '')
		FROM tblspecificprocitem a
		LEFT JOIN tp_specificprocitemtype b ON b.mprocno = a.mprocno
		LEFT JOIN dt_item c ON c.iid = a.miid
		WHERE a.miid = $1`
	var p catalog.SpecificProc
	err := r.db.QueryRow(ctx, stmt, id).Scan(
		&p.ItemID, &p.ItemName, &p.ProcNo, &p.ProcDesc,
		&p.AParam, &p.AParamDesc,
		&p.BParam, &p.BParamDesc,
		&p.CParam, &p.CParamDesc,
		&p.DParam, &p.DParamDesc,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.db.ScanErr(stmt, err)
	}
	return &p, nil
}

// ItemAbnormalResists returns the abnormal effects an item protects
// against, joined through to the applying skill pack.
func (r *ItemRepo) ItemAbnormalResists(ctx context.Context, id int) ([]catalog.AbnormalResist, error) {
	const stmt = `
		SELECT DISTINCT
			a.iid, COALESCE(b.iname, ''), a.aid,
			COALESCE(c.adesc, ''), COALESCE(c1.atype, 0), COALESCE(c1.aname, ''),
			COALESCE(d1.sid, 0), COALESCE(d1.sname, ''),
			COALESCE(v1.mspid, 0), COALESCE(v1.mname, ''), COALESCE(v1.mdesc, ''),
			COALESCE(v1.mspritefile, ''), v1.mspritex, v1.mspritey
		FROM dt_itemabnormalresist a
		LEFT JOIN dt_item b ON b.iid = a.iid
		LEFT JOIN dt_abnormal c ON c.aid = a.aid
		LEFT JOIN tp_abnormaltype c1 ON c1.atype = c.atype
		LEFT JOIN dt_skillabnormal d ON c.aid = d.abnormalid
		LEFT JOIN dt_skill d1 ON d.sid = d1.sid
		LEFT JOIN dt_skillpackskill v ON d1.sid = v.msid
		LEFT JOIN dt_skillpack v1 ON v.mspid = v1.mspid
		WHERE a.iid = $1
		ORDER BY a.iid`
	return r.scanAbnormalResists(ctx, stmt, id)
}

func (r *ItemRepo) scanAbnormalResists(ctx context.Context, stmt string, id int) ([]catalog.AbnormalResist, error) {
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

// RuneBead returns the joined bead record of a rune item, with the check
// group and positional enums already labeled; nil when the item carries no
// bead.
func (r *ItemRepo) RuneBead(ctx context.Context, id int) (*catalog.BeadEffect, error) {
	const stmt = `
		SELECT
			a.mbeadno, COALESCE(c.mname, ''), c.mbeadtype, COALESCE(d1.mdesc, ''),
			c.mchkgroup, c.mpercent::float8, c.mapplytarget,
			c.mparama, COALESCE(d1.mdesca, ''),
			c.mparamb, COALESCE(d1.mdescb, ''),
			c.mparamc, COALESCE(d1.mdescc, ''),
			c.mparamd, COALESCE(d1.mdescd, ''),
			c.mparame, COALESCE(d1.mdesce, ''),
			d.mtargetipos, d.mprob::float8, d.mgroup, d.mitemsubtype,
			COALESCE(a2.mmaxholecount, 0), COALESCE(a2.mholecount, 0),
			COALESCE(a2.mprob, 0)::float8, COALESCE(a1.mid, 0)
		FROM dt_itembeadeffect a
		LEFT JOIN dt_itembeadmodule a1 ON a.iid = a1.iid
		LEFT JOIN tblbeadholeprob a2 ON a.iid = a2.iid
		INNER JOIN dt_item b ON a.iid = b.iid
		INNER JOIN dt_beadeffect c ON a.mbeadno = c.mbeadno
		INNER JOIN dt_bead d ON a.iid = d.iid
		INNER JOIN tp_beadtype d1 ON d1.mbeadtype = c.mbeadtype
		WHERE a.iid = $1`
	var (
		b                  catalog.BeadEffect
		chkGroup, applyTgt int
		targetIPos         int
	)
	err := r.db.QueryRow(ctx, stmt, id).Scan(
		&b.BeadNo, &b.Name, &b.BeadType, &b.BeadTypeDesc,
		&chkGroup, &b.Percent, &applyTgt,
		&b.ParamA, &b.ParamADesc,
		&b.ParamB, &b.ParamBDesc,
		&b.ParamC, &b.ParamCDesc,
		&b.ParamD, &b.ParamDDesc,
		&b.ParamE, &b.ParamEDesc,
		&targetIPos, &b.Prob, &b.Group, &b.ItemSubType,
		&b.MaxHoleCount, &b.HoleCount, &b.HoleProb, &b.ModuleID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.db.ScanErr(stmt, err)
	}
	b.ChkGroup = r.labels.ChkGroup(chkGroup)
	b.ApplyTarget = r.labels.ApplyTarget(applyTgt)
	b.TargetIPos = r.labels.TargetIPos(targetIPos)
	return &b, nil
}

// BeadModule returns the module socketed into an item, nil when none.
func (r *ItemRepo) BeadModule(ctx context.Context, id int) (*catalog.BeadModule, error) {
	const stmt = `
		SELECT
			a.mid, c.mtype, COALESCE(c1.mname, ''), COALESCE(c1.mdesc, ''),
			c.mlevel,
			c.maparam, COALESCE(c1.maparamname, ''),
			c.mbparam, COALESCE(c1.mbparamname, ''),
			c.mcparam, COALESCE(c1.mcparamname, '')
		FROM dt_itembeadmodule a
		INNER JOIN dt_item b ON a.iid = b.iid
		INNER JOIN dt_module c ON a.mid = c.mid
		INNER JOIN tp_moduletype c1 ON c.mtype = c1.mtype
		WHERE a.iid = $1`
	var m catalog.BeadModule
	err := r.db.QueryRow(ctx, stmt, id).Scan(
		&m.ModuleID, &m.Type, &m.TypeName, &m.TypeDesc,
		&m.Level,
		&m.AParam, &m.AParamName,
		&m.BParam, &m.BParamName,
		&m.CParam, &m.CParamName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.db.ScanErr(stmt, err)
	}
	return &m, nil
}

// BeadHoleProbs returns the hole-count probability table of an item,
// ordered by max then current hole count.
func (r *ItemRepo) BeadHoleProbs(ctx context.Context, id int) ([]catalog.HoleProb, error) {
	const stmt = `
		SELECT b.iname, a.mmaxholecount, a.mholecount, a.mprob::float8
		FROM tblbeadholeprob a
		INNER JOIN dt_item b ON a.iid = b.iid
		WHERE a.iid = $1
		ORDER BY a.mmaxholecount, a.mholecount`
	rows, err := r.db.Query(ctx, stmt, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.HoleProb
	for rows.Next() {
		var h catalog.HoleProb
		if err := rows.Scan(&h.ItemName, &h.MaxHoleCount, &h.HoleCount, &h.Prob); err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		out = append(out, h)
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}

// ItemAttributeAdd returns the elemental attack bonus of an item, nil when
// none.
func (r *ItemRepo) ItemAttributeAdd(ctx context.Context, id int) (*catalog.AttributeEffect, error) {
	const stmt = `
		SELECT a.aid, b.atype, b.alevel, b.adicedamage, b.adamage
		FROM dt_itemattributeadd a
		INNER JOIN dt_attributeadd b ON a.aid = b.aid
		WHERE a.iid = $1`
	return r.scanAttribute(ctx, stmt, id)
}

// ItemAttributeResist returns the elemental defense of an item, nil when
// none.
func (r *ItemRepo) ItemAttributeResist(ctx context.Context, id int) (*catalog.AttributeEffect, error) {
	const stmt = `
		SELECT a.aid, b.atype, b.alevel, b.adicedamage, b.adamage
		FROM dt_itemattributeresist a
		INNER JOIN dt_attributeresist b ON a.aid = b.aid
		WHERE a.iid = $1`
	return r.scanAttribute(ctx, stmt, id)
}

func (r *ItemRepo) scanAttribute(ctx context.Context, stmt string, id int) (*catalog.AttributeEffect, error) {
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

// ItemProtect returns the slain-type protection of an item, nil when none.
func (r *ItemRepo) ItemProtect(ctx context.Context, id int) (*catalog.Protect, error) {
	const stmt = `
		SELECT a.pid, c.sid, e.sname, c.slevel,
		       c.sdpv, c.smpv, c.srpv, c.sddv, c.smdv, c.srdv
		FROM dt_itemprotect a
		INNER JOIN dt_protect c ON a.pid = c.sid
		INNER JOIN tp_slaintype e ON c.stype = e.stype
		WHERE a.iid = $1`
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

// ItemSlain returns the slain-type attack bonus of an item, nil when none.
func (r *ItemRepo) ItemSlain(ctx context.Context, id int) (*catalog.Slain, error) {
	const stmt = `
		SELECT a.sid, b.stype, c.sname, b.slevel,
		       b.shitplus, b.sddplus, b.srhitplus, b.srddplus
		FROM dt_itemslain a
		INNER JOIN dt_slain b ON a.sid = b.sid
		INNER JOIN tp_slaintype c ON b.stype = c.stype
		WHERE a.iid = $1`
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

// ItemPenalties returns the per-class stat penalties of an item.
func (r *ItemRepo) ItemPenalties(ctx context.Context, id int) ([]catalog.Penalty, error) {
	const stmt = `
		SELECT
			iuseclass, idhit, iddd, irhit, irdd, imhit, imdd,
			ihpplus, impplus, istr, idex, iint, ihpregen, impregen,
			iattackrate, imoverate, icritical, irange,
			iaddweight::float8, iaddpotionrestore,
			idpv, impv, irpv, iddv, imdv, irdv,
			ihdpv, ihmpv, ihrpv, ihddv, ihmdv, ihrdv
		FROM dt_itempanalty
		WHERE iid = $1`
	rows, err := r.db.Query(ctx, stmt, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Penalty
	for rows.Next() {
		var p catalog.Penalty
		err := rows.Scan(
			&p.UseClass, &p.IDHIT, &p.IDDD, &p.IRHIT, &p.IRDD, &p.IMHIT, &p.IMDD,
			&p.IHPPlus, &p.IMPPlus, &p.ISTR, &p.IDEX, &p.IINT, &p.IHPRegen, &p.IMPRegen,
			&p.IAttackRate, &p.IMoveRate, &p.ICritical, &p.IRange,
			&p.IAddWeight, &p.IAddPotionRestore,
			&p.IDPV, &p.IMPV, &p.IRPV, &p.IDDV, &p.IMDV, &p.IRDV,
			&p.IHDPV, &p.IHMPV, &p.IHRPV, &p.IHDDV, &p.IHMDV, &p.IHRDV,
		)
		if err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		out = append(out, p)
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}
