package persist

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/r2db/catalog/internal/catalog"
)

// SkillRepo serves the skill index, the joined skill detail rows and the
// skill graph hanging off items.
type SkillRepo struct {
	db *DB
}

func NewSkillRepo(db *DB) *SkillRepo {
	return &SkillRepo{db: db}
}

// SkillList returns every skill joined to the pack carrying its sprite.
func (r *SkillRepo) SkillList(ctx context.Context) ([]catalog.SkillListEntry, error) {
	const stmt = `
		SELECT
			COALESCE(c.sid, 0), COALESCE(c.sname, ''),
			a.mspid, a.mname, COALESCE(a.mdesc, ''),
			COALESCE(a.mspritefile, ''), a.mspritex, a.mspritey
		FROM dt_skillpack a
		LEFT JOIN dt_skillpackskill b ON a.mspid = b.mspid
		LEFT JOIN dt_skill c ON b.msid = c.sid
		ORDER BY c.sid`
	rows, err := r.db.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.SkillListEntry
	for rows.Next() {
		var e catalog.SkillListEntry
		err := rows.Scan(
			&e.SID, &e.SName,
			&e.SPID, &e.PackName, &e.PackDesc,
			&e.SpriteFile, &e.SpriteX, &e.SpriteY,
		)
		if err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		out = append(out, e)
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}

// SkillRows returns the joined detail rows of one skill. A skill granted by
// several items or carrying several abnormals yields several rows; optional
// joins come back as nil sections.
func (r *SkillRepo) SkillRows(ctx context.Context, id int) ([]catalog.SkillRow, error) {
	const stmt = `
		SELECT
			a.sid, a.sname, COALESCE(a.sdesc, ''),
			a.shitplus, a.smpperuse, a.sskilltype, COALESCE(b.sdesc, ''),
			a.shpperuse, a.schaouse, a.sapplyradius, a.sapplyrace,
			a.scastingdelay, a.sconsumeitem, a.sactivetype, a.sanimation,
			a.scastingspeed, a.sskilleffect, a.scooltime,
			a.sconsumeitem2, a.sconsumeitemcnt2,
			c.iid, COALESCE(c.iname, ''), c.iuselevel, COALESCE(c.iuseclass, ''),
			res.rfilename, res.rposx, res.rposy,
			e1.mspid, COALESCE(e1.mdesc, ''),
			f1.aid, COALESCE(f1.adesc, ''), f1.atype, f1.alevel, f1.aeffect,
			g1.mid, g1.mtype, COALESCE(g2.mname, ''), COALESCE(g2.mdesc, ''), g1.mlevel,
			g1.maparam, g2.maparamname,
			g1.mbparam, g2.mbparamname,
			g1.mcparam, g2.mcparamname
		FROM dt_skill a
		LEFT JOIN tp_skilltype b ON a.sskilltype = b.sskilltype
		LEFT JOIN dt_itemskill c0 ON a.sid = c0.sid
		LEFT JOIN dt_item c ON c0.iid = c.iid
		LEFT JOIN dt_itemresource res ON res.rownerid = c.iid AND res.rtype = 2
		LEFT JOIN dt_skillpackskill e ON a.sid = e.msid
		LEFT JOIN dt_skillpack e1 ON e.mspid = e1.mspid
		LEFT JOIN dt_skillabnormal f ON a.sid = f.sid
		LEFT JOIN dt_abnormal f1 ON f.abnormalid = f1.aid
		LEFT JOIN dt_abnormalmodule g ON f1.aid = g.aid
		LEFT JOIN dt_module g1 ON g.mid = g1.mid
		LEFT JOIN tp_moduletype g2 ON g1.mtype = g2.mtype
		WHERE a.sid = $1`
	rows, err := r.db.Query(ctx, stmt, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.SkillRow
	for rows.Next() {
		var (
			row catalog.SkillRow

			itemID       *int
			itemName     string
			itemUseLevel *int
			itemUseClass string
			resFile      *string
			resX, resY   *int

			packID   *int
			packDesc string

			abAID                       *int
			abDesc                      string
			abType, abLevel, abEffect   *int

			modID, modType            *int
			modName, modDesc          string
			modLevel                  *int
			paramA, paramB, paramC    *int
			paramAName, paramBName, paramCName *string
		)
		err := rows.Scan(
			&row.SID, &row.Name, &row.Desc,
			&row.HitPlus, &row.MPPerUse, &row.SkillType, &row.TypeDesc,
			&row.HPPerUse, &row.ChaoUse, &row.ApplyRadius, &row.ApplyRace,
			&row.CastingDelay, &row.ConsumeItem, &row.ActiveType, &row.Animation,
			&row.CastingSpeed, &row.SkillEffect, &row.CoolTime,
			&row.ConsumeItem2, &row.ConsumeItemCnt2,
			&itemID, &itemName, &itemUseLevel, &itemUseClass,
			&resFile, &resX, &resY,
			&packID, &packDesc,
			&abAID, &abDesc, &abType, &abLevel, &abEffect,
			&modID, &modType, &modName, &modDesc, &modLevel,
			&paramA, &paramAName,
			&paramB, &paramBName,
			&paramC, &paramCName,
		)
		if err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		row.Name = catalog.CleanName(row.Name)
		row.Desc = catalog.CleanDescription(row.Desc)

		if itemID != nil {
			row.ItemID = *itemID
			row.ItemName = itemName
			row.ItemUseClass = itemUseClass
			if itemUseLevel != nil {
				row.ItemUseLevel = *itemUseLevel
			}
			if resFile != nil && resX != nil && resY != nil {
				row.ItemPic = &catalog.SpriteRef{OwnerID: *itemID, FileName: *resFile, PosX: *resX, PosY: *resY}
			}
		}
		if packID != nil {
			row.SkillPackID = *packID
			row.SkillPackDesc = catalog.CleanDescription(packDesc)
		}
		if abAID != nil {
			row.Abnormal = &catalog.AbnormalData{
				AbnormalID: *abAID,
				ADesc:      catalog.CleanDescription(abDesc),
			}
			if abType != nil {
				row.Abnormal.AType = *abType
			}
			if abLevel != nil {
				row.Abnormal.ALevel = *abLevel
			}
			if abEffect != nil {
				row.Abnormal.AEffect = *abEffect
			}
		}
		if modID != nil {
			m := &catalog.ModuleData{
				ModuleID: *modID,
				TypeName: modName,
				TypeDesc: catalog.CleanDescription(modDesc),
			}
			if modType != nil {
				m.Type = *modType
			}
			if modLevel != nil {
				m.Level = *modLevel
			}
			m.Params = moduleParams(
				[]*string{paramAName, paramBName, paramCName},
				[]*int{paramA, paramB, paramC},
			)
			row.Module = m
		}
		out = append(out, row)
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}

// moduleParams keeps only the params that carry both a name and a value.
func moduleParams(names []*string, values []*int) []catalog.ModuleParam {
	var out []catalog.ModuleParam
	for i := range names {
		if names[i] == nil || *names[i] == "" || values[i] == nil {
			continue
		}
		out = append(out, catalog.ModuleParam{Name: *names[i], Value: *values[i]})
	}
	return out
}

// SkillAttribute returns the elemental attribute of a skill, nil when none.
func (r *SkillRepo) SkillAttribute(ctx context.Context, id int) (*catalog.AttributeEffect, error) {
	const stmt = `
		SELECT a.aid, b.atype, b.alevel, b.adicedamage, b.adamage
		FROM dt_skillattribute a
		INNER JOIN dt_attributeadd b ON a.aid = b.aid
		WHERE a.sid = $1`
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

// SkillSlain returns the slain bonus of a skill, nil when none.
func (r *SkillRepo) SkillSlain(ctx context.Context, id int) (*catalog.Slain, error) {
	const stmt = `
		SELECT a.sid, b.stype, c.sname, b.slevel,
		       b.shitplus, b.sddplus, b.srhitplus, b.srddplus
		FROM dt_skillslain a
		INNER JOIN dt_slain b ON a.slainid = b.sid
		INNER JOIN tp_slaintype c ON b.stype = c.stype
		WHERE a.sid = $1`
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

// ItemSkill walks from an item to the module behind its skill, following
// the module's A-param into the linked skill pack. Nil when the item grants
// no skill.
func (r *SkillRepo) ItemSkill(ctx context.Context, id int) (*catalog.SkillLink, error) {
	const stmt = `
		SELECT
			a.iid, a.iname, b.sid, c1.aid, d1.mid,
			COALESCE(v.mspid, 0), COALESCE(v.mname, ''),
			COALESCE(v.mspritefile, ''), v.mspritex, v.mspritey,
			COALESCE(v2.sid, 0), COALESCE(v2.sname, ''),
			d1.mtype, d1.maparam, d1.mbparam, d1.mcparam
		FROM dt_item a
		INNER JOIN dt_itemskill b0 ON a.iid = b0.iid
		INNER JOIN dt_skill b ON b0.sid = b.sid
		INNER JOIN dt_skillabnormal c ON b.sid = c.sid
		INNER JOIN dt_abnormal c1 ON c.abnormalid = c1.aid
		INNER JOIN dt_abnormalmodule d ON c1.aid = d.aid
		INNER JOIN dt_module d1 ON d.mid = d1.mid
		LEFT JOIN dt_skillpack v ON d1.maparam = v.mspid
		LEFT JOIN dt_skillpackskill v1 ON v.mspid = v1.mspid
		LEFT JOIN dt_skill v2 ON v1.msid = v2.sid
		WHERE a.iid = $1
		LIMIT 1`
	var link catalog.SkillLink
	err := r.db.QueryRow(ctx, stmt, id).Scan(
		&link.ItemID, &link.ItemName, &link.SID, &link.AID, &link.ModuleID,
		&link.SPID, &link.PackName,
		&link.SpriteFile, &link.SpriteX, &link.SpriteY,
		&link.LinkedSID, &link.LinkedName,
		&link.ModuleType, &link.AParam, &link.BParam, &link.CParam,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.db.ScanErr(stmt, err)
	}
	return &link, nil
}

// TransformList returns the monster forms of a transformation group.
func (r *SkillRepo) TransformList(ctx context.Context, groupID int) ([]catalog.TransformEntry, error) {
	const stmt = `
		SELECT a.mno, a.mmonid, a.mlevel, a.mcontrol, b.mname
		FROM tbltransformlist a
		INNER JOIN dt_monster b ON a.mmonid = b.mid
		WHERE a.mgroupid = $1
		ORDER BY a.mmonid`
	rows, err := r.db.Query(ctx, stmt, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.TransformEntry
	for rows.Next() {
		var e catalog.TransformEntry
		if err := rows.Scan(&e.No, &e.MonID, &e.Level, &e.Control, &e.MName); err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		e.MName = catalog.CleanName(e.MName)
		out = append(out, e)
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}

// SkillPackActivation resolves the skill behind a skill pack, nil when the
// pack is unknown.
func (r *SkillRepo) SkillPackActivation(ctx context.Context, spid int) (*catalog.SkillActivation, error) {
	const stmt = `
		SELECT a.mspid, a.mname, COALESCE(a.mspritefile, ''), a.mspritex, a.mspritey,
		       c.sid, c.sname
		FROM dt_skillpack a
		INNER JOIN dt_skillpackskill b ON a.mspid = b.mspid
		INNER JOIN dt_skill c ON b.msid = c.sid
		WHERE a.mspid = $1
		LIMIT 1`
	var act catalog.SkillActivation
	err := r.db.QueryRow(ctx, stmt, spid).Scan(
		&act.SPID, &act.PackName, &act.SpriteFile, &act.SpriteX, &act.SpriteY,
		&act.SID, &act.SName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.db.ScanErr(stmt, err)
	}
	return &act, nil
}

// AbnormalTypeInfo returns the typed display record of an abnormal, nil
// when the abnormal is unknown.
func (r *SkillRepo) AbnormalTypeInfo(ctx context.Context, aid int) (*catalog.AbnormalTypeInfo, error) {
	return abnormalTypeInfo(ctx, r.db, aid)
}

// AbnormalSkills returns the skills applying an abnormal.
func (r *SkillRepo) AbnormalSkills(ctx context.Context, aid int) ([]catalog.RelatedSkill, error) {
	return abnormalSkills(ctx, r.db, aid)
}

func abnormalTypeInfo(ctx context.Context, db *DB, aid int) (*catalog.AbnormalTypeInfo, error) {
	const stmt = `
		SELECT a.aid, b.aname, b.aeffect, b.aremovable,
		       COALESCE(b.afilename, ''), b.aiconx, b.aicony
		FROM dt_abnormal a
		INNER JOIN tp_abnormaltype b ON a.atype = b.atype
		WHERE a.aid = $1`
	var info catalog.AbnormalTypeInfo
	err := db.QueryRow(ctx, stmt, aid).Scan(
		&info.AID, &info.AName, &info.AEffect, &info.Removable,
		&info.FileName, &info.IconX, &info.IconY,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, db.ScanErr(stmt, err)
	}
	return &info, nil
}

func abnormalSkills(ctx context.Context, db *DB, aid int) ([]catalog.RelatedSkill, error) {
	const stmt = `
		SELECT DISTINCT c.sid, c.sname, COALESCE(c.sdesc, ''),
		       COALESCE(e.mspritefile, ''), e.mspritex, e.mspritey
		FROM dt_skillabnormal b
		INNER JOIN dt_skill c ON b.sid = c.sid
		LEFT JOIN dt_skillpackskill d ON c.sid = d.msid
		LEFT JOIN dt_skillpack e ON d.mspid = e.mspid
		WHERE b.abnormalid = $1
		ORDER BY c.sid`
	rows, err := db.Query(ctx, stmt, aid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.RelatedSkill
	for rows.Next() {
		var s catalog.RelatedSkill
		if err := rows.Scan(&s.SID, &s.Name, &s.Desc, &s.SpriteFile, &s.SpriteX, &s.SpriteY); err != nil {
			return nil, db.ScanErr(stmt, err)
		}
		out = append(out, s)
	}
	return out, db.ScanErr(stmt, rows.Err())
}
