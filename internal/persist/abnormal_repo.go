package persist

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/r2db/catalog/internal/catalog"
)

// AbnormalRepo serves the abnormal-effect index and detail queries.
type AbnormalRepo struct {
	db *DB
}

func NewAbnormalRepo(db *DB) *AbnormalRepo {
	return &AbnormalRepo{db: db}
}

// AbnormalList returns every abnormal effect with its type record.
func (r *AbnormalRepo) AbnormalList(ctx context.Context) ([]catalog.AbnormalListEntry, error) {
	const stmt = `
		SELECT a.aid, COALESCE(b.aname, ''), COALESCE(a.adesc, ''),
		       a.atype, a.alevel, a.aeffect,
		       COALESCE(b.afilename, ''), b.aiconx, b.aicony
		FROM dt_abnormal a
		LEFT JOIN tp_abnormaltype b ON a.atype = b.atype
		ORDER BY a.aid`
	rows, err := r.db.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.AbnormalListEntry
	for rows.Next() {
		var e catalog.AbnormalListEntry
		err := rows.Scan(
			&e.AID, &e.AName, &e.ADesc,
			&e.AType, &e.ALevel, &e.AEffect,
			&e.FileName, &e.IconX, &e.IconY,
		)
		if err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		out = append(out, e)
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}

// AbnormalDetail returns the abnormal with its module and applying skill,
// nil when the abnormal is unknown.
func (r *AbnormalRepo) AbnormalDetail(ctx context.Context, aid int) (*catalog.AbnormalDetail, error) {
	const stmt = `
		SELECT
			a.aid, COALESCE(a.adesc, ''), a.atype, a.alevel, a.aeffect,
			c.mid, c.mtype, COALESCE(c1.mname, ''), COALESCE(c1.mdesc, ''), c.mlevel,
			c.maparam, c1.maparamname,
			c.mbparam, c1.mbparamname,
			c.mcparam, c1.mcparamname,
			e.sid, e.sname, e.sdesc
		FROM dt_abnormal a
		LEFT JOIN dt_abnormalmodule b ON a.aid = b.aid
		LEFT JOIN dt_module c ON b.mid = c.mid
		LEFT JOIN tp_moduletype c1 ON c.mtype = c1.mtype
		LEFT JOIN dt_skillabnormal d ON a.aid = d.abnormalid
		LEFT JOIN dt_skill e ON d.sid = e.sid
		WHERE a.aid = $1
		LIMIT 1`
	var (
		d catalog.AbnormalDetail

		modID, modType, modLevel           *int
		modName, modDesc                   string
		paramA, paramB, paramC             *int
		paramAName, paramBName, paramCName *string

		sid          *int
		sname, sdesc *string
	)
	err := r.db.QueryRow(ctx, stmt, aid).Scan(
		&d.Abnormal.AbnormalID, &d.Abnormal.ADesc, &d.Abnormal.AType,
		&d.Abnormal.ALevel, &d.Abnormal.AEffect,
		&modID, &modType, &modName, &modDesc, &modLevel,
		&paramA, &paramAName,
		&paramB, &paramBName,
		&paramC, &paramCName,
		&sid, &sname, &sdesc,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.db.ScanErr(stmt, err)
	}
	d.Abnormal.ADesc = catalog.CleanDescription(d.Abnormal.ADesc)

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
		d.Module = m
	}
	if sid != nil {
		s := &catalog.AbnormalSkillData{SID: *sid}
		if sname != nil {
			s.SName = catalog.CleanName(*sname)
		}
		if sdesc != nil {
			s.SDesc = catalog.CleanDescription(*sdesc)
		}
		d.Skill = s
	}
	return &d, nil
}

// AbnormalTypeInfo returns the typed display record, nil when unknown.
func (r *AbnormalRepo) AbnormalTypeInfo(ctx context.Context, aid int) (*catalog.AbnormalTypeInfo, error) {
	return abnormalTypeInfo(ctx, r.db, aid)
}

// AbnormalSkills returns the skills applying the abnormal.
func (r *AbnormalRepo) AbnormalSkills(ctx context.Context, aid int) ([]catalog.RelatedSkill, error) {
	return abnormalSkills(ctx, r.db, aid)
}

// AbnormalItems returns the items granting a skill that applies the
// abnormal.
func (r *AbnormalRepo) AbnormalItems(ctx context.Context, aid int) ([]catalog.RelatedItem, error) {
	const stmt = `
		SELECT DISTINCT d.iid, d.iname,
		       COALESCE(res.rfilename, ''), COALESCE(res.rposx, 0), COALESCE(res.rposy, 0)
		FROM dt_skillabnormal a
		INNER JOIN dt_itemskill c ON a.sid = c.sid
		INNER JOIN dt_item d ON c.iid = d.iid
		LEFT JOIN dt_itemresource res ON res.rownerid = d.iid AND res.rtype = 2
		WHERE a.abnormalid = $1
		ORDER BY d.iid`
	rows, err := r.db.Query(ctx, stmt, aid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.RelatedItem
	for rows.Next() {
		var it catalog.RelatedItem
		if err := rows.Scan(&it.IID, &it.Name, &it.IconFile, &it.IconX, &it.IconY); err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}
		out = append(out, it)
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}
