package persist

import (
	"context"
	"fmt"

	"github.com/r2db/catalog/internal/catalog"
)

// Display fallbacks for quest rows missing their joined records.
const (
	questAnyClass    = "Все классы"
	questUnknownItem = "Неизвестный предмет"
)

// QuestRepo serves the quest catalog. The source table is one row per
// quest step, so rewards and requirements accumulate while grouping by
// quest number.
type QuestRepo struct {
	db *DB
}

func NewQuestRepo(db *DB) *QuestRepo {
	return &QuestRepo{db: db}
}

// Quests returns every quest grouped by quest number, in first-seen order.
func (r *QuestRepo) Quests(ctx context.Context) ([]catalog.Quest, error) {
	const stmt = `
		SELECT
			q.mquestno, COALESCE(q.mquestname, ''),
			q.mminlevel, q.mmaxlevel,
			cls.mname,
			COALESCE(q.mdifficulty, 0), COALESCE(q.mdesc, ''), COALESCE(q.mplace, ''),
			COALESCE(q.mrewardexp, 0),
			q.mrewarditem, ri.iname, q.mrewarditemcnt,
			q.mneeditem, ni.iname, q.mneeditemcnt,
			q.mcompletenpc, cn.mname,
			q.mfindnpc, fn.mname
		FROM tblquest q
		LEFT JOIN tp_class cls ON q.mclass = cls.mclassno
		LEFT JOIN dt_item ri ON q.mrewarditem = ri.iid
		LEFT JOIN dt_item ni ON q.mneeditem = ni.iid
		LEFT JOIN dt_monster cn ON q.mcompletenpc = cn.mid
		LEFT JOIN dt_monster fn ON q.mfindnpc = fn.mid
		ORDER BY q.mquestno`
	rows, err := r.db.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		out   []catalog.Quest
		index = map[int]int{}
	)
	for rows.Next() {
		var (
			questNo          int
			questName        string
			minLv            int
			maxLv            *int
			className        *string
			difficulty       int
			desc, place      string
			rewardExp        int64
			rewardID         *int
			rewardName       *string
			rewardCnt        *int
			needID           *int
			needName         *string
			needCnt          *int
			completeNPC      *int
			completeNPCName  *string
			findNPC          *int
			findNPCName      *string
		)
		err := rows.Scan(
			&questNo, &questName,
			&minLv, &maxLv,
			&className,
			&difficulty, &desc, &place,
			&rewardExp,
			&rewardID, &rewardName, &rewardCnt,
			&needID, &needName, &needCnt,
			&completeNPC, &completeNPCName,
			&findNPC, &findNPCName,
		)
		if err != nil {
			return nil, r.db.ScanErr(stmt, err)
		}

		i, ok := index[questNo]
		if !ok {
			q := catalog.Quest{
				QuestNo:     questNo,
				QuestName:   catalog.CleanName(questName),
				Level:       questLevel(minLv, maxLv),
				Class:       questAnyClass,
				Difficulty:  difficulty,
				Description: catalog.CleanDescription(desc),
				Place:       place,
			}
			if className != nil && *className != "" {
				q.Class = *className
			}
			q.Rewards.Exp = rewardExp
			if completeNPC != nil {
				q.NPCs.Completion = questNPC(*completeNPC, completeNPCName)
			}
			if findNPC != nil {
				q.NPCs.Find = questNPC(*findNPC, findNPCName)
			}
			i = len(out)
			index[questNo] = i
			out = append(out, q)
		}
		q := &out[i]
		if rewardID != nil {
			addQuestItem(&q.Rewards.ItemList, *rewardID, rewardName, rewardCnt)
		}
		if needID != nil {
			addQuestItem(&q.Requirements.ItemList, *needID, needName, needCnt)
		}
	}
	return out, r.db.ScanErr(stmt, rows.Err())
}

func questLevel(minLv int, maxLv *int) string {
	if maxLv != nil && *maxLv != 0 {
		return fmt.Sprintf("%d-%d", minLv, *maxLv)
	}
	return fmt.Sprintf("%d", minLv)
}

func questNPC(id int, name *string) *catalog.QuestNPC {
	npc := &catalog.QuestNPC{ID: id}
	if name != nil {
		npc.Name = catalog.CleanName(*name)
	}
	return npc
}

// addQuestItem appends one reward or requirement line, skipping exact
// duplicates produced by the step rows.
func addQuestItem(list *[]catalog.QuestItem, id int, name *string, count *int) {
	item := catalog.QuestItem{ID: id, Name: questUnknownItem, Count: 1}
	if name != nil && *name != "" {
		item.Name = *name
	}
	if count != nil && *count > 0 {
		item.Count = *count
	}
	for _, have := range *list {
		if have.ID == item.ID && have.Count == item.Count {
			return
		}
	}
	*list = append(*list, item)
}
