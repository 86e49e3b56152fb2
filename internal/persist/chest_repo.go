package persist

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// ChestRepo reads and replaces the dialog script pair of a chest NPC.
type ChestRepo struct {
	db *DB
}

func NewChestRepo(db *DB) *ChestRepo {
	return &ChestRepo{db: db}
}

// Script returns the stored loot script of one chest, "" when the chest
// has no script yet.
func (r *ChestRepo) Script(ctx context.Context, mid int) (string, error) {
	const stmt = `SELECT mscripttext FROM tbldialogscript WHERE mmid = $1`
	var script string
	err := r.db.QueryRow(ctx, stmt, mid).Scan(&script)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", r.db.ScanErr(stmt, err)
	}
	return script, nil
}

// ReplaceScript swaps the loot script and the click dialog of one chest in
// a single transaction, so a reader never sees the pair out of step.
func (r *ChestRepo) ReplaceScript(ctx context.Context, mid int, script, dialog string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return r.db.wrap("begin chest replace", []any{mid}, err)
	}
	defer tx.Rollback(ctx)

	steps := []struct {
		stmt string
		args []any
	}{
		{`DELETE FROM tbldialogscript WHERE mmid = $1`, []any{mid}},
		{`INSERT INTO tbldialogscript (mmid, mscripttext, mregdate, muptdate)
		  VALUES ($1, $2, now(), now())`, []any{mid, script}},
		{`DELETE FROM tbldialog WHERE mmid = $1`, []any{mid}},
		{`INSERT INTO tbldialog (
			mmid, mclick, mregdate, muptdate,
			mdie, mattacked, mtarget, mbear,
			mgossip1, mgossip2, mgossip3, mgossip4
		  ) VALUES ($1, $2, now(), now(), ',', ',', ',', ',', ',', ',', ',', ',')`,
			[]any{mid, dialog}},
	}
	for _, step := range steps {
		if _, err := tx.Exec(ctx, step.stmt, step.args...); err != nil {
			return r.db.wrap(step.stmt, step.args, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return r.db.wrap("commit chest replace", []any{mid}, err)
	}
	return nil
}
