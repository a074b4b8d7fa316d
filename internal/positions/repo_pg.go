package positions

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// UpdateSynthesis overwrites the synthesized fields that are present in the
// update, leaving absent fields unchanged.
func (r *PGRepo) UpdateSynthesis(ctx context.Context, positionID string, update SynthesisUpdate) error {
	const query = `
UPDATE positions
SET description = COALESCE($2, description),
    phase2_questions = COALESCE($3, phase2_questions),
    updated_at = now()
WHERE id = $1`

	var description sql.NullString
	if update.Description != nil {
		description = sql.NullString{String: *update.Description, Valid: true}
	}

	var questionsJSON interface{}
	if update.Questions != nil {
		raw, err := json.Marshal(update.Questions)
		if err != nil {
			return fmt.Errorf("marshal questions: %w", err)
		}
		questionsJSON = raw
	}

	res, err := r.DB.ExecContext(ctx, query, positionID, description, questionsJSON)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
