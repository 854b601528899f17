package script

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quarteto/lib/script"
	"quarteto/stage"
)

// Insert stores s as the newest version of s.Name and returns its id. The
// timestamp is taken from the stage clock.
func Insert(ctx context.Context, st stage.Stage, s script.Script) (uint64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	res, err := st.DB.ExecContext(ctx,
		"INSERT INTO script (name, vocabulary, source, timestamp) VALUES (?, ?, ?, ?);",
		s.Name, s.Vocabulary, s.Source, st.Clock.Now(),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Retrieve returns the latest version of the script called exactly name.
func Retrieve(ctx context.Context, st stage.Stage, name string) (script.Script, error) {
	var s script.Script
	err := st.DB.GetContext(ctx, &s,
		"SELECT * FROM script WHERE name = ? ORDER BY script_id DESC LIMIT 1;", name)
	if errors.Is(err, sql.ErrNoRows) {
		return script.Script{}, fmt.Errorf("%w: '%s'", script.ErrNotFound, name)
	}
	if err != nil {
		return script.Script{}, err
	}
	return s, nil
}

// List returns the latest version of every script, ordered by name.
func List(ctx context.Context, st stage.Stage) ([]script.Script, error) {
	scripts := make([]script.Script, 0)
	err := st.DB.SelectContext(ctx, &scripts, `
		SELECT s.* FROM script s
		JOIN (SELECT name, MAX(script_id) AS script_id FROM script GROUP BY name) latest
		ON s.script_id = latest.script_id
		ORDER BY s.name;`)
	if err != nil {
		return nil, err
	}
	return scripts, nil
}

// Versions returns every stored version of name, oldest first.
func Versions(ctx context.Context, st stage.Stage, name string) ([]script.Script, error) {
	scripts := make([]script.Script, 0)
	if err := st.DB.SelectContext(ctx, &scripts,
		"SELECT * FROM script WHERE name = ? ORDER BY script_id;", name); err != nil {
		return nil, err
	}
	return scripts, nil
}
