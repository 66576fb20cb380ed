package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "user_id").
		From("catches").
		Where(Eq("user_id", "u1"), Gte("caught_at", int64(100)), Lt("caught_at", int64(200)), IsNull("deleted_at")).
		OrderBy("caught_at DESC").
		Limit(25).
		Offset(50).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, user_id FROM catches WHERE user_id = $1 AND caught_at >= $2 AND caught_at < $3 AND deleted_at IS NULL ORDER BY caught_at DESC LIMIT 25 OFFSET 50"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderEmptyIn(t *testing.T) {
	query, args, err := Select("id").
		From("catches").
		Where(In("user_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM catches WHERE 1=0"
	if query != wantQuery {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderWithConflictSuffix(t *testing.T) {
	query, args, err := InsertInto("leaderboard_cache").
		Columns("user_id", "state", "total_points").
		Values("u1", "TX", 120).
		Suffix("ON CONFLICT (user_id, state) DO UPDATE SET total_points = EXCLUDED.total_points").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO leaderboard_cache (user_id, state, total_points) VALUES ($1, $2, $3) ON CONFLICT (user_id, state) DO UPDATE SET total_points = EXCLUDED.total_points"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("competitions").
		Set("status", "active").
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "c1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE competitions SET status = $1, updated_at = NOW() WHERE public_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "active" || args[1] != "c1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestExprRewritesMarkers(t *testing.T) {
	query, args, err := Select("id").
		From("competitions").
		Where(Expr("(start_at <= ? AND end_at > ?)", int64(500), int64(500))).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM competitions WHERE (start_at <= $1 AND end_at > $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	model := struct {
		UserID string `db:"user_id"`
		State  string `db:"state"`
		Skip   string `db:"-"`
	}{UserID: "u1", State: "TX", Skip: "x"}

	query, args, err := InsertModel("leaderboard_cache", model, "")
	if err != nil {
		t.Fatalf("build insert from model: %v", err)
	}

	wantQuery := "INSERT INTO leaderboard_cache (user_id, state) VALUES ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[0] != "u1" || args[1] != "TX" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
