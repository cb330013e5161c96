package storage

import (
	"database/sql"
	"fmt"

	"github.com/HStrand/bga-tm-stats/internal/model"
)

// GameExists returns true if a game with the given replay id is already
// stored.
func (db *DB) GameExists(replayID string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM games WHERE replay_id = ?", replayID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertGames bulk-inserts game summaries in a transaction. Uses
// INSERT OR REPLACE for idempotency over re-runs of the same replay set.
func (db *DB) InsertGames(games []model.GameSummary) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO games(replay_id, game_date, winner_id, winner_name, player_count, draft_on, colonies_on)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range games {
		_, err = stmt.Exec(g.ReplayID, g.GameDate, g.WinnerID, g.WinnerName,
			g.PlayerCount, boolInt(g.DraftOn), boolInt(g.ColoniesOn))
		if err != nil {
			return fmt.Errorf("insert game %s: %w", g.ReplayID, err)
		}
	}
	return tx.Commit()
}

// InsertGamePlayers bulk-inserts per-participant rows in a transaction.
func (db *DB) InsertGamePlayers(rows []model.PlayerGameRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO game_players(replay_id, player_id, name, corporation, final_vp, elo, elo_change, won)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err = stmt.Exec(r.ReplayID, r.PlayerID, r.Name, r.Corporation,
			r.FinalVP, nullInt(r.Elo), nullInt(r.EloDelta), boolInt(r.Won))
		if err != nil {
			return fmt.Errorf("insert game_players %s/%s: %w", r.ReplayID, r.PlayerID, err)
		}
	}
	return tx.Commit()
}

// InsertSubjectStats stores the finalized statistics of one analysis,
// replacing any previous snapshot of the same analysis.
func (db *DB) InsertSubjectStats(analysis string, stats []model.SubjectStats) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM subject_stats WHERE analysis = ?", analysis); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO subject_stats(
			analysis, subject, occurrences, wins, bonus_vp_sum, counter_sum,
			elo_sum, elo_n, elo_delta_sum, elo_delta_n, elo_delta_min, elo_delta_max,
			opp_elo_sum, opp_elo_n, rank1, rank2, rank3, rank4
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range stats {
		_, err = stmt.Exec(
			analysis, s.Subject, s.Occurrences, s.Wins, s.BonusVPSum, s.CounterSum,
			s.EloSum, s.EloN, s.EloDeltaSum, s.EloDeltaN, s.EloDeltaMin, s.EloDeltaMax,
			s.OpponentEloSum, s.OpponentEloN,
			s.RankCounts[0], s.RankCounts[1], s.RankCounts[2], s.RankCounts[3],
		)
		if err != nil {
			return fmt.Errorf("insert subject_stats %s/%s: %w", analysis, s.Subject, err)
		}
	}
	return tx.Commit()
}

// GetSubjectStats returns the stored statistics of one analysis ordered by
// occurrences descending.
func (db *DB) GetSubjectStats(analysis string) ([]model.SubjectStats, error) {
	rows, err := db.conn.Query(`
		SELECT subject, occurrences, wins, bonus_vp_sum, counter_sum,
		       elo_sum, elo_n, elo_delta_sum, elo_delta_n, elo_delta_min, elo_delta_max,
		       opp_elo_sum, opp_elo_n, rank1, rank2, rank3, rank4
		FROM subject_stats WHERE analysis = ?
		ORDER BY occurrences DESC, subject ASC`, analysis)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SubjectStats
	for rows.Next() {
		var s model.SubjectStats
		if err := rows.Scan(
			&s.Subject, &s.Occurrences, &s.Wins, &s.BonusVPSum, &s.CounterSum,
			&s.EloSum, &s.EloN, &s.EloDeltaSum, &s.EloDeltaN, &s.EloDeltaMin, &s.EloDeltaMax,
			&s.OpponentEloSum, &s.OpponentEloN,
			&s.RankCounts[0], &s.RankCounts[1], &s.RankCounts[2], &s.RankCounts[3],
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListGames returns all stored games ordered by game_date descending.
func (db *DB) ListGames() ([]model.GameSummary, error) {
	rows, err := db.conn.Query(`
		SELECT replay_id, game_date, winner_id, winner_name, player_count, draft_on, colonies_on
		FROM games ORDER BY game_date DESC, replay_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GameSummary
	for rows.Next() {
		var g model.GameSummary
		var draftInt, coloniesInt int
		if err := rows.Scan(&g.ReplayID, &g.GameDate, &g.WinnerID, &g.WinnerName,
			&g.PlayerCount, &draftInt, &coloniesInt); err != nil {
			return nil, err
		}
		g.DraftOn = draftInt != 0
		g.ColoniesOn = coloniesInt != 0
		out = append(out, g)
	}
	return out, rows.Err()
}

// Overview summarizes the stored corpus for the summary command.
type Overview struct {
	Games         int
	Players       int
	ResolvedGames int
	DraftGames    int
	ColonyGames   int
}

// GetOverview returns corpus-level counts across the games tables.
func (db *DB) GetOverview() (Overview, error) {
	var o Overview
	err := db.conn.QueryRow(`
		SELECT COUNT(1),
		       COALESCE(SUM(CASE WHEN winner_id != '' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(draft_on), 0),
		       COALESCE(SUM(colonies_on), 0)
		FROM games`).Scan(&o.Games, &o.ResolvedGames, &o.DraftGames, &o.ColonyGames)
	if err != nil {
		return o, err
	}
	err = db.conn.QueryRow("SELECT COUNT(DISTINCT name) FROM game_players").Scan(&o.Players)
	return o, err
}

// PlayerGames returns one participant's stored rows by display name, newest
// game first.
func (db *DB) PlayerGames(name string) ([]model.PlayerGameRow, error) {
	rows, err := db.conn.Query(`
		SELECT p.replay_id, p.player_id, p.name, p.corporation, p.final_vp, p.elo, p.elo_change, p.won
		FROM game_players p
		JOIN games g ON g.replay_id = p.replay_id
		WHERE p.name = ?
		ORDER BY g.game_date DESC, p.replay_id DESC`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PlayerGameRow
	for rows.Next() {
		var r model.PlayerGameRow
		var elo, eloChange sql.NullInt64
		var wonInt int
		if err := rows.Scan(&r.ReplayID, &r.PlayerID, &r.Name, &r.Corporation,
			&r.FinalVP, &elo, &eloChange, &wonInt); err != nil {
			return nil, err
		}
		r.Elo = fromNull(elo)
		r.EloDelta = fromNull(eloChange)
		r.Won = wonInt != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteGame removes one game and, via the cascade, its participant rows.
// Returns true when a row was deleted.
func (db *DB) DeleteGame(replayID string) (bool, error) {
	res, err := db.conn.Exec("DELETE FROM games WHERE replay_id = ?", replayID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// QueryRaw runs an arbitrary read query and returns columns plus stringified
// rows, for the sql command.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		raw := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range raw {
			if v.Valid {
				row[i] = v.String
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func fromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
