// Package loader reads replay JSON documents into normalized GameRecords.
// Malformed documents are reported per file, never aborted on: the batch
// commands skip and log them.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/HStrand/bga-tm-stats/internal/model"
)

var (
	ErrNoReplayID = errors.New("document has no replay_id")
	ErrNoPlayers  = errors.New("document has no players")
)

// flexID decodes a participant or replay identifier that the exporter writes
// either as a JSON string or as a bare number.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	*f = flexID(b)
	return nil
}

type rawEloData struct {
	GameRank       *float64 `json:"game_rank"`
	GameRankChange *float64 `json:"game_rank_change"`
}

type rawAward struct {
	Place   int `json:"place"`
	VP      int `json:"vp"`
	Counter int `json:"counter"`
}

type rawVPEntry struct {
	Details struct {
		Awards map[string]rawAward `json:"awards"`
	} `json:"details"`
}

type rawFinalState struct {
	PlayerVP map[string]rawVPEntry `json:"player_vp"`
}

type rawPlayer struct {
	PlayerName        string         `json:"player_name"`
	Corporation       string         `json:"corporation"`
	FinalVP           int            `json:"final_vp"`
	MilestonesClaimed []string       `json:"milestones_claimed"`
	CardsPlayed       []string       `json:"cards_played"`
	EloData           *rawEloData    `json:"elo_data"`
	FinalState        *rawFinalState `json:"final_state"`
}

type rawMove struct {
	ActionType  string              `json:"action_type"`
	PlayerID    flexID              `json:"player_id"`
	CardDrafted string              `json:"card_drafted"`
	CardOptions map[string][]string `json:"card_options"`
}

type rawGame struct {
	ReplayID   flexID               `json:"replay_id"`
	GameDate   string               `json:"game_date"`
	Winner     string               `json:"winner"`
	DraftOn    bool                 `json:"draft_on"`
	ColoniesOn bool                 `json:"colonies_on"`
	Players    map[string]rawPlayer `json:"players"`
	Moves      []rawMove            `json:"moves"`
}

// ReadFile loads and normalizes one replay document.
func ReadFile(path string) (*model.GameRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw rawGame
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if raw.ReplayID == "" {
		return nil, ErrNoReplayID
	}
	if len(raw.Players) == 0 {
		return nil, ErrNoPlayers
	}

	rec := &model.GameRecord{
		ReplayID:    string(raw.ReplayID),
		GameDate:    raw.GameDate,
		WinnerLabel: raw.Winner,
		DraftOn:     raw.DraftOn,
		ColoniesOn:  raw.ColoniesOn,
		Players:     make(map[string]model.PlayerRecord, len(raw.Players)),
	}

	for id, rp := range raw.Players {
		p := model.PlayerRecord{
			ID:          id,
			Name:        rp.PlayerName,
			Corporation: rp.Corporation,
			FinalVP:     rp.FinalVP,
			Milestones:  rp.MilestonesClaimed,
			CardsPlayed: rp.CardsPlayed,
		}
		if rp.EloData != nil {
			p.Elo = roundPtr(rp.EloData.GameRank)
			p.EloDelta = roundPtr(rp.EloData.GameRankChange)
		}
		if rp.FinalState != nil {
			if entry, ok := rp.FinalState.PlayerVP[id]; ok && len(entry.Details.Awards) > 0 {
				p.Awards = make(map[string]model.AwardResult, len(entry.Details.Awards))
				for name, a := range entry.Details.Awards {
					p.Awards[name] = model.AwardResult{Place: a.Place, VP: a.VP, Counter: a.Counter}
				}
			}
		}
		rec.Players[id] = p
	}

	rec.Moves = make([]model.Move, 0, len(raw.Moves))
	for _, rm := range raw.Moves {
		rec.Moves = append(rec.Moves, model.Move{
			ActionType:  rm.ActionType,
			PlayerID:    string(rm.PlayerID),
			CardDrafted: rm.CardDrafted,
			CardOptions: rm.CardOptions,
		})
	}
	return rec, nil
}

// Walk loads every *.json document under root (or root itself when it is a
// single file) and hands each record to fn. Duplicate replay ids keep the
// first document seen; malformed documents are logged and counted as skipped.
func Walk(root string, log *zap.SugaredLogger, fn func(*model.GameRecord)) (loaded, skipped int, err error) {
	paths, err := collect(root)
	if err != nil {
		return 0, 0, err
	}

	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		rec, rerr := ReadFile(path)
		if rerr != nil {
			log.Warnw("skipping replay file", "path", path, "error", rerr)
			skipped++
			continue
		}
		if prev, dup := seen[rec.ReplayID]; dup {
			log.Debugw("duplicate replay id, keeping first",
				"replay_id", rec.ReplayID, "kept", prev, "dropped", path)
			skipped++
			continue
		}
		seen[rec.ReplayID] = path
		fn(rec)
		loaded++
	}
	return loaded, skipped, nil
}

// collect resolves root to a sorted list of replay file paths.
func collect(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, werr error) error {
		if werr != nil {
			return werr
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func roundPtr(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(math.Round(*v))
	return &n
}
