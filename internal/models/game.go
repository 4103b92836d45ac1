package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Market represents one of the three markets a game can be picked on
type Market string

const (
	MarketMoneyline Market = "moneyline"
	MarketSpread    Market = "spread"
	MarketTotal     Market = "total"
)

// Markets lists the markets in the order they are read from a game
var Markets = []Market{MarketMoneyline, MarketSpread, MarketTotal}

// Pick statuses emitted by the upstream model
const (
	PickStatusPick  = "pick"
	PickStatusNoBet = "no_bet"
)

// MarketPick is one market entry of a game as produced by the upstream model.
// Malformed is set when the entry was not a JSON object.
type MarketPick struct {
	Status       string   `json:"status"`
	Selection    string   `json:"selection,omitempty"`
	HasSelection bool     `json:"-"`
	Score        *float64 `json:"score,omitempty"`
	Rationale    []string `json:"rationale,omitempty"`
	Reason       string   `json:"reason,omitempty"`
	Malformed    bool     `json:"-"`
}

// UnmarshalJSON decodes a market entry without ever failing on field types
func (p *MarketPick) UnmarshalJSON(data []byte) error {
	var raw struct {
		Status    json.RawMessage `json:"status"`
		Selection json.RawMessage `json:"selection"`
		Score     json.RawMessage `json:"score"`
		Rationale json.RawMessage `json:"rationale"`
		Reason    json.RawMessage `json:"reason"`
	}
	*p = MarketPick{}
	if isNull(data) {
		p.Malformed = true
		return nil
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		p.Malformed = true
		return nil
	}

	p.Status, _ = rawString(raw.Status)
	p.Selection, p.HasSelection = rawString(raw.Selection)
	if score, ok := rawNumber(raw.Score); ok {
		p.Score = &score
	}
	p.Rationale = rawStrings(raw.Rationale)
	p.Reason, _ = rawString(raw.Reason)
	return nil
}

// GameMarkets holds the up to three market entries of a game
type GameMarkets struct {
	Moneyline *MarketPick `json:"moneyline,omitempty"`
	Spread    *MarketPick `json:"spread,omitempty"`
	Total     *MarketPick `json:"total,omitempty"`
}

// Get returns the entry for a market, or nil when the game has none
func (m GameMarkets) Get(market Market) *MarketPick {
	switch market {
	case MarketMoneyline:
		return m.Moneyline
	case MarketSpread:
		return m.Spread
	case MarketTotal:
		return m.Total
	default:
		return nil
	}
}

// Game represents one scheduled game with its model output
type Game struct {
	GameID    string      `json:"game_id"`
	League    string      `json:"league,omitempty"`
	StartTime string      `json:"start_time,omitempty"`
	HomeTeam  string      `json:"home_team,omitempty"`
	AwayTeam  string      `json:"away_team,omitempty"`
	Markets   GameMarkets `json:"markets"`
	Malformed bool        `json:"-"`
}

// UnmarshalJSON decodes a game leniently. A game that is not an object, or
// whose markets field is not an object, is flagged Malformed.
func (g *Game) UnmarshalJSON(data []byte) error {
	var raw struct {
		GameID    json.RawMessage `json:"game_id"`
		ID        json.RawMessage `json:"id"`
		League    json.RawMessage `json:"league"`
		StartTime json.RawMessage `json:"start_time"`
		HomeTeam  json.RawMessage `json:"home_team"`
		AwayTeam  json.RawMessage `json:"away_team"`
		Markets   json.RawMessage `json:"markets"`
	}
	*g = Game{}
	if isNull(data) {
		g.Malformed = true
		return nil
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		g.Malformed = true
		return nil
	}

	g.GameID = rawIdentifier(raw.GameID)
	if g.GameID == "" {
		g.GameID = rawIdentifier(raw.ID)
	}
	g.League, _ = rawString(raw.League)
	g.StartTime, _ = rawString(raw.StartTime)
	g.HomeTeam, _ = rawString(raw.HomeTeam)
	g.AwayTeam, _ = rawString(raw.AwayTeam)

	if isNull(raw.Markets) {
		return nil
	}
	var markets struct {
		Moneyline json.RawMessage `json:"moneyline"`
		Spread    json.RawMessage `json:"spread"`
		Total     json.RawMessage `json:"total"`
	}
	if err := json.Unmarshal(raw.Markets, &markets); err != nil {
		g.Malformed = true
		return nil
	}
	g.Markets.Moneyline = decodeMarketPick(markets.Moneyline)
	g.Markets.Spread = decodeMarketPick(markets.Spread)
	g.Markets.Total = decodeMarketPick(markets.Total)
	return nil
}

func decodeMarketPick(raw json.RawMessage) *MarketPick {
	if isNull(raw) {
		return nil
	}
	pick := &MarketPick{}
	_ = pick.UnmarshalJSON(raw)
	return pick
}

// SportGames is the list of games for one sport key
type SportGames struct {
	Sport string
	Games []Game
}

// SportSlate maps sport keys to their games, preserving the order in which
// the sports appeared in the source document.
type SportSlate []SportGames

// UnmarshalJSON decodes a JSON object keyed by sport. The object must map
// every sport to an array; anything else is an InputError.
func (s *SportSlate) UnmarshalJSON(data []byte) error {
	*s = nil
	if isNull(data) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return NewInputError("slate", "is not valid JSON")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return NewInputError("slate", "must be an object keyed by sport")
	}

	out := make(SportSlate, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return NewInputError("slate", "is not valid JSON")
		}
		sport, _ := keyTok.(string)

		var games []Game
		var rawGames json.RawMessage
		if err := dec.Decode(&rawGames); err != nil {
			return NewInputError("slate", "is not valid JSON")
		}
		if err := json.Unmarshal(rawGames, &games); err != nil {
			return NewInputError(fmt.Sprintf("slate.%s", sport), "must be an array of games")
		}
		out = append(out, SportGames{Sport: sport, Games: games})
	}
	if _, err := dec.Token(); err != nil {
		return NewInputError("slate", "is not valid JSON")
	}

	*s = out
	return nil
}

// MarshalJSON encodes the slate as an object, keeping sport order
func (s SportSlate) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, group := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(group.Sport)
		if err != nil {
			return nil, err
		}
		games := group.Games
		if games == nil {
			games = []Game{}
		}
		value, err := json.Marshal(games)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// GameCount returns the number of games across all sports
func (s SportSlate) GameCount() int {
	total := 0
	for _, group := range s {
		total += len(group.Games)
	}
	return total
}

// SlateRequest is the decision engine input
type SlateRequest struct {
	Day   string     `json:"day"`
	Slate SportSlate `json:"slate"`
}

// DefaultLeague derives a league label from a sport key such as
// "basketball_nba" or "nba".
func DefaultLeague(sport string) string {
	if idx := strings.LastIndex(sport, "_"); idx >= 0 && idx < len(sport)-1 {
		sport = sport[idx+1:]
	}
	return strings.ToUpper(sport)
}
