package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errOut, string(data))
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
	} else {
		fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case PlayerList:
		o.printPlayerList(v)
	case Score:
		o.printScore(v)
	case ScoreList:
		o.printScoreList(v)
	case Handicap:
		fmt.Fprintf(o.out, "Handicap (%s): %s\n", v.PlayerID, formatIndex(v.Handicap))
	case Calculation:
		o.printCalculation(v)
	case HealthResult:
		fmt.Fprintf(o.out, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Handicap    float64   `json:"handicap"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlayerList response type
type PlayerList struct {
	Players []Player `json:"players"`
}

// Score response type
type Score struct {
	ID           string    `json:"id"`
	PlayerID     string    `json:"player_id"`
	Strokes      int       `json:"strokes"`
	Par          int       `json:"par"`
	Slope        int       `json:"slope"`
	Differential string    `json:"differential"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ScoreList response type
type ScoreList struct {
	PlayerID string  `json:"player_id"`
	Scores   []Score `json:"scores"`
}

// Handicap response type
type Handicap struct {
	PlayerID string  `json:"player_id"`
	Handicap float64 `json:"handicap"`
}

// Calculation response type
type Calculation struct {
	Handicap *float64 `json:"handicap"`
	Rounds   int      `json:"rounds"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func formatIndex(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func (o *Output) printPlayer(p Player) {
	fmt.Fprintf(o.out, "Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Fprintf(o.out, "Handicap: %s\n", formatIndex(p.Handicap))
}

func (o *Output) printPlayerList(l PlayerList) {
	if len(l.Players) == 0 {
		fmt.Fprintln(o.out, "No players")
		return
	}
	fmt.Fprintf(o.out, "Players (%d):\n", len(l.Players))
	for _, p := range l.Players {
		fmt.Fprintf(o.out, "  - %s (%s) handicap %s\n", p.DisplayName, p.ID, formatIndex(p.Handicap))
	}
}

func (o *Output) printScore(s Score) {
	fmt.Fprintf(o.out, "Score: %s\n", s.ID)
	fmt.Fprintf(o.out, "Player: %s\n", s.PlayerID)
	fmt.Fprintf(o.out, "Strokes: %d  Par: %d  Slope: %d\n", s.Strokes, s.Par, s.Slope)
	fmt.Fprintf(o.out, "Differential: %s\n", s.Differential)
}

func (o *Output) printScoreList(l ScoreList) {
	if len(l.Scores) == 0 {
		fmt.Fprintf(o.out, "No scores for %s\n", l.PlayerID)
		return
	}
	fmt.Fprintf(o.out, "Scores for %s (%d):\n", l.PlayerID, len(l.Scores))
	for _, s := range l.Scores {
		fmt.Fprintf(o.out, "  - %s: %d strokes, par %d, slope %d, differential %s\n",
			s.ID, s.Strokes, s.Par, s.Slope, s.Differential)
	}
}

func (o *Output) printCalculation(c Calculation) {
	if c.Handicap == nil {
		fmt.Fprintln(o.out, "Handicap: none (no rounds)")
		return
	}
	fmt.Fprintf(o.out, "Handicap: %s over %d rounds\n", formatIndex(*c.Handicap), c.Rounds)
}
