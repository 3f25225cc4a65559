package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/golfhandicap/internal/api"
	"github.com/mcoot/golfhandicap/internal/cli"
	"github.com/mcoot/golfhandicap/internal/factory"
	"github.com/mcoot/golfhandicap/internal/testutil"
)

// cliRunner executes the CLI in-process against a real HTTP server
type cliRunner struct {
	serverURL string
}

func newCLIRunner(t *testing.T) *cliRunner {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:        testutil.NopLogger(),
		PlayerService: app.PlayerService,
		Calculator:    app.Calculator,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &cliRunner{serverURL: srv.URL}
}

func (r *cliRunner) runFormat(format string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", format,
	}, args...)

	var out bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(fullArgs)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (r *cliRunner) run(args ...string) (string, error) {
	return r.runFormat("json", args...)
}

func runJSON[T any](t *testing.T, r *cliRunner, args ...string) T {
	t.Helper()
	out, err := r.run(args...)
	require.NoError(t, err, out)

	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestCLIHealth(t *testing.T) {
	r := newCLIRunner(t)

	result := runJSON[cli.HealthResult](t, r, "health")
	assert.Equal(t, "ok", result.Status)
}

func TestCLIPlayerAndScoreFlow(t *testing.T) {
	r := newCLIRunner(t)

	// Create
	p := runJSON[cli.Player](t, r, "player", "create", "--name", "Alice")
	assert.Equal(t, "player-1", p.ID)
	assert.Equal(t, 0.0, p.Handicap)

	// Record two rounds at the default slope
	first := runJSON[cli.Score](t, r, "score", "add", p.ID, "--strokes", "85", "--par", "72")
	assert.Equal(t, 113, first.Slope)
	runJSON[cli.Score](t, r, "score", "add", p.ID, "--strokes", "90", "--par", "72")

	h := runJSON[cli.Handicap](t, r, "handicap", "get", p.ID)
	assert.Equal(t, 15.5, h.Handicap)

	// Correct the first round
	updated := runJSON[cli.Score](t, r, "score", "update", p.ID, first.ID, "--strokes", "80", "--par", "72")
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, 80, updated.Strokes)

	got := runJSON[cli.Player](t, r, "player", "get", p.ID)
	assert.Equal(t, 13.0, got.Handicap)

	scores := runJSON[cli.ScoreList](t, r, "score", "list", p.ID)
	assert.Len(t, scores.Scores, 2)

	// Rename keeps the handicap
	renamed := runJSON[cli.Player](t, r, "player", "rename", p.ID, "--name", "Alicia")
	assert.Equal(t, "Alicia", renamed.DisplayName)
	assert.Equal(t, 13.0, renamed.Handicap)

	recomputed := runJSON[cli.Player](t, r, "handicap", "recompute", p.ID)
	assert.Equal(t, 13.0, recomputed.Handicap)

	// Clear
	cleared := runJSON[cli.Player](t, r, "score", "clear", p.ID)
	assert.Equal(t, 0.0, cleared.Handicap)

	list := runJSON[cli.PlayerList](t, r, "player", "list")
	require.Len(t, list.Players, 1)

	// Delete
	out, err := r.run("player", "delete", p.ID)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Deleted player")

	_, err = r.run("player", "get", p.ID)
	var apiErr *cli.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "PLAYER_NOT_FOUND", apiErr.Code)
}

func TestCLIHandicapCalc(t *testing.T) {
	r := newCLIRunner(t)

	calc := runJSON[cli.Calculation](t, r, "handicap", "calc",
		"--strokes", "89,85,90", "--pars", "72,72,72", "--slopes", "121,113,130")
	require.NotNil(t, calc.Handicap)
	assert.Equal(t, 14.84, *calc.Handicap)
	assert.Equal(t, 3, calc.Rounds)

	_, err := r.run("handicap", "calc", "--strokes", "85,90", "--pars", "72")
	assert.ErrorContains(t, err, "same number of values")

	_, err = r.run("handicap", "calc", "--strokes", "85,90", "--pars", "72,72", "--slopes", "120")
	var apiErr *cli.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "MISMATCHED_SERIES", apiErr.Code)
}

func TestCLITextOutput(t *testing.T) {
	r := newCLIRunner(t)

	out, err := r.runFormat("text", "player", "create", "--name", "Bob")
	require.NoError(t, err)
	assert.Contains(t, out, "Player: Bob (player-1)")
	assert.Contains(t, out, "Handicap: 0.00")

	out, err = r.runFormat("text", "score", "add", "player-1", "--strokes", "76", "--par", "72", "--slope", "120")
	require.NoError(t, err)
	assert.Contains(t, out, "Strokes: 76  Par: 72  Slope: 120")
	assert.Contains(t, out, "Differential: 3.77")

	out, err = r.runFormat("text", "handicap", "get", "player-1")
	require.NoError(t, err)
	// 4 * 113 / 120 = 3.7666...
	assert.Contains(t, out, "Handicap (player-1): 3.77")
}

func TestCLIRejectsUnknownOutputFormat(t *testing.T) {
	r := newCLIRunner(t)

	_, err := r.runFormat("yaml", "health")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestCLIRequiresFlags(t *testing.T) {
	r := newCLIRunner(t)

	_, err := r.run("score", "add", "player-1", "--par", "72")
	assert.Error(t, err)
}
