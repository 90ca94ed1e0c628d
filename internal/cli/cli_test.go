package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeamusWaldron/gocube_solver/internal/analysis"
	"github.com/SeamusWaldron/gocube_solver/internal/config"
	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/pdb"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
	"github.com/SeamusWaldron/gocube_solver/pkg/types"
)

var (
	testPattern = pdb.MustPattern("c3", pdb.KindCorners, []int{0, 1, 2})

	testTableOnce sync.Once
	testTable     *pdb.Table
	testTableErr  error
)

func smallTable(t *testing.T) *pdb.Table {
	t.Helper()
	testTableOnce.Do(func() {
		testTable, testTableErr = pdb.BuildTable(context.Background(), testPattern, pdb.BuildOptions{})
	})
	if testTableErr != nil {
		t.Fatalf("BuildTable: %v", testTableErr)
	}
	return testTable
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestParseScramble(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"R U R' U'", "R U R' U'"},
		{"R", "R"},
		{"abc", "L L2 L'"},
		{"  F2  ", "F2"},
		{"if", "U' R'"},
	}
	for _, tt := range tests {
		moves, err := parseScramble(tt.in)
		if err != nil {
			t.Errorf("parseScramble(%q): %v", tt.in, err)
			continue
		}
		if got := types.FormatMoves(moves); got != tt.want {
			t.Errorf("parseScramble(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"xyz", "R X"} {
		if _, err := parseScramble(bad); err == nil {
			t.Errorf("parseScramble(%q) succeeded", bad)
		}
	}
}

func TestFormatCount(t *testing.T) {
	tests := map[int64]string{
		0:         "0",
		999:       "999",
		1000:      "1,000",
		42577920:  "42,577,920",
		264539520: "264,539,520",
		-1234:     "-1,234",
	}
	for n, want := range tests {
		if got := formatCount(n); got != want {
			t.Errorf("formatCount(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{12 * time.Millisecond, "12ms"},
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "1:30.00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID of short id = %q", got)
	}
}

func TestRenderCube(t *testing.T) {
	c := cube.Solved()
	out := renderCube(&c)
	for _, group := range []string{"left", "right", "middle"} {
		if !strings.Contains(out, group) {
			t.Errorf("renderCube missing %q:\n%s", group, out)
		}
	}
}

func TestBuildModelProgress(t *testing.T) {
	canceled := false
	m := newBuildModel([]*pdb.Pattern{testPattern}, 0, func() { canceled = true })

	m.Update(buildProgressMsg(pdb.Progress{Table: "c3", Depth: 2, Discovered: 50, Visited: 100, Size: 9072}))
	ts := m.byName["c3"]
	if ts.depth != 2 || ts.visited != 100 || ts.done {
		t.Errorf("after progress: %+v", *ts)
	}
	if !strings.Contains(m.View(), "c3") {
		t.Error("View does not list the table")
	}

	m.Update(buildProgressMsg(pdb.Progress{Table: "c3", Depth: 3, Discovered: 0, Visited: 9072, Size: 9072}))
	if !ts.done {
		t.Error("table not done after an empty level")
	}

	// Unknown tables are ignored.
	m.Update(buildProgressMsg(pdb.Progress{Table: "nope", Depth: 1}))

	_, cmd := m.Update(buildDoneMsg{})
	if cmd == nil || !m.finished {
		t.Error("done message should finish and quit")
	}
	if canceled {
		t.Error("finishing should not cancel")
	}
}

func TestBuildModelCancel(t *testing.T) {
	canceled := false
	m := newBuildModel([]*pdb.Pattern{testPattern}, 0, func() { canceled = true })

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil || !canceled {
		t.Error("q should cancel and quit")
	}
	if got := m.View(); got != "Build cancelled.\n" {
		t.Errorf("View after cancel = %q", got)
	}
}

func TestBuildModelMaxDepth(t *testing.T) {
	m := newBuildModel([]*pdb.Pattern{testPattern}, 3, nil)
	m.Update(buildProgressMsg(pdb.Progress{Table: "c3", Depth: 3, Discovered: 10, Visited: 500, Size: 9072}))
	if !m.byName["c3"].done {
		t.Error("table not done at max depth")
	}
}

func TestReplayModelStep(t *testing.T) {
	scramble, _ := types.ParseMoves("R U")
	solution, _ := types.ParseMoves("U' R'")
	m := newReplayModel(scramble, solution, 1, true)

	if m.Init() != nil {
		t.Error("step mode should wait for input")
	}
	if m.state.IsSolved() {
		t.Fatal("replay should start scrambled")
	}

	// Ticks are ignored while paused.
	m.Update(replayTickMsg(time.Now()))
	if m.index != 0 {
		t.Fatalf("tick advanced a paused replay")
	}

	m.Update(keyMsg("n"))
	m.Update(keyMsg(" "))
	if m.index != 2 || !m.state.IsSolved() {
		t.Fatalf("after two steps: index %d, solved %v", m.index, m.state.IsSolved())
	}
	if !strings.Contains(m.View(), "SOLVED!") {
		t.Error("View does not report the solved cube")
	}

	// Stepping past the end is a no-op.
	m.Update(keyMsg("n"))
	if m.index != 2 {
		t.Errorf("index %d past end", m.index)
	}

	m.Update(keyMsg("r"))
	if m.index != 0 || m.state.IsSolved() {
		t.Error("reset should restore the scramble")
	}
}

func TestReplayModelPlayback(t *testing.T) {
	scramble, _ := types.ParseMoves("F")
	solution, _ := types.ParseMoves("F'")
	m := newReplayModel(scramble, solution, 0, false)

	if m.speed != 1 {
		t.Errorf("speed = %v, want default 1", m.speed)
	}
	if m.Init() == nil {
		t.Fatal("playback should schedule a move")
	}

	m.Update(keyMsg("+"))
	if m.speed != 2 {
		t.Errorf("speed after + = %v", m.speed)
	}

	_, cmd := m.Update(replayTickMsg(time.Now()))
	if !m.state.IsSolved() {
		t.Error("tick did not apply the move")
	}
	if cmd != nil {
		t.Error("nothing left to schedule after the last move")
	}

	_, cmd = m.Update(keyMsg("q"))
	if cmd == nil || m.View() != "Replay ended.\n" {
		t.Error("q should quit")
	}
}

func TestFormatHistogram(t *testing.T) {
	tbl := smallTable(t)
	hist, _ := tbl.Histogram()

	out := formatHistogram(tbl)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != len(hist) {
		t.Errorf("%d lines for %d costs:\n%s", len(lines), len(hist), out)
	}
}

func TestTableRecord(t *testing.T) {
	dir := t.TempDir()
	appConfig = &config.Config{TableDir: dir}
	t.Cleanup(func() { appConfig = nil })

	tbl := smallTable(t)
	rec := tableRecord(tbl, 5)

	if rec.Name != "c3" || rec.Kind != "corners" || rec.Pieces != "0 1 2" {
		t.Errorf("record = %+v", rec)
	}
	if rec.Entries != 9072 || rec.BuildMaxDepth != 5 {
		t.Errorf("entries %d, build max depth %d", rec.Entries, rec.BuildMaxDepth)
	}
	if rec.MaxValue != tbl.MaxValue() {
		t.Errorf("max value %d, want %d", rec.MaxValue, tbl.MaxValue())
	}
	if rec.Path != filepath.Join(dir, "c3.pdb") {
		t.Errorf("path = %q", rec.Path)
	}
}

func TestFindSolve(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := storage.NewSolveRepository(db)

	if _, err := findSolve(repo, nil, true); err == nil {
		t.Error("--last on an empty history succeeded")
	}

	id, err := repo.Create(&storage.Solve{ScrambleText: "R", Status: storage.StatusSolved})
	if err != nil {
		t.Fatal(err)
	}

	s, err := findSolve(repo, nil, true)
	if err != nil || s.SolveID != id {
		t.Errorf("findSolve(--last) = %v, %v", s, err)
	}
	s, err = findSolve(repo, []string{id}, false)
	if err != nil || s.SolveID != id {
		t.Errorf("findSolve(id) = %v, %v", s, err)
	}
	if _, err := findSolve(repo, []string{"missing"}, false); err == nil {
		t.Error("unknown id succeeded")
	}
	if _, err := findSolve(repo, nil, false); err == nil {
		t.Error("no id and no --last succeeded")
	}
}

func TestFormatSolution(t *testing.T) {
	text := "U' R'"
	length := 2
	s := &storage.Solve{
		SolveID:        "0123456789",
		ScrambleText:   "R U",
		SolutionText:   &text,
		SolutionLength: &length,
		Status:         storage.StatusSolved,
	}

	out, err := formatSolution(s, "txt")
	if err != nil || out != text {
		t.Errorf("txt = %q, %v", out, err)
	}

	out, err = formatSolution(s, "JSON")
	if err != nil {
		t.Fatal(err)
	}
	var decoded solutionJSON
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if decoded.Length != 2 || decoded.Labels != "if" || decoded.Scramble != "R U" {
		t.Errorf("decoded = %+v", decoded)
	}
	if len(decoded.Moves) != 2 || decoded.Moves[1].Face != "R" || decoded.Moves[1].Amount != 3 {
		t.Errorf("moves = %+v", decoded.Moves)
	}

	if _, err := formatSolution(s, "csv"); err == nil {
		t.Error("unknown format succeeded")
	}
	if _, err := formatSolution(&storage.Solve{Status: storage.StatusFailed}, "txt"); err == nil {
		t.Error("failed solve exported")
	}
}

func TestFormatSummary(t *testing.T) {
	length := 3
	solves := []storage.Solve{
		{Status: storage.StatusSolved, SolutionLength: &length, NodesExpanded: 10, DurationMs: 5},
		{Status: storage.StatusFailed, NodesExpanded: 20, DurationMs: 5},
	}
	moves, _ := types.ParseMoves("R U F")

	out := formatSummary(analysis.Summarize(solves), analysis.AnalyzeMovementProfile(moves))
	for _, want := range []string{"2 (1 solved, 1 failed)", "Lengths", "Faces", "Right"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestScrambleRedundancy(t *testing.T) {
	if fields := scrambleRedundancy(mustMoves(t, "R U R' U'")); fields != nil {
		t.Errorf("minimal scramble reported %v", fields)
	}

	fields := scrambleRedundancy(mustMoves(t, "R R' U U F"))
	got := map[string]any{}
	for i := 0; i+1 < len(fields); i += 2 {
		got[fields[i].(string)] = fields[i+1]
	}
	if got["moves"] != "U2 F" || got["length"] != 2 {
		t.Errorf("simplified = %v (%v)", got["moves"], got["length"])
	}
	if got["cancellations"] != 1 || got["merges"] != 1 || got["efficiency"] != "0.40" {
		t.Errorf("fields = %v", got)
	}
}

func mustMoves(t *testing.T, s string) []types.Move {
	t.Helper()
	moves, err := types.ParseMoves(s)
	if err != nil {
		t.Fatalf("ParseMoves(%q): %v", s, err)
	}
	return moves
}
