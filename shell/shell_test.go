package shell

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/domino14/hearts/cache"
	"github.com/domino14/hearts/config"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func testController() *ShellController {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigTTableMemFraction, 0.0)
	return newController(cfg)
}

func run(t *testing.T, sc *ShellController, line string) string {
	t.Helper()
	resp, err := sc.standardModeSwitch(line, nil)
	if err != nil {
		t.Fatalf("%s: %v", line, err)
	}
	return resp.message
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"solve -yaml true",
			&shellcmd{"solve", nil, CmdOptions{"yaml": {"true"}}},
			nil},
		{"deal 4",
			&shellcmd{"deal", []string{"4"}, CmdOptions{}},
			nil},
		{"hand 2S / - / 3S 4H / 5S -rest 1",
			&shellcmd{"hand",
				[]string{"2S", "/", "-", "/", "3S", "4H", "/", "5S"},
				CmdOptions{"rest": {"1"}}},
			nil,
		},
		{`hand "AS / KS / QS / JS" -lead 2`,
			&shellcmd{"hand", []string{"AS / KS / QS / JS"}, CmdOptions{"lead": {"2"}}},
			nil},
		{"batch -n 5 -cards",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func TestSolveCommand(t *testing.T) {
	is := is.New(t)
	sc := testController()
	run(t, sc, "hand A3S / Q2S / 54D / 76D -rest 2")
	out := run(t, sc, "solve")
	is.True(strings.Contains(out, "AQ32S 7654D"))
	is.True(strings.Contains(out, "charged: none"))

	var r report
	is.NoErr(yaml.Unmarshal([]byte(run(t, sc, "solve -yaml true")), &r))
	is.Equal(r.Money, []int{-33, 19, -5, 19})
	is.Equal(r.Scores, []int{13, 0, 6, 0})
	is.Equal(r.Won[0], "AQ32S 7654D")
	is.Equal(r.Position, "A3S / Q2S / 54D / 76D")
}

func TestSolveCachedReport(t *testing.T) {
	is := is.New(t)
	cache.CreateGlobalObjectCache()
	sc := testController()
	run(t, sc, "hand A3S / Q2S / 54D / 76D -rest 2")

	var first, again report
	is.NoErr(yaml.Unmarshal([]byte(run(t, sc, "solve -yaml true")), &first))
	is.True(!first.Cached)
	is.True(first.Nodes > 0)

	out := run(t, sc, "solve -yaml true")
	is.NoErr(yaml.Unmarshal([]byte(out), &again))
	is.True(again.Cached)
	// a cached result did not search anything
	is.Equal(again.Nodes, uint64(0))
	is.True(!strings.Contains(out, "nodes:"))
	is.Equal(again.Money, first.Money)
	is.True(strings.Contains(run(t, sc, "solve"), "cached result"))
}

func TestAnalyzeCommand(t *testing.T) {
	is := is.New(t)
	sc := testController()
	run(t, sc, "hand QS / AS / AH / TC -rest 2")
	run(t, sc, "charge AH")
	var r report
	is.NoErr(yaml.Unmarshal([]byte(run(t, sc, "analyze -yaml true")), &r))
	is.Equal(r.Charged, "QS TC")
	is.Equal(r.Money, []int{110, -322, 102, 110})
	is.Equal(r.Solves, 4)
	// analyze leaves the position's own charges alone
	is.Equal(run(t, sc, "charge"), "charged: AH")
}

func TestChargeCommand(t *testing.T) {
	is := is.New(t)
	sc := testController()
	run(t, sc, "hand QS / AS / AH / TC -rest 2")
	is.Equal(run(t, sc, "charge TC QS"), "charged: QS TC")
	_, err := sc.standardModeSwitch("charge KS", nil)
	is.True(err != nil)
	is.Equal(run(t, sc, "charge none"), "charged: none")
}

func TestPlayAndLine(t *testing.T) {
	is := is.New(t)
	sc := testController()
	run(t, sc, "hand A3S / Q2S / 54D / 76D -rest 2")
	is.Equal(run(t, sc, "legal"), "seat 0 legal: A3S\ncandidates: A3S")

	lines := strings.Split(run(t, sc, "line"), "\n")
	is.Equal(len(lines), 2)
	is.Equal(lines[0], "0:AS 1:QS 2:5D 3:7D -> seat 0")
	is.Equal(lines[1], "0:3S 1:2S 2:4D 3:6D -> seat 0")

	run(t, sc, "play AS")
	_, err := sc.standardModeSwitch("play 5D", nil)
	is.True(err != nil)
	out := run(t, sc, "play 2S")
	is.True(strings.Contains(out, "trick: A2S (led AS)"))
}

func TestNoPosition(t *testing.T) {
	is := is.New(t)
	sc := testController()
	for _, c := range []string{"solve", "analyze", "line", "legal", "show", "charge QS", "play 2C"} {
		_, err := sc.standardModeSwitch(c, nil)
		is.True(errors.Is(err, errNoPosition))
	}
	_, err := sc.standardModeSwitch("frobnicate", nil)
	is.True(err != nil)
}

func TestDealAndBatch(t *testing.T) {
	is := is.New(t)
	sc := testController()
	out := run(t, sc, "deal 2")
	is.Equal(len(strings.Split(out, "\n")), 4)

	out = run(t, sc, "batch -n 3 -cards 2 -threads 2")
	is.True(strings.HasPrefix(out, "deals: 3 (2 cards per hand)"))
	is.True(strings.Contains(out, "95% interval"))
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc := testController()
	is.True(strings.HasPrefix(run(t, sc, "help"), "Commands:"))
	is.True(strings.HasPrefix(run(t, sc, "help solve"), "solve [-yaml true]"))
	is.Equal(run(t, sc, "help nothing"), "There is no help text for the topic nothing")
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	sc := testController()
	c := NewShellCompleter(sc)
	matches, n := c.Do([]rune("sol"), 3)
	is.Equal(n, 3)
	is.Equal(matches, [][]rune{[]rune("ve")})

	matches, _ = c.Do([]rune("solve -yaml "), 12)
	is.Equal(len(matches), 2)

	run(t, sc, "hand A3S / Q2S / 54D / 76D -rest 2")
	matches, _ = c.Do([]rune("play "), 5)
	is.Equal(matches, [][]rune{[]rune("AS"), []rune("3S")})
}

func TestScript(t *testing.T) {
	is := is.New(t)
	sc := testController()
	path := filepath.Join(t.TempDir(), "solve.lua")
	script := `
hearts_hand("A3S / Q2S / 54D / 76D -rest 2")
local bad = hearts_play("5D")
assert(string.sub(bad, 1, 6) == "ERROR:")
result = hearts_solve("")
`
	is.NoErr(os.WriteFile(path, []byte(script), 0o644))
	out := run(t, sc, "script "+path)
	is.True(strings.Contains(out, "AQ32S 7654D"))
	is.True(sc.hasPos)

	_, err := sc.standardModeSwitch("script "+filepath.Join(t.TempDir(), "missing.lua"), nil)
	is.True(err != nil)
}

func TestHistogram(t *testing.T) {
	is := is.New(t)
	out, err := formatHistogram([]float64{-33, 19, -5, 19, 7, 7, -1})
	is.NoErr(err)
	is.True(out != "")
	out, err = formatHistogram([]float64{3, 3})
	is.NoErr(err)
	is.Equal(out, "not enough distinct values for a histogram")
}
