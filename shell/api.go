package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/domino14/hearts/cache"
	"github.com/domino14/hearts/cards"
	"github.com/domino14/hearts/charge"
	"github.com/domino14/hearts/deal"
	"github.com/domino14/hearts/scoring"
	"github.com/domino14/hearts/solver"
)

var errNoPosition = errors.New("no position loaded; use `deal` or `hand` first")

// counts are printed with digit grouping
var printer = message.NewPrinter(language.English)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

// report is the -yaml form of a resolved position.
type report struct {
	Position string   `yaml:"position"`
	Charged  string   `yaml:"charged"`
	Won      []string `yaml:"won"`
	Scores   []int    `yaml:"scores"`
	Money    []int    `yaml:"money"`
	Nodes    uint64   `yaml:"nodes,omitempty"`
	Cached   bool     `yaml:"cached,omitempty"`
	Solves   int      `yaml:"solves,omitempty"`
}

func newReport(pos solver.Position, charged cards.CardSet, won [4]cards.CardSet, money [4]int) report {
	return report{
		Position: deal.Format(pos.Hands),
		Charged:  charged.String(),
		Won:      lo.Map(won[:], func(w cards.CardSet, _ int) string { return w.String() }),
		Scores:   lo.Map(won[:], func(w cards.CardSet, _ int) int { return scoring.Score(w, charged) }),
		Money:    money[:],
	}
}

func (r report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "charged: %s\n", lo.Ternary(r.Charged == "", "none", r.Charged))
	fmt.Fprintf(&sb, "%-5s%-40s%6s%7s\n", "seat", "won", "score", "money")
	for i := range r.Won {
		fmt.Fprintf(&sb, "%-5d%-40s%6d%7d\n", i, r.Won[i], r.Scores[i], r.Money[i])
	}
	if r.Solves > 0 {
		fmt.Fprintf(&sb, "solves: %d\n", r.Solves)
	}
	if r.Nodes > 0 {
		sb.WriteString(printer.Sprintf("nodes: %d\n", r.Nodes))
	}
	if r.Cached {
		sb.WriteString("cached result\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func render(r report, asYAML bool) (*Response, error) {
	if !asYAML {
		return msg(r.String()), nil
	}
	out, err := yaml.Marshal(r)
	if err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(string(out), "\n")), nil
}

func (sc *ShellController) setPosition(pos solver.Position) {
	sc.pos = pos
	sc.hasPos = true
}

func (sc *ShellController) positionDisplay() string {
	var sb strings.Builder
	p := sc.pos
	for i := range p.Hands {
		marker := "  "
		if i == p.Player && !p.Done() {
			marker = "->"
		}
		fmt.Fprintf(&sb, "%s seat %d: %-40s won: %s\n", marker, i,
			lo.Ternary(p.Playable(i).Empty(), "-", p.Playable(i).String()), p.Won[i])
	}
	if !p.Trick.Empty() {
		fmt.Fprintf(&sb, "trick: %s (led %s)\n", p.Trick, p.Lead)
	}
	if !p.Charged.Empty() {
		fmt.Fprintf(&sb, "charged: %s\n", p.Charged)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(usage("standard")), nil
	}
	return msg(usageTopic(cmd.args[0])), nil
}

func (sc *ShellController) newDeal(cmd *shellcmd) (*Response, error) {
	n := deal.HandSize
	if len(cmd.args) > 0 {
		var err error
		n, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	pos, err := sc.dealer.Endgame(n)
	if err != nil {
		return nil, err
	}
	sc.setPosition(pos)
	return msg(sc.positionDisplay()), nil
}

// hand sets the hands from deal notation. Four full hands start a fresh
// deal. Shorter hands make a late position in which every other card was
// captured by seat -rest and seat -lead is to lead.
func (sc *ShellController) hand(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: hand <seat0> / <seat1> / <seat2> / <seat3> [-rest seat] [-lead seat]")
	}
	hands, err := deal.Parse(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	var pos solver.Position
	if deal.Validate(hands) == nil {
		pos, err = solver.NewDealPosition(hands)
		if err != nil {
			return nil, err
		}
		sc.setPosition(pos)
		return msg(sc.positionDisplay()), nil
	}
	rest, err := cmd.options.IntDefault("rest", 0)
	if err != nil {
		return nil, err
	}
	lead, err := cmd.options.IntDefault("lead", 0)
	if err != nil {
		return nil, err
	}
	if rest < 0 || rest > 3 {
		return nil, fmt.Errorf("%w: seat %d", solver.ErrInvalidPosition, rest)
	}
	pos = solver.Position{Hands: hands, Lead: cards.NoCard, LedSuits: cards.Deck, Player: lead}
	pos.Won[rest] = cards.Deck &^ (hands[0] | hands[1] | hands[2] | hands[3])
	if err := pos.Validate(); err != nil {
		return nil, err
	}
	sc.setPosition(pos)
	return msg(sc.positionDisplay()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if !sc.hasPos {
		return nil, errNoPosition
	}
	return msg(sc.positionDisplay()), nil
}

func (sc *ShellController) charge(cmd *shellcmd) (*Response, error) {
	if !sc.hasPos {
		return nil, errNoPosition
	}
	if len(cmd.args) == 0 {
		return msg("charged: " + lo.Ternary(sc.pos.Charged.Empty(), "none", sc.pos.Charged.String())), nil
	}
	var charged cards.CardSet
	if cmd.args[0] != "none" {
		var err error
		charged, err = cards.Parse(strings.Join(cmd.args, " "))
		if err != nil {
			return nil, err
		}
	}
	next := sc.pos
	next.Charged = charged
	if err := next.Validate(); err != nil {
		return nil, err
	}
	sc.pos = next
	return msg("charged: " + lo.Ternary(charged.Empty(), "none", charged.String())), nil
}

func (sc *ShellController) legal(cmd *shellcmd) (*Response, error) {
	if !sc.hasPos {
		return nil, errNoPosition
	}
	if sc.pos.Done() {
		return msg("the deal is over"), nil
	}
	return msg(fmt.Sprintf("seat %d legal: %s\ncandidates: %s",
		sc.pos.Player, sc.pos.Legal(), sc.pos.Candidates())), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if !sc.hasPos {
		return nil, errNoPosition
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <card>")
	}
	c, err := cards.ParseCard(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if !sc.pos.Legal().Contains(c) {
		return nil, fmt.Errorf("%s is not a legal play for seat %d; legal: %s", c, sc.pos.Player, sc.pos.Legal())
	}
	var completed bool
	sc.pos, completed = sc.pos.Play(c)
	log.Debug().Str("card", c.String()).Bool("completed", completed).Msg("played")
	return msg(sc.positionDisplay()), nil
}

func positionKey(kind string, pos solver.Position) uint64 {
	return cache.Key(kind, fmt.Sprintf("%+v", pos))
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if !sc.hasPos {
		return nil, errNoPosition
	}
	pos := sc.pos
	res, hit, err := cache.Load(positionKey("solve", pos), func() (solver.Result, error) {
		return sc.solver.Solve(sc.ctx, pos)
	})
	if err != nil {
		return nil, err
	}
	r := newReport(pos, pos.Charged, res.Won, res.Money)
	// nodes belong to the run that filled the cache
	if !hit {
		r.Nodes = res.Nodes
	}
	r.Cached = hit
	return render(r, cmd.options.Bool("yaml"))
}

// analyze discards any charges on the position, picks them with the
// charge selector and resolves the deal under them.
func (sc *ShellController) analyze(cmd *shellcmd) (*Response, error) {
	if !sc.hasPos {
		return nil, errNoPosition
	}
	pos := sc.pos
	pos.Charged = 0
	res, hit, err := cache.Load(positionKey("analyze", pos), func() (charge.Result, error) {
		return sc.selector.Select(sc.ctx, pos)
	})
	if err != nil {
		return nil, err
	}
	r := newReport(pos, res.Charged, res.Won, res.Money)
	r.Solves = res.Solves
	r.Cached = hit
	return render(r, cmd.options.Bool("yaml"))
}

func (sc *ShellController) line(cmd *shellcmd) (*Response, error) {
	if !sc.hasPos {
		return nil, errNoPosition
	}
	steps, err := sc.solver.Line(sc.ctx, sc.pos)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	var trick []string
	for _, st := range steps {
		trick = append(trick, fmt.Sprintf("%d:%s", st.Seat, st.Card))
		if st.Completed {
			fmt.Fprintf(&sb, "%s -> seat %d\n", strings.Join(trick, " "), st.Winner)
			trick = trick[:0]
		}
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}
