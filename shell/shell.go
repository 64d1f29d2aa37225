package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/hearts/charge"
	"github.com/domino14/hearts/config"
	"github.com/domino14/hearts/deal"
	"github.com/domino14/hearts/solver"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errQuit              = errors.New("sending quit signal")
)

type ShellController struct {
	l      *readline.Instance
	config *config.Config

	ctx    context.Context
	cancel context.CancelFunc

	solver   *solver.Solver
	selector *charge.Selector
	dealer   *deal.Dealer

	pos    solver.Position
	hasPos bool
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// newController builds everything but the terminal.
func newController(cfg *config.Config) *ShellController {
	sc := &ShellController{config: cfg, dealer: deal.NewDealer()}
	sc.ctx, sc.cancel = context.WithCancel(context.Background())
	sc.solver = newSolver(cfg, cfg.GetInt(config.ConfigThreads))
	sc.selector = charge.NewSelector(sc.solver)
	return sc
}

func newSolver(cfg *config.Config, threads int) *solver.Solver {
	s := solver.NewSolver()
	s.SetThreads(threads)
	s.SetTranspositionTableOptim(cfg.GetBool(config.ConfigTTable))
	s.SetTableFraction(cfg.GetFloat64(config.ConfigTTableMemFraction))
	return s
}

func NewShellController(cfg *config.Config) *ShellController {
	sc := newController(cfg)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mhearts>\033[0m ",
		HistoryFile:     "/tmp/hearts_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

func (sc *ShellController) stdout() io.Writer {
	if sc.l == nil {
		return os.Stdout
	}
	return sc.l.Stdout()
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.stdout())
}

func (sc *ShellController) showError(err error) {
	log.Error().Err(err).Msg("")
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: CmdOptions{}}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if !isOption(f) {
			cmd.args = append(cmd.args, f)
			continue
		}
		if i+1 >= len(fields) {
			return nil, errWrongOptionSyntax
		}
		name := f[1:]
		cmd.options[name] = append(cmd.options[name], fields[i+1])
		i++
	}
	return cmd, nil
}

// isOption tells "-yaml" from the empty-hand "-" of deal notation.
func isOption(f string) bool {
	return len(f) > 1 && f[0] == '-' && (f[1] < '0' || f[1] > '9')
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		sig <- syscall.SIGINT
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "deal":
		return sc.newDeal(cmd)
	case "hand":
		return sc.hand(cmd)
	case "show":
		return sc.show(cmd)
	case "charge":
		return sc.charge(cmd)
	case "legal":
		return sc.legal(cmd)
	case "play":
		return sc.play(cmd)
	case "solve":
		return sc.solve(cmd)
	case "analyze":
		return sc.analyze(cmd)
	case "line":
		return sc.line(cmd)
	case "batch":
		return sc.batch(cmd)
	case "script":
		return sc.script(cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return nil, fmt.Errorf("unknown command %q", cmd.cmd)
	}
}

// Execute runs a semicolon-separated list of commands, stopping at the
// first error.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	for _, c := range strings.Split(line, ";") {
		resp, err := sc.standardModeSwitch(strings.TrimSpace(c), sig)
		if errors.Is(err, errNoData) {
			continue
		}
		if err != nil {
			sc.showError(err)
			return
		}
		if resp != nil {
			sc.showMessage(resp.message)
		}
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		resp, err := sc.standardModeSwitch(strings.TrimSpace(line), sig)
		if errors.Is(err, errQuit) {
			break
		}
		if errors.Is(err, errNoData) {
			continue
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

func (sc *ShellController) Cleanup() {
	sc.cancel()
}
