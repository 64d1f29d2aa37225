package shell

import (
	"errors"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("hearts_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// command returns a Lua function running the named shell command with the
// rest of the line as its single string argument. It pushes the command's
// output, or "ERROR: ..." when it fails.
func command(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		line := name
		if L.GetTop() > 0 {
			line += " " + L.ToString(1)
		}
		sc := getShell(L)
		r, err := sc.standardModeSwitch(line, nil)
		if err != nil {
			log.Err(err).Str("line", line).Msg("error-executing-script-command")
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		L.Push(lua.LString(r.message))
		return 1
	}
}

var scriptCommands = []string{
	"deal", "hand", "show", "charge", "legal", "play", "solve", "analyze", "line", "batch",
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}
	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	lsc := L.NewUserData()
	lsc.Value = sc
	L.SetGlobal("hearts_shell", lsc)
	for _, name := range scriptCommands {
		L.SetGlobal("hearts_"+name, L.NewFunction(command(name)))
	}

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	// a script may leave its report in the global `result`
	if res, ok := L.GetGlobal("result").(lua.LString); ok {
		return msg(string(res)), nil
	}
	return msg("script " + filepath + " done"), nil
}
