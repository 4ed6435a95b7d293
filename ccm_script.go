// ccm_script.go - Lua scripting harness for driving a CCM machine

package main

import (
	"errors"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// ScriptError is a failure raised inside a script, as opposed to a failure
// to load it.
type ScriptError struct {
	Source  string
	Message string
	Err     error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// newScriptState builds a Lua state exposing the machine as the global
// table "ccm":
//
//	ccm.read(off)         -> value
//	ccm.write(off, value)
//	ccm.freq(name)        -> Hz
//	ccm.reset()
//	ccm.device()          -> type name
//
// print is redirected to out.
func newScriptState(machine *Machine, out func(string)) *lua.LState {
	L := lua.NewState()

	wordArg := func(L *lua.LState, n int, what string) uint32 {
		v := L.CheckInt64(n)
		if v < 0 || v > 0xFFFFFFFF {
			L.ArgError(n, what+" out of range")
		}
		return uint32(v)
	}

	ccm := L.NewTable()
	L.SetFuncs(ccm, map[string]lua.LGFunction{
		"read": func(L *lua.LState) int {
			off := wordArg(L, 1, "offset")
			val, ok := machine.ReadReg(off)
			if !ok {
				L.RaiseError("bus fault reading +$%X", off)
			}
			L.Push(lua.LNumber(val))
			return 1
		},
		"write": func(L *lua.LState) int {
			off := wordArg(L, 1, "offset")
			val := wordArg(L, 2, "value")
			if !machine.WriteReg(off, val) {
				L.RaiseError("bus fault writing +$%X", off)
			}
			return 0
		},
		"freq": func(L *lua.LState) int {
			name := L.CheckString(1)
			id, ok := ParseClockID(name)
			if !ok {
				L.ArgError(1, "unknown clock "+name)
			}
			L.Push(lua.LNumber(machine.ClockFrequency(id)))
			return 1
		},
		"reset": func(L *lua.LState) int {
			machine.Reset()
			return 0
		},
		"device": func(L *lua.LState) int {
			L.Push(lua.LString(machine.CCM().TypeName()))
			return 1
		},
	})
	L.SetGlobal("ccm", ccm)

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		if out != nil {
			out(strings.Join(parts, "\t"))
		}
		return 0
	}))

	return L
}

func scriptError(source string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) && apiErr.Type != lua.ApiErrorFile {
		msg := apiErr.Error()
		if apiErr.Object != nil {
			msg = apiErr.Object.String()
		}
		return &ScriptError{Source: source, Message: msg, Err: err}
	}
	return fmt.Errorf("%s: %w", source, err)
}

// RunScript executes Lua source against machine.
func RunScript(machine *Machine, source string, out func(string)) error {
	L := newScriptState(machine, out)
	defer L.Close()
	return scriptError("<script>", L.DoString(source))
}

// RunScriptFile executes the Lua file at path against machine.
func RunScriptFile(machine *Machine, path string, out func(string)) error {
	L := newScriptState(machine, out)
	defer L.Close()
	return scriptError(path, L.DoFile(path))
}
