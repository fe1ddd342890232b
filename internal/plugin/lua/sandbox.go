package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/clickaway/internal/logging"
)

// Sandbox restricts Lua execution to safe operations.
type Sandbox struct {
	L   *lua.LState
	log *logging.Logger
}

// NewSandbox creates a sandbox for L. Script output from print goes to log.
func NewSandbox(L *lua.LState, log *logging.Logger) *Sandbox {
	return &Sandbox{L: L, log: log}
}

// removedGlobals can load code from disk or strings, bypassing the sandbox.
var removedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
}

// Install applies the sandbox restrictions.
func (s *Sandbox) Install() {
	for _, name := range removedGlobals {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installSafePrint()
}

// installSafePrint replaces print so scripts never write to the terminal,
// which the UI owns.
func (s *Sandbox) installSafePrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		parts := make([]string, 0, top)
		for i := 1; i <= top; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		s.log.Info("%s", strings.Join(parts, "\t"))
		return 0
	}))
}
