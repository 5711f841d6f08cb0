package ingest

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// ErrNoFilterFunc indicates a filter script that defines no filter function.
var ErrNoFilterFunc = errors.New("filter script does not define filter(text)")

// Filter runs a user-supplied Lua script against every offered block.
//
// The script defines a global function filter(text) returning one of:
//
//	a string  — replacement text for the block
//	true      — keep the block unchanged
//	false/nil — drop the block
//
// A script error keeps the block unchanged; losing mined lines to a buggy
// filter is worse than letting them through.
type Filter struct {
	mu    sync.Mutex
	state *lua.LState
}

// LoadFilter compiles and runs the script at path.
func LoadFilter(path string) (*Filter, error) {
	L := lua.NewState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("load filter script: %w", err)
	}
	return newFilter(L)
}

// LoadFilterString builds a filter from inline source.
func LoadFilterString(src string) (*Filter, error) {
	L := lua.NewState()
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("load filter script: %w", err)
	}
	return newFilter(L)
}

func newFilter(L *lua.LState) (*Filter, error) {
	if _, ok := L.GetGlobal("filter").(*lua.LFunction); !ok {
		L.Close()
		return nil, ErrNoFilterFunc
	}
	return &Filter{state: L}, nil
}

// Apply runs the filter function on one block.
func (f *Filter) Apply(text string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	L := f.state
	err := L.CallByParam(lua.P{
		Fn:      L.GetGlobal("filter"),
		NRet:    1,
		Protect: true,
	}, lua.LString(text))
	if err != nil {
		return text, true
	}

	ret := L.Get(-1)
	L.Pop(1)

	switch v := ret.(type) {
	case lua.LString:
		return string(v), true
	case lua.LBool:
		if bool(v) {
			return text, true
		}
		return "", false
	case *lua.LNilType:
		return "", false
	default:
		return text, true
	}
}

// Close releases the Lua state.
func (f *Filter) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Close()
}
