package loader

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"

	"github.com/nathoo/runeblade/engine/state"
	lua "github.com/yuin/gopher-lua"
)

// rawDef holds a curried definition table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
}

// collector accumulates Lua definitions during file execution.
type collector struct {
	game    *lua.LTable
	player  *lua.LTable
	starter *lua.LTable
	cards   []rawDef
	enemies []rawDef
	tiers   []rawDef
	acts    []*lua.LTable
}

// Load reads all .lua files from dir and returns the compiled, validated
// content. The Lua VM is discarded after loading.
func Load(dir string) (*state.Defs, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS is Load over any file system, such as the embedded default content.
// Only .lua files at the root of fsys are read.
func LoadFS(fsys fs.FS) (*state.Defs, error) {
	luaFiles, err := fs.Glob(fsys, "*.lua")
	if err != nil {
		return nil, fmt.Errorf("listing content files: %w", err)
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found")
	}

	// game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		src, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		if err := run(L, f, src); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling game data: %w", err)
	}

	if err := validate(defs); err != nil {
		return nil, err
	}

	return defs, nil
}

// run executes one chunk, naming it after its file in Lua error messages.
func run(L *lua.LState, name string, src []byte) error {
	fn, err := L.Load(bytes.NewReader(src), name)
	if err != nil {
		return err
	}
	L.Push(fn)
	return L.PCall(0, lua.MultRet, nil)
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Content must not reseed; maps and shops draw from the run's RNG only.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
			tbl.RawSetString("random", lua.LNil)
		}
	}
}
