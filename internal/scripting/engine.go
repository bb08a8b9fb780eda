package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM running observer scripts.
// Single-goroutine access only (simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory. A missing directory yields an engine with no hooks.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Shared helpers first, then observers
	for _, sub := range []string{"core", "observer"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// HasHook reports whether a global Lua function with the given name exists.
func (e *Engine) HasHook(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// RoundContext holds pre-packed census data for on_round.
type RoundContext struct {
	Round         uint64
	Population    int
	Herbivores    int
	Carnivores    int
	Omnivores     int
	Energy        uint64
	Food          uint64
	Genomes       int
	DominantGenes string
	DominantCount int
	Births        int
	Starved       int
	Killed        int
}

// OnRound calls the Lua on_round function with the census of the round that
// just ended. A true return asks the host to stop the simulation. Missing
// hooks and script errors never stop it.
func (e *Engine) OnRound(ctx RoundContext) bool {
	fn, ok := e.vm.GetGlobal("on_round").(*lua.LFunction)
	if !ok {
		return false
	}

	t := e.vm.NewTable()
	t.RawSetString("round", lua.LNumber(ctx.Round))
	t.RawSetString("population", lua.LNumber(ctx.Population))
	t.RawSetString("energy", lua.LNumber(ctx.Energy))
	t.RawSetString("food", lua.LNumber(ctx.Food))
	t.RawSetString("genomes", lua.LNumber(ctx.Genomes))
	t.RawSetString("births", lua.LNumber(ctx.Births))
	t.RawSetString("starved", lua.LNumber(ctx.Starved))
	t.RawSetString("killed", lua.LNumber(ctx.Killed))

	diets := e.vm.NewTable()
	diets.RawSetString("herbivore", lua.LNumber(ctx.Herbivores))
	diets.RawSetString("carnivore", lua.LNumber(ctx.Carnivores))
	diets.RawSetString("omnivore", lua.LNumber(ctx.Omnivores))
	t.RawSetString("diets", diets)

	dom := e.vm.NewTable()
	dom.RawSetString("genes", lua.LString(ctx.DominantGenes))
	dom.RawSetString("count", lua.LNumber(ctx.DominantCount))
	t.RawSetString("dominant", dom)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua on_round error", zap.Uint64("round", ctx.Round), zap.Error(err))
		return false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return lua.LVAsBool(result)
}

// OnExtinction calls the Lua on_extinction function, if defined.
func (e *Engine) OnExtinction(round uint64) {
	fn, ok := e.vm.GetGlobal("on_extinction").(*lua.LFunction)
	if !ok {
		return
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(round)); err != nil {
		e.log.Error("lua on_extinction error", zap.Error(err))
	}
}
