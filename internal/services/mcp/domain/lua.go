package domain

import (
	"fmt"
	"strings"

	"github.com/Shopify/go-lua"
)

// ScriptCheck vets a script before it is sent to Fusion. A nil ScriptCheck
// sends every script.
type ScriptCheck func(script string) error

// CheckLuaSyntax compiles script without running it. Fusion embeds LuaJIT
// (Lua 5.1) and the compiler here speaks Lua 5.2, so this only catches
// outright syntax errors.
func CheckLuaSyntax(script string) error {
	if strings.TrimSpace(script) == "" {
		return fmt.Errorf("empty script")
	}
	state := lua.NewState()
	if err := lua.LoadString(state, script); err != nil {
		return err
	}
	return nil
}
