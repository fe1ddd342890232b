// Package lua runs user scripts that watch for outside clicks.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. The clickaway module is installed as a global:
//
//	local id = clickaway.watch{
//	    container = {row = 2, col = 4, height = 5, width = 20},
//	    ignore = {{0, 0, 1, 10}},
//	    on_outside = function(ev)
//	        clickaway.status("clicked at " .. ev.row .. "," .. ev.col)
//	        ev:consume()
//	    end,
//	}
//	clickaway.unwatch(id)
//
// Rectangles are tables with row, col, height and width fields, or the same
// four values positionally.
//
// A Lua error raised inside an on_outside callback is not swallowed: it
// panics with the *lua.ApiError so it travels out of the click dispatch
// like any other callback failure.
package lua
