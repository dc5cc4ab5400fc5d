// parser/render.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package parser

import "github.com/mmp/atctower/sim"

// Render and RenderAll live in sim (see sim/render.go) so that Dispatch
// can build a command's readback without a parser->sim->parser import
// cycle. These wrappers keep the rendering API reachable from parser
// for callers that already import it for Parse.
func Render(t sim.Task) string { return sim.Render(t) }

func RenderAll(tasks []sim.Task) string { return sim.RenderAll(tasks) }
