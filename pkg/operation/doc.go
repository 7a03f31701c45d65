/*
Package operation implements the core selection-and-aggregation pipeline.

	+-------------+
	|  Operation  |
	| (Pipeline)  |
	+------+------+
	       |
	classify -> walk -> ignore-filter -> match -> dedupe -> aggregate

🎯 Purpose:
- Orchestrates selection, filtering, and concurrent aggregation
- Owns the recursive-or-shallow decision point (the only cancellable step)
- Translates every internal error into a fixed, non-sensitive message set

🤝 Interfaces:
- workspace.FS / Enumerator: filesystem access
- workspace.Clipboard: result delivery
- workspace.Prompter: the recursion decision
- Notifier: user-facing outcome presentation

📝 Design Philosophy:
The operator composes the focused packages (pattern, exclude, ignore, walker,
selection, aggregate) and is the single place where internal errors become
public ones. Per-operation state, the ignore-matcher cache and the dedup map,
never outlives one call.
*/
package operation
