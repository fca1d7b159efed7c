// Package ui renders the starcat terminal interface.
//
// # Overview
//
// The UI is a bubbletea program with two views: browse (search bar, paged
// record table, header and footer) and detail (one full record). It consumes
// the engine exclusively through its public contract: actions go in through
// Search/GoToPage/SetPageSize, snapshots come back through the subscription
// channel.
//
// # Data Flow
//
//	key press → engine action (fire-and-forget)
//	engine publish → subscription channel → selectionMsg → redraw
//
// The subscription is drained by a self-re-arming command: waitForSelection
// blocks on the channel, delivers one snapshot as a message, and is armed
// again from Update. While an action is pending the previous snapshot stays
// on screen behind a spinner; the engine's switch-latest discipline
// guarantees the next snapshot to arrive is never stale.
//
// # Keys
//
//	/          focus the search prompt (enter submits, esc cancels)
//	left/right previous/next page
//	up/down    move the selection cursor
//	enter      open the selected record's detail view
//	s          cycle page size 5 → 10 → 25 → 100 (persisted)
//	t          cycle color theme (persisted)
//	q, ctrl+c  quit
//
// # State Rendering
//
// Error snapshots render a failure banner with a retry hint (a new search is
// the retry path); the initial snapshot renders a loading placeholder; a
// zero-match snapshot renders an empty-result note. Data fields of error and
// initial snapshots are never read.
package ui
