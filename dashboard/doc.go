// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package dashboard polls election data and builds the render-ready view.

# Polling

A Poller fetches tallies, the audit log, and per-region winners from a
Source. It runs one cycle immediately on Start and one per interval after
that:

	p := dashboard.NewPoller(src, 20, 4*time.Second)
	p.Start(models.RegionFilter("all"), 5*time.Second)
	defer p.Stop()

SetFilter starts a new cycle right away with the new filter. FetchSnapshot
runs a single cycle synchronously; Refresh does the same with the current
filter, for on-demand refreshes.

# Cycles

Each cycle runs its three sub-fetches concurrently. A sub-fetch that
succeeds replaces only its own field of the ViewState; one that fails
leaves the previous value and is logged. Cycles are numbered, and a result
is applied only if its cycle is the latest one started. Stop also advances
the cycle number, so nothing fetched before Stop is applied after it.
A tick is skipped while the latest cycle is still fetching the same
filter, so a source slower than the interval still gets results applied.

# View State

Snapshot returns the current ViewState by value. Subscribe registers a
callback that receives new values in order on its own goroutine. The
callback may call back into the Poller, Stop included.

# Derived Values

	d := dashboard.ComputeDerived(tallies)   // TotalVotes, Percentages
	c := dashboard.AssignColor(i)            // fill/border pair, wraps
	v := dashboard.BuildView(p.Snapshot())   // bars, regions, audit feed
*/
package dashboard
