// File: analyser/clusterstat.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package analyser

// ClusterStat counts engine-level cluster lifecycle events.
type ClusterStat struct {
	created int64
	deleted int64
}

func (c *ClusterStat) report() (created, deleted int64) {
	return c.created, c.deleted
}
