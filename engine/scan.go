// File: engine/scan.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Best-cluster search (spec.md §4.5 step 1). Scanning is read-only: no
// cluster is mutated until the winner is selected and removed from the
// map by the caller. Work is fanned out across a bounded worker pool in
// the style of internal/concurrency.Executor, since the scan is
// read-only and therefore safe to parallelize per cluster.

package engine

import (
	"sort"
	"sync"

	"github.com/momentics/anonstream/api"
	"github.com/momentics/anonstream/cluster"
	"github.com/momentics/anonstream/qi"
)

// findBestCluster scans e.clusters for the candidate minimizing
// info_loss(record, centroid) among clusters within diff_thres distance,
// ties broken by first-encountered. Keys are sorted ascending before
// scanning so "first-encountered" is deterministic regardless of Go's
// randomized map iteration order and regardless of goroutine completion
// order (results are written into a pre-sized, index-addressed slice).
func (e *Engine) findBestCluster(record api.Record) (key int64, found bool) {
	n := len(e.clusters)
	if n == 0 {
		return 0, false
	}

	keys := make([]int64, 0, n)
	for k := range e.clusters {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	type result struct {
		ok      bool
		infoLoss float64
	}
	results := make([]result, n)

	recordQIs := record.QIs()
	numWorkers := e.cfg.NumWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}
	if numWorkers > n {
		numWorkers = n
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, numWorkers)
	for i, k := range keys {
		c := e.clusters[k]
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, c *cluster.Cluster) {
			defer wg.Done()
			defer func() { <-sem }()
			centroidQIs := c.Centroid().QIs()
			if qi.Distance(centroidQIs, recordQIs) <= e.cfg.DiffThres {
				results[i] = result{ok: true, infoLoss: qi.InfoLoss(recordQIs, centroidQIs)}
			}
		}(i, c)
	}
	wg.Wait()

	bestIdx := -1
	var bestLoss float64
	for i, r := range results {
		if !r.ok {
			continue
		}
		if bestIdx == -1 || r.infoLoss < bestLoss {
			bestIdx = i
			bestLoss = r.infoLoss
		}
	}
	if bestIdx == -1 {
		return 0, false
	}
	return keys[bestIdx], true
}
