package discover

import (
	"sync"

	"github.com/charmbracelet/log"
)

// MaxConcurrentChecks bounds the number of eligibility checks in flight.
const MaxConcurrentChecks = 16

type checkResult struct {
	eligible bool
	err      error
}

// Filter runs the classifier over every path concurrently and returns the
// eligible ones in their original order. A path whose check fails is logged
// and left out.
func (c Classifier) Filter(paths []string, logger *log.Logger) []string {
	results := make([]checkResult, len(paths))
	sem := make(chan struct{}, MaxConcurrentChecks)

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			eligible, err := c.IsEligible(path)
			results[i] = checkResult{eligible: eligible, err: err}
		}()
	}
	wg.Wait()

	var eligible []string
	for i, res := range results {
		if res.err != nil {
			if logger != nil {
				logger.Warn("skipping file", "file", paths[i], "err", res.err)
			}
			continue
		}
		if res.eligible {
			eligible = append(eligible, paths[i])
		}
	}
	return eligible
}

// Scan walks root and returns every eligible spreadsheet under it.
func (c Classifier) Scan(root string, logger *log.Logger) ([]string, error) {
	files, err := Walk(root, logger)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Debug("walked directory", "root", root, "files", len(files))
	}
	return c.Filter(files, logger), nil
}
