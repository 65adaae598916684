package aof

import "strconv"

// formatFloat renders a sorted-set score the same way the dispatcher does
// for ZSCORE/ZRANGE WITHSCORES — shortest round-tripping decimal — so a
// rewritten AOF's ZADD reproduces the exact score bits.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
