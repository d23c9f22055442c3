package internal

import (
	"sort"
	"sync"
	"time"
)

type MetricsCollector struct {
	logger *Logger

	requestCount    map[string]int64
	requestDuration map[string][]int64
	httpErrors      map[string]int64

	cacheHits   int64
	cacheMisses int64

	riotErrors map[ErrorCode]int64

	lookupSuccess   int64
	lookupFailed    int64
	lookupDurations []int64

	mu sync.RWMutex
}

func NewMetricsCollector(logger *Logger) *MetricsCollector {
	mc := &MetricsCollector{
		logger:          logger,
		requestCount:    make(map[string]int64),
		requestDuration: make(map[string][]int64),
		httpErrors:      make(map[string]int64),
		riotErrors:      make(map[ErrorCode]int64),
	}

	go mc.startReporter()
	return mc
}

func (mc *MetricsCollector) RecordRequest(endpoint string, duration time.Duration, statusCode int) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.requestCount[endpoint]++
	mc.requestDuration[endpoint] = append(mc.requestDuration[endpoint], duration.Milliseconds())

	if statusCode >= 400 {
		mc.httpErrors[endpoint]++
	}
}

func (mc *MetricsCollector) RecordCacheHit(key string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.cacheHits++
}

func (mc *MetricsCollector) RecordCacheMiss(key string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.cacheMisses++
}

func (mc *MetricsCollector) RecordRiotError(code ErrorCode) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.riotErrors[code]++
}

func (mc *MetricsCollector) RecordLookup(success bool, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if success {
		mc.lookupSuccess++
	} else {
		mc.lookupFailed++
	}
	mc.lookupDurations = append(mc.lookupDurations, duration.Milliseconds())
}

func (mc *MetricsCollector) startReporter() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		mc.report()
	}
}

func (mc *MetricsCollector) report() {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	mc.logger.Info("metrics_report").
		Component("metrics").
		Operation("report").
		Meta("total_requests", sumValues(mc.requestCount)).
		Meta("http_errors", sumValues(mc.httpErrors)).
		Meta("cache_hits", mc.cacheHits).
		Meta("cache_misses", mc.cacheMisses).
		Meta("cache_hit_rate_percent", mc.cacheHitRate()).
		Meta("lookups_success", mc.lookupSuccess).
		Meta("lookups_failed", mc.lookupFailed).
		Meta("lookup_p95_ms", percentile(mc.lookupDurations, 0.95)).
		Log()

	for endpoint, durations := range mc.requestDuration {
		if len(durations) == 0 {
			continue
		}
		mc.logger.Info("endpoint_performance").
			Component("metrics").
			Operation("report").
			Meta("endpoint", endpoint).
			Meta("request_count", mc.requestCount[endpoint]).
			Meta("avg_duration_ms", average(durations)).
			Meta("p95_duration_ms", percentile(durations, 0.95)).
			Meta("error_count", mc.httpErrors[endpoint]).
			Log()
	}
}

func (mc *MetricsCollector) cacheHitRate() float64 {
	total := mc.cacheHits + mc.cacheMisses
	if total == 0 {
		return 0
	}
	return float64(mc.cacheHits) / float64(total) * 100
}

func sumValues(m map[string]int64) int64 {
	sum := int64(0)
	for _, count := range m {
		sum += count
	}
	return sum
}

func average(values []int64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := int64(0)
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func percentile(values []int64, p float64) int64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]int64, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[int(p*float64(len(sorted)-1))]
}

func (mc *MetricsCollector) GetMetrics() map[string]interface{} {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	riotErrors := make(map[string]int64, len(mc.riotErrors))
	for code, count := range mc.riotErrors {
		riotErrors[string(code)] = count
	}

	return map[string]interface{}{
		"cache": map[string]interface{}{
			"hits":     mc.cacheHits,
			"misses":   mc.cacheMisses,
			"hit_rate": mc.cacheHitRate(),
		},
		"requests": mc.requestCount,
		"errors":   mc.httpErrors,
		"lookups": map[string]interface{}{
			"success": mc.lookupSuccess,
			"failed":  mc.lookupFailed,
			"p95_ms":  percentile(mc.lookupDurations, 0.95),
		},
		"riot_errors": riotErrors,
	}
}
