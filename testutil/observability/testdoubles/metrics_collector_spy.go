package testdoubles

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/AntonStoeckl/observed-collections-go/observed"
)

// MetricsCollectorSpy is a MetricsCollector implementation that captures metrics calls for testing.
// It also implements the context-aware variants and records whether they were used.
type MetricsCollectorSpy struct {
	durationRecords []SpyMetricRecord
	counterRecords  []SpyMetricRecord
	valueRecords    []SpyMetricRecord
	mu              sync.Mutex
	recordCalls     bool
}

// SpyMetricRecord represents one recorded metric call.
// Duration is set for duration records, Value for value records.
type SpyMetricRecord struct {
	Metric      string
	Duration    time.Duration
	Value       float64
	Labels      map[string]string
	WithContext bool
}

// NewMetricsCollectorSpy creates a new MetricsCollectorSpy.
// Set recordCalls to true to capture all metrics calls for inspection in tests.
func NewMetricsCollectorSpy(recordCalls bool) *MetricsCollectorSpy {
	return &MetricsCollectorSpy{recordCalls: recordCalls}
}

// RecordDuration implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.append(&s.durationRecords, SpyMetricRecord{Metric: metric, Duration: duration, Labels: labels})
}

// IncrementCounter implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.append(&s.counterRecords, SpyMetricRecord{Metric: metric, Labels: labels})
}

// RecordValue implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.append(&s.valueRecords, SpyMetricRecord{Metric: metric, Value: value, Labels: labels})
}

// RecordDurationContext implements the ContextualMetricsCollector interface.
func (s *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.append(&s.durationRecords, SpyMetricRecord{Metric: metric, Duration: duration, Labels: labels, WithContext: true})
}

// IncrementCounterContext implements the ContextualMetricsCollector interface.
func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.append(&s.counterRecords, SpyMetricRecord{Metric: metric, Labels: labels, WithContext: true})
}

// RecordValueContext implements the ContextualMetricsCollector interface.
func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.append(&s.valueRecords, SpyMetricRecord{Metric: metric, Value: value, Labels: labels, WithContext: true})
}

func (s *MetricsCollectorSpy) append(records *[]SpyMetricRecord, record SpyMetricRecord) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Make a copy of labels to avoid external modifications
	record.Labels = maps.Clone(record.Labels)
	*records = append(*records, record)
}

// GetCounterRecords returns a copy of all captured counter records.
func (s *MetricsCollectorSpy) GetCounterRecords() []SpyMetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyMetricRecord(nil), s.counterRecords...)
}

// GetDurationRecords returns a copy of all captured duration records.
func (s *MetricsCollectorSpy) GetDurationRecords() []SpyMetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyMetricRecord(nil), s.durationRecords...)
}

// GetValueRecords returns a copy of all captured value records.
func (s *MetricsCollectorSpy) GetValueRecords() []SpyMetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyMetricRecord(nil), s.valueRecords...)
}

// Reset clears all captured metric records.
func (s *MetricsCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durationRecords = s.durationRecords[:0]
	s.counterRecords = s.counterRecords[:0]
	s.valueRecords = s.valueRecords[:0]
}

// HasCounterRecordForMetric starts a fluent chain to check the counter records of metric.
func (s *MetricsCollectorSpy) HasCounterRecordForMetric(metric string) *MetricRecordMatcher {
	return s.matcher(s.counterRecords, metric)
}

// HasDurationRecordForMetric starts a fluent chain to check the duration records of metric.
func (s *MetricsCollectorSpy) HasDurationRecordForMetric(metric string) *MetricRecordMatcher {
	return s.matcher(s.durationRecords, metric)
}

// HasValueRecordForMetric starts a fluent chain to check the value records of metric.
func (s *MetricsCollectorSpy) HasValueRecordForMetric(metric string) *MetricRecordMatcher {
	return s.matcher(s.valueRecords, metric)
}

// CountCounterRecordsForMetric counts how many counter records exist for a specific metric.
func (s *MetricsCollectorSpy) CountCounterRecordsForMetric(metric string) int {
	return s.HasCounterRecordForMetric(metric).Count()
}

func (s *MetricsCollectorSpy) matcher(records []SpyMetricRecord, metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	matcher := &MetricRecordMatcher{}
	for _, record := range records {
		if record.Metric == metric {
			matcher.candidates = append(matcher.candidates, record)
		}
	}

	return matcher
}

// MetricRecordMatcher provides a fluent interface for checking metric records.
// Every condition narrows down the set of matching records.
type MetricRecordMatcher struct {
	candidates []SpyMetricRecord
}

// WithOperation keeps the records with the specified operation label.
func (m *MetricRecordMatcher) WithOperation(operation string) *MetricRecordMatcher {
	return m.WithLabel("operation", operation)
}

// WithStatus keeps the records with the specified status label.
func (m *MetricRecordMatcher) WithStatus(status string) *MetricRecordMatcher {
	return m.WithLabel("status", status)
}

// WithLabel keeps the records with the specified label value.
func (m *MetricRecordMatcher) WithLabel(key, value string) *MetricRecordMatcher {
	kept := m.candidates[:0:0]
	for _, record := range m.candidates {
		if labelValue, exists := record.Labels[key]; exists && labelValue == value {
			kept = append(kept, record)
		}
	}

	m.candidates = kept

	return m
}

// WithValue keeps the value records with the specified value.
func (m *MetricRecordMatcher) WithValue(value float64) *MetricRecordMatcher {
	kept := m.candidates[:0:0]
	for _, record := range m.candidates {
		if record.Value == value {
			kept = append(kept, record)
		}
	}

	m.candidates = kept

	return m
}

// Count returns the number of records matching all conditions.
func (m *MetricRecordMatcher) Count() int {
	return len(m.candidates)
}

// Assert returns true if at least one record met all conditions in the fluent chain.
func (m *MetricRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}

var _ observed.ContextualMetricsCollector = (*MetricsCollectorSpy)(nil)
