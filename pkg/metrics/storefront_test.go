package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStorefrontMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStorefrontMetrics(reg)

	metrics.IncCartMutation("add")
	metrics.IncCartMutation("add")
	metrics.IncCartMutation("")
	metrics.IncCheckout(OutcomePlaced)
	metrics.SetOrdersPlaced(3)
	metrics.ObserveSnapshotSave("sqlite", 15*time.Millisecond, nil)
	metrics.ObserveSnapshotSave("sqlite", 5*time.Millisecond, errors.New("disk full"))

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "cart_mutations_total", "op", "add"); err != nil {
		t.Fatalf("fetch mutations: %v", err)
	} else if got != 2 {
		t.Fatalf("expected add=2, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "cart_mutations_total", "op", "unknown"); err != nil || got != 1 {
		t.Fatalf("expected unknown=1, got %f (%v)", got, err)
	}
	if got, err := fetchCounterValue(mfs, "checkouts_total", "outcome", OutcomePlaced); err != nil || got != 1 {
		t.Fatalf("expected placed=1, got %f (%v)", got, err)
	}
	if got, err := fetchCounterValue(mfs, "snapshot_save_failures_total", "backend", "sqlite"); err != nil || got != 1 {
		t.Fatalf("expected one save failure, got %f (%v)", got, err)
	}
	if got, err := fetchHistogramSum(mfs, "snapshot_save_duration_seconds", "backend", "sqlite"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}

	gauge := findMetricFamily(mfs, "orders_placed")
	if gauge == nil || len(gauge.GetMetric()) != 1 || gauge.GetMetric()[0].GetGauge().GetValue() != 3 {
		t.Fatalf("expected orders_placed=3, got %v", gauge)
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	metrics := NewStorefrontMetrics(nil)
	metrics.IncCartMutation("add")
	metrics.IncCheckout(OutcomeFailed)
	metrics.SetOrdersPlaced(1)
	metrics.ObserveSnapshotSave("memory", time.Millisecond, nil)

	var nilMetrics *StorefrontMetrics
	nilMetrics.IncCartMutation("add")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
