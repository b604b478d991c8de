package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Builds(t *testing.T) {
	m := NewCollector()

	stats, err := m.Builds()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 0 || stats.Mean != 0 {
		t.Errorf("empty collector stats = %+v", stats)
	}

	m.RecordBuild(2*time.Millisecond, 40)
	m.RecordBuild(4*time.Millisecond, 42)

	stats, err = m.Builds()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 2 {
		t.Errorf("Count = %d, want 2", stats.Count)
	}
	if d := stats.Mean - 3*time.Millisecond; d < -time.Microsecond || d > time.Microsecond {
		t.Errorf("Mean = %v, want 3ms", stats.Mean)
	}
	if got := testutil.ToFloat64(m.bodies); got != 42 {
		t.Errorf("bodies gauge = %v, want 42", got)
	}
}

func TestCollector_RecordQuery(t *testing.T) {
	m := NewCollector()
	m.RecordQuery(true)
	m.RecordQuery(false)
	m.RecordQuery(true)

	if got := testutil.ToFloat64(m.queriesTotal.WithLabelValues(ResultHit)); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.queriesTotal.WithLabelValues(ResultMiss)); got != 1 {
		t.Errorf("misses = %v, want 1", got)
	}
}

func TestCollector_IndependentRegistries(t *testing.T) {
	a, b := NewCollector(), NewCollector()
	a.RecordQuery(true)
	if got := testutil.ToFloat64(b.queriesTotal.WithLabelValues(ResultHit)); got != 0 {
		t.Errorf("second collector saw %v hits", got)
	}
}

func TestCollector_Exposition(t *testing.T) {
	m := NewCollector()
	m.RecordBuild(time.Millisecond, 10)

	srv := httptest.NewServer(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"rigel_observed_sky_build_seconds_count 1", "rigel_observed_bodies 10"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}
