package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a metrics manager on a private registry", t, func() {
		m := NewManager()

		Convey("When passes are observed", func() {
			m.ObservePass("updated", 3, 120*time.Millisecond)
			m.ObservePass("updated", 2, 80*time.Millisecond)
			m.ObservePass("fetch_failed", 0, time.Second)

			Convey("Then passes are counted per outcome", func() {
				So(testutil.ToFloat64(m.passes.WithLabelValues("updated")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.passes.WithLabelValues("fetch_failed")), ShouldEqual, 1)
			})

			Convey("Then new actions accumulate", func() {
				So(testutil.ToFloat64(m.newActions), ShouldEqual, 5)
			})
		})

		Convey("When feed sizes and resets are recorded", func() {
			m.SetFeedSizes(42, 7)
			m.RecordReset("player")
			m.RecordReset("player")

			Convey("Then the gauges hold the latest values", func() {
				So(testutil.ToFloat64(m.feedEntries.WithLabelValues(FeedGlobal)), ShouldEqual, 42)
				So(testutil.ToFloat64(m.feedEntries.WithLabelValues(FeedPlayer)), ShouldEqual, 7)
				So(testutil.ToFloat64(m.resets.WithLabelValues("player")), ShouldEqual, 2)
			})
		})

		Convey("When the handler is scraped", func() {
			m.ObservePass("idle", 0, time.Millisecond)
			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

			Convey("Then the tracker series are exposed", func() {
				So(rec.Code, ShouldEqual, 200)
				So(rec.Body.String(), ShouldContainSubstring, `argus_tracker_passes_total{outcome="idle"} 1`)
				So(rec.Body.String(), ShouldNotContainSubstring, "go_goroutines")
			})
		})
	})
}
