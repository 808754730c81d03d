// metrics - метрики Prometheus сайта.
//
// Метрики регистрируются в переданном Registerer: в процессе это
// prometheus.DefaultRegisterer (его отдаёт promhttp.Handler), в тестах - свой реестр.
// Методы безопасны для nil-получателя: метрики можно не подключать.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vocal"

// Metrics - набор счётчиков и гистограмм сайта.
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpTimeouts *prometheus.CounterVec
	listings     *prometheus.CounterVec
	listingItems *prometheus.HistogramVec
	detail       *prometheus.CounterVec
	submissions  *prometheus.CounterVec
	downloads    prometheus.Counter
	dataset      *prometheus.GaugeVec
}

// New регистрирует метрики в reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"route", "method", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		httpTimeouts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "timeouts_total",
			Help:      "Requests that ran past the service timeout",
		}, []string{"route"}),
		listings: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_requests_total",
			Help:      "Listing pipeline runs by listing",
		}, []string{"listing"}),
		listingItems: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "listing_matched_items",
			Help:      "Number of records left after filtering",
			Buckets:   []float64{0, 1, 5, 12, 24, 50, 100},
		}, []string{"listing"}),
		detail: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detail_requests_total",
			Help:      "Detail resolutions by outcome",
		}, []string{"capability", "outcome"}),
		submissions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Simulated form submissions by kind and outcome",
		}, []string{"kind", "outcome"}),
		downloads: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloads_total",
			Help:      "Simulated publication downloads",
		}),
		dataset: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records",
			Help:      "Records in the loaded dataset by collection",
		}, []string{"collection"}),
	}
}

// ObserveHTTP учитывает один HTTP-запрос. route - шаблон chi, не сырой путь.
func (m *Metrics) ObserveHTTP(route, method string, status int, dur time.Duration) {
	if m == nil {
		return
	}

	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(dur.Seconds())
}

// Timeout учитывает запрос, упёршийся в timeouts.service.
func (m *Metrics) Timeout(route string) {
	if m == nil {
		return
	}

	m.httpTimeouts.WithLabelValues(route).Inc()
}

// Listing учитывает прогон конвейера листинга.
func (m *Metrics) Listing(listing string, matched int) {
	if m == nil {
		return
	}

	m.listings.WithLabelValues(listing).Inc()
	m.listingItems.WithLabelValues(listing).Observe(float64(matched))
}

// Detail учитывает разрешение детальной страницы.
func (m *Metrics) Detail(capability, outcome string) {
	if m == nil {
		return
	}

	m.detail.WithLabelValues(capability, outcome).Inc()
}

// Submission учитывает отправку формы.
func (m *Metrics) Submission(kind, outcome string) {
	if m == nil {
		return
	}

	m.submissions.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) Download() {
	if m == nil {
		return
	}

	m.downloads.Inc()
}

// Dataset фиксирует размер коллекции после загрузки.
func (m *Metrics) Dataset(collection string, n int) {
	if m == nil {
		return
	}

	m.dataset.WithLabelValues(collection).Set(float64(n))
}
