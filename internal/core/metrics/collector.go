package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-dishub/internal/core/hub"
	"github.com/dep2p/go-dishub/pkg/interfaces"
)

const namespace = "dishub"

// Source 指标数据来源
type Source interface {
	Participants() []interfaces.Participant
	Stats() hub.Stats
}

// Collector 实现 prometheus.Collector
type Collector struct {
	src Source
	tap *Tap

	sent, received, bytesSent, bytesReceived, dropped, sendLatency *prometheus.Desc

	participants, queueDepth, queueDropped, dispatched, abandoned *prometheus.Desc

	pdus, bytesRate, msgsRate *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector 创建采集器，tap 可为 nil
func NewCollector(src Source, tap *Tap) *Collector {
	perParticipant := []string{"kind", "id"}
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, labels, nil)
	}
	return &Collector{
		src: src,
		tap: tap,

		sent:          desc("messages_sent_total", "Messages sent to each participant.", perParticipant...),
		received:      desc("messages_received_total", "Messages received from each participant.", perParticipant...),
		bytesSent:     desc("bytes_sent_total", "Bytes sent to each participant.", perParticipant...),
		bytesReceived: desc("bytes_received_total", "Bytes received from each participant.", perParticipant...),
		dropped:       desc("messages_dropped_total", "Messages dropped by each participant's send buffer.", perParticipant...),
		sendLatency:   desc("send_latency_seconds", "Time from hand-off to a participant until its write completed.", perParticipant...),

		participants: desc("participants", "Registered participants.", "kind"),
		queueDepth:   desc("queue_depth", "Messages waiting in the distribution queue."),
		queueDropped: desc("queue_dropped_total", "Messages dropped by the distribution queue backpressure policy."),
		dispatched:   desc("dispatched_total", "Messages fanned out by the distributor."),
		abandoned:    desc("abandoned_total", "Messages left in the queue at shutdown."),

		pdus:      desc("pdus_total", "Fanned out PDUs by PDU type.", "pdu_type"),
		bytesRate: desc("fanout_bytes_per_second", "Fan-out byte rate over the recent window."),
		msgsRate:  desc("fanout_messages_per_second", "Fan-out message rate over the recent window."),
	}
}

// Describe 实现 prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		c.sent, c.received, c.bytesSent, c.bytesReceived, c.dropped, c.sendLatency,
		c.participants, c.queueDepth, c.queueDropped, c.dispatched, c.abandoned,
	} {
		ch <- d
	}
	if c.tap != nil {
		ch <- c.pdus
		ch <- c.bytesRate
		ch <- c.msgsRate
	}
}

// Collect 实现 prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	kinds := make(map[string]int)
	for _, p := range c.src.Participants() {
		kind := p.Kind().String()
		kinds[kind]++
		if _, ok := p.(*Tap); ok {
			continue
		}

		s := p.Statistics().Snapshot()
		labels := []string{kind, p.ID()}
		ch <- prometheus.MustNewConstMetric(c.sent, prometheus.CounterValue, float64(s.MessagesSent), labels...)
		ch <- prometheus.MustNewConstMetric(c.received, prometheus.CounterValue, float64(s.MessagesReceived), labels...)
		ch <- prometheus.MustNewConstMetric(c.bytesSent, prometheus.CounterValue, float64(s.BytesSent), labels...)
		ch <- prometheus.MustNewConstMetric(c.bytesReceived, prometheus.CounterValue, float64(s.BytesReceived), labels...)
		ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(s.MessagesDropped), labels...)
		if s.Latency.Count > 0 {
			ch <- prometheus.MustNewConstSummary(c.sendLatency,
				uint64(s.Latency.Count), s.Latency.Sum.Seconds(), nil, labels...)
		}
	}
	for kind, n := range kinds {
		ch <- prometheus.MustNewConstMetric(c.participants, prometheus.GaugeValue, float64(n), kind)
	}

	st := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.queueDepth, prometheus.GaugeValue, float64(st.QueueLen))
	ch <- prometheus.MustNewConstMetric(c.queueDropped, prometheus.CounterValue, float64(st.Dropped))
	ch <- prometheus.MustNewConstMetric(c.dispatched, prometheus.CounterValue, float64(st.Dispatched))
	ch <- prometheus.MustNewConstMetric(c.abandoned, prometheus.CounterValue, float64(st.Abandoned))

	if c.tap == nil {
		return
	}
	for t := range c.tap.byType {
		if n := c.tap.byType[t].Load(); n > 0 {
			ch <- prometheus.MustNewConstMetric(c.pdus, prometheus.CounterValue, float64(n), strconv.Itoa(t))
		}
	}
	ch <- prometheus.MustNewConstMetric(c.bytesRate, prometheus.GaugeValue, c.tap.BytesRate())
	ch <- prometheus.MustNewConstMetric(c.msgsRate, prometheus.GaugeValue, c.tap.MessagesRate())
}
