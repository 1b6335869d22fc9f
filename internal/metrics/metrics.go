package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PickupTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "krysselista", Name: "pickup_transitions_total",
		Help: "Pickup lifecycle operations by operation and result",
	}, []string{"op", "result"})
	PickupsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "krysselista", Name: "pickups_created_total",
		Help: "Created pickup requests by initial status",
	}, []string{"status"})
	FeedPublishErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "krysselista", Name: "feed_publish_errors_total",
		Help: "Change signals that could not be published",
	})
	HTTPErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "krysselista", Name: "http_errors_total",
		Help: "Error responses by status code",
	}, []string{"code"})
)

func init() {
	prometheus.MustRegister(PickupTransitions, PickupsCreated, FeedPublishErrors, HTTPErrors)
}

func Handler() http.Handler { return promhttp.Handler() }
