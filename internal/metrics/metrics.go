// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "biteswipe"

// Metrics groups every collector the service updates.
type Metrics struct {
	RPCRequests    *prometheus.CounterVec
	RPCDuration    *prometheus.HistogramVec
	GroupsCreated  prometheus.Counter
	GroupsDeleted  *prometheus.CounterVec
	MembersJoined  prometheus.Counter
	Submissions    prometheus.Counter
	Matches        prometheus.Counter
	Conflicts      *prometheus.CounterVec
	CodeCollisions prometheus.Counter
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RPCRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		GroupsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "groups_created_total",
			Help:      "Groups created.",
		}),
		GroupsDeleted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "groups_deleted_total",
			Help:      "Groups deleted, by reason (empty, expired).",
		}, []string{"reason"}),
		MembersJoined: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "members_joined_total",
			Help:      "Successful group joins.",
		}),
		Submissions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preference_submissions_total",
			Help:      "Preference submissions recorded.",
		}),
		Matches: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_resolved_total",
			Help:      "Groups that settled on a restaurant.",
		}),
		Conflicts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "occ_conflicts_total",
			Help:      "Optimistic concurrency conflicts by operation.",
		}, []string{"operation"}),
		CodeCollisions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "code_collisions_total",
			Help:      "Generated group codes that were already taken.",
		}),
	}
}
