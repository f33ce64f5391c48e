package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Marketplace holds the counters the API bumps as listings and orders move.
type Marketplace struct {
	artworkViews        prometheus.Counter
	artworkLikes        *prometheus.CounterVec
	verificationChanges *prometheus.CounterVec
	purchaseTransitions *prometheus.CounterVec
}

// Default is registered on the default registry by Register and used by handlers.
// A nil *Marketplace is valid and records nothing.
var Default *Marketplace

// NewMarketplace registers the marketplace counters on reg.
func NewMarketplace(reg prometheus.Registerer) *Marketplace {
	if reg == nil {
		return &Marketplace{}
	}
	views := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "folkify_artwork_views_total",
		Help: "Artwork detail views recorded.",
	})
	likes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "folkify_artwork_like_toggles_total",
		Help: "Artwork like toggles by direction.",
	}, []string{"direction"})
	verification := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "folkify_artist_verification_changes_total",
		Help: "Artist verification status changes.",
	}, []string{"verified"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "folkify_purchase_transitions_total",
		Help: "Purchase status and payment transitions applied.",
	}, []string{"to"})
	reg.MustRegister(views, likes, verification, transitions)
	return &Marketplace{
		artworkViews:        views,
		artworkLikes:        likes,
		verificationChanges: verification,
		purchaseTransitions: transitions,
	}
}

// Register installs Default on the process-wide registry.
func Register() {
	Default = NewMarketplace(prometheus.DefaultRegisterer)
}

func (m *Marketplace) IncArtworkView() {
	if m == nil || m.artworkViews == nil {
		return
	}
	m.artworkViews.Inc()
}

func (m *Marketplace) IncLikeToggle(liked bool) {
	if m == nil || m.artworkLikes == nil {
		return
	}
	direction := "unlike"
	if liked {
		direction = "like"
	}
	m.artworkLikes.WithLabelValues(direction).Inc()
}

func (m *Marketplace) IncVerificationChange(verified bool) {
	if m == nil || m.verificationChanges == nil {
		return
	}
	label := "false"
	if verified {
		label = "true"
	}
	m.verificationChanges.WithLabelValues(label).Inc()
}

func (m *Marketplace) IncPurchaseTransition(to string) {
	if m == nil || m.purchaseTransitions == nil {
		return
	}
	m.purchaseTransitions.WithLabelValues(normalizeLabel(to)).Inc()
}

func normalizeLabel(value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}
