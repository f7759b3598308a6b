// Package metrics registers the service's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NoncesIssued counts issued wallet challenges
	NoncesIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shieldnest_nonces_issued_total",
		Help: "Number of wallet auth nonces issued",
	})

	// NonceConsumptions counts nonce consumption attempts by result
	NonceConsumptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shieldnest_nonce_consumptions_total",
		Help: "Number of nonce consumption attempts",
	}, []string{"result"})

	// SignatureVerifications counts signature verification attempts by result
	SignatureVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shieldnest_signature_verifications_total",
		Help: "Number of wallet signature verifications",
	}, []string{"result"})

	// WalletsLinked counts wallet links by kind (bootstrap, link, manual)
	WalletsLinked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shieldnest_wallets_linked_total",
		Help: "Number of wallets linked",
	}, []string{"kind"})

	// WalletsMigrated counts visitor wallet entries migrated into accounts
	WalletsMigrated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shieldnest_wallets_migrated_total",
		Help: "Number of visitor wallets migrated",
	})
)
