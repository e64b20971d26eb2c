package stats

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const namespace = "signer"

var (
	deviceConnectionAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "device",
			Name:      "connection_attempts_total",
			Help:      "Total number of attempts to open a device app",
		},
		[]string{"coin"},
	)

	transactionsBuilt = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transaction",
			Name:      "builds_total",
			Help:      "Total number of signed transactions",
		},
		[]string{"type", "status"},
	)

	transactionsBroadcasted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transaction",
			Name:      "broadcasts_total",
			Help:      "Total number of broadcasted transactions",
		},
		[]string{"network", "status"},
	)

	walletSyncs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wallet",
			Name:      "syncs_total",
			Help:      "Total number of wallet syncs",
		},
		[]string{"network", "status"},
	)
)

// Register adds the signer collectors to the given registerer. Collectors
// already registered are skipped.
func Register(registerer prometheus.Registerer) {
	for name, collector := range map[string]prometheus.Collector{
		"device_connection_attempts": deviceConnectionAttempts,
		"transaction_builds":         transactionsBuilt,
		"transaction_broadcasts":     transactionsBroadcasted,
		"wallet_syncs":               walletSyncs,
	} {
		registerIfNotExists(registerer, collector, name)
	}
}

func registerIfNotExists(
	registerer prometheus.Registerer, collector prometheus.Collector, name string,
) {
	if err := registerer.Register(collector); err != nil {
		var alreadyRegErr prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegErr) {
			log.Debugf("%s already registered", name)
			return
		}
		log.WithError(err).Errorf("failed to register %s", name)
	}
}

func RecordConnectionAttempt(coin string) {
	deviceConnectionAttempts.WithLabelValues(coin).Inc()
}

func RecordBuild(txType string, err error) {
	transactionsBuilt.WithLabelValues(txType, status(err)).Inc()
}

func RecordBroadcast(network string, err error) {
	transactionsBroadcasted.WithLabelValues(network, status(err)).Inc()
}

func RecordWalletSync(network string, err error) {
	walletSyncs.WithLabelValues(network, status(err)).Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
