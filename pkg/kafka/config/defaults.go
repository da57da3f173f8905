package kafka_config

import "time"

const (
	DefaultKafkaBrokers = ""

	DefaultBootstrapTopic = "flightdb.bootstrap"

	// Producer defaults
	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1 // Require all replicas
	DefaultProducerCompression  = "snappy"
	DefaultProducerWriteTimeout = 10 * time.Second
)
