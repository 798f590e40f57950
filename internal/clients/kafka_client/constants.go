package kafka_client

import "time"

const (
	KAFKA_TOPIC_ANALYSIS_REQUEST = "analysis-request" // free-form text waiting to be scored
	KAFKA_TOPIC_ANALYSIS_RESULTS = "analysis-results" // scored results or error variants, keyed by request id
)

const (
	MAX_RETRIES  = 5
	RETRY_DELAY  = 2 * time.Second
	POLL_TIMEOUT = 500 * time.Millisecond
	FLUSH_WAIT   = 5000 // ms
)
