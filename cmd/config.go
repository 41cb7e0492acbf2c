package cmd

import "time"

// DefaultRequestTimeout bounds how long a courier may leave a delivery
// request unanswered before dispatch moves on.
const DefaultRequestTimeout = 30 * time.Second

type Config struct {
	HTTPPort       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	RabbitMQURL    string
	RequestTimeout time.Duration
}
