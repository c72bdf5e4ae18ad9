package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-driver database driver (pgx, sqlite3, memory)
//	-c/-config json file path with configs
//	-token-sign-key token verification key
//	-token-issuer expected token issuer
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-timeout read-merge-write timeout (e.g., "15s")
//	-retention-interval tombstone retention worker interval (e.g., "1h")
//	-log-level log level (debug, info, warn, error)
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var databaseDriver string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var requestTimeout time.Duration
	var syncTimeout time.Duration
	var retentionInterval time.Duration
	var logLevel string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&databaseDriver, "driver", "", "Database driver: pgx, sqlite3 or memory")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token verification key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Expected token issuer")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&syncTimeout, "sync-timeout", 0, "Sync operation timeout (e.g., 15s)")
	flag.DurationVar(&retentionInterval, "retention-interval", 0, "Tombstone retention interval (e.g., 1h)")
	flag.StringVar(&logLevel, "log-level", "", "Log level")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
			LogLevel:     logLevel,
		},
		Services: Services{
			SyncTimeout: syncTimeout,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			RetentionInterval: retentionInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
