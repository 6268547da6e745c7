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
//	-d local SQLite DSN (file path)
//	-cloud-url remote store base URL
//	-cloud-token bearer token for the remote store
//	-cloud-timeout per-request cloud timeout (e.g., "15s")
//	-c/-config json file path with configs
//	-validation-level consistency check depth (basic|relaxed|strict)
//	-auto-repair enable automatic repair of fixable issues
//	-retry-budget automatic session retries before giving up
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var cloudURL string
	var cloudToken string
	var cloudTimeout time.Duration
	var jsonConfigPath string
	var validationLevel string
	var autoRepair bool
	var retryBudget int

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Local SQLite DSN")
	flag.StringVar(&cloudURL, "cloud-url", "", "Remote store base URL")
	flag.StringVar(&cloudToken, "cloud-token", "", "Remote store bearer token")
	flag.DurationVar(&cloudTimeout, "cloud-timeout", 0, "Cloud request timeout (e.g., 15s)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&validationLevel, "validation-level", "", "Consistency check depth (basic|relaxed|strict)")
	flag.BoolVar(&autoRepair, "auto-repair", false, "Enable automatic repair of fixable issues")
	flag.IntVar(&retryBudget, "retry-budget", 0, "Automatic session retries before giving up")

	flag.Parse()

	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Cloud: Cloud{
			BaseURL:        cloudURL,
			Token:          cloudToken,
			RequestTimeout: cloudTimeout,
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Sync: Sync{
			RetryBudget: retryBudget,
		},
		Validation: Validation{
			Level:      validationLevel,
			AutoRepair: autoRepair,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string so that
// merging does not clobber values from other sources.
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

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
