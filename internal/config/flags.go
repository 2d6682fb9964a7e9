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
//	-c/-config json file path with configs
//	-secret-key token signing secret
//	-algorithm token signing algorithm tag
//	-token-issuer token issuer name
//	-access-ttl access token lifetime in minutes
//	-refresh-ttl refresh token lifetime in days
//	-max-login-fails failed logins before lockout
//	-menu-max-depth deepest allowed menu node
//	-admin-group-id group with administrative scope
//	-request-timeout store operation deadline (e.g., "5s")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var secretKey string
	var algorithm string
	var tokenIssuer string
	var accessTTLMinutes int
	var refreshTTLDays int
	var maxLoginFails int
	var menuMaxDepth int
	var adminGroupID string
	var requestTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&secretKey, "secret-key", "", "Token signing secret")
	flag.StringVar(&algorithm, "algorithm", "", "Token signing algorithm (HMAC family)")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.IntVar(&accessTTLMinutes, "access-ttl", 0, "Access token lifetime in minutes")
	flag.IntVar(&refreshTTLDays, "refresh-ttl", 0, "Refresh token lifetime in days")
	flag.IntVar(&maxLoginFails, "max-login-fails", 0, "Failed logins before lockout")
	flag.IntVar(&menuMaxDepth, "menu-max-depth", 0, "Deepest allowed menu node (root = 0)")
	flag.StringVar(&adminGroupID, "admin-group-id", "", "Group ID with administrative scope")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Store operation deadline (e.g., 5s)")

	flag.Parse()

	return &StructuredConfig{
		Auth: Auth{
			SecretKey:                secretKey,
			Algorithm:                algorithm,
			TokenIssuer:              tokenIssuer,
			AccessTokenExpireMinutes: accessTTLMinutes,
			RefreshTokenExpireDays:   refreshTTLDays,
			MaxLoginFails:            maxLoginFails,
			AdminGroupID:             adminGroupID,
		},
		Menu: Menu{
			MaxDepth: menuMaxDepth,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
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
