package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"strconv"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface. An empty Host means all interfaces.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses server configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:port
//	-d user store DSN
//	-ledger signup ledger CSV path
//	-redis registration lock redis address
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "2h")
//	-cookie-duration session cookie lifetime (e.g., "96h")
//	-cookie-secure mark the session cookie Secure
//	-password-hash-cost bcrypt cost
//	-request-timeout request timeout (e.g., "15s")
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN string
	var ledgerPath string
	var redisAddress string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var cookieDuration time.Duration
	var cookieSecure bool
	var passwordHashCost int
	var requestTimeout time.Duration

	fs := flag.NewFlagSet("go-user-service", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address [host]:port")
	fs.StringVar(&databaseDSN, "d", "", "User store DSN")
	fs.StringVar(&ledgerPath, "ledger", "", "Signup ledger CSV path")
	fs.StringVar(&redisAddress, "redis", "", "Registration lock redis address")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 2h)")
	fs.DurationVar(&cookieDuration, "cookie-duration", 0, "Session cookie lifetime (e.g., 96h)")
	fs.BoolVar(&cookieSecure, "cookie-secure", false, "Mark the session cookie Secure")
	fs.IntVar(&passwordHashCost, "password-hash-cost", 0, "bcrypt cost")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:     tokenSignKey,
			TokenIssuer:      tokenIssuer,
			TokenDuration:    tokenDuration,
			CookieDuration:   cookieDuration,
			CookieSecure:     cookieSecure,
			PasswordHashCost: passwordHashCost,
		},
		Storage: Storage{
			DB:     DB{DSN: databaseDSN},
			Ledger: Ledger{Path: ledgerPath},
			Redis:  Redis{Address: redisAddress},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form [host]:port and populates the NetAddress.
// It validates the port range and checks IP correctness unless host is
// "localhost" or empty.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
