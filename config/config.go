package config

import (
	"fmt"
	"os"
	"time"

	json "github.com/json-iterator/go"
)

type (
	URI struct {
		// RequestLineSize limits the length of the request line in bytes. Longer lines
		// are rejected with 414 Request URI Too Long.
		RequestLineSize int
	}

	Headers struct {
		// MaxNumber is the maximal number of header lines accepted in a request.
		MaxNumber int
		// MaxLineSize limits a single header line, in bytes.
		MaxLineSize int
	}

	Body struct {
		// MaxSize describes the maximal declared Content-Length, which can be processed.
		MaxSize int64
	}

	NET struct {
		// Addr is the address the server listens on.
		Addr string
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket
		ReadBufferSize int
		// ReadTimeout bounds the whole read phase of a request, including the body. This
		// is what stops clients declaring more Content-Length than they actually send.
		ReadTimeout Duration
		// WriteTimeout bounds writing the response.
		WriteTimeout Duration
	}

	Session struct {
		// CookieName is the cookie binding a client to its session.
		CookieName string
		// IDLength is the number of characters in generated session identifiers.
		IDLength int
		// CookieMaxAge is passed to the client as Max-Age of the session cookie. Zero
		// omits the attribute, so the cookie lives until the browser is closed. Sessions
		// themselves never expire on the server.
		CookieMaxAge int `test:"nullable"`
	}

	Static struct {
		// Root is a directory with static resources. Empty means bundled resources.
		Root string `test:"nullable"`
	}

	Users struct {
		// Seed is a path to a JSON file with users to be loaded on start. Empty means
		// the default user only.
		Seed string `test:"nullable"`
		// BcryptCost is the cost of password hashes.
		BcryptCost int
	}

	Log struct {
		// Level is one of zerolog levels: trace, debug, info, warn, error.
		Level string
		// Pretty enables human-readable console output instead of JSON lines.
		Pretty bool `test:"nullable"`
	}

	Metrics struct {
		// Addr enables the Prometheus endpoint if not empty.
		Addr string `test:"nullable"`
		// Path is the endpoint path.
		Path string
	}
)

// Config holds settings used across various parts of catalina, mainly restrictions,
// limitations and addresses.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	URI     URI
	Headers Headers
	Body    Body
	NET     NET
	Session Session
	Static  Static
	Users   Users
	Log     Log
	Metrics Metrics
}

// Default returns default config.
func Default() *Config {
	return &Config{
		URI: URI{
			// considering most web-entities limit it to 4-8kb, 16kb is pretty tolerant
			RequestLineSize: 16 * 1024,
		},
		Headers: Headers{
			MaxNumber:   50,
			MaxLineSize: 8 * 1024, // there might be extremely long cookies
		},
		Body: Body{
			MaxSize: 1 * 1024 * 1024, // forms only, so 1 megabyte is a lot
		},
		NET: NET{
			Addr:           ":8080",
			ReadBufferSize: 4 * 1024,
			ReadTimeout:    Duration(90 * time.Second),
			WriteTimeout:   Duration(30 * time.Second),
		},
		Session: Session{
			CookieName: "JSESSIONID",
			IDLength:   32,
		},
		Users: Users{
			BcryptCost: 10,
		},
		Log: Log{
			Level: "info",
		},
		Metrics: Metrics{
			Path: "/metrics",
		},
	}
}

// Load reads a JSON file and applies it on top of defaults, so the file may contain
// only the fields that differ.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return Parse(data)
}

// Parse applies JSON data on top of defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := json.ConfigCompatibleWithStandardLibrary.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}
