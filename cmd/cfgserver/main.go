/*
Cfgserver starts an HTTP front end exposing the grammar analysis
pipeline as JSON.

Usage:

	cfgserver [flags]

If a JWT token secret is not given, one will be automatically generated
and seeded from crypto/rand. As a consequence, in this mode of operation
all run tokens issued become invalid as soon as the server shuts down.
This is suitable for testing but must be given in production.

The flags are:

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. Defaults to the value of environment variable
		CFGTOOL_LISTEN_ADDRESS, and if that is not given, to
		localhost:8080.

	-k, --api-key KEY
		Require this API key (as a bearer token) for write access. If not
		given, defaults to the value of environment variable
		CFGTOOL_API_KEY, and if that is empty too, a random key is
		generated and printed once at startup.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing run-scoped JWT session
		tokens. Defaults to the value of environment variable
		CFGTOOL_TOKEN_SECRET, and if that is not given, a random secret
		is generated.

	--db PATH
		Use a modernc.org/sqlite-backed run-history audit log at PATH.
		If not given, defaults to environment variable CFGTOOL_DATABASE;
		if that is empty too, run history is not recorded.
*/
package main

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/pflag"
	_ "modernc.org/sqlite"

	"github.com/hghwng/cfgtool/internal/api"
)

const (
	EnvListen = "CFGTOOL_LISTEN_ADDRESS"
	EnvAPIKey = "CFGTOOL_API_KEY"
	EnvSecret = "CFGTOOL_TOKEN_SECRET"
	EnvDB     = "CFGTOOL_DATABASE"
)

var (
	flagListen = pflag.StringP("listen", "l", "", "Listen on the given address")
	flagAPIKey = pflag.StringP("api-key", "k", "", "Require this API key for write access")
	flagSecret = pflag.StringP("secret", "s", "", "Secret used to sign run-scoped JWT tokens")
	flagDB     = pflag.String("db", "", "Path to a sqlite run-history database")
)

func randomToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("FATAL could not generate random token: %s", err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

func main() {
	pflag.Parse()

	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr == "" {
		listenAddr = "localhost:8080"
	}

	apiKey := os.Getenv(EnvAPIKey)
	if pflag.Lookup("api-key").Changed {
		apiKey = *flagAPIKey
	}
	if apiKey == "" {
		apiKey = randomToken(24)
		log.Printf("WARN  no API key given; generated one-time key: %s", apiKey)
	}

	secretStr := os.Getenv(EnvSecret)
	if pflag.Lookup("secret").Changed {
		secretStr = *flagSecret
	}
	var secret []byte
	if secretStr == "" {
		secret = []byte(randomToken(32))
		log.Printf("WARN  no token secret given; generated one-time secret, tokens will not survive a restart")
	} else {
		secret = []byte(secretStr)
	}

	dbPath := os.Getenv(EnvDB)
	if pflag.Lookup("db").Changed {
		dbPath = *flagDB
	}
	var db *sql.DB
	if dbPath != "" {
		var err error
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			log.Fatalf("FATAL could not open run-history database: %s", err)
		}
		defer db.Close()
	}

	a, err := api.New(apiKey, secret, db)
	if err != nil {
		log.Fatalf("FATAL could not initialize API: %s", err)
	}

	r := chi.NewRouter()
	r.Route("/grammars", a.Routes)

	log.Printf("INFO  Starting cfgserver on %s...", listenAddr)
	if err := http.ListenAndServe(listenAddr, r); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}
