// Command jwks-to-pem prints the ES256 signing key of a Supabase project as a
// PEM public key, ready for SUPABASE_JWT_SECRET.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"seocontrol/internal/util"
)

func main() {
	baseURL := flag.String("url", "http://127.0.0.1:54321", "Supabase project URL")
	flag.Parse()

	if env := os.Getenv("SUPABASE_URL"); env != "" && !isFlagSet("url") {
		*baseURL = env
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pemKey, err := util.FetchSigningKeyPEM(ctx, &http.Client{}, *baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(pemKey)
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
