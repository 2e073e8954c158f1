package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hyperifyio/goprospect/internal/search"
)

// Small troubleshooting tool: runs one query against the configured provider
// and prints the raw candidate list.
func main() {
	q := "cafe tokyo"
	if len(os.Args) > 1 {
		q = os.Args[1]
	}
	client := &http.Client{Timeout: 20 * time.Second}

	var prov search.Provider
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		prov = &search.GoogleCSE{APIKey: key, CX: os.Getenv("GOOGLE_CX"), HTTPClient: client}
	} else if base := os.Getenv("SEARX_URL"); base != "" {
		prov = &search.SearxNG{BaseURL: base, HTTPClient: client, UserAgent: "debugsearch/1.0"}
	} else {
		fmt.Fprintln(os.Stderr, "set GOOGLE_API_KEY/GOOGLE_CX or SEARX_URL")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	res, err := prov.Search(ctx, q, 10)
	fmt.Println("err:", err)
	for i, r := range res {
		fmt.Printf("%d. %s — %s\n", i+1, r.Title, r.URL)
	}
}
