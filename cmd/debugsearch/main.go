package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hyperifyio/goseo/internal/app"
	"github.com/hyperifyio/goseo/internal/search"
)

// debugsearch prints the normalized results for one keyword using the same
// environment variables as goseo.
func main() {
	provider := flag.String("provider", "", "serpapi, searxng or file (default SEARCH_PROVIDER or serpapi)")
	num := flag.Int("n", 6, "number of results")
	flag.Parse()

	q := "cara membuat website"
	if flag.NArg() > 0 {
		q = flag.Arg(0)
	}

	_ = app.LoadEnvFiles(".env")
	cfg := app.Config{SearchProvider: *provider, SearchNum: *num}
	app.ApplyEnvToConfig(&cfg)
	app.ApplyDefaults(&cfg)

	client := &http.Client{Timeout: 20 * time.Second}
	var prov search.Provider
	switch cfg.SearchProvider {
	case "searxng":
		prov = &search.SearxNG{BaseURL: cfg.SearchURL, APIKey: cfg.SearchKey, HTTPClient: client, UserAgent: "debugsearch/1.0"}
	case "file":
		prov = &search.FileProvider{Path: cfg.SearchFile}
	default:
		prov = &search.SerpAPI{BaseURL: cfg.SearchURL, APIKey: cfg.SearchKey, Location: cfg.SearchLocation, Language: cfg.SearchLanguage, HTTPClient: client, UserAgent: "debugsearch/1.0"}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()
	res, err := prov.Search(ctx, q, cfg.SearchNum)
	if err != nil {
		fmt.Fprintln(os.Stderr, "err:", err)
		os.Exit(1)
	}
	for i, r := range search.NormalizeResults(res) {
		fmt.Printf("%d. %s - %s\n", i+1, r.Title, r.URL)
	}
}
