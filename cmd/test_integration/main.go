package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/agenthands/egograph/internal/core/model"
)

// Checks a running `ego` server: the graph JSON must parse and the page must
// be reachable. Usage: test_integration [base-url]
func main() {
	baseURL := "http://127.0.0.1:8000"
	if len(os.Args) > 1 {
		baseURL = strings.TrimRight(os.Args[1], "/")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	fmt.Println("Starting smoke test against", baseURL)

	fmt.Println("1. Fetching ego.json...")
	body, ok := get(client, baseURL+"/ego.json")
	if !ok {
		os.Exit(1)
	}
	nl, err := model.UnmarshalNodeLink(body)
	if err != nil {
		fmt.Printf("FAILED: ego.json is not a node-link graph: %v\n", err)
		os.Exit(1)
	}
	g, err := nl.ToGraph()
	if err != nil {
		fmt.Printf("FAILED: ego.json has invalid nodes: %v\n", err)
		os.Exit(1)
	}
	counts := g.CountByKind()
	fmt.Printf("   %d nodes (ego %d, osoba %d, podmiot %d), %d links\n",
		len(g.Nodes), counts[model.KindEgo], counts[model.KindPerson], counts[model.KindInstitution], len(g.Edges))
	if counts[model.KindEgo] != 1 {
		fmt.Printf("FAILED: expected exactly one ego node, got %d\n", counts[model.KindEgo])
		os.Exit(1)
	}

	fmt.Println("2. Fetching ego.html...")
	page, ok := get(client, baseURL+"/ego.html")
	if !ok {
		os.Exit(1)
	}
	if !strings.Contains(string(page), "ego.json") {
		fmt.Println("FAILED: ego.html does not load ego.json")
		os.Exit(1)
	}

	fmt.Println("Smoke test PASSED")
}

func get(client *http.Client, url string) ([]byte, bool) {
	resp, err := client.Get(url)
	if err != nil {
		fmt.Printf("FAILED: GET %s: %v\n", url, err)
		return nil, false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("FAILED: reading %s: %v\n", url, err)
		return nil, false
	}
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("FAILED: GET %s returned %d\n", url, resp.StatusCode)
		return nil, false
	}
	return body, true
}
