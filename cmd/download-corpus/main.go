// download-corpus fetches a ceremony message dump over HTTP, strips
// any HTML markup left in the texts, and archives the result in a
// sqlite database for repeated mining runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ovationhq/ovation/pkg/ovation/corpus"
	"github.com/ovationhq/ovation/pkg/ovation/store/sqlite"
)

func main() {
	var (
		url    = flag.String("url", "", "Corpus URL returning a JSON array or JSONL (required)")
		dbPath = flag.String("db", "", "SQLite archive to write (required)")
		limit  = flag.Int("limit", 0, "Keep at most this many messages (0 keeps all)")
	)
	flag.Parse()

	if *url == "" {
		log.Fatal("--url required")
	}
	if *dbPath == "" {
		log.Fatal("--db required")
	}

	ctx := context.Background()

	log.Printf("fetching %s", *url)
	msgs, err := fetch(*url)
	if err != nil {
		log.Fatalf("fetch corpus: %v", err)
	}
	if *limit > 0 && len(msgs) > *limit {
		msgs = msgs[:*limit]
	}

	for i := range msgs {
		msgs[i].Text = stripHTML(msgs[i].Text)
	}

	s, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open archive: %v", err)
	}
	defer s.Close()

	if err := s.SaveMessages(ctx, msgs); err != nil {
		log.Fatalf("archive messages: %v", err)
	}
	log.Printf("archived %d messages to %s", len(msgs), *dbPath)
}

func fetch(url string) ([]corpus.Message, error) {
	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if strings.HasSuffix(url, ".jsonl") {
		return corpus.LoadJSONL(resp.Body)
	}
	return corpus.LoadJSON(resp.Body)
}

// stripHTML flattens markup to its text content. Some dumps carry
// escaped anchors and entity references inside the message text.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.TrimSpace(buf.String())
}
