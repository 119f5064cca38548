// ovation-mine runs the full fact-mining pipeline over a ceremony
// corpus and emits the report as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/ovationhq/ovation/pkg/ovation"
	"github.com/ovationhq/ovation/pkg/ovation/config"
	"github.com/ovationhq/ovation/pkg/ovation/corpus"
	"github.com/ovationhq/ovation/pkg/ovation/store/sqlite"
)

func main() {
	var (
		input     = flag.String("input", "", "Corpus file: .json, .jsonl or a sqlite archive (required)")
		cfgPath   = flag.String("config", "", "YAML config file (defaults apply when omitted)")
		outPath   = flag.String("output", "", "Write the JSON report here instead of stdout")
		namesOnly = flag.Bool("names-only", false, "Mine award names only, skip winner inference")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	ctx := context.Background()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	msgs, err := loadCorpus(ctx, *input)
	if err != nil {
		log.Fatalf("load corpus: %v", err)
	}
	log.Printf("loaded %d messages from %s", len(msgs), *input)

	eng, err := ovation.New(ovation.Options{
		Config:   cfg,
		Progress: func(stage string) { log.Print(stage) },
	})
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	if *namesOnly {
		names, err := eng.MineAwardNames(ctx, msgs)
		if err != nil {
			log.Fatalf("mine award names: %v", err)
		}
		writeJSON(*outPath, names)
		return
	}

	rep, err := eng.Run(ctx, msgs)
	if err != nil {
		log.Fatalf("run: %v", err)
	}
	writeJSON(*outPath, rep)
}

func loadCorpus(ctx context.Context, path string) ([]corpus.Message, error) {
	if isSQLite(path) {
		s, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.LoadMessages(ctx)
	}
	return corpus.LoadFile(path)
}

func isSQLite(path string) bool {
	for _, ext := range []string{".db", ".sqlite", ".sqlite3"} {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func writeJSON(path string, v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("marshal report: %v", err)
	}
	out = append(out, '\n')

	if path == "" {
		os.Stdout.Write(out)
		return
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		log.Fatalf("write report: %v", err)
	}
	log.Printf("wrote report to %s", path)
}
