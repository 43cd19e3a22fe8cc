package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rawblock/decipher-engine/internal/api"
	"github.com/rawblock/decipher-engine/internal/cache"
	"github.com/rawblock/decipher-engine/internal/checker"
	"github.com/rawblock/decipher-engine/internal/config"
	"github.com/rawblock/decipher-engine/internal/decoder"
	"github.com/rawblock/decipher-engine/internal/search"
	"github.com/rawblock/decipher-engine/internal/wordlist"
	"github.com/rawblock/decipher-engine/pkg/models"
)

func main() {
	log.Println("Starting decipher engine...")

	configPath := flag.String("config", config.Dir()+"/config.toml", "path to config.toml")
	serve := flag.Bool("serve", false, "run the HTTP/WebSocket API instead of a one-shot crack")
	text := flag.String("text", "", "ciphertext to crack (one-shot mode; reads remaining args if unset)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, err := cache.Open(cache.DefaultPath())
	if err != nil {
		log.Fatalf("cache: %v", err)
	}
	defer store.Close()

	registry := decoder.NewDefault()
	wordlistIx := wordlist.NewIndex(config.Dir()+"/wordlist_bloom.dat", store)
	ingester := wordlist.NewIngester(store, wordlistIx)

	for _, path := range cfg.Wordlist {
		if _, err := ingester.IngestFile(path); err != nil {
			log.Printf("wordlist: failed to ingest %s: %v", path, err)
		}
	}

	engine := search.NewEngine(registry)

	wsHub := api.NewHub()
	go wsHub.Run()

	if *serve || cfg.APIMode {
		runServer(engine, registry, store, wordlistIx, ingester, wsHub, cfg)
		return
	}

	input := *text
	if input == "" && flag.NArg() > 0 {
		input = flag.Arg(0)
	}
	if input == "" {
		fmt.Fprintln(os.Stderr, "usage: decipher -text <ciphertext>  (or -serve to run the API)")
		os.Exit(2)
	}

	runOneShot(engine, store, wordlistIx, wsHub, cfg, input)
}

func runServer(engine *search.Engine, registry *decoder.Registry, store *cache.Store, wordlistIx *wordlist.Index, ingester *wordlist.Ingester, wsHub *api.Hub, cfg models.Config) {
	r := api.SetupRouter(engine, registry, store, wordlistIx, ingester, wsHub, cfg)
	port := config.GetEnvOrDefault("PORT", "8080")
	log.Printf("decipher engine listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func runOneShot(engine *search.Engine, store *cache.Store, wordlistIx *wordlist.Index, wsHub *api.Hub, cfg models.Config, input string) {
	if cached, ok, err := store.Lookup(input); err != nil {
		log.Printf("cache: lookup: %v", err)
	} else if ok && cached.Successful {
		printResult(models.DecoderResult{Text: []string{cached.DecodedText}, CacheHit: true})
		return
	}

	backend, err := buildCheckers(cfg, wordlistIx)
	if err != nil {
		log.Fatalf("checker: %v", err)
	}

	var top checker.Checker = checker.NewAthena(backend...)
	if cfg.HumanCheckerOn {
		top = checker.NewHumanChecker(top, wsHub)
	}

	result, err := engine.PerformCracking(context.Background(), cfg, input, []checker.Checker{top})
	if err != nil {
		fmt.Fprintf(os.Stderr, "no result: %v\n", err)
		os.Exit(1)
	}

	decoded := ""
	if len(result.Text) > 0 {
		decoded = result.Text[0]
	}
	entry, err := store.Save(input, decoded, result.Path, len(result.Text) > 0, result.ElapsedMS)
	if err != nil {
		log.Printf("cache: save: %v", err)
	} else {
		for _, b := range result.Branches {
			b.ParentCacheID = entry.UUID
			if err := store.RecordBranch(b); err != nil {
				log.Printf("cache: record branch: %v", err)
			}
		}
	}

	printResult(result)
}

func printResult(result models.DecoderResult) {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("marshal result: %v", err)
	}
	fmt.Println(string(out))
}

// buildCheckers mirrors internal/api's request-scoped checker assembly
// for the one-shot CLI path, where there is no per-request JSON body to
// read options from — only the loaded Config.
func buildCheckers(cfg models.Config, wordlistIx *wordlist.Index) ([]checker.Checker, error) {
	if cfg.Regex != "" {
		re, err := checker.NewRegexChecker(cfg.Regex)
		if err != nil {
			return nil, err
		}
		// A user-supplied crib replaces the chain entirely: anything the
		// other checkers would accept but the regex rejects is noise.
		return []checker.Checker{re}, nil
	}

	var backend []checker.Checker
	backend = append(backend, checker.NewPatternChecker())

	if len(cfg.Wordlist) > 0 && wordlistIx != nil {
		backend = append(backend, checker.NewWordlistChecker(wordlistIx))
	}

	backend = append(backend, checker.NewPasswordChecker())
	backend = append(backend, checker.NewEnglishChecker(checker.SensitivityMedium))

	return backend, nil
}
