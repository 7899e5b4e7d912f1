package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fpl-analytics/internal/app"
	"github.com/riskibarqy/fpl-analytics/internal/config"
	"github.com/riskibarqy/fpl-analytics/internal/platform/logging"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.New(os.Stderr, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("build app: %v", err)
	}
	defer closeApp(application)

	cmd := strings.ToLower(strings.TrimSpace(os.Args[1]))
	switch cmd {
	case "flush":
		if !application.Store.FlushAll(ctx) {
			log.Fatal("cache flush failed")
		}
		log.Printf("cache flushed (backend=%s)", application.Store.Backend().Name())
	case "warm":
		leagueIDs, parseErr := parseLeagueIDs(os.Args[2:])
		if parseErr != nil {
			log.Fatal(parseErr)
		}
		if len(leagueIDs) == 0 {
			leagueIDs = cfg.CacheWarmLeagueIDs
		}
		if len(leagueIDs) == 0 {
			log.Fatal("warm requires league ids or CACHE_WARM_LEAGUE_IDS")
		}
		result, warmErr := application.Warmer.Warm(ctx, leagueIDs)
		if warmErr != nil {
			log.Fatalf("warm cache: %v", warmErr)
		}
		printJSON(result)
	case "standings":
		if len(os.Args) < 3 {
			log.Fatal("standings requires a league id argument")
		}
		leagueID, parseErr := parseID(os.Args[2])
		if parseErr != nil {
			log.Fatal(parseErr)
		}
		gameweek := 0
		if len(os.Args) > 3 {
			gameweek, parseErr = strconv.Atoi(strings.TrimSpace(os.Args[3]))
			if parseErr != nil || gameweek < 0 {
				log.Fatalf("invalid gameweek %q", os.Args[3])
			}
		}
		snapshot, standingsErr := application.Standings.ForGameweek(ctx, leagueID, gameweek)
		if standingsErr != nil {
			log.Fatalf("read standings: %v", standingsErr)
		}
		printJSON(snapshot)
	default:
		printUsage()
		os.Exit(2)
	}
}

func parseLeagueIDs(args []string) ([]int64, error) {
	out := make([]int64, 0, len(args))
	for _, arg := range args {
		for _, item := range strings.Split(arg, ",") {
			if strings.TrimSpace(item) == "" {
				continue
			}
			id, err := parseID(item)
			if err != nil {
				return nil, err
			}
			out = append(out, id)
		}
	}
	return out, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid league id %q", raw)
	}
	return id, nil
}

func printJSON(v any) {
	enc := sonic.ConfigDefault.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encode output: %v", err)
	}
}

func closeApp(application *app.App) {
	if err := application.Close(); err != nil {
		log.Printf("close cache: %v", err)
	}
}

func printUsage() {
	fmt.Println("usage: go run ./cmd/cachectl <flush|warm|standings> [args]")
	fmt.Println("  flush                           drop every cached upstream payload")
	fmt.Println("  warm [leagueID...]              prefetch standings and member histories")
	fmt.Println("  standings <leagueID> [gameweek] print live or reconstructed standings")
}
