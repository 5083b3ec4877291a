package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/scenee/scenee-go/internal/adapter"
	"github.com/scenee/scenee-go/internal/api"
	"github.com/scenee/scenee-go/internal/domain"
	"github.com/scenee/scenee-go/internal/query"
	"github.com/scenee/scenee-go/internal/search"
	"github.com/scenee/scenee-go/internal/session"
	"github.com/scenee/scenee-go/internal/store"
)

// Version is set at build time via -ldflags
var Version = "dev"

const usage = `usage: scenee <command> [args]

commands:
  register <email> <username>   create an account (prompts for password)
  login <email>                 sign in (prompts for password)
  logout                        sign out and clear local session
  me                            show the current user
  search <query>                search the movie catalog
  movie <tmdb-id>               show one movie
  watchlists [owner]            list watchlists
  watchlist <id>                show a watchlist with items
  trending [week|month]         trending watchlists
  feed                          home feed
  notifications [unread]        list notifications
  stats                         site-wide stats
  ask <query>                   ask the AI for recommendations
  filter <query>                fuzzy-filter cached watchlists offline
`

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if showVersion {
		fmt.Printf("scenee %s\n", Version)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting scenee", "version", Version, "command", args[0])

	authStore, err := store.NewAuthStore(cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("failed to open auth store: %w", err)
	}
	defer authStore.Close()

	tokens := api.NewTokenStore()
	client := api.NewClient(cfg.Server.URL, tokens,
		api.WithTimeout(cfg.Server.Timeout),
		api.WithLogger(logger),
	)
	cache := query.NewCache(cfg.Cache.StaleTime, cfg.Cache.Retention, logger)
	queries := query.NewQueries(client, cache)
	mutations := query.NewMutations(client, cache)
	sess := session.NewController(client, authStore, cache, nil, logger)

	ctx := context.Background()
	sess.Restore(ctx)

	return dispatch(ctx, args, sess, queries, mutations, logger)
}

func dispatch(ctx context.Context, args []string, sess *session.Controller, queries *query.Queries, mutations *query.Mutations, logger *slog.Logger) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "register":
		if len(rest) < 2 {
			return fmt.Errorf("usage: scenee register <email> <username>")
		}
		password, err := promptPassword()
		if err != nil {
			return err
		}
		if err := sess.Register(ctx, domain.RegisterRequest{Email: rest[0], Username: rest[1], Password: password}); err != nil {
			return err
		}
		fmt.Println("Registered and signed in.")
		return nil

	case "login":
		if len(rest) < 1 {
			return fmt.Errorf("usage: scenee login <email>")
		}
		password, err := promptPassword()
		if err != nil {
			return err
		}
		if err := sess.Login(ctx, domain.LoginRequest{Email: rest[0], Password: password}); err != nil {
			return err
		}
		user, _ := sess.CurrentUser()
		fmt.Printf("Signed in as %s.\n", user.Username)
		return nil

	case "logout":
		sess.Logout(ctx)
		fmt.Println("Signed out.")
		return nil

	case "me":
		user, err := queries.Me(ctx)
		if err != nil {
			return err
		}
		return printJSON(user)

	case "search":
		if len(rest) < 1 {
			return fmt.Errorf("usage: scenee search <query>")
		}
		resp, err := queries.SearchMovies(ctx, domain.SearchMoviesParams{Query: strings.Join(rest, " ")})
		if err != nil {
			return err
		}
		for _, m := range resp.Movies {
			fmt.Printf("%8d  %s (%d)\n", m.TMDBID, m.Title, m.Year)
		}
		fmt.Printf("%d results, page %d/%d\n", resp.TotalCount, resp.Page, resp.TotalPages)
		return nil

	case "movie":
		if len(rest) < 1 {
			return fmt.Errorf("usage: scenee movie <tmdb-id>")
		}
		id, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid movie id %q", rest[0])
		}
		movie, err := queries.Movie(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(movie)

	case "watchlists":
		params := domain.ListWatchlistsParams{}
		if len(rest) > 0 {
			params.Owner = rest[0]
		}
		lists, err := queries.Watchlists(ctx, params)
		if err != nil {
			return err
		}
		for _, wl := range lists {
			fmt.Printf("%s  %-30s  %d items, %d likes\n", wl.ID, wl.Title, wl.ItemCount, wl.LikeCount)
		}
		return nil

	case "watchlist":
		if len(rest) < 1 {
			return fmt.Errorf("usage: scenee watchlist <id>")
		}
		wl, err := queries.Watchlist(ctx, rest[0])
		if err != nil {
			return err
		}
		return printJSON(wl)

	case "trending":
		params := domain.TrendingParams{}
		if len(rest) > 0 {
			params.Window = rest[0]
		}
		lists, err := queries.TrendingWatchlists(ctx, params)
		if err != nil {
			return err
		}
		for _, wl := range lists {
			fmt.Printf("%-30s  %d likes, %d saves\n", wl.Title, wl.LikeCount, wl.SaveCount)
		}
		return nil

	case "feed":
		feed, err := queries.Feed(ctx, domain.FeedParams{})
		if err != nil {
			return err
		}
		return printJSON(feed)

	case "notifications":
		params := domain.NotificationsParams{}
		if len(rest) > 0 && rest[0] == "unread" {
			unread := true
			params.Unread = &unread
		}
		resp, err := queries.Notifications(ctx, params)
		if err != nil {
			return err
		}
		for _, n := range resp.Notifications {
			marker := " "
			if !n.IsRead {
				marker = "*"
			}
			fmt.Printf("%s %-8s %s\n", marker, n.Type, n.CreatedAt)
		}
		fmt.Printf("%d unread\n", resp.Count)
		return nil

	case "stats":
		stats, err := queries.Stats(ctx)
		if err != nil {
			return err
		}
		return printJSON(stats)

	case "ask":
		if len(rest) < 1 {
			return fmt.Errorf("usage: scenee ask <query>")
		}
		resp, err := mutations.AskAI(ctx, domain.AskAIRequest{Query: strings.Join(rest, " ")})
		if err != nil {
			return err
		}
		fmt.Println(resp.Answer)
		return nil

	case "filter":
		if len(rest) < 1 {
			return fmt.Errorf("usage: scenee filter <query>")
		}
		lists, err := queries.Watchlists(ctx, domain.ListWatchlistsParams{})
		if err != nil {
			return err
		}
		svc := search.NewService(logger)
		svc.IndexWatchlists(lists)
		results := svc.Filter(strings.Join(rest, " "))
		if len(results) == 0 {
			for _, item := range svc.Rank(strings.Join(rest, " ")) {
				fmt.Printf("%s  %s\n", item.ID, item.Title)
			}
			return nil
		}
		for _, r := range results {
			fmt.Printf("%s  %s\n", r.ID, r.Title)
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(input), nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
