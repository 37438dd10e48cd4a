package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Mayank-jangid007/CouseHub/pkg/config"
	"github.com/Mayank-jangid007/CouseHub/pkg/core"
	"github.com/Mayank-jangid007/CouseHub/pkg/search"
	"github.com/Mayank-jangid007/CouseHub/pkg/session"
	"github.com/Mayank-jangid007/CouseHub/pkg/suggest"
)

// SessionCommand creates the interactive search session command
func SessionCommand() *cli.Command {
	return &cli.Command{
		Name:  "session",
		Usage: "Interactive search session with suggestions and live filtering",
		Action: func(ctx context.Context, c *cli.Command) error {
			return runSession(ctx, c.String("config"))
		},
	}
}

func runSession(ctx context.Context, configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	registry := core.GetGlobalRegistry()
	if err := createProvidersFromConfig(registry, cfg); err != nil {
		return fmt.Errorf("creating providers: %w", err)
	}
	defer func() { _ = registry.Close() }()

	// With a signed-in user, every search is also persisted to their
	// durable history.
	history, closeHistory := historySink(ctx, configPath)
	defer closeHistory()

	agg := search.NewAggregator(registry, cfg.RequestTimeout.Duration)
	st := session.NewStore(agg, history)
	unsubscribe := st.Subscribe(renderSessionState)
	defer unsubscribe()

	idx := suggest.NewIndex()
	deb := suggest.NewDebouncer(suggest.DefaultDebounce, func(seq uint64, input string) {
		if matches := idx.Matches(input); len(matches) > 0 {
			fmt.Println(metaStyle.Render("suggestions: " + strings.Join(matches, ", ")))
		}
		st.Search(ctx, input)
	})
	defer deb.Stop()

	fmt.Println(titleStyle.Render("🔎 CourseHub session"))
	fmt.Println(metaStyle.Render("type a query to search, /help for commands"))

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case strings.HasPrefix(line, "/"):
			if quit := sessionCommand(st, line); quit {
				return nil
			}
		default:
			// Rapid successive inputs coalesce; only the last one
			// settles into a search.
			deb.Type(line)
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}

// sessionCommand handles a slash command and reports whether the
// session should end.
func sessionCommand(st *session.Store, line string) bool {
	parts := strings.Fields(line)
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch parts[0] {
	case "/quit", "/exit":
		return true
	case "/type":
		rt := core.ResultType(arg)
		if !rt.Valid() {
			fmt.Println(warnStyle.Render("unknown result type, try repo, video, article, note, roadmap, all"))
			return false
		}
		st.Dispatch(session.FilterChanged{Type: rt})
	case "/sort":
		mode := search.SortMode(arg)
		if !mode.Valid() {
			fmt.Println(warnStyle.Render("unknown sort mode, try relevance, date, popularity"))
			return false
		}
		st.Dispatch(session.SortChanged{Mode: mode})
	case "/recent":
		recent := st.State().Recent
		if len(recent) == 0 {
			fmt.Println(noDataStyle.Render("No recent searches"))
			return false
		}
		for _, q := range recent {
			fmt.Println("  " + q)
		}
	case "/clear":
		st.Dispatch(session.Cleared{})
	case "/help":
		fmt.Println(metaStyle.Render("/type <t>  /sort <m>  /recent  /clear  /quit"))
	default:
		fmt.Println(warnStyle.Render("unknown command, /help lists them"))
	}
	return false
}

// renderSessionState prints the state after each transition. Results
// stay visible through a failure, behind the error line.
func renderSessionState(s session.State) {
	switch s.Status {
	case session.Loading:
		fmt.Println(metaStyle.Render("searching " + s.Query + "..."))
		return
	case session.Failed:
		fmt.Println(warnStyle.Render("⚠ " + s.Err))
	case session.Idle:
		return
	}

	if s.SourcesFailed > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("⚠ %d of %d sources failed",
			s.SourcesFailed, s.SourcesTotal)))
	}

	visible := s.Visible()
	if len(visible) == 0 {
		fmt.Println(noDataStyle.Render("No results found"))
		return
	}
	fmt.Println(renderBadges(s.Counts))
	for _, r := range visible {
		body := r.PrettyText()
		body += "\n" + metaStyle.Render(formatWhen(r.CreatedAt()))
		fmt.Println(resultStyle.Render(body))
	}
}

// historySink opens the local store for the signed-in user's search
// history. Anonymous sessions, or setups without auth, record nothing
// durable; the returned close func is always safe to call.
func historySink(ctx context.Context, configPath string) (session.HistorySink, func()) {
	svc, db, err := openAuth(configPath)
	if err != nil {
		return nil, func() {}
	}
	u, err := currentUser(ctx, svc)
	if err != nil {
		_ = db.Close()
		return nil, func() {}
	}
	sink := func(query string) {
		if err := db.AppendSearch(ctx, u.UID, query); err != nil {
			fmt.Fprintf(os.Stderr, "recording search history: %v\n", err)
		}
	}
	return sink, func() { _ = db.Close() }
}
