package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"vanguard/core"
	"vanguard/internal/listing"
	"vanguard/pkg/number"
	"vanguard/pkg/table"
	svc "vanguard/service/listing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// openView loaded view session for the stored operator, if any
func openView(ctx context.Context, perPage int) (*svc.View, *core.Session, error) {
	sessions := provideSessionStore()
	client := provideClient(ctx, sessions)
	session, _ := provideSession(ctx, sessions)

	if perPage <= 0 {
		perPage = cfg.View.PerPage
	}

	view := svc.NewView(provideListingStore(client), svc.Options{
		PerPage:  perPage,
		Debounce: cfg.View.DebounceDuration(),
		Limit:    cfg.View.Limit,
		Session:  session,
	})

	if err := view.Load(ctx); err != nil {
		view.Close()
		return nil, nil, err
	}

	return view, session, nil
}

func renderPage(snap svc.Snapshot, session *core.Session) string {
	rows := make([][]string, 0, len(snap.Items))
	for _, item := range snap.Items {
		rows = append(rows, listingRow(item, session))
	}

	var b strings.Builder
	b.WriteString(table.Render([]string{"ID", "NAME", "CATEGORY", "RISK", "VALUE", "ACTIVE", "CREATED", ""}, rows))
	b.WriteString("\n")
	fmt.Fprintf(&b, "page %d/%d, %d listings", snap.Page, snap.TotalPages, snap.Total)

	if snap.Term != "" {
		fmt.Fprintf(&b, ", search %q", snap.Term)
	}

	if snap.Category != "" && snap.Category != listing.AllCategories {
		fmt.Fprintf(&b, ", category %s", snap.Category)
	}

	if snap.Err != nil {
		fmt.Fprintf(&b, "\nlast error: %s", errorMessage(snap.Err))
	}

	return b.String()
}

func listingRow(item *core.UnifiedItem, session *core.Session) []string {
	value := number.Placeholder
	switch {
	case item.Asset != nil:
		value = number.Display(decimal.NewNullDecimal(item.Asset.MinInvestment))
	case item.Coin != nil:
		value = number.Display(decimal.NewNullDecimal(item.Coin.Price))
	}

	created := number.Placeholder
	if !item.CreatedAt.IsZero() {
		created = item.CreatedAt.Format("2006-01-02")
	}

	manage := ""
	if session.CanManage(item) {
		manage = "*"
	}

	return []string{
		item.ID,
		item.Name,
		item.Category,
		string(item.Risk),
		value,
		strconv.FormatBool(item.IsActive),
		created,
		manage,
	}
}

var listingsCmd = &cobra.Command{
	Use:     "listings",
	Aliases: []string{"ls"},
	Short:   "list assets and coins, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		perPage, _ := cmd.Flags().GetInt("per-page")
		view, session, err := openView(ctx, perPage)
		if err != nil {
			return err
		}
		defer view.Close()

		query, _ := cmd.Flags().GetString("query")
		category, _ := cmd.Flags().GetString("category")
		kind, _ := cmd.Flags().GetString("kind")
		active, _ := cmd.Flags().GetString("active")
		page, _ := cmd.Flags().GetInt("page")

		if kind != "" && !core.Kind(kind).Valid() {
			return fmt.Errorf("unknown kind %q, expected asset or coin", kind)
		}

		view.SearchNow(query)
		view.SetCategory(category)
		view.SetKind(core.Kind(kind))
		view.SetActive(listing.ActiveFilter(active))
		view.SetPage(page)

		cmd.Println(renderPage(view.Snapshot(), session))
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "list the categories of all listings",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, _, err := openView(cmd.Context(), 0)
		if err != nil {
			return err
		}
		defer view.Close()

		for _, c := range view.Snapshot().Categories {
			cmd.Println(c)
		}

		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "interactive search, type to filter, :help for commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		view, session, err := openView(ctx, 0)
		if err != nil {
			return err
		}
		defer view.Close()

		var mux sync.Mutex
		show := func(snap svc.Snapshot) {
			if snap.Loading {
				return
			}

			mux.Lock()
			defer mux.Unlock()
			cmd.Println(renderPage(snap, session))
		}

		view.OnChange(show)
		show(view.Snapshot())

		return browse(ctx, view, cmd.InOrStdin(), func(s string) {
			mux.Lock()
			defer mux.Unlock()
			cmd.Println(s)
		})
	},
}

const browseHelp = `:c <category>  filter by category, :c All clears
:k asset|coin   filter by kind, :k alone clears
:p <n>          go to page n, :n next, :b back
:t <id>         toggle active
:d <id>         delete
:r              reload
:q              quit
anything else is a search`

// browse read commands line by line until :q or eof
func browse(ctx context.Context, view *svc.View, in io.Reader, say func(string)) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, ":") {
			view.Search(line)
			continue
		}

		fields := strings.Fields(line)
		arg := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

		var err error
		switch fields[0] {
		case ":q":
			return nil
		case ":help", ":h":
			say(browseHelp)
		case ":c":
			view.SetCategory(arg)
		case ":k":
			view.SetKind(core.Kind(arg))
		case ":p":
			page, perr := strconv.Atoi(arg)
			if perr != nil {
				say("page must be a number")
				continue
			}
			view.SetPage(page)
		case ":n":
			view.SetPage(view.Snapshot().Page + 1)
		case ":b":
			view.SetPage(view.Snapshot().Page - 1)
		case ":t":
			err = view.ToggleActive(ctx, arg)
		case ":d":
			err = view.Remove(ctx, arg)
		case ":r":
			err = view.Load(ctx)
		default:
			say("unknown command, :help lists them")
		}

		if err != nil {
			say(errorMessage(err))
		}
	}

	// let a pending search settle before returning
	time.Sleep(cfg.View.DebounceDuration())
	return scanner.Err()
}

func init() {
	rootCmd.AddCommand(listingsCmd)
	listingsCmd.AddCommand(categoriesCmd)
	listingsCmd.AddCommand(browseCmd)

	listingsCmd.Flags().StringP("query", "q", "", "search name, overview, slug and category")
	listingsCmd.Flags().StringP("category", "c", "", "category, All for every category")
	listingsCmd.Flags().StringP("kind", "k", "", "asset or coin")
	listingsCmd.Flags().String("active", "all", "all, active or inactive")
	listingsCmd.Flags().IntP("page", "p", 1, "page number")
	listingsCmd.PersistentFlags().Int("per-page", 0, "listings per page, view.per_page by default")
}
