package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/poiesic/moodshelf"
	"github.com/poiesic/moodshelf/core"
	"github.com/poiesic/moodshelf/search"
	"github.com/urfave/cli/v2"
)

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "book",
			Usage: "Manage catalog books",
			Subcommands: []*cli.Command{
				{
					Name:   "add",
					Usage:  "Add a book to the catalog",
					Flags:  bookFlags(true),
					Action: withDatabase(bookAdd),
				},
				{
					Name:      "show",
					Usage:     "Show a book with its keywords (counts a view)",
					ArgsUsage: "<book-id>",
					Action:    withDatabase(bookShow),
				},
				{
					Name:      "update",
					Usage:     "Update book fields",
					ArgsUsage: "<book-id>",
					Flags:     bookFlags(false),
					Action:    withDatabase(bookUpdate),
				},
				{
					Name:      "delete",
					Usage:     "Delete a book with its keywords and votes",
					ArgsUsage: "<book-id>",
					Action:    withDatabase(bookDelete),
				},
				{
					Name:  "list",
					Usage: "List books with keyword tallies",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "sort",
							Usage: "Order by views, upvotes, downvotes or popularity",
							Value: string(core.SortByPopularity),
						},
					},
					Action: withDatabase(bookList),
				},
			},
		},
		{
			Name:  "keyword",
			Usage: "Manage book keywords",
			Subcommands: []*cli.Command{
				{
					Name:      "add",
					Usage:     "Add a keyword to a book, or upvote it if present",
					ArgsUsage: "<book-id> <keyword>",
					Action:    withDatabase(keywordAdd),
				},
				{
					Name:      "delete",
					Usage:     "Remove a keyword from a book",
					ArgsUsage: "<book-id> <keyword>",
					Action:    withDatabase(keywordDelete),
				},
				{
					Name:   "stats",
					Usage:  "Show keyword statistics across the catalog",
					Action: withDatabase(keywordStats),
				},
			},
		},
		{
			Name:      "vote",
			Usage:     "Vote on a book keyword",
			ArgsUsage: "<book-id> <keyword>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "type",
					Usage: "Vote direction (up, down)",
					Value: string(core.VoteUp),
				},
			},
			Action: withDatabase(castVote),
		},
		{
			Name:      "my-votes",
			Usage:     "List your votes and keywords on a book",
			ArgsUsage: "<book-id>",
			Action:    withDatabase(myVotes),
		},
		{
			Name:  "cluster",
			Usage: "Group similar keywords",
			Subcommands: []*cli.Command{
				{
					Name:      "run",
					Usage:     "Cluster the given keywords, or every catalog keyword",
					ArgsUsage: "[keyword...]",
					Action:    withDatabase(clusterRun),
				},
				{
					Name:   "show",
					Usage:  "Show stored cluster groups",
					Action: withDatabase(clusterShow),
				},
				{
					Name:      "save",
					Usage:     "Replace stored cluster groups with a JSON file",
					ArgsUsage: "<file>",
					Action:    withDatabase(clusterSave),
				},
			},
		},
		{
			Name:      "search",
			Usage:     "Search books by keywords (prefix # for required) and name",
			ArgsUsage: "[keyword...]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "name",
					Usage: "Book title or author",
				},
				&cli.StringFlag{
					Name:  "mode",
					Usage: "Match mode (exact, fuzzy)",
					Value: string(core.SearchFuzzy),
				},
			},
			Action: withDatabase(searchBooks),
		},
	}
}

func bookFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "Book title", Required: required},
		&cli.StringFlag{Name: "author", Usage: "Book author", Required: required},
		&cli.StringFlag{Name: "description", Usage: "Description"},
		&cli.StringFlag{Name: "cover", Usage: "Cover image URL"},
		&cli.StringFlag{Name: "isbn", Usage: "ISBN, used as the id when adding"},
		&cli.StringFlag{Name: "publisher", Usage: "Publisher"},
		&cli.StringFlag{Name: "pubdate", Usage: "Publication date"},
	}
}

type action func(c *cli.Context, db *moodshelf.Database) error

func withDatabase(fn action) cli.ActionFunc {
	return func(c *cli.Context) error {
		db, err := openDatabase(c)
		if err != nil {
			return err
		}
		defer db.Close()
		return fn(c, db)
	}
}

func args(c *cli.Context, names ...string) ([]string, error) {
	if c.NArg() < len(names) {
		return nil, fmt.Errorf("missing argument: %s", strings.Join(names[c.NArg():], ", "))
	}
	return c.Args().Slice()[:len(names)], nil
}

func printJSON(c *cli.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(data))
	return err
}

func bookAdd(c *cli.Context, db *moodshelf.Database) error {
	book := &core.Book{
		Title:       c.String("title"),
		Author:      c.String("author"),
		Description: c.String("description"),
		CoverImage:  c.String("cover"),
		ISBN:        c.String("isbn"),
		Publisher:   c.String("publisher"),
		PubDate:     c.String("pubdate"),
	}
	added, err := db.Catalog().Add(c.Context, book)
	if err != nil {
		return err
	}
	return printJSON(c, added)
}

func bookShow(c *cli.Context, db *moodshelf.Database) error {
	a, err := args(c, "book-id")
	if err != nil {
		return err
	}
	detail, err := db.Catalog().Get(c.Context, a[0])
	if err != nil {
		return err
	}
	return printJSON(c, detail)
}

func bookUpdate(c *cli.Context, db *moodshelf.Database) error {
	a, err := args(c, "book-id")
	if err != nil {
		return err
	}
	book, err := db.Catalog().Peek(c.Context, a[0])
	if err != nil {
		return err
	}
	fields := map[string]*string{
		"title":       &book.Title,
		"author":      &book.Author,
		"description": &book.Description,
		"cover":       &book.CoverImage,
		"isbn":        &book.ISBN,
		"publisher":   &book.Publisher,
		"pubdate":     &book.PubDate,
	}
	for flag, field := range fields {
		if c.IsSet(flag) {
			*field = c.String(flag)
		}
	}
	updated, err := db.Catalog().Update(c.Context, book)
	if err != nil {
		return err
	}
	return printJSON(c, updated)
}

func bookDelete(c *cli.Context, db *moodshelf.Database) error {
	a, err := args(c, "book-id")
	if err != nil {
		return err
	}
	if err := db.Catalog().Delete(c.Context, a[0]); err != nil {
		return err
	}
	return printJSON(c, map[string]string{"deleted": a[0]})
}

func bookList(c *cli.Context, db *moodshelf.Database) error {
	stats, err := db.ListBooks(c.Context, core.SortOrder(c.String("sort")))
	if err != nil {
		return err
	}
	return printJSON(c, stats)
}

func keywordAdd(c *cli.Context, db *moodshelf.Database) error {
	a, err := args(c, "book-id", "keyword")
	if err != nil {
		return err
	}
	res, err := db.AddKeyword(c.Context, a[0], a[1], c.String("user"))
	if err != nil {
		return err
	}
	return printJSON(c, map[string]any{
		"outcome": res.Outcome.String(),
		"existed": res.Existed(),
		"keyword": res.Record,
	})
}

func keywordDelete(c *cli.Context, db *moodshelf.Database) error {
	a, err := args(c, "book-id", "keyword")
	if err != nil {
		return err
	}
	if err := db.Keywords().Delete(c.Context, a[0], a[1]); err != nil {
		return err
	}
	return printJSON(c, map[string]string{"deleted": core.NormalizeKeyword(a[1])})
}

func keywordStats(c *cli.Context, db *moodshelf.Database) error {
	stats, err := db.KeywordStats(c.Context)
	if err != nil {
		return err
	}
	return printJSON(c, stats)
}

func castVote(c *cli.Context, db *moodshelf.Database) error {
	a, err := args(c, "book-id", "keyword")
	if err != nil {
		return err
	}
	res, err := db.CastVote(c.Context, a[0], a[1], c.String("user"), core.VoteType(c.String("type")))
	if err != nil {
		return err
	}
	out := map[string]any{
		"outcome": res.Outcome.String(),
		"deleted": res.Deleted(),
	}
	if res.Keyword != nil {
		out["keyword"] = res.Keyword
	}
	if res.Message != "" {
		out["message"] = res.Message
	}
	return printJSON(c, out)
}

func myVotes(c *cli.Context, db *moodshelf.Database) error {
	a, err := args(c, "book-id")
	if err != nil {
		return err
	}
	mine, err := db.MyVotes(c.Context, a[0], c.String("user"))
	if err != nil {
		return err
	}
	return printJSON(c, mine)
}

func clusterRun(c *cli.Context, db *moodshelf.Database) error {
	res, err := db.RunClustering(c.Context, c.Args().Slice())
	if err != nil {
		return err
	}
	return printJSON(c, res)
}

func clusterShow(c *cli.Context, db *moodshelf.Database) error {
	groups, err := db.Clusters(c.Context)
	if err != nil {
		return err
	}
	return printJSON(c, groups)
}

func clusterSave(c *cli.Context, db *moodshelf.Database) error {
	a, err := args(c, "file")
	if err != nil {
		return err
	}
	data, err := os.ReadFile(a[0])
	if err != nil {
		return err
	}
	var groups []*core.ClusterGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return fmt.Errorf("failed to parse %s: %w", a[0], err)
	}
	saved, err := db.SaveClusters(c.Context, groups)
	if err != nil {
		return err
	}
	return printJSON(c, saved)
}

func searchBooks(c *cli.Context, db *moodshelf.Database) error {
	results, err := db.Search(c.Context, search.Query{
		BookName: c.String("name"),
		Keywords: c.Args().Slice(),
		Mode:     core.SearchMode(c.String("mode")),
	})
	if err != nil {
		return err
	}
	return printJSON(c, results)
}
