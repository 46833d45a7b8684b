// jobq is a small query tool for a running jobdex instance. It builds a
// search from flags, runs it through the SDK client and prints the response
// envelope as indented JSON.
//
//	jobq -q "software engineer" --filter "organisation=Home Office" \
//	    --filter "grades=Grade 7" --filter "grades=Grade 6" --page-size 5
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	jobdex "github.com/kailas-cloud/jobdex/pkg/sdk"
)

const defaultTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "jobq",
		Usage: "Search job postings on a jobdex server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Base URL of the jobdex server",
				EnvVars: []string{"JOBDEX_ADDR"},
				Value:   "http://localhost:8080",
			},
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Free-text query; positional arg is a fallback",
			},
			&cli.StringSliceFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "Filter in field=value format; repeatable",
			},
			&cli.IntFlag{
				Name:    "page",
				Aliases: []string{"p"},
				Usage:   "1-based result page",
			},
			&cli.IntFlag{
				Name:  "page-size",
				Usage: "Results per page (server clamps to its maximum)",
			},
			&cli.StringSliceFlag{
				Name:    "sort",
				Aliases: []string{"s"},
				Usage:   "Sort key in field:asc|desc format; repeatable",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout for the search request",
				Value: defaultTimeout,
			},
		},
		Action: runAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "jobq:", err)
		os.Exit(1)
	}
}

func runAction(c *cli.Context) error {
	text := strings.TrimSpace(c.String("query"))
	if text == "" && c.NArg() > 0 {
		text = strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	}

	query := jobdex.NewQuery(text)
	for _, raw := range c.StringSlice("filter") {
		name, value, ok := strings.Cut(raw, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return fmt.Errorf("filter %q must be field=value", raw)
		}
		query = query.Filter(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	if n := c.Int("page"); n > 0 {
		query = query.Page(n)
	}
	if n := c.Int("page-size"); n > 0 {
		query = query.PageSize(n)
	}
	for _, raw := range c.StringSlice("sort") {
		field, dir, hasDir := strings.Cut(raw, ":")
		if strings.TrimSpace(field) == "" {
			return fmt.Errorf("sort %q must be field:asc|desc", raw)
		}
		if !hasDir || dir == "" {
			dir = string(jobdex.SortAsc)
		}
		query = query.SortBy(field, jobdex.SortDirection(dir))
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	client := jobdex.New(c.String("addr"))
	page, err := client.SearchJobs(ctx, query)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(page)
}
