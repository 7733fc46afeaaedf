package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/xtding233/endfield-gacha/internal/gacha"
	"github.com/xtding233/endfield-gacha/internal/pricing"
	"github.com/xtding233/endfield-gacha/internal/session"
)

func pullCommand() *cli.Command {
	return &cli.Command{
		Name:  "pull",
		Usage: "perform a single or ten-pull",
		Flags: []cli.Flag{
			bannerFlag(string(gacha.BannerLimited)),
			&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 1, Usage: "1 or 10"},
		},
		Action: func(c *cli.Context) error {
			kind, err := parseBanner(c)
			if err != nil {
				return err
			}
			count := c.Int("count")
			if count != 1 && count != 10 {
				return cli.Exit("count must be 1 or 10", 2)
			}
			sess, err := getEnv(c).session(c)
			if err != nil {
				return err
			}

			results, err := sess.Pull(log.Logger.WithContext(c.Context), kind, count)
			if errors.Is(err, session.ErrNothingPulled) {
				return cli.Exit(err.Error(), 1)
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			for i, r := range results {
				mark := ""
				if r.Featured {
					mark = "featured"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, r.Rarity, r.Name, r.Type, mark)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			printBanner(c.App.Writer, gacha.Summarize(sess.State(), kind))
			return nil
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "show wallets, banner progress and lifetime statistics",
		Action: func(c *cli.Context) error {
			sess, err := getEnv(c).session(c)
			if err != nil {
				return err
			}
			st := sess.State()
			out := c.App.Writer

			fmt.Fprintf(out, "Oroberyl:        %s\n", humanize.Comma(st.PrimaryCurrency))
			fmt.Fprintf(out, "Arsenal Tickets: %s\n\n", humanize.Comma(st.SecondaryTickets))
			for _, kind := range gacha.BannerKinds {
				printBanner(out, gacha.Summarize(st, kind))
			}

			s := st.Stats
			fmt.Fprintf(out, "\nTotal pulls: %s\n", humanize.Comma(int64(s.TotalPulls)))
			for _, r := range gacha.Rarities {
				fmt.Fprintf(out, "  %s: %d (%s)\n", r, s.Counts.Of(r), percent(s.Counts.Of(r), s.TotalPulls))
			}
			fmt.Fprintf(out, "Average 6★ pity: %d\n", s.AveragePity)
			fmt.Fprintf(out, "Oroberyl spent: %s (about $%s)\n",
				humanize.Comma(s.CurrencySpent),
				humanize.CommafWithDigits(pricing.EstimateSpend(s.CurrencySpent), 2))
			return nil
		},
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "list past pulls on one banner, most recent first",
		Flags: []cli.Flag{
			bannerFlag(string(gacha.BannerLimited)),
			&cli.BoolFlag{Name: "six", Usage: "show 6★ pulls"},
			&cli.BoolFlag{Name: "five", Usage: "show 5★ pulls"},
			&cli.IntFlag{Name: "page", Aliases: []string{"p"}, Value: 1},
			&cli.IntFlag{Name: "per-page", Value: gacha.DefaultPerPage},
		},
		Action: func(c *cli.Context) error {
			kind, err := parseBanner(c)
			if err != nil {
				return err
			}
			sess, err := getEnv(c).session(c)
			if err != nil {
				return err
			}
			page := gacha.QueryHistory(sess.State().History, gacha.HistoryQuery{
				Banner:  kind,
				Show6:   c.Bool("six"),
				Show5:   c.Bool("five"),
				Page:    c.Int("page"),
				PerPage: c.Int("per-page"),
			})
			if page.Total == 0 {
				fmt.Fprintln(c.App.Writer, "No pulls yet.")
				return nil
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			for _, row := range page.Rows {
				r := row.Record
				fmt.Fprintf(w, "#%d\t%s\t%s\t%s\n", row.Number, r.Rarity, r.Name, humanize.Time(r.Timestamp))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "page %d/%d, %d pulls\n", page.Page, page.TotalPages, page.Total)
			return nil
		},
	}
}

func grantCommand() *cli.Command {
	return &cli.Command{
		Name:      "grant",
		Usage:     "add Oroberyl to the wallet",
		ArgsUsage: "AMOUNT",
		Action: func(c *cli.Context) error {
			amount, err := strconv.ParseInt(strings.ReplaceAll(c.Args().First(), ",", ""), 10, 64)
			if err != nil || amount <= 0 {
				return cli.Exit("AMOUNT must be a positive integer", 2)
			}
			sess, err := getEnv(c).session(c)
			if err != nil {
				return err
			}
			if err := sess.Grant(c.Context, amount); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Oroberyl: %s\n", humanize.Comma(sess.State().PrimaryCurrency))
			return nil
		},
	}
}

func resetCommand() *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "wipe all progress and start over",
		Action: func(c *cli.Context) error {
			sess, err := getEnv(c).session(c)
			if err != nil {
				return err
			}
			if err := sess.Reset(log.Logger.WithContext(c.Context)); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "Progress reset.")
			return nil
		},
	}
}

func simulateCommand() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "estimate pull counts with a Monte Carlo run",
		Flags: []cli.Flag{
			bannerFlag(string(gacha.BannerLimited)),
			&cli.StringFlag{
				Name:  "goal",
				Value: string(gacha.GoalFirstHit),
				Usage: "first_hit, first_featured or fixed_budget",
			},
			&cli.IntFlag{Name: "trials", Value: 10000},
			&cli.IntFlag{Name: "budget", Usage: "draws per trial for fixed_budget"},
		},
		Action: func(c *cli.Context) error {
			kind, err := parseBanner(c)
			if err != nil {
				return err
			}
			stats, err := getEnv(c).engine.RunMonteCarlo(gacha.SimParams{
				Banner: kind,
				Goal:   gacha.TrialGoal(c.String("goal")),
				Trials: c.Int("trials"),
				Budget: c.Int("budget"),
			})
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			out := c.App.Writer
			fmt.Fprintf(out, "mean %.2f  stddev %.2f  max %d\n", stats.Mean, stats.StdDev, stats.Max)
			fmt.Fprintf(out, "p50 %.0f  p90 %.0f  p99 %.0f\n", stats.P50, stats.P90, stats.P99)
			if kind.Domain() == gacha.DomainOperator && gacha.TrialGoal(c.String("goal")) != gacha.GoalFixedBudget {
				cost := int64(gacha.PullCost(kind).TokensForDraws(int(stats.Mean + 0.5)))
				fmt.Fprintf(out, "mean cost %s Oroberyl (about $%s)\n",
					humanize.Comma(cost), humanize.CommafWithDigits(pricing.EstimateSpend(cost), 2))
			}
			return nil
		},
	}
}

func planCommand() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "price a number of pulls, or the pulls a budget buys",
		Flags: []cli.Flag{
			bannerFlag(string(gacha.BannerLimited)),
			&cli.IntFlag{Name: "pulls", Usage: "draws to fund"},
			&cli.Float64Flag{Name: "budget", Usage: "money to spend, in dollars"},
		},
		Action: func(c *cli.Context) error {
			kind, err := parseBanner(c)
			if err != nil {
				return err
			}
			if kind.Domain() != gacha.DomainOperator {
				return cli.Exit("only headhunting banners are bought with Oroberyl", 2)
			}
			cat := pricing.DefaultCatalog()
			cost := gacha.PullCost(kind)

			var plan pricing.Plan
			switch {
			case c.Int("pulls") > 0:
				plan = pricing.PlanForPulls(cat, cost, c.Int("pulls"), nil)
			case c.Float64("budget") > 0:
				var pulls int
				pulls, plan = pricing.PullsUnderBudget(cat, cost, cents(c.Float64("budget")), nil)
				fmt.Fprintf(c.App.Writer, "%d pulls\n", pulls)
			default:
				return cli.Exit("set --pulls or --budget", 2)
			}
			printPlan(c.App.Writer, plan)
			return nil
		},
	}
}

func printBanner(out io.Writer, s gacha.BannerSummary) {
	fmt.Fprintf(out, "%-9s pity %2d/%d (%.0f%%)  pulls %d", s.Kind, s.PityCount, s.HardPity, s.PityPercent, s.TotalPulls)
	if s.Kind == gacha.BannerLimited {
		if s.SparkUsed {
			fmt.Fprint(out, "  spark used")
		} else {
			fmt.Fprintf(out, "  spark %d/%d", s.SparkCount, gacha.SparkThreshold)
		}
	}
	if s.Completed {
		fmt.Fprint(out, "  completed")
	}
	fmt.Fprintf(out, "  [%s %s/%s]\n", s.Currency, humanize.Comma(int64(s.Cost1)), humanize.Comma(int64(s.Cost10)))
}

func printPlan(out io.Writer, plan pricing.Plan) {
	for _, p := range plan.Purchases {
		fmt.Fprintf(out, "%d x %s\t%s\n", p.Qty, p.Name, money(p.Subtotal))
	}
	fmt.Fprintf(out, "total %s %s for %s tokens\n", money(plan.TotalCents), plan.Currency, humanize.Comma(int64(plan.TotalTokens)))
}

func money(amount int) string {
	return humanize.CommafWithDigits(float64(amount)/100, 2)
}

// cents converts dollars to the nearest whole cent.
func cents(dollars float64) int {
	return int(math.Round(dollars * 100))
}

func percent(n, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}
