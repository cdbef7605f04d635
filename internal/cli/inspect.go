package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/matzehuels/isosort/pkg/depgraph"
	"github.com/matzehuels/isosort/pkg/pipeline"
	"github.com/matzehuels/isosort/pkg/scene"
)

// entrySource lets fuzzy search over object IDs.
type entrySource []scene.Entry

func (s entrySource) String(i int) string { return s[i].ID }
func (s entrySource) Len() int            { return len(s) }

// matchEntries returns the entries whose ID fuzzily matches query, best
// first. An empty query matches everything in draw order.
func matchEntries(entries []scene.Entry, query string) fuzzy.Matches {
	if query == "" {
		all := make(fuzzy.Matches, len(entries))
		for i, e := range entries {
			all[i] = fuzzy.Match{Str: e.ID, Index: i}
		}
		return all
	}
	return fuzzy.FindFrom(query, entrySource(entries))
}

// highlightMatch styles the matched characters of s.
func highlightMatch(s string, matched []int) string {
	if len(matched) == 0 {
		return s
	}
	var b strings.Builder
	for i, r := range s {
		if slices.Contains(matched, i) {
			b.WriteString(styleMatch.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// inspectCommand explains where matching objects ended up in the order.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags sortFlags
		limit int
	)

	cmd := &cobra.Command{
		Use:   "inspect <scene> [query]",
		Short: "Show which objects an object is drawn before and after",
		Long: `Inspect sorts a scene and, for every object whose ID fuzzily matches
query, lists the objects it is drawn after (its dependencies) and before
(its dependents).`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScene(args[0])
			if err != nil {
				return err
			}
			query := ""
			if len(args) > 1 {
				query = args[1]
			}

			ctx := cmd.Context()
			runner := c.newRunner(ctx, flags.noCache)
			defer runner.Close()

			res, err := runner.Sort(ctx, s, c.pipelineOptions(flags))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			matches := matchEntries(res.Order, query)
			if len(matches) == 0 {
				printWarning(w, "No object matches %q", query)
				return nil
			}
			if limit > 0 && len(matches) > limit {
				matches = matches[:limit]
			}
			for _, m := range matches {
				printInspection(w, res, res.Order[m.Index], m.MatchedIndexes)
			}
			return nil
		},
	}

	flags.register(cmd, pipeline.DefaultFrames)
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of matches to show (0 for all)")
	return cmd
}

func printInspection(w io.Writer, res *pipeline.Result, e scene.Entry, matched []int) {
	motion := "static"
	if e.Dynamic {
		motion = styleDynamic.Render("dynamic")
	}
	fmt.Fprintf(w, "%s %s %s\n",
		StyleTitle.Render(highlightMatch(e.ID, matched)),
		StyleNumber.Render("#"+strconv.Itoa(e.Order)),
		StyleDim.Render(e.Kind+", "+motion))

	printKeyValue(w, "drawn after", joinDeps(res.Graph, res.Graph.Children(e.ID)))
	printKeyValue(w, "drawn before", joinDeps(res.Graph, res.Graph.Parents(e.ID)))
	fmt.Fprintln(w)
}

// joinDeps lists ids with their orders, lowest order first.
func joinDeps(g *depgraph.Graph, ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	nodes := make([]*depgraph.Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := g.Node(id); ok {
			nodes = append(nodes, n)
		}
	}
	slices.SortFunc(nodes, func(a, b *depgraph.Node) int { return a.Order - b.Order })

	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = fmt.Sprintf("%s (#%d)", n.ID, n.Order)
	}
	return strings.Join(parts, ", ")
}
