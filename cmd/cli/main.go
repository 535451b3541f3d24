package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	searchquery "github.com/lp177/searchquery"
	"github.com/lp177/searchquery/internal/index"
	"github.com/lp177/searchquery/internal/record"
	"github.com/spf13/cobra"
)

var corpusPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "searchquery",
	Short: "searchquery — query evaluation core REPL/CLI",
	Long: `searchquery drives the query evaluation core directly: load a JSON
document corpus into an in-memory index snapshot, then run RediSearch-style
queries against it from the command line or an interactive REPL.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&corpusPath, "corpus", "", "path to a JSON document corpus; required for query/explain/repl")
	rootCmd.AddCommand(queryCmd, explainCmd, replCmd, loadCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <query-string>",
	Short: "Run one query against --corpus and print matching doc ids",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine()
		if err != nil {
			return err
		}
		return runQuery(eng, args[0])
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain <query-string>",
	Short: "Print the explain dump for a query without evaluating it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine()
		if err != nil {
			return err
		}
		dump, err := eng.Explain(args[0], nil)
		if err != nil {
			return err
		}
		fmt.Print(dump)
		return nil
	},
}

var loadCmd = &cobra.Command{
	Use:   "load <corpus.json>",
	Short: "Validate a JSON document corpus and report its field/document counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, fields, docs, err := buildIndexFromFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("loaded %d field(s), %d document(s) from %s\n", fields, docs, args[0])
		return nil
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive query REPL over --corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine()
		if err != nil {
			return err
		}
		return runRepl(eng)
	},
}

func loadEngine() (*searchquery.Engine, error) {
	if corpusPath == "" {
		return nil, fmt.Errorf("--corpus is required")
	}
	idx, _, _, err := buildIndexFromFile(corpusPath)
	if err != nil {
		return nil, err
	}
	return searchquery.New(idx, searchquery.DefaultConfig()), nil
}

func runQuery(eng *searchquery.Engine, q string) error {
	cur, errs, err := eng.Query(context.Background(), q)
	if err != nil {
		return err
	}
	defer cur.Close()
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	n := 0
	for {
		res, ok := cur.Read()
		if !ok {
			break
		}
		fmt.Printf("%d\n", res.DocID)
		n++
	}
	fmt.Fprintf(os.Stderr, "%d document(s) matched\n", n)
	return nil
}

func runRepl(eng *searchquery.Engine) error {
	fmt.Println("searchquery — query evaluation core REPL")
	fmt.Println(`Type a query and press Enter. Prefix with "explain " to dump the AST. Type "exit" to quit.`)
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		switch {
		case line == "":
			continue
		case line == "exit" || line == "quit":
			return nil
		case len(line) > 8 && line[:8] == "explain ":
			dump, err := eng.Explain(line[8:], nil)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			fmt.Print(dump)
		default:
			if err := runQuery(eng, line); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
	return nil
}

// corpusDoc is the JSON shape load/query/repl read a document corpus from:
// one object per document, with text fields tokenized on whitespace and
// indexed at ascending offsets, numeric/geo/tag fields indexed as their own
// typed backends.
type corpusDoc struct {
	ID      uint64                `json:"id"`
	Text    map[string]string     `json:"text,omitempty"`
	Numeric map[string]float64    `json:"numeric,omitempty"`
	Geo     map[string][2]float64 `json:"geo,omitempty"` // [lat, lon]
	Tags    map[string][]string   `json:"tags,omitempty"`
}

func buildIndexFromFile(path string) (*index.MemIndex, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	var docs []corpusDoc
	if err := json.NewDecoder(f).Decode(&docs); err != nil {
		return nil, 0, 0, fmt.Errorf("invalid corpus JSON: %w", err)
	}

	idx := index.NewMemIndex()
	fields := map[string]index.FieldType{}
	var bit uint64 = 1

	ensureField := func(name string, typ index.FieldType) uint64 {
		if _, ok := fields[name]; !ok {
			fields[name] = typ
			mask := bit
			bit <<= 1
			idx.AddField(index.FieldSpec{Name: name, Mask: mask, Type: typ})
			return mask
		}
		spec, _ := idx.FieldSpec(name)
		return spec.Mask
	}

	for _, d := range docs {
		id := record.DocID(d.ID)
		for field, text := range d.Text {
			mask := ensureField(field, index.FieldText)
			pos := uint32(0)
			for _, w := range splitWords(text) {
				idx.IndexTerm(w, id, mask, record.Offsets{pos})
				pos++
			}
		}
		for field, v := range d.Numeric {
			ensureField(field, index.FieldNumeric)
			idx.IndexNumeric(field, id, v)
		}
		for field, p := range d.Geo {
			ensureField(field, index.FieldGeo)
			idx.IndexGeo(field, id, p[0], p[1])
		}
		for field, values := range d.Tags {
			ensureField(field, index.FieldTag)
			for _, v := range values {
				idx.IndexTag(field, v, id)
			}
		}
	}
	return idx, len(fields), len(docs), nil
}

func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = nil
		}
	}
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			flush()
			continue
		}
		cur = append(cur, r)
	}
	flush()
	return words
}
