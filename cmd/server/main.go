package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"time"

	searchquery "github.com/lp177/searchquery"
	"github.com/lp177/searchquery/internal/index"
	"github.com/lp177/searchquery/internal/record"
	"golang.org/x/sys/unix"
)

var allowedOrigins = []string{
	"http://localhost:5173",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// corpusDoc mirrors cmd/cli's JSON document shape: one object per document,
// text fields tokenized on whitespace, numeric/geo/tag fields indexed as
// their own typed backends.
type corpusDoc struct {
	ID      uint64                `json:"id"`
	Text    map[string]string     `json:"text,omitempty"`
	Numeric map[string]float64    `json:"numeric,omitempty"`
	Geo     map[string][2]float64 `json:"geo,omitempty"` // [lat, lon]
	Tags    map[string][]string   `json:"tags,omitempty"`
}

func buildIndex(docs []corpusDoc) *index.MemIndex {
	idx := index.NewMemIndex()
	fields := map[string]struct{}{}
	var bit uint64 = 1

	ensureField := func(name string, typ index.FieldType) uint64 {
		if _, ok := fields[name]; !ok {
			fields[name] = struct{}{}
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
	return idx
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

type queryRequest struct {
	Corpus []corpusDoc `json:"corpus"`
	Query  string      `json:"query"`
}

type matchDoc struct {
	DocID uint64 `json:"docId"`
}

func queryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body queryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(body.Corpus) == 0 {
		writeError(w, http.StatusBadRequest, "missing field: corpus")
		return
	}
	if body.Query == "" {
		writeError(w, http.StatusBadRequest, "missing field: query")
		return
	}

	idx := buildIndex(body.Corpus)
	eng := searchquery.New(idx, searchquery.DefaultConfig())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, errs, err := eng.Query(ctx, body.Query)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	defer cur.Close()

	matches := make([]matchDoc, 0)
	for {
		res, ok := cur.Read()
		if !ok {
			break
		}
		matches = append(matches, matchDoc{DocID: uint64(res.DocID)})
	}

	errStrs := make([]string, len(errs))
	for i, e := range errs {
		errStrs[i] = e.Error()
	}

	writeJSON(w, http.StatusOK, struct {
		Matches []matchDoc `json:"matches"`
		Errors  []string   `json:"errors,omitempty"`
	}{Matches: matches, Errors: errStrs})
}

func explainHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body queryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Query == "" {
		writeError(w, http.StatusBadRequest, "missing field: query")
		return
	}

	idx := buildIndex(body.Corpus)
	eng := searchquery.New(idx, searchquery.DefaultConfig())

	dump, err := eng.Explain(body.Query, nil)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Dump string `json:"dump"`
	}{Dump: dump})
}

// reportFileLimits prints the process's open-file rlimit at startup, so an
// operator can tell whether a large corpus's posting-list fan-out is going
// to run the server into ulimit -n before it does.
func reportFileLimits() {
	var rlimit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rlimit); err != nil {
		fmt.Printf("RLIMIT_NOFILE: unavailable (%v)\n", err)
		return
	}
	fmt.Printf("RLIMIT_NOFILE: cur=%d max=%d\n", rlimit.Cur, rlimit.Max)
}

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	flag.Parse()

	reportFileLimits()

	mux := http.NewServeMux()
	mux.HandleFunc("/query", queryHandler)
	mux.HandleFunc("/explain", explainHandler)

	addr := fmt.Sprintf(":%d", *port)
	fmt.Printf("searchquery server listening on %s\n", addr)
	if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
		fmt.Fprintf(flag.CommandLine.Output(), "server error: %v\n", err)
	}
}
