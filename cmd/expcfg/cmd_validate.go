package main

import (
	"fmt"
	"os"
	"sort"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/matforge/expcfg"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate -s schema.conf file.conf [file.conf ...]",
	Short: "Validate instance documents against a schema",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sch, err := loadSchema()
		if err != nil {
			return err
		}

		// One schema tree, built once, is read-only; instance documents
		// validate concurrently.
		type result struct {
			file   string
			err    error
			issues expcfg.Issues
			ok     bool
		}
		results := make([]result, len(args))
		var wg sync.WaitGroup
		for i, file := range args {
			wg.Add(1)
			go func(i int, file string) {
				defer wg.Done()
				r := result{file: file}
				defer func() { results[i] = r }()
				data, err := os.ReadFile(file)
				if err != nil {
					r.err = err
					return
				}
				doc, err := expcfg.ParseDocument(string(data))
				if err != nil {
					r.err = err
					return
				}
				cfg, iss := expcfg.Validate(sch, doc)
				r.issues = iss
				r.ok = cfg != nil
			}(i, file)
		}
		wg.Wait()

		failed := 0
		for _, r := range results {
			if !r.ok {
				failed++
			}
			if err := printResult(r.file, r.err, r.issues, r.ok); err != nil {
				return err
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d document(s) failed validation", failed, len(args))
		}
		return nil
	},
}

// fileReport is the JSON projection of one document's outcome.
type fileReport struct {
	File   string        `json:"file"`
	Valid  bool          `json:"valid"`
	Error  string        `json:"error,omitempty"`
	Issues []issueReport `json:"issues,omitempty"`
}

type issueReport struct {
	Path     string `json:"path"`
	Field    string `json:"field,omitempty"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Hint     string `json:"hint,omitempty"`
	Line     int    `json:"line,omitempty"`
	Advisory bool   `json:"advisory"`
}

func printResult(file string, err error, iss expcfg.Issues, ok bool) error {
	if flagFormat == "json" {
		rep := fileReport{File: file, Valid: ok && err == nil}
		if err != nil {
			rep.Error = err.Error()
		}
		for _, it := range iss {
			rep.Issues = append(rep.Issues, issueReport{
				Path:     it.Path,
				Field:    it.Field,
				Code:     it.Code,
				Message:  it.Message,
				Hint:     it.Hint,
				Line:     it.Line,
				Advisory: it.Advisory(),
			})
		}
		out, merr := json.Marshal(rep)
		if merr != nil {
			return merr
		}
		fmt.Println(string(out))
		return nil
	}

	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
	case !ok:
		fmt.Fprintf(os.Stderr, "%s: invalid\n", file)
	default:
		fmt.Printf("%s: ok\n", file)
	}
	sorted := append(expcfg.Issues(nil), iss...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Line < sorted[j].Line })
	for _, it := range sorted {
		sev := "error"
		if it.Advisory() {
			sev = "warning"
		}
		loc := it.Path
		if it.Field != "" {
			loc += " (" + it.Field + ")"
		}
		fmt.Fprintf(os.Stderr, "  %s: %s: %s at %s", sev, it.Code, it.Message, loc)
		if it.Hint != "" {
			fmt.Fprintf(os.Stderr, " [%s]", it.Hint)
		}
		fmt.Fprintln(os.Stderr)
	}
	return nil
}
