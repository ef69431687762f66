package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pelletier/go-toml/v2"
	"github.com/shapestone/shape-curl/pkg/curl"
	"gopkg.in/yaml.v3"
)

// printer writes results in the configured output format.
type printer struct {
	w         io.Writer
	format    string
	multiline bool
}

func (a *app) printer(w io.Writer) *printer {
	return &printer{w: w, format: a.cfg.Output, multiline: a.cfg.Multiline}
}

// commands prints parsed commands. Structured formats go through the AST
// form, so every argument is an object with a "kind" key.
func (p *printer) commands(cmds []curl.Command) error {
	switch p.format {
	case "curl":
		enc := curl.NewEncoder(p.w)
		enc.SetMultiline(p.multiline)
		for _, cmd := range cmds {
			if err := enc.Encode(cmd); err != nil {
				return err
			}
		}
		return nil

	case "table":
		for i, cmd := range cmds {
			if i > 0 {
				fmt.Fprintln(p.w)
			}
			rows := make([][]string, len(cmd))
			for j, c := range cmd {
				rows[j] = []string{c.Kind().String(), curl.Identifier(c), argValue(c)}
			}
			if err := writeTable(p.w, []string{"KIND", "IDENTIFIER", "VALUE"}, rows); err != nil {
				return err
			}
		}
		return nil
	}

	docs := make([]interface{}, len(cmds))
	for i, cmd := range cmds {
		docs[i] = curl.NodeToInterface(curl.CommandToNode(cmd))
	}
	return p.structured(docs, func(items []interface{}) interface{} {
		commands := make([]map[string]interface{}, len(items))
		for i, item := range items {
			commands[i] = map[string]interface{}{"args": item}
		}
		return map[string]interface{}{"commands": commands}
	})
}

// requests prints request summaries.
func (p *printer) requests(reqs []*curl.Request) error {
	switch p.format {
	case "curl":
		return fmt.Errorf("curl output is not available for requests")

	case "table":
		for i, req := range reqs {
			if i > 0 {
				fmt.Fprintln(p.w)
			}
			if err := writeTable(p.w, []string{"FIELD", "VALUE"}, requestRows(req)); err != nil {
				return err
			}
		}
		return nil
	}

	docs := make([]interface{}, len(reqs))
	for i, req := range reqs {
		docs[i] = newRequestView(req)
	}
	return p.structured(docs, func(items []interface{}) interface{} {
		return map[string]interface{}{"requests": items}
	})
}

// structured writes one json or yaml document per item. TOML has no
// document stream, so all items go into a single document built by wrap.
func (p *printer) structured(items []interface{}, wrap func([]interface{}) interface{}) error {
	switch p.format {
	case "json":
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		for _, item := range items {
			if err := enc.Encode(item); err != nil {
				return err
			}
		}
		return nil

	case "yaml":
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		for _, item := range items {
			if err := enc.Encode(item); err != nil {
				return err
			}
		}
		return enc.Close()

	case "toml":
		data, err := toml.Marshal(wrap(items))
		if err != nil {
			return err
		}
		_, err = p.w.Write(data)
		return err

	default:
		return fmt.Errorf("unknown output format %q", p.format)
	}
}

// argValue is the table's VALUE cell for an argument.
func argValue(c curl.Curl) string {
	switch v := c.(type) {
	case curl.URL:
		return v.Raw
	case curl.Method:
		return v.Name
	case curl.Header:
		if v.Value == "" {
			return v.Key + ":"
		}
		return v.Key + ": " + v.Value
	case curl.Data:
		return v.Value
	case curl.Flag:
		return v.Value
	}
	return ""
}

type headerView struct {
	Key   string `json:"key" yaml:"key" toml:"key"`
	Value string `json:"value" yaml:"value" toml:"value"`
}

type requestView struct {
	Method          string       `json:"method" yaml:"method" toml:"method"`
	URL             string       `json:"url" yaml:"url" toml:"url"`
	Version         string       `json:"version" yaml:"version" toml:"version"`
	Headers         []headerView `json:"headers,omitempty" yaml:"headers,omitempty" toml:"headers,omitempty"`
	Body            string       `json:"body,omitempty" yaml:"body,omitempty" toml:"body,omitempty"`
	Files           []string     `json:"files,omitempty" yaml:"files,omitempty" toml:"files,omitempty"`
	Insecure        bool         `json:"insecure,omitempty" yaml:"insecure,omitempty" toml:"insecure,omitempty"`
	FollowRedirects bool         `json:"follow_redirects,omitempty" yaml:"follow_redirects,omitempty" toml:"follow_redirects,omitempty"`
	Timeout         string       `json:"timeout,omitempty" yaml:"timeout,omitempty" toml:"timeout,omitempty"`
	ConnectTimeout  string       `json:"connect_timeout,omitempty" yaml:"connect_timeout,omitempty" toml:"connect_timeout,omitempty"`
	Proxy           string       `json:"proxy,omitempty" yaml:"proxy,omitempty" toml:"proxy,omitempty"`
	Output          string       `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty"`
}

func newRequestView(r *curl.Request) requestView {
	v := requestView{
		Method:          r.Method,
		URL:             r.URL,
		Version:         r.Version,
		Body:            string(r.Body),
		Files:           r.Files,
		Insecure:        r.Insecure,
		FollowRedirects: r.FollowRedirects,
		Proxy:           r.Proxy,
		Output:          r.Output,
	}
	for _, h := range r.Headers {
		v.Headers = append(v.Headers, headerView{Key: h.Key, Value: h.Value})
	}
	if r.Timeout > 0 {
		v.Timeout = r.Timeout.String()
	}
	if r.ConnectTimeout > 0 {
		v.ConnectTimeout = r.ConnectTimeout.String()
	}
	return v
}

func requestRows(r *curl.Request) [][]string {
	rows := [][]string{
		{"method", r.Method},
		{"url", r.URL},
		{"version", r.Version},
	}
	for _, h := range r.Headers {
		rows = append(rows, []string{"header", h.Key + ": " + h.Value})
	}
	if r.Body != nil {
		rows = append(rows, []string{"body", string(r.Body)})
	}
	for _, f := range r.Files {
		rows = append(rows, []string{"file", f})
	}
	if r.Insecure {
		rows = append(rows, []string{"insecure", "true"})
	}
	if r.FollowRedirects {
		rows = append(rows, []string{"follow_redirects", "true"})
	}
	if r.Timeout > 0 {
		rows = append(rows, []string{"timeout", r.Timeout.String()})
	}
	if r.ConnectTimeout > 0 {
		rows = append(rows, []string{"connect_timeout", r.ConnectTimeout.String()})
	}
	if r.Proxy != "" {
		rows = append(rows, []string{"proxy", r.Proxy})
	}
	if r.Output != "" {
		rows = append(rows, []string{"output", r.Output})
	}
	return rows
}

// writeTable writes rows under header, columns padded to their display width
// and separated by two spaces.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	all := append([][]string{header}, rows...)
	for _, row := range all {
		for j, cell := range row {
			row[j] = escapeCell(cell)
			if cw := runewidth.StringWidth(row[j]); cw > widths[j] {
				widths[j] = cw
			}
		}
	}

	var b strings.Builder
	for _, row := range all {
		var line strings.Builder
		for j, cell := range row {
			if j > 0 {
				line.WriteString("  ")
			}
			line.WriteString(runewidth.FillRight(cell, widths[j]))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeCell(s string) string {
	return strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`).Replace(s)
}
