package curl

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// formBoundary keeps multipart bodies reproducible.
const formBoundary = "------------------------shapecurlform"

// Request is the HTTP request a curl command describes.
//
// Files referenced with @ (in -d, --data-binary, --data-urlencode, --json,
// -F and -T) are listed in Files and never read, so Body only holds inline
// content.
type Request struct {
	Method  string
	URL     string // absolute; "http://" is assumed when the command has no scheme
	Version string // "HTTP/1.1" unless --http1.0, --http2 or --http3 is given
	Headers Headers
	Body    []byte // nil if none
	Files   []string

	Insecure        bool          // -k
	FollowRedirects bool          // -L
	Timeout         time.Duration // -m
	ConnectTimeout  time.Duration // --connect-timeout
	Proxy           string        // -x
	Output          string        // -o
}

// ToRequest folds cmd into the request curl would send.
//
// The method is the explicit -X value, else HEAD for -I, GET for -G, POST when
// there is data or form content, PUT for -T, and GET otherwise. Data fragments
// are joined with '&'; with -G they go to the query string instead.
// Convenience options (-u, -A, -e, -b, --json, --compressed, --oauth2-bearer)
// become headers unless the same header was given with -H.
func ToRequest(cmd Command) (*Request, error) {
	u, ok := cmd.URL()
	if !ok {
		return nil, newParseError(KindMissingURL, "missing URL")
	}

	b := &requestBuilder{req: &Request{Version: "HTTP/1.1"}}
	for _, c := range cmd {
		if err := b.add(c); err != nil {
			return nil, err
		}
	}
	if err := b.finish(u); err != nil {
		return nil, err
	}
	return b.req, nil
}

type formField struct {
	raw     string
	literal bool // --form-string: no @ or < handling
}

type requestBuilder struct {
	req *Request

	method   string
	head     bool
	get      bool
	upload   string
	json     bool
	compress bool

	hasData bool
	parts   []string
	forms   []formField
	queries []string

	user    string
	bearer  string
	agent   string
	referer string
	cookies []string
}

func (b *requestBuilder) add(c Curl) error {
	switch v := c.(type) {
	case Method:
		b.method = v.Name
	case Header:
		b.req.Headers.Add(v.Key, v.Value)
	case Data:
		b.addData(v.Identifier, v.Value)
	case Flag:
		return b.addFlag(v)
	}
	return nil
}

func (b *requestBuilder) addData(identifier, value string) {
	b.hasData = true
	switch identifier {
	case "--data-raw":
		b.parts = append(b.parts, value)
	case "--data-urlencode":
		enc, file := encodeDataURLEncode(value)
		if file != "" {
			b.req.Files = append(b.req.Files, file)
			return
		}
		b.parts = append(b.parts, enc)
	default:
		if file, ok := strings.CutPrefix(value, "@"); ok {
			b.req.Files = append(b.req.Files, file)
			return
		}
		b.parts = append(b.parts, value)
	}
}

func (b *requestBuilder) addFlag(f Flag) error {
	var err error
	switch f.Identifier {
	case "-G", "--get":
		b.get = true
	case "-I", "--head":
		b.head = true
	case "-T", "--upload-file":
		b.upload = f.Value
		b.req.Files = append(b.req.Files, f.Value)
	case "-F", "--form":
		b.forms = append(b.forms, formField{raw: f.Value})
	case "--form-string":
		b.forms = append(b.forms, formField{raw: f.Value, literal: true})
	case "--data-ascii":
		b.addData("-d", f.Value)
	case "--json":
		b.json = true
		b.addData("--json", f.Value)
	case "--url-query":
		if q, ok := strings.CutPrefix(f.Value, "+"); ok {
			b.queries = append(b.queries, q)
		} else if enc, file := encodeDataURLEncode(f.Value); file != "" {
			b.req.Files = append(b.req.Files, file)
		} else {
			b.queries = append(b.queries, enc)
		}
	case "-u", "--user":
		b.user = f.Value
	case "--oauth2-bearer":
		b.bearer = f.Value
	case "-A", "--user-agent":
		b.agent = f.Value
	case "-e", "--referer":
		b.referer = f.Value
	case "-b", "--cookie":
		// Without '=' the value names a cookie file, which is not read.
		if strings.Contains(f.Value, "=") {
			b.cookies = append(b.cookies, f.Value)
		}
	case "--compressed":
		b.compress = true
	case "-k", "--insecure":
		b.req.Insecure = true
	case "-L", "--location":
		b.req.FollowRedirects = true
	case "-m", "--max-time":
		b.req.Timeout, err = parseSeconds(f)
	case "--connect-timeout":
		b.req.ConnectTimeout, err = parseSeconds(f)
	case "-x", "--proxy":
		b.req.Proxy = f.Value
	case "-o", "--output":
		b.req.Output = f.Value
	case "-0", "--http1.0":
		b.req.Version = "HTTP/1.0"
	case "--http1.1":
		b.req.Version = "HTTP/1.1"
	case "--http2", "--http2-prior-knowledge":
		b.req.Version = "HTTP/2"
	case "--http3", "--http3-only":
		b.req.Version = "HTTP/3"
	}
	return err
}

func (b *requestBuilder) finish(u URL) error {
	req := b.req

	switch {
	case b.method != "":
		req.Method = b.method
	case b.head:
		req.Method = http.MethodHead
	case b.get:
		req.Method = http.MethodGet
	case b.hasData || len(b.forms) > 0:
		req.Method = http.MethodPost
	case b.upload != "":
		req.Method = http.MethodPut
	default:
		req.Method = http.MethodGet
	}

	queries := b.queries
	if b.get {
		queries = append(queries, b.parts...)
	}
	req.URL = targetURL(u, queries)

	switch {
	case len(b.forms) > 0 && b.hasData && !b.get:
		return newParseError(KindUnexpectedArgument, "cannot combine form (-F) and data (-d) options")
	case len(b.forms) > 0:
		body, err := b.multipartBody()
		if err != nil {
			return err
		}
		req.Body = body
		setDefault(&req.Headers, "Content-Type", "multipart/form-data; boundary="+formBoundary)
	case b.hasData && !b.get:
		if len(b.parts) > 0 {
			req.Body = []byte(strings.Join(b.parts, "&"))
		}
		if b.json {
			setDefault(&req.Headers, "Content-Type", "application/json")
			setDefault(&req.Headers, "Accept", "application/json")
		} else {
			setDefault(&req.Headers, "Content-Type", "application/x-www-form-urlencoded")
		}
	}

	if b.user != "" {
		setDefault(&req.Headers, "Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(b.user)))
	}
	if b.bearer != "" {
		setDefault(&req.Headers, "Authorization", "Bearer "+b.bearer)
	}
	if b.agent != "" {
		setDefault(&req.Headers, "User-Agent", b.agent)
	}
	if b.referer != "" {
		setDefault(&req.Headers, "Referer", b.referer)
	}
	if len(b.cookies) > 0 {
		setDefault(&req.Headers, "Cookie", strings.Join(b.cookies, "; "))
	}
	if b.compress {
		setDefault(&req.Headers, "Accept-Encoding", "deflate, gzip")
	}
	return nil
}

func (b *requestBuilder) multipartBody() ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(formBoundary); err != nil {
		return nil, err
	}

	for _, f := range b.forms {
		name, value, ok := strings.Cut(f.raw, "=")
		if !ok {
			return nil, newParseError(KindUnexpectedArgument, "form field %q has no '='", f.raw)
		}
		if !f.literal {
			if file, ok := strings.CutPrefix(value, "@"); ok {
				file, _, _ = strings.Cut(file, ";")
				b.req.Files = append(b.req.Files, file)
				if _, err := w.CreateFormFile(name, filepath.Base(file)); err != nil {
					return nil, err
				}
				continue
			}
			if file, ok := strings.CutPrefix(value, "<"); ok {
				b.req.Files = append(b.req.Files, file)
				value = ""
			}
		}
		if err := w.WriteField(name, value); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HTTPRequest builds, but does not send, the equivalent *http.Request.
// A Host header becomes the request's Host field.
func (r *Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return nil, fmt.Errorf("curl: build request: %w", err)
	}

	for _, h := range r.Headers {
		if strings.EqualFold(h.Key, "Host") {
			req.Host = h.Value
			continue
		}
		req.Header.Add(h.Key, h.Value)
	}

	switch r.Version {
	case "HTTP/1.0":
		req.Proto, req.ProtoMajor, req.ProtoMinor = r.Version, 1, 0
	case "HTTP/2":
		req.Proto, req.ProtoMajor, req.ProtoMinor = r.Version, 2, 0
	case "HTTP/3":
		req.Proto, req.ProtoMajor, req.ProtoMinor = r.Version, 3, 0
	}
	return req, nil
}

// targetURL drops the fragment, assumes http:// when no scheme was given and
// appends extra query parts.
func targetURL(u URL, queries []string) string {
	target, _, _ := strings.Cut(u.Raw, "#")
	if u.Scheme == "" {
		target = "http://" + target
	}
	for _, q := range queries {
		switch {
		case !strings.Contains(target, "?"):
			target += "?"
		case !strings.HasSuffix(target, "?") && !strings.HasSuffix(target, "&"):
			target += "&"
		}
		target += q
	}
	return target
}

func setDefault(h *Headers, key, value string) {
	if !h.Has(key) {
		h.Add(key, value)
	}
}

func parseSeconds(f Flag) (time.Duration, error) {
	secs, err := strconv.ParseFloat(f.Value, 64)
	if err != nil || secs < 0 {
		return 0, newParseError(KindUnexpectedArgument, "invalid number of seconds %q for option %s", f.Value, f.Identifier)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// encodeDataURLEncode applies curl's --data-urlencode forms:
//
//	content        -> encoded content
//	=content       -> encoded content
//	name=content   -> name=encoded content
//	@file          -> file (returned, not read)
//	name@file      -> file (returned, not read)
func encodeDataURLEncode(v string) (encoded, file string) {
	eq := strings.IndexByte(v, '=')
	at := strings.IndexByte(v, '@')
	switch {
	case at >= 0 && (eq < 0 || at < eq):
		return "", v[at+1:]
	case eq == 0:
		return percentEncode(v[1:]), ""
	case eq > 0:
		return v[:eq+1] + percentEncode(v[eq+1:]), ""
	default:
		return percentEncode(v), ""
	}
}

// percentEncode percent-encodes everything but RFC 3986 unreserved characters.
func percentEncode(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
			c == '-' || c == '_' || c == '.' || c == '~' {
			b.WriteByte(c)
		} else {
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0F])
		}
	}
	return b.String()
}
