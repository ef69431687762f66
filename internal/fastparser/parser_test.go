package fastparser

import (
	"errors"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ignoreLayout drops fields that only locate an argument in the source text.
var ignoreLayout = cmpopts.IgnoreFields(Arg{}, "Offset", "URL")

func kinds(args []Arg) []Kind {
	out := make([]Kind, len(args))
	for i, a := range args {
		out[i] = a.Kind
	}
	return out
}

func identifiers(args []Arg, kind Kind) []string {
	var out []string
	for _, a := range args {
		if a.Kind == kind {
			out = append(out, a.Identifier)
		}
	}
	return out
}

func mustParse(t *testing.T, input string) []Arg {
	t.Helper()
	args, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", input, err)
	}
	return args
}

func wantKind(t *testing.T, err error, kind ErrorKind) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("error %v is %T, want *Error", err, err)
	}
	if pe.Kind != kind {
		t.Fatalf("Kind = %s, want %s (%v)", pe.Kind, kind, err)
	}
	return pe
}

func TestParse_URLAndMethod(t *testing.T) {
	args := mustParse(t, `curl https://example.com -X POST`)

	want := []Arg{
		{Kind: KindURL, Value: "https://example.com", HasValue: true},
		{Kind: KindMethod, Identifier: "-X", Value: "POST", HasValue: true},
	}
	if diff := cmp.Diff(want, args, ignoreLayout); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_MinimalURLPathIsHost(t *testing.T) {
	args := mustParse(t, "curl https://example.com")
	if len(args) != 1 {
		t.Fatalf("len = %d, want 1", len(args))
	}
	if args[0].URL.Path != "example.com" {
		t.Errorf("Path = %q, want example.com", args[0].URL.Path)
	}
	if args[0].URL.Scheme != "https" {
		t.Errorf("Scheme = %q, want https", args[0].URL.Scheme)
	}
}

func TestParse_MultilineMixedQuotes(t *testing.T) {
	input := heredoc.Doc(`
		curl 'http://query.sse.com.cn/commonQuery.do?jsonCallBack=jsonpCallback89469743&sqlId=COMMON_SSE_SJ_GPSJ_CJGK_MRGK_C&PRODUCT_CODE=01%2C02%2C03%2C11%2C17&type=inParams&SEARCH_DATE=2024-03-18&_=1710914422498' \
		  -H 'Accept: */*' -X 'TEST' \
		  -H 'Accept-Language: en-US,en;q=0.9,zh-CN;q=0.8,zh;q=0.7' \
		  -H 'Cache-Control: no-cache' \
		  -H 'Connection: keep-alive' \
		  -d 'data1:90' \
		  --data 'data2:90/i9fi0sdfsdfk\\jfhaoe' \
		  -H 'Cookie: gdp_user_id=gioenc-c2b256a9%2C5442%2C561b%2C9c02%2C71199e7e89g9; VISITED_MENU=%5B%228312%22%5D' \
		  -H 'Pragma: no-cache' \
		  -H 'Referer: http://www.sse.com.cn/' \
		  -H 'User-Agent: UA' \
		  -v
	`)

	args := mustParse(t, input)

	want := []Kind{
		KindURL, KindHeader, KindMethod, KindHeader, KindHeader, KindHeader,
		KindData, KindData, KindHeader, KindHeader, KindHeader, KindHeader, KindFlag,
	}
	if diff := cmp.Diff(want, kinds(args)); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}

	u := args[0].URL
	if u.Scheme != "http" || u.Host != "query.sse.com.cn" || u.Path != "/commonQuery.do" {
		t.Errorf("URL = %+v", u)
	}
	if !strings.HasPrefix(u.Query, "jsonCallBack=jsonpCallback89469743&") {
		t.Errorf("Query = %q", u.Query)
	}
	if args[2].Value != "TEST" {
		t.Errorf("method = %q, want TEST", args[2].Value)
	}
	if args[1].Key != "Accept" || args[1].Value != "*/*" {
		t.Errorf("header = %q: %q", args[1].Key, args[1].Value)
	}
	if args[7].Value != `data2:90/i9fi0sdfsdfk\jfhaoe` {
		t.Errorf("data = %q", args[7].Value)
	}
	if args[8].Key != "Cookie" || !strings.HasSuffix(args[8].Value, "VISITED_MENU=%5B%228312%22%5D") {
		t.Errorf("cookie header = %q: %q", args[8].Key, args[8].Value)
	}
}

func TestParse_DataForms(t *testing.T) {
	args := mustParse(t, `curl 'https://example.com/x' -XPOST --data-raw='{"a":1}' --data-urlencode=a=b --data-binary @file.bin -dname=John`)
	if len(args) != 6 {
		t.Fatalf("len = %d, want 6: %+v", len(args), args)
	}
	if args[1].Kind != KindMethod || args[1].Value != "POST" {
		t.Errorf("args[1] = %+v, want method POST", args[1])
	}

	wantIdents := []string{"--data-raw", "--data-urlencode", "--data-binary", "-d"}
	if diff := cmp.Diff(wantIdents, identifiers(args, KindData)); diff != "" {
		t.Errorf("data identifiers (-want +got):\n%s", diff)
	}

	wantValues := []string{`{"a":1}`, "a=b", "@file.bin", "name=John"}
	for i, a := range args[2:] {
		if a.Value != wantValues[i] {
			t.Errorf("data[%d] = %q, want %q", i, a.Value, wantValues[i])
		}
	}
}

func TestParse_FlagsLongAndShort(t *testing.T) {
	args := mustParse(t, `curl 'http://a' -k -L --insecure --retry-all-errors --max-time=5 -o out.txt -x http://proxy --cert cert.pem --key key.pem --cacert=ca.pem --output result.json`)

	want := []Arg{
		{Kind: KindURL, Value: "http://a", HasValue: true},
		{Kind: KindFlag, Identifier: "-k"},
		{Kind: KindFlag, Identifier: "-L"},
		{Kind: KindFlag, Identifier: "--insecure"},
		{Kind: KindFlag, Identifier: "--retry-all-errors"},
		{Kind: KindFlag, Identifier: "--max-time", Value: "5", HasValue: true},
		{Kind: KindFlag, Identifier: "-o", Value: "out.txt", HasValue: true},
		{Kind: KindFlag, Identifier: "-x", Value: "http://proxy", HasValue: true},
		{Kind: KindFlag, Identifier: "--cert", Value: "cert.pem", HasValue: true},
		{Kind: KindFlag, Identifier: "--key", Value: "key.pem", HasValue: true},
		{Kind: KindFlag, Identifier: "--cacert", Value: "ca.pem", HasValue: true},
		{Kind: KindFlag, Identifier: "--output", Value: "result.json", HasValue: true},
	}
	if diff := cmp.Diff(want, args, ignoreLayout); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NotCurl(t *testing.T) {
	tests := []string{
		`echo curl 'http://example.com'`,
		"",
		"   \n ",
		"CURL http://example.com",
		"/usr/bin/curl http://example.com",
	}
	for _, input := range tests {
		_, err := Parse(input)
		wantKind(t, err, NotCurl)
		if !strings.Contains(strings.ToLower(err.Error()), "does not start with curl") {
			t.Errorf("Parse(%q) error = %q, want it to mention the guard", input, err)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
	}{
		{"unterminated single", `curl 'http://a`, UnterminatedQuote},
		{"unterminated double", `curl http://a -d "x`, UnterminatedQuote},
		{"no url", `curl -X GET`, MissingURL},
		{"only curl", `curl`, MissingURL},
		{"header without value", `curl http://a -H`, MissingValue},
		{"method without value", `curl http://a --request`, MissingValue},
		{"data without value", `curl http://a -d`, MissingValue},
		{"flag without value", `curl http://a --max-time`, MissingValue},
		{"empty url option", `curl --url ''`, MissingValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := Parse(tt.input)
			wantKind(t, err, tt.kind)
			if args != nil {
				t.Errorf("partial result returned: %+v", args)
			}
		})
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	_, err := Parse(`curl http://a -H`)
	pe := wantKind(t, err, MissingValue)
	if pe.Position != 15 {
		t.Errorf("Position = %d, want 15", pe.Position)
	}
	if pe.Token != "-H" {
		t.Errorf("Token = %q, want -H", pe.Token)
	}
	if !strings.Contains(pe.Error(), "missing value for option -H") {
		t.Errorf("Error() = %q", pe.Error())
	}
	if !strings.HasPrefix(pe.Error(), "curl: parse error at position 15:") {
		t.Errorf("Error() = %q", pe.Error())
	}
}

func TestParse_MissingURLMessage(t *testing.T) {
	_, err := Parse("curl -v")
	pe := wantKind(t, err, MissingURL)
	if pe.Error() != "curl: missing URL" {
		t.Errorf("Error() = %q, want %q", pe.Error(), "curl: missing URL")
	}
}

func TestParse_URLAnywhere(t *testing.T) {
	args := mustParse(t, `curl -H 'A: b' -d x example.com/api -v`)
	want := []Kind{KindHeader, KindData, KindURL, KindFlag}
	if diff := cmp.Diff(want, kinds(args)); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}
	u := args[2].URL
	if u.Scheme != "" || u.Host != "example.com" || u.Path != "/api" {
		t.Errorf("URL = %+v", u)
	}
}

func TestParse_ValueLooksLikeURL(t *testing.T) {
	// -x consumes the proxy; the request URL is the later word.
	args := mustParse(t, `curl -x http://proxy:8080 https://example.com`)
	if args[0].Kind != KindFlag || args[0].Value != "http://proxy:8080" {
		t.Errorf("args[0] = %+v", args[0])
	}
	if args[1].Kind != KindURL || args[1].URL.Host != "example.com" {
		t.Errorf("args[1] = %+v", args[1])
	}
}

func TestParse_LaterURLsDropped(t *testing.T) {
	tests := []string{
		`curl http://a http://b`,
		`curl http://a --url http://b`,
		`curl --url=http://a -v http://b`,
		`curl http://a -- http://b`,
	}
	for _, input := range tests {
		args := mustParse(t, input)
		var urls []string
		for _, a := range args {
			if a.Kind == KindURL {
				urls = append(urls, a.Value)
			}
		}
		if diff := cmp.Diff([]string{"http://a"}, urls); diff != "" {
			t.Errorf("Parse(%q) URLs (-want +got):\n%s", input, diff)
		}
	}
}

func TestParse_URLOption(t *testing.T) {
	args := mustParse(t, `curl -v --url=https://example.com/a?b=c`)
	if len(args) != 2 {
		t.Fatalf("len = %d, want 2", len(args))
	}
	u := args[1]
	if u.Kind != KindURL || u.Identifier != "--url" {
		t.Fatalf("args[1] = %+v", u)
	}
	if u.URL.Path != "/a" || u.URL.Query != "b=c" {
		t.Errorf("URL = %+v", u.URL)
	}
}

func TestParse_EndOfOptions(t *testing.T) {
	args := mustParse(t, `curl -s -- -weird-host`)
	if len(args) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(args), args)
	}
	if args[1].Kind != KindURL || args[1].Value != "-weird-host" {
		t.Errorf("args[1] = %+v", args[1])
	}
}

func TestParse_QuotedDoubleDashIsPositional(t *testing.T) {
	args := mustParse(t, `curl http://a '--'`)
	if len(args) != 2 || args[1].Kind != KindFlag {
		t.Errorf("args = %+v", args)
	}
}

func TestParse_EmptyPositionalSkipped(t *testing.T) {
	args := mustParse(t, `curl '' http://a ""`)
	if len(args) != 1 || args[0].Kind != KindURL {
		t.Errorf("args = %+v", args)
	}
}

func TestParse_QuotingIsLexical(t *testing.T) {
	forms := []string{
		`curl http://a -H X-Key:v`,
		`curl http://a -H 'X-Key:v'`,
		`curl http://a -H "X-Key:v"`,
		`curl http://a -H X-'Key':"v"`,
	}
	first := mustParse(t, forms[0])
	for _, f := range forms[1:] {
		got := mustParse(t, f)
		if diff := cmp.Diff(first, got, cmpopts.IgnoreFields(Arg{}, "Offset")); diff != "" {
			t.Errorf("Parse(%q) differs (-want +got):\n%s", f, diff)
		}
	}
}

func TestParse_Offsets(t *testing.T) {
	args := mustParse(t, "curl \\\n  http://a -v")
	if args[0].Offset != 8 {
		t.Errorf("URL offset = %d, want 8", args[0].Offset)
	}
	if args[1].Offset != 17 {
		t.Errorf("flag offset = %d, want 17", args[1].Offset)
	}
}

func TestNewParser_Reusable(t *testing.T) {
	p := NewParser("curl http://a -v")
	args, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(args) != 2 {
		t.Errorf("len = %d, want 2", len(args))
	}

	initParser(p, "curl http://b")
	args, err = p.Parse()
	if err != nil {
		t.Fatalf("Parse error after reinit: %v", err)
	}
	if len(args) != 1 || args[0].Value != "http://b" {
		t.Errorf("args = %+v", args)
	}
}

func TestErrorKind_String(t *testing.T) {
	tests := map[ErrorKind]string{
		NotCurl:           "not-a-curl-command",
		UnterminatedQuote: "unterminated-quote",
		MissingURL:        "missing-URL",
		MissingValue:      "missing-value-for-option",
		ErrorKind(0):      "unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	input := `curl -sSL -X POST https://api.example.com/v1/items?limit=10 ` +
		`-H 'Content-Type: application/json' -H 'Authorization: Bearer abc' ` +
		`--data-raw '{"name":"widget","tags":["a","b"]}' --max-time 30 -o out.json`
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(input); err != nil {
			b.Fatal(err)
		}
	}
}
