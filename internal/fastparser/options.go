package fastparser

import "sort"

// Kind is the category of a classified argument.
type Kind int

const (
	KindURL Kind = iota
	KindMethod
	KindHeader
	KindData
	KindFlag
)

func (k Kind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindMethod:
		return "method"
	case KindHeader:
		return "header"
	case KindData:
		return "data"
	default:
		return "flag"
	}
}

// Arity says whether an option takes a value.
type Arity int

const (
	ArityNone  Arity = iota // boolean switch
	ArityValue              // takes exactly one value
)

// Option describes one curl option. Short and Long are full identifiers with
// their dashes ("-d", "--data"); either may be empty.
type Option struct {
	Short string
	Long  string
	Kind  Kind
	Arity Arity
}

// options lists the curl options this parser knows, after curl's
// tool_getparam.c long/short pairs. Anything missing here still parses as a
// generic flag; add a row to give it an arity or category.
var options = []Option{
	// Request line and body.
	{"-X", "--request", KindMethod, ArityValue},
	{"-H", "--header", KindHeader, ArityValue},
	{"-d", "--data", KindData, ArityValue},
	{"", "--data-raw", KindData, ArityValue},
	{"", "--data-urlencode", KindData, ArityValue},
	{"", "--data-binary", KindData, ArityValue},
	{"", "--url", KindURL, ArityValue},

	// Other body sources.
	{"", "--data-ascii", KindFlag, ArityValue},
	{"", "--json", KindFlag, ArityValue},
	{"-F", "--form", KindFlag, ArityValue},
	{"", "--form-string", KindFlag, ArityValue},
	{"-T", "--upload-file", KindFlag, ArityValue},
	{"", "--url-query", KindFlag, ArityValue},
	{"-G", "--get", KindFlag, ArityNone},
	{"-I", "--head", KindFlag, ArityNone},
	{"", "--request-target", KindFlag, ArityValue},

	// Convenience headers and auth.
	{"-A", "--user-agent", KindFlag, ArityValue},
	{"-e", "--referer", KindFlag, ArityValue},
	{"-b", "--cookie", KindFlag, ArityValue},
	{"-c", "--cookie-jar", KindFlag, ArityValue},
	{"-j", "--junk-session-cookies", KindFlag, ArityNone},
	{"-u", "--user", KindFlag, ArityValue},
	{"", "--oauth2-bearer", KindFlag, ArityValue},
	{"", "--aws-sigv4", KindFlag, ArityValue},
	{"", "--basic", KindFlag, ArityNone},
	{"", "--digest", KindFlag, ArityNone},
	{"", "--ntlm", KindFlag, ArityNone},
	{"", "--negotiate", KindFlag, ArityNone},
	{"", "--anyauth", KindFlag, ArityNone},
	{"", "--proxy-header", KindFlag, ArityValue},
	{"-n", "--netrc", KindFlag, ArityNone},
	{"", "--netrc-optional", KindFlag, ArityNone},
	{"", "--netrc-file", KindFlag, ArityValue},
	{"", "--login-options", KindFlag, ArityValue},

	// TLS.
	{"-k", "--insecure", KindFlag, ArityNone},
	{"-E", "--cert", KindFlag, ArityValue},
	{"", "--cert-type", KindFlag, ArityValue},
	{"", "--key", KindFlag, ArityValue},
	{"", "--key-type", KindFlag, ArityValue},
	{"", "--pass", KindFlag, ArityValue},
	{"", "--cacert", KindFlag, ArityValue},
	{"", "--capath", KindFlag, ArityValue},
	{"", "--crlfile", KindFlag, ArityValue},
	{"", "--pinnedpubkey", KindFlag, ArityValue},
	{"", "--ciphers", KindFlag, ArityValue},
	{"", "--tls13-ciphers", KindFlag, ArityValue},
	{"", "--tls-max", KindFlag, ArityValue},
	{"", "--cert-status", KindFlag, ArityNone},
	{"", "--ssl", KindFlag, ArityNone},
	{"", "--ssl-reqd", KindFlag, ArityNone},
	{"", "--ssl-no-revoke", KindFlag, ArityNone},
	{"", "--false-start", KindFlag, ArityNone},
	{"-1", "--tlsv1", KindFlag, ArityNone},
	{"", "--tlsv1.0", KindFlag, ArityNone},
	{"", "--tlsv1.1", KindFlag, ArityNone},
	{"", "--tlsv1.2", KindFlag, ArityNone},
	{"", "--tlsv1.3", KindFlag, ArityNone},
	{"-2", "--sslv2", KindFlag, ArityNone},
	{"-3", "--sslv3", KindFlag, ArityNone},

	// Protocol versions.
	{"-0", "--http1.0", KindFlag, ArityNone},
	{"", "--http0.9", KindFlag, ArityNone},
	{"", "--http1.1", KindFlag, ArityNone},
	{"", "--http2", KindFlag, ArityNone},
	{"", "--http2-prior-knowledge", KindFlag, ArityNone},
	{"", "--http3", KindFlag, ArityNone},
	{"", "--http3-only", KindFlag, ArityNone},
	{"", "--proto", KindFlag, ArityValue},
	{"", "--proto-default", KindFlag, ArityValue},
	{"", "--proto-redir", KindFlag, ArityValue},

	// Connection.
	{"-x", "--proxy", KindFlag, ArityValue},
	{"-U", "--proxy-user", KindFlag, ArityValue},
	{"", "--preproxy", KindFlag, ArityValue},
	{"", "--proxy1.0", KindFlag, ArityValue},
	{"", "--proxy-insecure", KindFlag, ArityNone},
	{"", "--proxy-basic", KindFlag, ArityNone},
	{"", "--proxy-digest", KindFlag, ArityNone},
	{"", "--proxy-ntlm", KindFlag, ArityNone},
	{"", "--proxy-negotiate", KindFlag, ArityNone},
	{"", "--proxy-anyauth", KindFlag, ArityNone},
	{"-p", "--proxytunnel", KindFlag, ArityNone},
	{"", "--noproxy", KindFlag, ArityValue},
	{"", "--socks5", KindFlag, ArityValue},
	{"", "--socks5-hostname", KindFlag, ArityValue},
	{"", "--resolve", KindFlag, ArityValue},
	{"", "--connect-to", KindFlag, ArityValue},
	{"", "--dns-servers", KindFlag, ArityValue},
	{"", "--doh-url", KindFlag, ArityValue},
	{"", "--interface", KindFlag, ArityValue},
	{"", "--local-port", KindFlag, ArityValue},
	{"", "--unix-socket", KindFlag, ArityValue},
	{"", "--abstract-unix-socket", KindFlag, ArityValue},
	{"-4", "--ipv4", KindFlag, ArityNone},
	{"-6", "--ipv6", KindFlag, ArityNone},
	{"", "--compressed", KindFlag, ArityNone},
	{"", "--compressed-ssh", KindFlag, ArityNone},
	{"", "--tr-encoding", KindFlag, ArityNone},
	{"", "--no-keepalive", KindFlag, ArityNone},
	{"", "--keepalive-time", KindFlag, ArityValue},
	{"", "--tcp-nodelay", KindFlag, ArityNone},
	{"", "--tcp-fastopen", KindFlag, ArityNone},
	{"", "--path-as-is", KindFlag, ArityNone},
	{"", "--raw", KindFlag, ArityNone},
	{"", "--haproxy-protocol", KindFlag, ArityNone},
	{"", "--happy-eyeballs-timeout-ms", KindFlag, ArityValue},
	{"", "--limit-rate", KindFlag, ArityValue},
	{"-Y", "--speed-limit", KindFlag, ArityValue},
	{"-y", "--speed-time", KindFlag, ArityValue},

	// Timeouts and retries.
	{"-m", "--max-time", KindFlag, ArityValue},
	{"", "--connect-timeout", KindFlag, ArityValue},
	{"", "--expect100-timeout", KindFlag, ArityValue},
	{"", "--retry", KindFlag, ArityValue},
	{"", "--retry-delay", KindFlag, ArityValue},
	{"", "--retry-max-time", KindFlag, ArityValue},
	{"", "--retry-all-errors", KindFlag, ArityNone},
	{"", "--retry-connrefused", KindFlag, ArityNone},

	// Redirects.
	{"-L", "--location", KindFlag, ArityNone},
	{"", "--location-trusted", KindFlag, ArityNone},
	{"", "--max-redirs", KindFlag, ArityValue},
	{"", "--post301", KindFlag, ArityNone},
	{"", "--post302", KindFlag, ArityNone},
	{"", "--post303", KindFlag, ArityNone},

	// Output.
	{"-o", "--output", KindFlag, ArityValue},
	{"", "--output-dir", KindFlag, ArityValue},
	{"", "--create-dirs", KindFlag, ArityNone},
	{"-O", "--remote-name", KindFlag, ArityNone},
	{"", "--remote-name-all", KindFlag, ArityNone},
	{"-J", "--remote-header-name", KindFlag, ArityNone},
	{"-R", "--remote-time", KindFlag, ArityNone},
	{"", "--no-clobber", KindFlag, ArityNone},
	{"", "--remove-on-error", KindFlag, ArityNone},
	{"-D", "--dump-header", KindFlag, ArityValue},
	{"-w", "--write-out", KindFlag, ArityValue},
	{"-r", "--range", KindFlag, ArityValue},
	{"-C", "--continue-at", KindFlag, ArityValue},
	{"-z", "--time-cond", KindFlag, ArityValue},
	{"", "--max-filesize", KindFlag, ArityValue},
	{"", "--etag-save", KindFlag, ArityValue},
	{"", "--etag-compare", KindFlag, ArityValue},
	{"-i", "--include", KindFlag, ArityNone},
	{"", "--ignore-content-length", KindFlag, ArityNone},
	{"", "--suppress-connect-headers", KindFlag, ArityNone},
	{"", "--xattr", KindFlag, ArityNone},

	// Verbosity and progress.
	{"-v", "--verbose", KindFlag, ArityNone},
	{"-s", "--silent", KindFlag, ArityNone},
	{"-S", "--show-error", KindFlag, ArityNone},
	{"-f", "--fail", KindFlag, ArityNone},
	{"", "--fail-with-body", KindFlag, ArityNone},
	{"", "--fail-early", KindFlag, ArityNone},
	{"-N", "--no-buffer", KindFlag, ArityNone},
	{"-#", "--progress-bar", KindFlag, ArityNone},
	{"", "--no-progress-meter", KindFlag, ArityNone},
	{"", "--styled-output", KindFlag, ArityNone},
	{"", "--stderr", KindFlag, ArityValue},
	{"", "--trace", KindFlag, ArityValue},
	{"", "--trace-ascii", KindFlag, ArityValue},
	{"", "--trace-time", KindFlag, ArityNone},

	// Misc.
	{"-g", "--globoff", KindFlag, ArityNone},
	{"-K", "--config", KindFlag, ArityValue},
	{"-q", "--disable", KindFlag, ArityNone},
	{"-Z", "--parallel", KindFlag, ArityNone},
	{"", "--parallel-immediate", KindFlag, ArityNone},
	{"", "--parallel-max", KindFlag, ArityValue},
	{"-:", "--next", KindFlag, ArityNone},
	{"-a", "--append", KindFlag, ArityNone},
	{"-B", "--use-ascii", KindFlag, ArityNone},
	{"-l", "--list-only", KindFlag, ArityNone},
	{"-P", "--ftp-port", KindFlag, ArityValue},
	{"-Q", "--quote", KindFlag, ArityValue},
	{"-t", "--telnet-option", KindFlag, ArityValue},
	{"", "--mail-from", KindFlag, ArityValue},
	{"", "--mail-rcpt", KindFlag, ArityValue},
	{"", "--service-name", KindFlag, ArityValue},
	{"", "--hsts", KindFlag, ArityValue},
	{"", "--alt-svc", KindFlag, ArityValue},
	{"-M", "--manual", KindFlag, ArityNone},
	{"-h", "--help", KindFlag, ArityNone},
	{"-V", "--version", KindFlag, ArityNone},
}

// table maps every identifier, short and long, to its descriptor.
var table = buildTable(options)

func buildTable(opts []Option) map[string]Option {
	m := make(map[string]Option, len(opts)*2)
	for _, o := range opts {
		if o.Short != "" {
			m[o.Short] = o
		}
		if o.Long != "" {
			m[o.Long] = o
		}
	}
	return m
}

// Lookup returns the descriptor for an identifier such as "-d" or "--data-raw".
func Lookup(identifier string) (Option, bool) {
	o, ok := table[identifier]
	return o, ok
}

// Options returns a copy of the option table sorted by long name (short name
// for options without one).
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	sort.Slice(out, func(i, j int) bool {
		return sortKey(out[i]) < sortKey(out[j])
	})
	return out
}

func sortKey(o Option) string {
	if o.Long != "" {
		return o.Long[2:]
	}
	return o.Short[1:]
}
