package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/chzyer/readline"
	"github.com/pelletier/go-toml/v2"
	"github.com/shapestone/shape-curl/internal/config"
	"github.com/shapestone/shape-curl/pkg/curl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// setupConfig points the config directory at a fresh temporary directory.
func setupConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SHAPECURL_CONFIG_PATH", dir)
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	if os.Getenv("SHAPECURL_CONFIG_PATH") == "" {
		setupConfig(t)
	}

	cmd := NewRootCmd("test")
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestParse_JSON(t *testing.T) {
	out, _, err := run(t, "", "parse", "curl -X POST https://a.example -d a=1")
	require.NoError(t, err)

	var got []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []map[string]string{
		{"kind": "url", "raw": "https://a.example", "scheme": "https", "host": "a.example", "path": "a.example"},
		{"kind": "method", "identifier": "-X", "name": "POST"},
		{"kind": "data", "identifier": "-d", "value": "a=1"},
	}, got)
}

func TestParse_YAMLFromStdin(t *testing.T) {
	stdin := heredoc.Doc(`
		# two commands
		curl a.example

		curl b.example \
		  -v
	`)
	out, _, err := run(t, stdin, "parse", "-o", "yaml")
	require.NoError(t, err)

	dec := yaml.NewDecoder(strings.NewReader(out))
	var first, second []map[string]string
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))

	assert.Equal(t, "a.example", first[0]["raw"])
	require.Len(t, second, 2)
	assert.Equal(t, "flag", second[1]["kind"])
	assert.Equal(t, "-v", second[1]["identifier"])
}

func TestParse_TOML(t *testing.T) {
	out, _, err := run(t, "", "parse", "--output", "toml", "curl -H 'Accept: */*' https://a.example")
	require.NoError(t, err)

	var got struct {
		Commands []struct {
			Args []map[string]string `toml:"args"`
		} `toml:"commands"`
	}
	require.NoError(t, toml.Unmarshal([]byte(out), &got))
	require.Len(t, got.Commands, 1)
	require.Len(t, got.Commands[0].Args, 2)
	assert.Equal(t, "Accept", got.Commands[0].Args[0]["key"])
	assert.Equal(t, "*/*", got.Commands[0].Args[0]["value"])
	assert.Equal(t, "https://a.example", got.Commands[0].Args[1]["raw"])
}

func TestParse_Table(t *testing.T) {
	out, _, err := run(t, "", "parse", "-o", "table", "curl https://a.example -H 'Accept: */*' -k")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"KIND", "IDENTIFIER", "VALUE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"url", "https://a.example"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"header", "-H", "Accept:", "*/*"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"flag", "-k"}, strings.Fields(lines[3]))

	col := strings.Index(lines[0], "VALUE")
	assert.Equal(t, col, strings.Index(lines[1], "https://"))
	assert.Equal(t, col, strings.Index(lines[2], "Accept"))
	assert.Equal(t, strings.Index(lines[0], "IDENTIFIER"), strings.Index(lines[3], "-k"))
}

func TestParse_CurlOutput(t *testing.T) {
	out, _, err := run(t, "", "parse", "-o", "curl", "--multiline", "curl -sS https://a.example -d 'a b'")
	require.NoError(t, err)
	assert.Equal(t, "curl \\\n  -s \\\n  -S \\\n  https://a.example \\\n  -d 'a b'\n", out)
}

func TestParse_SplitArguments(t *testing.T) {
	out, _, err := run(t, "", "parse", "-o", "curl", "--", "curl", "-H", "A: b", "https://a.example")
	require.NoError(t, err)
	assert.Equal(t, "curl -H 'A: b' https://a.example\n", out)
}

func TestParse_File(t *testing.T) {
	dir := setupConfig(t)
	path := filepath.Join(dir, "requests.sh")
	require.NoError(t, os.WriteFile(path, []byte("curl a.example\ncurl -I b.example\n"), 0644))

	out, _, err := run(t, "", "parse", "--file", path, "-o", "curl")
	require.NoError(t, err)
	assert.Equal(t, "curl a.example\ncurl -I b.example\n", out)

	_, _, err = run(t, "", "parse", "--file", filepath.Join(dir, "missing.sh"))
	assert.ErrorContains(t, err, "failed to open input")
}

func TestParse_Request(t *testing.T) {
	out, _, err := run(t, "", "parse", "--request", "curl -u u:p https://a.example -d x=1 -m 1.5")
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "POST", got["method"])
	assert.Equal(t, "https://a.example", got["url"])
	assert.Equal(t, "HTTP/1.1", got["version"])
	assert.Equal(t, "x=1", got["body"])
	assert.Equal(t, "1.5s", got["timeout"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"key": "Content-Type", "value": "application/x-www-form-urlencoded"},
		map[string]interface{}{"key": "Authorization", "value": "Basic dTpw"},
	}, got["headers"])
}

func TestParse_RequestTable(t *testing.T) {
	out, _, err := run(t, "", "parse", "--request", "-o", "table", "curl -k example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "http://example.com")
	assert.Contains(t, out, "insecure")
}

func TestParse_RequestCurlOutput(t *testing.T) {
	_, _, err := run(t, "", "parse", "--request", "-o", "curl", "curl example.com")
	assert.ErrorContains(t, err, "not available")
}

func TestParse_Errors(t *testing.T) {
	_, _, err := run(t, "", "parse", "wget https://a.example")
	assert.ErrorIs(t, err, curl.ErrNotCurl)

	_, _, err = run(t, "curl a.example\ncurl -X\n", "parse")
	assert.ErrorIs(t, err, curl.ErrMissingValue)
	assert.ErrorContains(t, err, "line 2")

	_, _, err = run(t, "", "parse", "-o", "xml", "curl a.example")
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestRoot_ReadsStdin(t *testing.T) {
	out, _, err := run(t, "curl a.example\n")
	require.NoError(t, err)
	assert.Contains(t, out, `"raw": "a.example"`)
}

func TestValidate(t *testing.T) {
	out, _, err := run(t, "", "validate", "curl https://a.example")
	require.NoError(t, err)
	assert.Equal(t, "1 valid\n", out)

	_, errOut, err := run(t, "curl a.example\ncurl -d 'open\n", "validate")
	assert.ErrorContains(t, err, "1 of 2 commands invalid")
	assert.Contains(t, errOut, "unterminated")
}

func TestOptions(t *testing.T) {
	out, _, err := run(t, "", "options")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Equal(t, []string{"SHORT", "LONG", "KIND", "VALUE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"-X", "--request", "method", "yes"}, strings.Fields(findLine(lines, "--request")))
	assert.Equal(t, []string{"-", "--url", "url", "yes"}, strings.Fields(findLine(lines, "--url")))

	out, _, err = run(t, "", "options", "--kind", "header")
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n")[1:] {
		assert.Equal(t, "header", strings.Fields(line)[2], line)
	}

	_, _, err = run(t, "", "options", "--kind", "bogus")
	assert.ErrorContains(t, err, "no options")
}

func findLine(lines []string, word string) string {
	for _, line := range lines {
		for _, f := range strings.Fields(line) {
			if f == word {
				return line
			}
		}
	}
	return ""
}

func TestConfig_Show(t *testing.T) {
	setupConfig(t)
	t.Setenv("SHAPECURL_MULTILINE", "true")

	out, _, err := run(t, "", "config", "show", "-o", "yaml")
	require.NoError(t, err)

	var got config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "yaml", got.Output)
	assert.True(t, got.Multiline)
}

func TestConfig_Init(t *testing.T) {
	dir := setupConfig(t)

	out, _, err := run(t, "", "config", "init", "-o", "table")
	require.NoError(t, err)
	path := filepath.Join(dir, "config.yaml")
	assert.Equal(t, "Wrote "+path+"\n", out)
	assert.FileExists(t, path)

	out, _, err = run(t, "", "parse", "curl a.example")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "KIND"), out)
}

func TestConfig_File(t *testing.T) {
	dir := setupConfig(t)
	path := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: curl\n"), 0644))

	out, _, err := run(t, "", "--config", path, "parse", "curl a.example -v")
	require.NoError(t, err)
	assert.Equal(t, "curl a.example -v\n", out)
}

type step struct {
	line string
	err  error
}

type fakeReader struct {
	steps   []step
	prompts []string
}

func (f *fakeReader) Readline() (string, error) {
	if len(f.steps) == 0 {
		return "", io.EOF
	}
	s := f.steps[0]
	f.steps = f.steps[1:]
	return s.line, s.err
}

func (f *fakeReader) SetPrompt(prompt string) {
	f.prompts = append(f.prompts, prompt)
}

func TestShell(t *testing.T) {
	a := &app{cfg: &config.Config{Output: "curl"}}
	rl := &fakeReader{steps: []step{
		{line: "help"},
		{line: "curl https://a.example \\"},
		{line: "  -v"},
		{line: ""},
		{line: "curl -d 'open"},
		{line: "still'"},
		{line: "bogus"},
		{line: "exit"},
		{line: "curl never.example"},
	}}
	var out, errOut bytes.Buffer

	require.NoError(t, a.shell(rl, &out, &errOut))

	assert.Contains(t, out.String(), "curl https://a.example -v\n")
	assert.NotContains(t, out.String(), "never.example")
	assert.Contains(t, errOut.String(), "missing URL")
	assert.Contains(t, errOut.String(), "does not start with curl")
	assert.Equal(t, []string{
		continuationPrompt, shellPrompt,
		continuationPrompt, shellPrompt,
		shellPrompt,
	}, rl.prompts)
}

func TestShell_Interrupt(t *testing.T) {
	a := &app{cfg: &config.Config{Output: "json"}}
	rl := &fakeReader{steps: []step{
		{line: "curl 'half"},
		{line: "", err: readline.ErrInterrupt},
		{line: "curl a.example"},
		{line: "", err: readline.ErrInterrupt},
		{line: "curl b.example"},
	}}
	var out, errOut bytes.Buffer

	require.NoError(t, a.shell(rl, &out, &errOut))
	assert.Contains(t, out.String(), `"raw": "a.example"`)
	assert.NotContains(t, out.String(), "b.example")
	assert.Empty(t, errOut.String())
}

func TestShell_ReadError(t *testing.T) {
	a := &app{cfg: &config.Config{Output: "json"}}
	boom := errors.New("boom")
	rl := &fakeReader{steps: []step{{err: boom}}}

	err := a.shell(rl, io.Discard, io.Discard)
	assert.ErrorIs(t, err, boom)
}
