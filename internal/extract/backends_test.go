// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"code.sajari.com/docconv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-ingest/internal/httputil"
	"github.com/pdiddy/doc-ingest/internal/resolve"
	"github.com/pdiddy/doc-ingest/internal/runner"
	"github.com/pdiddy/doc-ingest/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 0
}

// fakeExecutor answers LookPath from a set of installed tools and records
// piped invocations.
type fakeExecutor struct {
	installed map[string]bool
	output    string
	err       error
	gotName   string
	gotArgs   []string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.installed[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func (f *fakeExecutor) RunSilent(context.Context, string, ...string) error { return nil }

func (f *fakeExecutor) RunPiped(_ context.Context, name string, args []string, _ io.Reader, stdout io.Writer) error {
	f.gotName = name
	f.gotArgs = args
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(stdout, f.output)
	return err
}

func TestTesseract(t *testing.T) {
	tests := []struct {
		name     string
		lang     string
		wantArgs []string
	}{
		{"default language", "", []string{"scan.png", "stdout", "-l", "eng"}},
		{"configured language", "deu", []string{"scan.png", "stdout", "-l", "deu"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{installed: map[string]bool{"tesseract": true}, output: "recognized words"}
			got, err := NewTesseract(exec, tt.lang).Extract(context.Background(), "scan.png")
			require.NoError(t, err)
			assert.Equal(t, "recognized words", string(got))
			assert.Equal(t, "/usr/bin/tesseract", exec.gotName)
			assert.Equal(t, tt.wantArgs, exec.gotArgs)
		})
	}
}

func TestTesseract_NotInstalled(t *testing.T) {
	exec := &fakeExecutor{}
	_, err := NewTesseract(exec, "").Extract(context.Background(), "scan.png")
	require.ErrorIs(t, err, runner.ErrToolNotFound)
	assert.True(t, missingOCR(err), "error should mention tesseract")
	assert.Empty(t, exec.gotName, "tool must not run when missing")
}

func TestPS2ASCII_Failure(t *testing.T) {
	exec := &fakeExecutor{installed: map[string]bool{"ps2ascii": true}, err: errors.New("exit status 1")}
	_, err := NewPS2ASCII(exec).Extract(context.Background(), "doc.ps")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ps2ascii doc.ps")
	assert.Equal(t, []string{"doc.ps"}, exec.gotArgs)
}

func TestDocconv(t *testing.T) {
	tests := []struct {
		name    string
		res     *docconv.Response
		err     error
		want    string
		wantErr string
	}{
		{"body", &docconv.Response{Body: "Report body"}, nil, "Report body", ""},
		{"conversion error", nil, errors.New("unsupported"), "", "unsupported"},
		{"response error", &docconv.Response{Error: "pdftotext missing"}, nil, "", "pdftotext missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Docconv{convert: func(string) (*docconv.Response, error) { return tt.res, tt.err }}
			got, err := d.Extract(context.Background(), "report.docx")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestHTML(t *testing.T) {
	page := `<html><head><title>Q3 &amp; Q4</title><style>p{color:red}</style></head>
<body><nav><a href="/">Home</a></nav><h2>Results</h2><p>Revenue grew.</p>
<script>track()</script></body></html>`
	path := writeFile(t, t.TempDir(), "report.html", []byte(page))

	got, err := HTML{}.Extract(context.Background(), path)
	require.NoError(t, err)

	out := string(got)
	assert.True(t, strings.HasPrefix(out, "<h1>Q3 &amp; Q4</h1>\n"), out)
	assert.Contains(t, out, "<h2>Results</h2>")
	assert.Contains(t, out, "<p>Revenue grew.</p>")
	assert.NotContains(t, out, "track()")
	assert.NotContains(t, out, "Home")
	assert.NotContains(t, out, "color:red")
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "simple",
			raw: "From: a@example.com\r\nSubject: Status\r\n\r\n" +
				"All systems nominal.\r\n",
			want: "Status\n\nAll systems nominal.",
		},
		{
			name: "base64 body and encoded subject",
			raw: "Subject: =?UTF-8?B?UXVhcnRlcmx5IHLDqXBvcnQ=?=\r\n" +
				"Content-Type: text/plain; charset=utf-8\r\n" +
				"Content-Transfer-Encoding: base64\r\n\r\n" +
				"SGVsbG8gZnJvbSBiYXNlNjQu\r\n",
			want: "Quarterly réport\n\nHello from base64.",
		},
		{
			name: "multipart prefers plain",
			raw: "Subject: Mixed\r\n" +
				"Content-Type: multipart/alternative; boundary=XX\r\n\r\n" +
				"--XX\r\nContent-Type: text/html\r\n\r\n<p>html part</p>\r\n" +
				"--XX\r\nContent-Type: text/plain\r\n\r\nplain part\r\n" +
				"--XX--\r\n",
			want: "Mixed\n\nplain part",
		},
		{
			name: "multipart html only",
			raw: "Content-Type: multipart/mixed; boundary=XX\r\n\r\n" +
				"--XX\r\nContent-Type: application/pdf\r\n\r\n%PDF-1.4\r\n" +
				"--XX\r\nContent-Type: text/html\r\n\r\n<p>only html</p>\r\n" +
				"--XX--\r\n",
			want: "<p>only html</p>",
		},
		{
			name: "media type compared case-insensitively",
			raw: "Content-Type: multipart/alternative; boundary=XX\r\n\r\n" +
				"--XX\r\nContent-Type: Text/HTML\r\n\r\n<p>html part</p>\r\n" +
				"--XX\r\nContent-Type: text/plain\r\n\r\nplain part\r\n" +
				"--XX--\r\n",
			want: "plain part",
		},
		{
			name: "latin-1 8bit body",
			raw: "Subject: =?ISO-8859-1?Q?Caf=E9?=\r\n" +
				"Content-Type: text/plain; charset=ISO-8859-1\r\n" +
				"Content-Transfer-Encoding: 8bit\r\n\r\n" +
				"Men\xfa del d\xeda\r\n",
			want: "Café\n\nMenú del día",
		},
		{
			name: "latin-1 quoted-printable body",
			raw: "Content-Type: text/plain; charset=iso-8859-1\r\n" +
				"Content-Transfer-Encoding: quoted-printable\r\n\r\n" +
				"Men=FA del d=EDa\r\n",
			want: "Menú del día",
		},
		{
			name: "undeclared charset is sniffed",
			raw:  "Subject: Legacy\r\n\r\nna\xefve\r\n",
			want: "Legacy\n\nnaïve",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "msg.eml", []byte(tt.raw))
			got, err := Email{}.Extract(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

// fakeRuntime stands in for docker/podman.
type fakeRuntime struct {
	missingImage bool
	gotImage     string
	gotArgs      []string
	output       string
}

func (f *fakeRuntime) Name() string                   { return "fake" }
func (f *fakeRuntime) Available(context.Context) bool { return true }

func (f *fakeRuntime) ImageExists(_ context.Context, image string) error {
	if f.missingImage {
		return errors.New("no such image: " + image)
	}
	return nil
}

func (f *fakeRuntime) Run(_ context.Context, image string, args []string, stdin io.Reader, stdout io.Writer) error {
	f.gotImage = image
	f.gotArgs = args
	if _, err := io.Copy(io.Discard, stdin); err != nil {
		return err
	}
	_, err := io.WriteString(stdout, f.output)
	return err
}

func TestMarkitdown(t *testing.T) {
	rt := &fakeRuntime{output: "| a | b |\n|---|---|\n| 1 | 2 |\n"}
	m, err := NewMarkitdown(context.Background(), rt, "")
	require.NoError(t, err)
	assert.Equal(t, "markitdown", m.Name())

	path := writeFile(t, t.TempDir(), "sheet.xlsx", []byte("PK fake workbook"))
	got, err := m.Extract(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, rt.output, string(got))
	assert.Equal(t, DefaultMarkitdownImage, rt.gotImage)
	assert.Equal(t, []string{"-x", "xlsx"}, rt.gotArgs)
}

func TestMarkitdown_EmptyOutput(t *testing.T) {
	rt := &fakeRuntime{}
	m, err := NewMarkitdown(context.Background(), rt, "markitdown:test")
	require.NoError(t, err)

	path := writeFile(t, t.TempDir(), "talk.mp3", []byte("ID3"))
	_, err = m.Extract(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty output")
}

func TestMarkitdown_MissingImage(t *testing.T) {
	_, err := NewMarkitdown(context.Background(), &fakeRuntime{missingImage: true}, "markitdown:latest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available in fake")
}

func TestTika(t *testing.T) {
	var gotMethod, gotPath, gotAccept, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		_, _ = io.WriteString(w, "Parsed by Tika.\n")
	}))
	defer ts.Close()

	path := writeFile(t, t.TempDir(), "book.epub", []byte("epub bytes"))
	got, err := NewTika(ts.URL+"/", 0, 1).Extract(quietCtx(), path)

	require.NoError(t, err)
	assert.Equal(t, "Parsed by Tika.\n", string(got))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/tika", gotPath)
	assert.True(t, strings.HasPrefix(gotAccept, "text/plain"))
	assert.Equal(t, "epub bytes", gotBody)
}

func TestTika_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unprocessable", http.StatusUnprocessableEntity)
	}))
	defer ts.Close()

	path := writeFile(t, t.TempDir(), "broken.doc", []byte("junk"))
	_, err := NewTika(ts.URL, 0, 1).Extract(quietCtx(), path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 422")
	assert.Contains(t, err.Error(), "unprocessable")
}

func TestNewDefault(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.ExtractConfig
		path string
		want string
	}{
		{"text", types.ExtractConfig{}, "a.txt", "plain"},
		{"html", types.ExtractConfig{}, "a.html", "docconv,html"},
		{"pdf without services", types.ExtractConfig{}, "a.pdf", "docconv,pdf"},
		{"pdf with tika", types.ExtractConfig{TikaURL: "http://localhost:9998"}, "a.pdf", "docconv,pdf,tika"},
		{"office", types.ExtractConfig{}, "a.docx", "docconv"},
		{"image", types.ExtractConfig{}, "a.png", "tesseract"},
		{"image with tika", types.ExtractConfig{TikaURL: "http://localhost:9998"}, "a.jpeg", "tesseract,tika"},
		{"postscript", types.ExtractConfig{}, "a.ps", "ps2ascii"},
		{"email", types.ExtractConfig{}, "a.eml", "email"},
		{"workbook", types.ExtractConfig{}, "a.xlsx", "xlsx"},
		{"workbook with tika", types.ExtractConfig{TikaURL: "http://localhost:9998"}, "a.xlsx", "xlsx,tika"},
		{"ebook", types.ExtractConfig{}, "a.epub", "epub"},
		{"legacy spreadsheet without services", types.ExtractConfig{}, "a.xls", ""},
		{"audio with tika", types.ExtractConfig{TikaURL: "http://localhost:9998"}, "a.mp3", "tika"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewDefault(quietCtx(), tt.cfg, &fakeExecutor{})
			assert.Equal(t, tt.want, r.Chain(tt.path).Name())
		})
	}
}

func TestNewDefault_CoversSupportedExtensions(t *testing.T) {
	r := NewDefault(quietCtx(), types.ExtractConfig{TikaURL: "http://localhost:9998"}, &fakeExecutor{})
	for _, ext := range resolve.SupportedExtensions() {
		assert.NotEmpty(t, r.Chain("file"+ext), ext)
	}
}
