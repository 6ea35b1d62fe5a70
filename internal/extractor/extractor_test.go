package extractor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/aleister1102/harextractor/internal/common/filemanager"
	"github.com/aleister1102/harextractor/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type extractRun struct {
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	summary *models.ExtractionSummary
	err     error
}

func runExtract(t *testing.T, opts Options, fsOps FileOperator, entries ...*models.HAREntry) extractRun {
	t.Helper()
	if fsOps == nil {
		fsOps = filemanager.NewFileManager(zerolog.Nop())
	}
	run := extractRun{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	ex := NewExtractor(opts, fsOps, run.stdout, zerolog.New(run.stderr).Level(zerolog.InfoLevel))
	run.summary, run.err = ex.Extract(context.Background(), newSliceSource(entries...))
	return run
}

// failingWriter rejects every write while delegating everything else.
type failingWriter struct {
	*filemanager.FileManager
	writes []string
}

func (f *failingWriter) WriteFile(path string, data []byte, opts filemanager.FileWriteOptions) error {
	f.writes = append(f.writes, path)
	return os.ErrPermission
}

// cancellingWriter cancels the run as soon as the first write starts.
type cancellingWriter struct {
	*filemanager.FileManager
	cancel context.CancelFunc
}

func (c *cancellingWriter) WriteFile(path string, data []byte, opts filemanager.FileWriteOptions) error {
	c.cancel()
	return c.FileManager.WriteFile(path, data, opts)
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, _ := filepath.Rel(root, path)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

func TestExtract_Flat(t *testing.T) {
	out := filepath.Join(t.TempDir(), "d")

	run := runExtract(t, Options{OutputDir: out}, nil, decodeEntries(t, testArchiveEntries)...)
	require.NoError(t, run.err)

	assert.Equal(t, []string{"dir", "index.html"}, listFiles(t, out))
	assertFileContent(t, filepath.Join(out, "index.html"), "test")
	assertFileContent(t, filepath.Join(out, "dir"), "test2\n")
	assert.Empty(t, run.stdout.String())
	assert.Empty(t, run.stderr.String())

	assert.Equal(t, 3, run.summary.Processed)
	assert.Equal(t, 2, run.summary.Written)
	assert.Equal(t, 1, run.summary.NoContent)
	assert.Equal(t, int64(10), run.summary.BytesWritten)
}

func TestExtract_FlatVerbose(t *testing.T) {
	out := filepath.Join(t.TempDir(), "d")

	run := runExtract(t, Options{OutputDir: out, Verbose: true}, nil, decodeEntries(t, testArchiveEntries)...)
	require.NoError(t, run.err)

	expected := "GET https://127.0.0.1/ -> 200 OK text/plain 4B\n" +
		"\t----> " + filepath.Join(out, "index.html") + "\n" +
		"GET https://127.0.0.1/dir/ -> 200 OK text/plain 8B\n" +
		"\t----> " + filepath.Join(out, "dir") + "\n" +
		"GET https://127.0.0.1/404 -> 404 Not Found text/plain 0B\n" +
		"\t----> <no content>\n"
	assert.Equal(t, expected, run.stdout.String())
	assert.Empty(t, run.stderr.String())
}

func TestExtract_Hierarchical(t *testing.T) {
	out := filepath.Join(t.TempDir(), "d")

	run := runExtract(t, Options{OutputDir: out, Hierarchical: true}, nil, decodeEntries(t, testArchiveEntries)...)
	require.NoError(t, run.err)

	assert.Equal(t, []string{"127.0.0.1/dir", "127.0.0.1/index.html"}, listFiles(t, out))
	assertFileContent(t, filepath.Join(out, "127.0.0.1", "index.html"), "test")
	assertFileContent(t, filepath.Join(out, "127.0.0.1", "dir"), "test2\n")
}

func TestExtract_ListOnly(t *testing.T) {
	run := runExtract(t, Options{}, nil, decodeEntries(t, testArchiveEntries)...)
	require.NoError(t, run.err)

	expected := "GET https://127.0.0.1/ -> 200 OK text/plain 4B\n" +
		"GET https://127.0.0.1/dir/ -> 200 OK text/plain 8B\n" +
		"GET https://127.0.0.1/404 -> 404 Not Found text/plain 0B\n"
	assert.Equal(t, expected, run.stdout.String())
	assert.Empty(t, run.stderr.String())
	assert.True(t, run.summary.ListOnly)
	assert.Equal(t, 0, run.summary.Written)
}

func TestExtract_ListOnlyInvalidEntries(t *testing.T) {
	run := runExtract(t, Options{Strict: true}, nil, decodeEntries(t, testInvalidArchiveEntries)...)
	require.NoError(t, run.err)

	expected := "<no method> <no url> -> 200 OK text/plain 4B\n" +
		"<no method> <no url> -> <no status> <no status text> <no mime type> <invalid size>\n" +
		"GET https://127.0.0.1/404 -> 404 Not Found text/plain 3B\n"
	assert.Equal(t, expected, run.stdout.String())
	assert.Empty(t, run.stderr.String())
}

func TestExtract_InvalidEntriesLenient(t *testing.T) {
	out := filepath.Join(t.TempDir(), "d")

	run := runExtract(t, Options{OutputDir: out, Verbose: true}, nil, decodeEntries(t, testInvalidArchiveEntries)...)
	require.NoError(t, run.err)

	expected := "<no method> <no url> -> 200 OK text/plain 4B\n" +
		"<no method> <no url> -> <no status> <no status text> <no mime type> <invalid size>\n" +
		"\t----> <no content>\n" +
		"GET https://127.0.0.1/404 -> 404 Not Found text/plain 3B\n" +
		"\t----> " + filepath.Join(out, "404") + "\n"
	assert.Equal(t, expected, run.stdout.String())
	assert.Contains(t, run.stderr.String(), models.ErrMissingURL.Error())
	assert.Equal(t, []string{"404"}, listFiles(t, out))
	assert.Equal(t, 1, run.summary.Failed)
	assert.True(t, run.summary.HasFailures())
}

func TestExtract_InvalidEntriesStrict(t *testing.T) {
	out := filepath.Join(t.TempDir(), "d")

	run := runExtract(t, Options{OutputDir: out, Verbose: true, Strict: true}, nil, decodeEntries(t, testInvalidArchiveEntries)...)
	require.Error(t, run.err)
	assert.ErrorIs(t, run.err, models.ErrMissingURL)

	var entryErr *models.EntryError
	require.True(t, errors.As(run.err, &entryErr))
	assert.Equal(t, 0, entryErr.Index)

	assert.Equal(t, "<no method> <no url> -> 200 OK text/plain 4B\n", run.stdout.String())
	assert.Empty(t, run.stderr.String())
	assert.DirExists(t, out)
	assert.Empty(t, listFiles(t, out))
}

func TestExtract_WriteFailureLenient(t *testing.T) {
	out := filepath.Join(t.TempDir(), "d")
	fsOps := &failingWriter{FileManager: filemanager.NewFileManager(zerolog.Nop())}

	run := runExtract(t, Options{OutputDir: out, Verbose: true}, fsOps, decodeEntries(t, testArchiveEntries)...)
	require.NoError(t, run.err)

	assert.Equal(t, []string{filepath.Join(out, "index.html"), filepath.Join(out, "dir")}, fsOps.writes)
	assert.Contains(t, run.stdout.String(), "\t----> "+filepath.Join(out, "dir")+"\n")
	assert.Contains(t, run.stderr.String(), "could not write")
	assert.Equal(t, 2, run.summary.Failed)
}

func TestExtract_WriteFailureStrict(t *testing.T) {
	out := filepath.Join(t.TempDir(), "d")
	fsOps := &failingWriter{FileManager: filemanager.NewFileManager(zerolog.Nop())}

	run := runExtract(t, Options{OutputDir: out, Strict: true}, fsOps, decodeEntries(t, testArchiveEntries)...)
	require.Error(t, run.err)

	var writeErr *models.WriteError
	require.True(t, errors.As(run.err, &writeErr))
	assert.Equal(t, filepath.Join(out, "index.html"), writeErr.Path)
	assert.ErrorIs(t, run.err, os.ErrPermission)
	assert.Len(t, fsOps.writes, 1)
}

func TestExtract_UnknownEncoding(t *testing.T) {
	gzipped := textEntry("https://h/z", "H4sIAAAA")
	encoding := "gzip"
	gzipped.Response.Content.Encoding = &encoding
	entries := []*models.HAREntry{gzipped, textEntry("https://h/ok", "fine")}

	out := filepath.Join(t.TempDir(), "lenient")
	run := runExtract(t, Options{OutputDir: out}, nil, entries...)
	require.NoError(t, run.err)
	assert.Contains(t, run.stderr.String(), `unknown content encoding: \"gzip\"`)
	assert.Equal(t, []string{"ok"}, listFiles(t, out))

	out = filepath.Join(t.TempDir(), "strict")
	run = runExtract(t, Options{OutputDir: out, Strict: true}, nil, entries...)
	var unknown *models.UnknownEncodingError
	require.True(t, errors.As(run.err, &unknown))
	assert.Empty(t, listFiles(t, out))
}

func TestExtract_FlatCollision(t *testing.T) {
	out := filepath.Join(t.TempDir(), "d")

	run := runExtract(t, Options{OutputDir: out}, nil,
		textEntry("https://a.example/x/page", "first"),
		textEntry("https://b.example/y/page?v=2", "second"),
		textEntry("https://c.example/page/", "third"),
	)
	require.NoError(t, run.err)

	assertFileContent(t, filepath.Join(out, "page"), "first")
	assertFileContent(t, filepath.Join(out, "page.1"), "second")
	assertFileContent(t, filepath.Join(out, "page.2"), "third")
}

func TestExtract_HierarchicalPrefixConflict(t *testing.T) {
	out := filepath.Join(t.TempDir(), "d")

	run := runExtract(t, Options{OutputDir: out, Hierarchical: true, Verbose: true}, nil,
		textEntry("http://h/dir", "one"),
		textEntry("http://h/dir", "two"),
		textEntry("http://h/dir", "three"),
		textEntry("http://h/dir/name", "child"),
	)
	require.NoError(t, run.err)
	assert.Contains(t, run.stderr.String(), "Converted file into directory")

	assert.Equal(t, []string{
		"h/dir/index.1.html",
		"h/dir/index.2.html",
		"h/dir/index.html",
		"h/dir/name",
	}, listFiles(t, out))
	assertFileContent(t, filepath.Join(out, "h", "dir", "index.html"), "one")
	assertFileContent(t, filepath.Join(out, "h", "dir", "index.1.html"), "two")
	assertFileContent(t, filepath.Join(out, "h", "dir", "index.2.html"), "three")
	assertFileContent(t, filepath.Join(out, "h", "dir", "name"), "child")
}

func TestExtract_HierarchicalIndexAfterDemotion(t *testing.T) {
	out := filepath.Join(t.TempDir(), "d")

	run := runExtract(t, Options{OutputDir: out, Hierarchical: true}, nil,
		textEntry("http://h/dir", "parent"),
		textEntry("http://h/dir/index.html", "explicit index"),
	)
	require.NoError(t, run.err)

	assertFileContent(t, filepath.Join(out, "h", "dir", "index.html"), "parent")
	assertFileContent(t, filepath.Join(out, "h", "dir", "index.1.html"), "explicit index")
}

func TestExtract_HierarchicalFileAfterDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "d")

	run := runExtract(t, Options{OutputDir: out, Hierarchical: true}, nil,
		textEntry("http://h/dir/name", "child"),
		textEntry("http://h/dir", "parent"),
	)
	require.NoError(t, run.err)

	assertFileContent(t, filepath.Join(out, "h", "dir", "name"), "child")
	assertFileContent(t, filepath.Join(out, "h", "dir.1"), "parent")
}

func TestExtract_HierarchicalKeepsNumberedDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "d")

	run := runExtract(t, Options{OutputDir: out, Hierarchical: true}, nil,
		textEntry("http://h/a", "a"),
		textEntry("http://h/a.1/x", "x"),
		textEntry("http://h/a/b", "b"),
	)
	require.NoError(t, run.err)

	assert.Equal(t, []string{"h/a.1/x", "h/a/b", "h/a/index.html"}, listFiles(t, out))
	assertFileContent(t, filepath.Join(out, "h", "a.1", "x"), "x")
}

func TestExtract_FreshRunsProduceSameNames(t *testing.T) {
	entries := decodeEntries(t, testArchiveEntries)
	entries = append(entries, textEntry("https://127.0.0.1/other/dir", "dup"))

	first := filepath.Join(t.TempDir(), "d")
	second := filepath.Join(t.TempDir(), "d")
	require.NoError(t, runExtract(t, Options{OutputDir: first}, nil, entries...).err)
	require.NoError(t, runExtract(t, Options{OutputDir: second}, nil, entries...).err)
	assert.Equal(t, listFiles(t, first), listFiles(t, second))

	// A re-run into the same directory only adds suffixed names.
	require.NoError(t, runExtract(t, Options{OutputDir: first}, nil, entries...).err)
	assert.Equal(t, []string{"dir", "dir.1", "dir.2", "dir.3", "index.1.html", "index.html"}, listFiles(t, first))
}

func TestExtract_SourceErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "d")
	src := newSliceSource(textEntry("https://h/a", "a"), nil, textEntry("https://h/b", "b"))
	src.errs[1] = &models.InvalidEntryError{Index: 1, Err: errors.New("bad json")}

	ex := NewExtractor(Options{OutputDir: out}, filemanager.NewFileManager(zerolog.Nop()), &bytes.Buffer{}, zerolog.Nop())
	summary, err := ex.Extract(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Written)
	assert.Equal(t, 1, summary.Failed)

	fatal := errors.New("stream broken")
	src = newSliceSource(textEntry("https://h/c", "c"), nil)
	src.errs[1] = fatal
	_, err = ex.Extract(context.Background(), src)
	assert.ErrorIs(t, err, fatal)
}

func TestExtract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ex := NewExtractor(Options{}, filemanager.NewFileManager(zerolog.Nop()), &bytes.Buffer{}, zerolog.Nop())
	_, err := ex.Extract(ctx, newSliceSource(textEntry("https://h/a", "a")))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtract_CancelledDuringWrite(t *testing.T) {
	out := filepath.Join(t.TempDir(), "d")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fsOps := &cancellingWriter{FileManager: filemanager.NewFileManager(zerolog.Nop()), cancel: cancel}

	ex := NewExtractor(Options{OutputDir: out}, fsOps, &bytes.Buffer{}, zerolog.Nop())
	summary, err := ex.Extract(ctx, newSliceSource(textEntry("https://h/a", "a"), textEntry("https://h/b", "b")))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 0, summary.Written)
	assert.Empty(t, listFiles(t, out))

	ex = NewExtractor(Options{OutputDir: out, Strict: true}, fsOps, &bytes.Buffer{}, zerolog.Nop())
	_, err = ex.Extract(context.Background(), newSliceSource(textEntry("https://h/a", "a")))
	assert.NoError(t, err)
	assertFileContent(t, filepath.Join(out, "a"), "a")
}

func TestExtract_OutputDirIsFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(out, []byte("x"), 0644))

	run := runExtract(t, Options{OutputDir: out}, nil, textEntry("https://h/a", "a"))
	var writeErr *models.WriteError
	require.True(t, errors.As(run.err, &writeErr))
	assert.Equal(t, 0, run.summary.Processed)
}
