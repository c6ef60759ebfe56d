package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/poiesic/moodshelf/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"MOODSHELF_CONFIG", "MOODSHELF_USER", "HF_TOKEN", "MOODSHELF_AI_TOKEN", "MOODSHELF_DB_IN_MEMORY"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

type harness struct {
	t   *testing.T
	db  string
	out bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	isolateEnv(t)
	return &harness{t: t, db: filepath.Join(t.TempDir(), "db")}
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	full := append([]string{"moodshelf", "--db", h.db, "--log-level", "error"}, args...)
	return newApp(&h.out).Run(full)
}

func (h *harness) decode(v any) {
	h.t.Helper()
	require.NoError(h.t, json.Unmarshal(h.out.Bytes(), v))
}

func TestAppFlags(t *testing.T) {
	app := newApp(&bytes.Buffer{})

	t.Run("user flag reads MOODSHELF_USER", func(t *testing.T) {
		var userFlag *cli.StringFlag
		for _, flag := range app.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "user" {
				userFlag = f
				break
			}
		}
		require.NotNil(t, userFlag)
		assert.Equal(t, []string{"MOODSHELF_USER"}, userFlag.EnvVars)
	})

	t.Run("search mode defaults to fuzzy", func(t *testing.T) {
		var cmd *cli.Command
		for _, c := range app.Commands {
			if c.Name == "search" {
				cmd = c
			}
		}
		require.NotNil(t, cmd)
		var modeFlag *cli.StringFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "mode" {
				modeFlag = f
			}
		}
		require.NotNil(t, modeFlag)
		assert.Equal(t, "fuzzy", modeFlag.Value)
	})
}

func TestInvalidLogLevel(t *testing.T) {
	h := newHarness(t)
	err := newApp(&h.out).Run([]string{"moodshelf", "--db", h.db, "--log-level", "loud", "book", "list"})
	assert.Error(t, err)
}

func TestBookAdd_RequiresTitleAndAuthor(t *testing.T) {
	h := newHarness(t)
	err := h.run("book", "add", "--title", "어린 왕자")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "author")
}

func TestKeywordWorkflow(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("book", "add", "--title", "어린 왕자", "--author", "생텍쥐페리", "--isbn", "9788932917245"))
	var book core.Book
	h.decode(&book)
	assert.Equal(t, "9788932917245", book.ID)

	require.NoError(t, h.run("--user", "alice", "keyword", "add", book.ID, "따뜻한"))
	var added struct {
		Outcome string `json:"outcome"`
		Existed bool   `json:"existed"`
	}
	h.decode(&added)
	assert.Equal(t, "created", added.Outcome)
	assert.False(t, added.Existed)

	err := h.run("--user", "alice", "vote", book.ID, "따뜻한")
	assert.ErrorIs(t, err, core.ErrSelfVoteForbidden)

	err = h.run("vote", book.ID, "따뜻한")
	assert.ErrorIs(t, err, core.ErrUnauthenticated)

	require.NoError(t, h.run("--user", "bob", "vote", "--type", "up", book.ID, "따뜻한"))
	var voted struct {
		Outcome string              `json:"outcome"`
		Keyword *core.KeywordRecord `json:"keyword"`
	}
	h.decode(&voted)
	assert.Equal(t, "recorded", voted.Outcome)
	assert.Equal(t, 2, voted.Keyword.Score)

	require.NoError(t, h.run("--user", "bob", "my-votes", book.ID))
	var mine struct {
		Votes []*core.VoteRecord `json:"votes"`
	}
	h.decode(&mine)
	require.Len(t, mine.Votes, 1)

	require.NoError(t, h.run("search", "#따뜻한"))
	var results []*core.SearchResult
	h.decode(&results)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Score)

	require.NoError(t, h.run("search", "--name", "어린왕자"))
	results = nil
	h.decode(&results)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].Score)

	require.NoError(t, h.run("book", "show", book.ID))
	require.NoError(t, h.run("book", "list", "--sort", "views"))
	var listing []*core.BookStats
	h.decode(&listing)
	require.Len(t, listing, 1)
	assert.Equal(t, 1, listing[0].Book.Views)
	assert.Equal(t, 1, listing[0].KeywordCount)

	require.NoError(t, h.run("book", "delete", book.ID))
	err = h.run("book", "show", book.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestClusterSaveAndShow(t *testing.T) {
	h := newHarness(t)
	file := filepath.Join(t.TempDir(), "groups.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"representative":"따뜻한","group":["따뜻한","포근한"]}]`), 0o600))

	require.NoError(t, h.run("cluster", "save", file))
	require.NoError(t, h.run("cluster", "show"))

	var groups []*core.ClusterGroup
	h.decode(&groups)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"따뜻한", "포근한"}, groups[0].Members)
}

func TestClusterRun_WithoutProvider(t *testing.T) {
	h := newHarness(t)
	err := h.run("cluster", "run", "따뜻한", "포근한")
	assert.ErrorIs(t, err, core.ErrProviderUnavailable)
}

func TestMetricsTextfile(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "moodshelf.prom")

	require.NoError(t, h.run("book", "add", "--title", "데미안", "--author", "헤르만 헤세", "--isbn", "b1"))
	require.NoError(t, h.run("--metrics-textfile", path, "keyword", "add", "b1", "성장"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `moodshelf_keywords_total{outcome="created"} 1`)
}
