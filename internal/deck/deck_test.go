package deck

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapdeck/internal/dom"
)

const sampleDeck = `
title = "Talk"
background = "#000000"

[[sections]]
id = "intro"
title = "Intro"
body = "hello"
color = "63"

[[sections]]
title = "Untitled"
transparent = true

[[sections]]
id = "intro"
title = "Duplicate id"
`

func TestParse(t *testing.T) {
	d, err := Parse([]byte(sampleDeck))
	require.NoError(t, err)

	assert.Equal(t, "Talk", d.Title)
	require.Len(t, d.Sections, 3)
	assert.Equal(t, "intro", d.Sections[0].ID)
	assert.Equal(t, "section-2", d.Sections[1].ID)
	assert.True(t, d.Sections[1].Transparent)
	assert.Equal(t, "section-3", d.Sections[2].ID, "duplicate ids are replaced")
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`title = "empty"`))
	assert.ErrorIs(t, err, ErrNoSections)

	_, err = Parse([]byte(`[[sections]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse deck")

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultDeck(t *testing.T) {
	d := Default()
	require.Len(t, d.Sections, 5)
	assert.True(t, d.Sections[1].Transparent)
	assert.NotEmpty(t, d.Background)
}

func TestBuildAndRebuild(t *testing.T) {
	doc := dom.NewDocument()
	d := Default()

	container := Build(doc, d)
	assert.Same(t, container, doc.QuerySelector(".sr-cont"))
	assert.Same(t, container, doc.QuerySelector("#page"))

	sections := container.QuerySelectorAll("." + SectionClass)
	require.Len(t, sections, 5)
	assert.Equal(t, "one", sections[0].ID)
	assert.True(t, sections[1].HasClass(TransparentClass))
	assert.NotNil(t, container.QuerySelector("."+BackgroundClass))

	smaller, err := Parse([]byte(sampleDeck))
	require.NoError(t, err)
	Rebuild(doc, container, smaller)
	assert.Len(t, container.QuerySelectorAll("."+SectionClass), 3)
	assert.Nil(t, sections[0].Parent())
}

func TestLookup(t *testing.T) {
	d := Default()
	s, ok := Lookup(d, "three")
	require.True(t, ok)
	assert.Equal(t, "Section 03", s.Title)

	_, ok = Lookup(d, "nope")
	assert.False(t, ok)
}

func TestWatchSignalsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDeck), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads, err := Watch(ctx, path)
	require.NoError(t, err)

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.toml"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(path, []byte(sampleDeck+"\n"), 0644))

	select {
	case _, ok := <-reloads:
		require.True(t, ok)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload signal after writing the deck")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-reloads:
			return !ok
		default:
			return false
		}
	}, 3*time.Second, 20*time.Millisecond)
}
