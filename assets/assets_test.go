package assets

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const malformed = "data:image/png;base64,iVBORw0KGgo!!!!"

func load(t *testing.T, sources map[string]string, opts ...Option) (*Loader, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	opts = append([]Option{WithLogger(logger)}, opts...)
	l := NewLoader(sources, opts...)
	l.Load(context.Background())
	l.Wait()
	return l, hook
}

func TestLoadEmbedded(t *testing.T) {
	l, hook := load(t, DataURLs)

	assert.Equal(t, 0, l.Pending())
	assert.Empty(t, l.Errors())
	for _, key := range l.Keys() {
		a, ok := l.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, key, a.Key)
		assert.Equal(t, Ready, a.State)
	}

	px, _ := l.Get("1px")
	assert.Equal(t, 1, px.Image.Bounds().Dx())
	assert.Equal(t, 1, px.Image.Bounds().Dy())

	daisy, _ := l.Get("tex/daisy.png")
	assert.Equal(t, 32, daisy.Image.Bounds().Dx())

	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, logrus.WarnLevel, e.Level)
	}
}

func TestMalformedKeyIsIsolated(t *testing.T) {
	// Both orders, so neither key depends on the other finishing first.
	for _, keys := range [][2]string{{"a-good", "b-bad"}, {"b-good", "a-bad"}} {
		good, bad := keys[0], keys[1]
		l, hook := load(t, map[string]string{
			good: DataURLs["1px"],
			bad:  malformed,
		}, WithLimit(1))

		_, ok := l.Get(good)
		assert.True(t, ok)
		_, ok = l.Get(bad)
		assert.False(t, ok)

		s, known := l.State(bad)
		assert.True(t, known)
		assert.Equal(t, Failed, s)
		s, _ = l.State(good)
		assert.Equal(t, Ready, s)

		errs := l.Errors()
		require.Len(t, errs, 1)
		assert.Equal(t, bad, errs[0].Key)
		assert.Contains(t, errs[0].Error(), bad)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.WarnLevel, entry.Level)
		assert.Equal(t, bad, entry.Data["key"])
	}
}

func TestGetBeforeLoad(t *testing.T) {
	l := NewLoader(map[string]string{"1px": DataURLs["1px"]})

	_, ok := l.Get("1px")
	assert.False(t, ok)
	s, known := l.State("1px")
	assert.True(t, known)
	assert.Equal(t, Pending, s)

	_, known = l.State("missing")
	assert.False(t, known)

	// Wait without Load does not block.
	l.Wait()
}

func TestLoadTwice(t *testing.T) {
	l, _ := load(t, map[string]string{"1px": DataURLs["1px"]})
	l.Load(context.Background())
	l.Wait()
	_, ok := l.Get("1px")
	assert.True(t, ok)
}

func TestNonImagePayload(t *testing.T) {
	l, _ := load(t, map[string]string{
		"text": "data:text/plain,hello%20world",
		"url":  "https://example.com/daisy.png",
	})
	errs := l.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, "text", errs[0].Key)
	assert.Equal(t, "url", errs[1].Key)
	assert.ErrorIs(t, errs[1], ErrNotDataURL)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	logger, _ := test.NewNullLogger()
	l := NewLoader(map[string]string{"1px": DataURLs["1px"]}, WithLogger(logger))
	l.Load(ctx)
	l.Wait()

	errs := l.Errors()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], context.Canceled)
}

func TestParseDataURL(t *testing.T) {
	mt, data, err := ParseDataURL("data:text/plain;charset=utf-8;base64,aGk=")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mt)
	assert.Equal(t, []byte("hi"), data)

	mt, data, err = ParseDataURL("data:,a%2Cb")
	require.NoError(t, err)
	assert.Empty(t, mt)
	assert.Equal(t, []byte("a,b"), data)

	_, _, err = ParseDataURL("data:image/png;base64")
	assert.Error(t, err)

	_, _, err = ParseDataURL("image/png;base64,aGk=")
	assert.ErrorIs(t, err, ErrNotDataURL)

	assert.Equal(t, "data:text/plain;base64,aGk=", EncodeDataURL("text/plain", []byte("hi")))
}
