package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yshengliao/relay/router"
	"go.uber.org/zap/zaptest"
)

func TestNamedRoutes(t *testing.T) {
	t.Run("LazyBuildFromCollection", func(t *testing.T) {
		r := router.New()
		show, err := r.GET("/books/:id", noopHandler)
		require.NoError(t, err)
		show.Name("books.show")
		_, err = r.GET("/anon", noopHandler)
		require.NoError(t, err)

		named := r.NamedRoutes()
		require.Len(t, named, 1)
		assert.Same(t, show, named["books.show"])

		assert.True(t, r.HasNamedRoute("books.show"))
		assert.Same(t, show, r.NamedRoute("books.show"))
	})

	t.Run("UnknownNameIsNilNotError", func(t *testing.T) {
		r := router.New()
		assert.Nil(t, r.NamedRoute("ghost"))
		assert.False(t, r.HasNamedRoute("ghost"))
	})

	t.Run("RebuiltAfterMutation", func(t *testing.T) {
		r := router.New()
		_, err := r.GET("/a", noopHandler)
		require.NoError(t, err)
		assert.Empty(t, r.NamedRoutes())

		// The registration invalidates the warm index, so the new name
		// is visible without any explicit reload.
		late, err := r.GET("/late", noopHandler)
		require.NoError(t, err)
		late.Name("late")
		assert.True(t, r.HasNamedRoute("late"))
	})

	t.Run("SnapshotIsACopy", func(t *testing.T) {
		r := router.New()
		rt, err := r.GET("/a", noopHandler)
		require.NoError(t, err)
		rt.Name("a")

		snap := r.NamedRoutes()
		delete(snap, "a")
		assert.True(t, r.HasNamedRoute("a"))
	})
}

func TestAddNamedRoute(t *testing.T) {
	t.Run("RegistersAndNames", func(t *testing.T) {
		r := router.New()
		rt, err := r.GET("/books/:id", noopHandler)
		require.NoError(t, err)

		require.NoError(t, r.AddNamedRoute("books.show", rt))
		assert.Equal(t, "books.show", rt.GetName())
		assert.Same(t, rt, r.NamedRoute("books.show"))
	})

	t.Run("DuplicateFails", func(t *testing.T) {
		r := router.New()
		first, err := r.GET("/a", noopHandler)
		require.NoError(t, err)
		second, err := r.GET("/b", noopHandler)
		require.NoError(t, err)

		require.NoError(t, r.AddNamedRoute("shared", first))
		err = r.AddNamedRoute("shared", second)

		var dup *router.DuplicateNameError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "shared", dup.Name)
		assert.Same(t, first, r.NamedRoute("shared"))
	})

	t.Run("CollidesWithCollectionName", func(t *testing.T) {
		r := router.New()
		rt, err := r.GET("/a", noopHandler)
		require.NoError(t, err)
		rt.Name("taken")
		other, err := r.GET("/b", noopHandler)
		require.NoError(t, err)

		var dup *router.DuplicateNameError
		require.ErrorAs(t, r.AddNamedRoute("taken", other), &dup)
	})

	t.Run("StandaloneRouteSurvivesRebuild", func(t *testing.T) {
		r := router.New()
		standalone, err := router.NewRoute("/legacy/:id", noopHandler)
		require.NoError(t, err)
		require.NoError(t, r.AddNamedRoute("legacy", standalone))

		// A later registration invalidates the warm index; the rebuild
		// must keep explicit registrations that are not in the
		// collection.
		_, err = r.GET("/fresh", noopHandler)
		require.NoError(t, err)

		assert.Same(t, standalone, r.NamedRoute("legacy"))
		url, err := r.URLFor("legacy", map[string]string{"id": "9"})
		require.NoError(t, err)
		assert.Equal(t, "/legacy/9", url)

		// And the name stays taken.
		other, err := r.GET("/other", noopHandler)
		require.NoError(t, err)
		var dup *router.DuplicateNameError
		require.ErrorAs(t, r.AddNamedRoute("legacy", other), &dup)
	})

	t.Run("DuplicateInScanKeepsFirst", func(t *testing.T) {
		r := router.New(router.WithLogger(zaptest.NewLogger(t)))
		first, err := r.GET("/a", noopHandler)
		require.NoError(t, err)
		first.Name("dup")
		second, err := r.GET("/b", noopHandler)
		require.NoError(t, err)
		second.Name("dup")

		assert.Same(t, first, r.NamedRoute("dup"))
	})
}

func TestURLFor(t *testing.T) {
	newRouter := func(t *testing.T) *router.Router {
		t.Helper()
		r := router.New()
		show, err := r.GET("/books/:id", noopHandler)
		require.NoError(t, err)
		require.NoError(t, r.AddNamedRoute("books.show", show))
		archive, err := r.GET("/archive/:year(/:month)", noopHandler)
		require.NoError(t, err)
		require.NoError(t, r.AddNamedRoute("archive.show", archive))
		return r
	}

	t.Run("Simple", func(t *testing.T) {
		r := newRouter(t)
		url, err := r.URLFor("books.show", map[string]string{"id": "42"})
		require.NoError(t, err)
		assert.Equal(t, "/books/42", url)
	})

	t.Run("Idempotent", func(t *testing.T) {
		r := newRouter(t)
		params := map[string]string{"id": "42"}
		first, err := r.URLFor("books.show", params)
		require.NoError(t, err)
		second, err := r.URLFor("books.show", params)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("StripsUnpopulatedOptional", func(t *testing.T) {
		r := newRouter(t)
		url, err := r.URLFor("archive.show", map[string]string{"year": "2024"})
		require.NoError(t, err)
		assert.Equal(t, "/archive/2024", url)
		assert.NotContains(t, url, "(")
		assert.NotContains(t, url, ":")
	})

	t.Run("PopulatedOptionalKept", func(t *testing.T) {
		r := newRouter(t)
		url, err := r.URLFor("archive.show", map[string]string{"year": "2024", "month": "05"})
		require.NoError(t, err)
		assert.Equal(t, "/archive/2024/05", url)
	})

	t.Run("UnknownName", func(t *testing.T) {
		r := newRouter(t)
		_, err := r.URLFor("nonexistent", nil)

		var nf *router.RouteNotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "nonexistent", nf.Name)
	})
}
