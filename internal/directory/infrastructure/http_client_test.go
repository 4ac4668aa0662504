package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/felixgeelhaar/parley/internal/directory/domain"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPDirectory_PartyName(t *testing.T) {
	partyID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/parties/" + partyID.String():
			fmt.Fprintf(w, `{"name": "Dana Whitfield"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	directory := NewHTTPDirectory(DefaultHTTPDirectoryConfig(server.URL), nil)
	ctx := context.Background()

	t.Run("resolves a known party", func(t *testing.T) {
		name, err := directory.PartyName(ctx, partyID)
		require.NoError(t, err)
		assert.Equal(t, "Dana Whitfield", name)
	})

	t.Run("unknown ids map to ErrNameNotFound", func(t *testing.T) {
		_, err := directory.PartyName(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNameNotFound)
	})
}

func TestHTTPDirectory_SubjectName(t *testing.T) {
	subjectID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/subjects/"+subjectID.String(), r.URL.Path)
		fmt.Fprintf(w, `{"name": "Whitfield v. Harmon"}`)
	}))
	defer server.Close()

	directory := NewHTTPDirectory(DefaultHTTPDirectoryConfig(server.URL), nil)

	name, err := directory.SubjectName(context.Background(), subjectID)
	require.NoError(t, err)
	assert.Equal(t, "Whitfield v. Harmon", name)
}

func TestHTTPDirectory_BreakerOpensOnRepeatedFailures(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	config := DefaultHTTPDirectoryConfig(server.URL)
	config.FailureThreshold = 3
	directory := NewHTTPDirectory(config, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := directory.PartyName(ctx, uuid.New())
		require.Error(t, err)
	}

	// The breaker is open now; lookups fail without reaching the server.
	before := calls.Load()
	_, err := directory.PartyName(ctx, uuid.New())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, before, calls.Load())
}

func TestHTTPDirectory_NotFoundDoesNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	config := DefaultHTTPDirectoryConfig(server.URL)
	config.FailureThreshold = 2
	directory := NewHTTPDirectory(config, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := directory.PartyName(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNameNotFound)
	}
}
