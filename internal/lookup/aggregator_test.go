package lookup

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	name  string
	text  string
	err   error
	delay time.Duration
	panic bool
}

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) Lookup(ctx context.Context, phone string) (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.panic {
		panic("source blew up")
	}
	if s.err != nil {
		return "", s.err
	}
	return fmt.Sprintf("%s: %s", s.name, s.text), nil
}

func TestNewAggregatorRequiresSources(t *testing.T) {
	_, err := NewAggregator(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source is required")
}

func TestAggregateDeterministicOrder(t *testing.T) {
	// Randomized delays shuffle completion order; assembly order must not
	// move with it.
	for run := 0; run < 10; run++ {
		sources := []Source{
			&fakeSource{name: "alpha", text: "a", delay: time.Duration(rand.Intn(20)) * time.Millisecond},
			&fakeSource{name: "beta", text: "b", delay: time.Duration(rand.Intn(20)) * time.Millisecond},
			&fakeSource{name: "gamma", text: "c", delay: time.Duration(rand.Intn(20)) * time.Millisecond},
		}
		agg, err := NewAggregator(sources)
		require.NoError(t, err)

		report := agg.Aggregate(context.Background(), "+70000000000")
		lines := strings.Split(report, "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "Результаты поиска по номеру телефона:", lines[0])
		assert.Equal(t, "alpha: a", lines[1])
		assert.Equal(t, "beta: b", lines[2])
		assert.Equal(t, "gamma: c", lines[3])
	}
}

func TestAggregateDegradesFailures(t *testing.T) {
	sources := []Source{
		&fakeSource{name: "ok", text: "fine"},
		&fakeSource{name: "broken", err: errors.New("connection refused")},
		&fakeSource{name: "wild", panic: true},
	}
	agg, err := NewAggregator(sources)
	require.NoError(t, err)

	report := agg.Aggregate(context.Background(), "+70000000000")
	lines := strings.Split(report, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ok: fine", lines[1])
	assert.Equal(t, "broken: данные временно недоступны", lines[2])
	assert.Equal(t, "wild: данные временно недоступны", lines[3])
}

func TestHTTPSourceLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "+70000000000", r.URL.Query().Get("phone"))
		fmt.Fprint(w, "найдено 3 объявления\n")
	}))
	defer srv.Close()

	src := NewOlx(srv.URL, time.Second)
	text, err := src.Lookup(context.Background(), "+70000000000")
	require.NoError(t, err)
	assert.Equal(t, "OLX: найдено 3 объявления", text)
}

func TestHTTPSourceErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := NewNomerogram(srv.URL, time.Second)
	_, err := src.Lookup(context.Background(), "+70000000000")
	assert.Error(t, err)

	unconfigured := NewGetcontact("", time.Second)
	_, err = unconfigured.Lookup(context.Background(), "+70000000000")
	assert.ErrorIs(t, err, errNotConfigured)
}
