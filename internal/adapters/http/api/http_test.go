package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rkuiper/encore/internal/adapters/http/api"
	"github.com/rkuiper/encore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockStore struct {
	performances []model.Performance
}

func (m *mockStore) Sample(_ context.Context, n int) []model.Performance {
	if n > len(m.performances) {
		n = len(m.performances)
	}
	return m.performances[:n]
}

func (m *mockStore) All(_ context.Context) []model.Performance {
	return m.performances
}

func (m *mockStore) Count(_ context.Context) int {
	return len(m.performances)
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func testPerformances(n int) []model.Performance {
	out := make([]model.Performance, n)
	for i := range out {
		out[i] = model.Performance{
			Name:     fmt.Sprintf("Band %d", i),
			Festival: model.FestivalPinkpop,
			Year:     2008 + i%12,
		}
	}
	return out
}

func newTestMux(store *mockStore) *http.ServeMux {
	server := api.NewServer(store, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, 1, 5)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func TestServerRegister(t *testing.T) {
	Convey("Given a new API server", t, func() {
		mux := newTestMux(&mockStore{performances: testPerformances(10)})

		Convey("When registering routes", func() {
			Convey("Then the health endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/healthz", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And the stats endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/stats", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")
			})
		})
	})
}

func TestHandleGetRandomBands(t *testing.T) {
	Convey("Given a server over a ten-record dataset", t, func() {
		mux := newTestMux(&mockStore{performances: testPerformances(10)})

		get := func(target string) (*httptest.ResponseRecorder, []model.Performance) {
			req := httptest.NewRequest("GET", target, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			var body []model.Performance
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			return w, body
		}

		Convey("When requesting each valid count", func() {
			for n := 1; n <= 5; n++ {
				w, body := get(fmt.Sprintf("/api/random-bands?count=%d", n))

				Convey(fmt.Sprintf("Then count=%d should return exactly %d items", n, n), func() {
					So(w.Code, ShouldEqual, http.StatusOK)
					So(len(body), ShouldEqual, n)
				})
			}
		})

		Convey("When the count parameter is absent", func() {
			w, body := get("/api/random-bands")

			Convey("Then the default of one item should be returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(len(body), ShouldEqual, 1)
			})
		})

		Convey("When the count parameter is malformed", func() {
			w, body := get("/api/random-bands?count=abc")

			Convey("Then it should silently fall back to the default", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(len(body), ShouldEqual, 1)
			})
		})

		Convey("When the count parameter is above the cap", func() {
			w, body := get("/api/random-bands?count=99")

			Convey("Then it should clamp to five items", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(len(body), ShouldEqual, 5)
			})
		})

		Convey("When the count parameter is zero or negative", func() {
			for _, q := range []string{"count=0", "count=-4"} {
				w, body := get("/api/random-bands?" + q)

				Convey("Then "+q+" should clamp to one item", func() {
					So(w.Code, ShouldEqual, http.StatusOK)
					So(len(body), ShouldEqual, 1)
				})
			}
		})

		Convey("When the returned items are inspected", func() {
			_, body := get("/api/random-bands?count=3")

			Convey("Then each should be a valid performance", func() {
				So(len(body), ShouldEqual, 3)
				for _, p := range body {
					So(p.Validate(), ShouldBeNil)
				}
			})
		})

		Convey("When using a non-GET method", func() {
			req := httptest.NewRequest("POST", "/api/random-bands", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond with not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When a request id is supplied", func() {
			req := httptest.NewRequest("GET", "/api/random-bands", nil)
			req.Header.Set("X-Request-ID", "abc-123")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should be echoed back", func() {
				So(w.Header().Get("X-Request-ID"), ShouldEqual, "abc-123")
			})
		})

		Convey("When no request id is supplied", func() {
			w, _ := get("/api/random-bands")

			Convey("Then one should be generated", func() {
				So(w.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
			})
		})
	})

	Convey("Given a server over an empty dataset", t, func() {
		mux := newTestMux(&mockStore{})

		Convey("When requesting a sample", func() {
			req := httptest.NewRequest("GET", "/api/random-bands?count=3", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond with a JSON not-found error", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["code"], ShouldEqual, "not_found")
			})
		})
	})
}

func TestHandleGetAllBands(t *testing.T) {
	Convey("Given a server over a known dataset", t, func() {
		performances := testPerformances(25)
		mux := newTestMux(&mockStore{performances: performances})

		Convey("When downloading the full dataset", func() {
			req := httptest.NewRequest("GET", "/api/all-bands", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the response should carry the attachment header", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Disposition"), ShouldEqual, `attachment; filename="all_bands.json"`)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")
			})

			Convey("And the cardinality should match the dataset", func() {
				var body []model.Performance
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(len(body), ShouldEqual, len(performances))
			})
		})

		Convey("When downloading twice", func() {
			fetch := func() []model.Performance {
				req := httptest.NewRequest("GET", "/api/all-bands", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				var body []model.Performance
				_ = json.Unmarshal(w.Body.Bytes(), &body)
				return body
			}

			Convey("Then the order should be stable across calls", func() {
				So(fetch(), ShouldResemble, fetch())
			})
		})

		Convey("When using a non-GET method", func() {
			req := httptest.NewRequest("DELETE", "/api/all-bands", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond with not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When sending a CORS preflight", func() {
			req := httptest.NewRequest("OPTIONS", "/api/all-bands", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should be answered with no content", func() {
				So(w.Code, ShouldEqual, http.StatusNoContent)
				So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
			})
		})
	})
}
