package out_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	trackingoutadapter "gazesim/internal/modules/tracking/adapter/out"
	"gazesim/internal/modules/tracking/domain"
	trackingdto "gazesim/internal/modules/tracking/dto"
	apperrors "gazesim/internal/platform/errors"
)

var summary = domain.AttentionSummary{
	Fixations:      4,
	Saccades:       9,
	PupilDilation:  3.9,
	AttentionAreas: domain.AttentionAreas{Eyes: 30, Mouth: 11, Objects: 59},
}

func TestHTTPSubmitterPostsSummary(t *testing.T) {
	t.Parallel()
	var got trackingdto.SummaryPayload
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/simulate-eye-tracking", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer srv.Close()

	sub := trackingoutadapter.NewHTTPSubmitter(srv.URL+"/", "/simulate-eye-tracking", 0)
	require.NoError(t, sub.Submit(context.Background(), summary))

	encoded, err := json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(encoded, &got))
	require.Equal(t, trackingdto.SummaryPayload{
		Fixations:      4,
		Saccades:       9,
		PupilDilation:  "3.9",
		AttentionAreas: trackingdto.AttentionAreas{Eyes: 30, Mouth: 11, Objects: 59},
	}, got)
	require.IsType(t, "", raw["pupilDilation"])
}

func TestHTTPSubmitterFailures(t *testing.T) {
	t.Parallel()
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"not json": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>ok</html>"))
		},
		"not found": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
		// a JSON body does not make a non-2xx status a success
		"json error body": func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid summary"}`))
		},
	}
	for name, handler := range cases {
		srv := httptest.NewServer(handler)
		err := trackingoutadapter.NewHTTPSubmitter(srv.URL, "/simulate-eye-tracking", 0).Submit(context.Background(), summary)
		srv.Close()
		require.ErrorIs(t, err, apperrors.ErrSubmissionFailed, name)
	}
}

func TestHTTPSubmitterUnreachable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	err := trackingoutadapter.NewHTTPSubmitter(url, "/simulate-eye-tracking", 0).Submit(context.Background(), summary)
	require.ErrorIs(t, err, apperrors.ErrSubmissionFailed)
}
